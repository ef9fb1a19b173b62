package host

import (
	"go-gitissues/lib/e"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Host) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	r.GET("/", h.handlePage)
	r.GET("/widget", h.handleWidget)
	r.GET("/api/state", h.handleState)
	r.GET("/healthz", h.handleHealth)

	return r
}

// Server returns the HTTP server for the widget; the caller starts and shuts it
// down.
func (h *Host) Server(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func (h *Host) handlePage(c *gin.Context) {
	page, err := h.Widget.RenderPage(h.State())
	if err != nil {
		h.renderFailed(c, err)

		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (h *Host) handleWidget(c *gin.Context) {
	markup, err := h.Widget.Render(h.State())
	if err != nil {
		h.renderFailed(c, err)

		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
}

func (h *Host) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, h.State())
}

func (h *Host) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Host) renderFailed(c *gin.Context, err error) {
	slog.Error(
		e.ErrRender.Error(),
		slog.String("error", err.Error()),
		slog.String("path", c.Request.URL.Path),
	)

	c.String(http.StatusInternalServerError, "Internal Server Error")
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		slog.Info("http",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)))
	}
}
