package host

import (
	"context"
	"fmt"
	"go-gitissues/internal/application/widget"
	"go-gitissues/internal/domain/types/feedtypes"
	"go-gitissues/lib/e"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

type Widget interface {
	Command(ctx context.Context, dispatch widget.Dispatch)
	UpdateState(event feedtypes.Event, previous feedtypes.FeedState) feedtypes.FeedState
	Render(state feedtypes.FeedState) (string, error)
	RenderPage(state feedtypes.FeedState) (string, error)
	InitialState() feedtypes.FeedState
	RefreshFrequency() time.Duration
}

// Host drives a Widget: it owns the refresh timer, keeps the current state and
// hands it to the renderer. Polls run one at a time.
type Host struct {
	Widget   Widget
	location *time.Location
	cronSpec string

	scheduler *gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc

	pollMu sync.Mutex

	mu      sync.RWMutex
	state   feedtypes.FeedState
	updates int
	stopped bool
}

// NewHost creates a host that polls every w.RefreshFrequency(), or on cronSpec
// when it is not empty.
func NewHost(w Widget, location *time.Location, cronSpec string) *Host {
	if location == nil {
		location = time.Local
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Host{
		Widget:   w,
		location: location,
		cronSpec: cronSpec,
		ctx:      ctx,
		cancel:   cancel,
		state:    w.InitialState(),
	}
}

func (h *Host) Start() error {
	sc := gocron.NewScheduler(h.location)
	sc.SingletonModeAll()

	var err error

	if h.cronSpec != "" {
		_, err = sc.Cron(h.cronSpec).Do(h.Poll)
	} else {
		_, err = sc.Every(h.Widget.RefreshFrequency()).Do(h.Poll)
	}

	if err != nil {
		slog.Error(
			e.ErrScheduler.Error(),
			slog.String("error", err.Error()),
			slog.String("cron", h.cronSpec),
			slog.Duration("every", h.Widget.RefreshFrequency()),
		)

		return fmt.Errorf("%w: %v", e.ErrScheduler, err)
	}

	h.scheduler = sc
	sc.StartAsync()

	// interval jobs fire right away, cron jobs wait for their first slot
	if h.cronSpec != "" {
		go h.Poll()
	}

	slog.Info("Host started",
		slog.String("cron", h.cronSpec),
		slog.Duration("every", h.Widget.RefreshFrequency()))

	return nil
}

// Stop halts the timer. A poll still in flight is cancelled and whatever it
// dispatches afterwards is dropped.
func (h *Host) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}

	h.stopped = true
	h.mu.Unlock()

	h.cancel()

	if h.scheduler != nil {
		h.scheduler.Stop()
	}

	slog.Info("Host stopped")
}

// Poll runs one fetch-and-update cycle.
func (h *Host) Poll() {
	h.pollMu.Lock()
	defer h.pollMu.Unlock()

	if h.isStopped() {
		return
	}

	h.Widget.Command(h.ctx, h.Dispatch)
}

// Dispatch applies one fetch result to the stored state.
func (h *Host) Dispatch(event feedtypes.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		slog.Info("Host stopped, dropping fetch result",
			slog.String("event", event.Type.String()))

		return
	}

	h.state = h.Widget.UpdateState(event, h.state)
	h.updates++
}

func (h *Host) State() feedtypes.FeedState {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.state
}

// Updates reports how many fetch results have been applied.
func (h *Host) Updates() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.updates
}

func (h *Host) isStopped() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.stopped
}
