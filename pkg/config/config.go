package config

import (
	"errors"
	"fmt"
	"go-gitissues/lib/e"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRepo             = "felixhageloh/uebersicht"
	DefaultRefreshFrequency = 600000 * time.Millisecond
	DefaultAddr             = ":8095"
	DefaultGithubAPIURL     = "https://api.github.com/"
)

// Style is everything the renderer needs to position and paint the widget.
type Style struct {
	Top             int    `yaml:"top"`
	Left            int    `yaml:"left"`
	Width           int    `yaml:"width"`
	Color           string `yaml:"color"`
	BackgroundColor string `yaml:"background_color"`
	BorderRadius    int    `yaml:"border_radius"`
	Padding         int    `yaml:"padding"`
	FontSize        int    `yaml:"font_size"`
	FontFamily      string `yaml:"font_family"`
}

func DefaultStyle() Style {
	return Style{
		Top:             240,
		Left:            45,
		Width:           400,
		Color:           "#fff",
		BackgroundColor: "rgba(0, 0, 0, 0.6)",
		BorderRadius:    5,
		Padding:         15,
		FontSize:        11,
		FontFamily:      "Helvetica",
	}
}

type Config struct {
	Repo             string
	Owner            string
	Name             string
	RefreshFrequency time.Duration
	RefreshCron      string
	Addr             string
	GithubAPIURL     string
	Location         *time.Location
	LogLevel         string
	Style            Style
}

// LoadConfig reads envFile if it exists and builds the configuration from the
// environment. A missing env file is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if errLoadEnv := godotenv.Load(envFile); errLoadEnv != nil && !errors.Is(errLoadEnv, fs.ErrNotExist) {
			slog.Error(
				e.ErrOpenFile.Error(),
				slog.String("error", errLoadEnv.Error()),
				slog.String("file", envFile),
			)

			return Config{}, e.Wrap("can't load env file", errLoadEnv)
		}
	}

	var errs []string

	getInt := func(key string, def int) int {
		val := os.Getenv(key)
		if val == "" {
			return def
		}

		i, err := strconv.Atoi(val)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %s is not a number", key, val))

			return def
		}

		return i
	}

	repo := getenv("WIDGET_REPO", DefaultRepo)

	owner, name, errRepo := ParseRepo(repo)
	if errRepo != nil {
		errs = append(errs, fmt.Sprintf("WIDGET_REPO: %v", errRepo))
	}

	refreshMs := getInt("WIDGET_REFRESH_MS", int(DefaultRefreshFrequency/time.Millisecond))
	if refreshMs <= 0 {
		errs = append(errs, fmt.Sprintf("WIDGET_REFRESH_MS: must be positive, got %d", refreshMs))
	}

	loc := time.Local

	if tz := os.Getenv("WIDGET_TZ"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			errs = append(errs, fmt.Sprintf("WIDGET_TZ: %v", err))
		} else {
			loc = l
		}
	}

	style := DefaultStyle()

	if styleFile := os.Getenv("WIDGET_STYLE_FILE"); styleFile != "" {
		s, err := LoadStyle(styleFile, style)
		if err != nil {
			errs = append(errs, fmt.Sprintf("WIDGET_STYLE_FILE: %v", err))
		} else {
			style = s
		}
	}

	style.Top = getInt("WIDGET_TOP", style.Top)
	style.Left = getInt("WIDGET_LEFT", style.Left)

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("%w:\n%s", e.ErrParseEnv, strings.Join(errs, "\n"))
	}

	return Config{
		Repo:             repo,
		Owner:            owner,
		Name:             name,
		RefreshFrequency: time.Duration(refreshMs) * time.Millisecond,
		RefreshCron:      strings.TrimSpace(os.Getenv("WIDGET_REFRESH_CRON")),
		Addr:             getenv("WIDGET_ADDR", DefaultAddr),
		GithubAPIURL:     getenv("GITHUB_API_URL", DefaultGithubAPIURL),
		Location:         loc,
		LogLevel:         getenv("WIDGET_LOG_LEVEL", "info"),
		Style:            style,
	}, nil
}

// LoadStyle overlays the YAML file at path on top of base. Keys absent from the
// file keep the values of base.
func LoadStyle(path string, base Style) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("%w %s: %v", e.ErrReadStyle, path, err)
	}

	style := base
	if err := yaml.Unmarshal(data, &style); err != nil {
		return base, fmt.Errorf("%w %s: %v", e.ErrReadStyle, path, err)
	}

	return style, nil
}

func ParseRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(strings.TrimSpace(repo), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", e.ErrInvalidRepo, repo)
	}

	return parts[0], parts[1], nil
}

func getenv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return def
}
