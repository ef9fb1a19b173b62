package widget

import (
	"context"
	"go-gitissues/internal/application/widget/api"
	"go-gitissues/internal/domain/types/feedtypes"
	"go-gitissues/internal/formatter"
	"go-gitissues/pkg/config"
	"log/slog"
	"strings"
	"time"
)

type Dispatch func(event feedtypes.Event)

// Widget is the GitHub issues widget as seen by a host: the host runs Command on
// its timer, feeds every dispatched event through UpdateState and renders the
// state it keeps.
type Widget struct {
	fetcher          api.IssuesFetcher
	owner            string
	name             string
	refreshFrequency time.Duration
	location         *time.Location
	style            config.Style
	now              func() time.Time
}

func NewWidget(cfg config.Config, fetcher api.IssuesFetcher) *Widget {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	return &Widget{
		fetcher:          fetcher,
		owner:            cfg.Owner,
		name:             cfg.Name,
		refreshFrequency: cfg.RefreshFrequency,
		location:         loc,
		style:            cfg.Style,
		now:              time.Now,
	}
}

// WithClock replaces the wall clock used by UpdateState.
func (w *Widget) WithClock(now func() time.Time) *Widget {
	w.now = now

	return w
}

func (w *Widget) Name() string {
	return w.name
}

func (w *Widget) RefreshFrequency() time.Duration {
	return w.refreshFrequency
}

func (w *Widget) InitialState() feedtypes.FeedState {
	return feedtypes.InitialState()
}

// Command fetches the issues once and dispatches the outcome. It blocks until the
// request finishes or ctx is done.
func (w *Widget) Command(ctx context.Context, dispatch Dispatch) {
	issues, err := w.fetcher.FetchIssues(ctx, w.owner, w.name)
	if err != nil {
		dispatch(feedtypes.Failed(err))

		return
	}

	dispatch(feedtypes.Succeeded(issues))
}

func (w *Widget) UpdateState(event feedtypes.Event, previous feedtypes.FeedState) feedtypes.FeedState {
	next := Transform(event, previous, w.now().In(w.location))

	slog.Debug("Widget state updated",
		slog.String("event", event.Type.String()),
		slog.Int("issues", len(next.DisplayIssues)),
		slog.String("warning", next.Warning))

	return next
}

func (w *Widget) Render(state feedtypes.FeedState) (string, error) {
	var sb strings.Builder
	if err := formatter.RenderWidget(&sb, w.name, state); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (w *Widget) RenderPage(state feedtypes.FeedState) (string, error) {
	var sb strings.Builder
	if err := formatter.RenderPage(&sb, w.name, state, w.style, int(w.refreshFrequency/time.Second)); err != nil {
		return "", err
	}

	return sb.String(), nil
}
