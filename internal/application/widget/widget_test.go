package widget_test

import (
	"context"
	"errors"
	"go-gitissues/internal/application/widget"
	"go-gitissues/internal/application/widget/api"
	"go-gitissues/internal/domain/types/apitypes"
	"go-gitissues/internal/domain/types/feedtypes"
	"go-gitissues/internal/domain/widgetmessages"
	"go-gitissues/pkg/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Repo:             "felixhageloh/uebersicht",
		Owner:            "felixhageloh",
		Name:             "uebersicht",
		RefreshFrequency: 10 * time.Minute,
		Location:         time.UTC,
		Style:            config.DefaultStyle(),
	}
}

func TestWidget_CommandDispatchesSuccess(t *testing.T) {
	issues := []apitypes.RawIssue{openIssue(1, now)}

	fetcher := new(api.MockFetcher)
	fetcher.On("FetchIssues", mock.Anything, "felixhageloh", "uebersicht").Return(issues, nil)

	w := widget.NewWidget(testConfig(), fetcher)

	var events []feedtypes.Event

	w.Command(context.Background(), func(event feedtypes.Event) {
		events = append(events, event)
	})

	require.Len(t, events, 1)
	assert.Equal(t, feedtypes.FetchSucceeded, events[0].Type)
	assert.Equal(t, issues, events[0].Data)
	assert.NoError(t, events[0].Err)
	fetcher.AssertExpectations(t)
}

func TestWidget_CommandDispatchesFailure(t *testing.T) {
	fetcher := new(api.MockFetcher)
	fetcher.On("FetchIssues", mock.Anything, "felixhageloh", "uebersicht").Return(nil, errors.New("boom"))

	w := widget.NewWidget(testConfig(), fetcher)

	var events []feedtypes.Event

	w.Command(context.Background(), func(event feedtypes.Event) {
		events = append(events, event)
	})

	require.Len(t, events, 1)
	assert.Equal(t, feedtypes.FetchFailed, events[0].Type)
	assert.EqualError(t, events[0].Err, "boom")
}

func TestWidget_UpdateStateUsesClock(t *testing.T) {
	w := widget.NewWidget(testConfig(), new(api.MockFetcher)).WithClock(func() time.Time { return now })

	state := w.UpdateState(feedtypes.Succeeded([]apitypes.RawIssue{openIssue(1, now.Add(-time.Hour))}), w.InitialState())

	assert.Equal(t, "Oct 18, 2026, 9:5", state.LastChecked)
	require.Len(t, state.DisplayIssues, 1)
	assert.Equal(t, "yesterday", state.DisplayIssues[0].Time)
}

func TestWidget_InitialStateAndRender(t *testing.T) {
	w := widget.NewWidget(testConfig(), new(api.MockFetcher))

	initial := w.InitialState()
	assert.Equal(t, widgetmessages.MsgFetching, initial.Warning)
	assert.Empty(t, initial.DisplayIssues)
	assert.Equal(t, 10*time.Minute, w.RefreshFrequency())
	assert.Equal(t, "uebersicht", w.Name())

	markup, err := w.Render(initial)
	require.NoError(t, err)
	assert.Contains(t, markup, "GitHub Issues for uebersicht")
	assert.Contains(t, markup, widgetmessages.MsgFetching)

	page, err := w.RenderPage(initial)
	require.NoError(t, err)
	assert.Contains(t, page, `content="600"`)
	assert.Contains(t, page, "top: 240px; left: 45px;")
}
