package host_test

import (
	"context"
	"errors"
	"go-gitissues/internal/application/host"
	"go-gitissues/internal/application/widget"
	"go-gitissues/internal/application/widget/api"
	"go-gitissues/internal/domain/types/apitypes"
	"go-gitissues/internal/domain/types/feedtypes"
	"go-gitissues/internal/domain/widgetmessages"
	"go-gitissues/lib/e"
	"go-gitissues/pkg/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.October, 18, 9, 5, 0, 0, time.UTC)

func rawIssues() []apitypes.RawIssue {
	return []apitypes.RawIssue{
		{
			Number:    1,
			Title:     "A",
			HTMLURL:   "u",
			State:     "open",
			UpdatedAt: now.Add(-2 * time.Hour),
			User:      apitypes.RawUser{Login: "bob"},
		},
	}
}

func newHost(fetcher api.IssuesFetcher, refresh time.Duration, cronSpec string) *host.Host {
	cfg := config.Config{
		Repo:             "felixhageloh/uebersicht",
		Owner:            "felixhageloh",
		Name:             "uebersicht",
		RefreshFrequency: refresh,
		Location:         time.UTC,
		Style:            config.DefaultStyle(),
	}

	w := widget.NewWidget(cfg, fetcher).WithClock(func() time.Time { return now })

	return host.NewHost(w, time.UTC, cronSpec)
}

func TestHost_InitialState(t *testing.T) {
	h := newHost(new(api.MockFetcher), time.Minute, "")

	assert.Equal(t, widgetmessages.MsgFetching, h.State().Warning)
	assert.Equal(t, 0, h.Updates())
}

func TestHost_PollAppliesOneUpdate(t *testing.T) {
	fetcher := new(api.MockFetcher)
	fetcher.On("FetchIssues", mock.Anything, "felixhageloh", "uebersicht").Return(rawIssues(), nil).Once()

	h := newHost(fetcher, time.Minute, "")

	h.Poll()

	assert.Equal(t, 1, h.Updates())

	state := h.State()
	assert.Empty(t, state.Warning)
	assert.Equal(t, []feedtypes.DisplayIssue{{Title: "A", Number: 1, URL: "u", User: "bob", Time: "yesterday"}},
		state.DisplayIssues)
	assert.Equal(t, "Oct 18, 2026, 9:5", state.LastChecked)
	fetcher.AssertExpectations(t)
}

func TestHost_FailureKeepsLastGoodRender(t *testing.T) {
	fetcher := new(api.MockFetcher)
	fetcher.On("FetchIssues", mock.Anything, "felixhageloh", "uebersicht").Return(rawIssues(), nil).Once()
	fetcher.On("FetchIssues", mock.Anything, "felixhageloh", "uebersicht").Return(nil, errors.New("boom")).Once()
	fetcher.On("FetchIssues", mock.Anything, "felixhageloh", "uebersicht").Return([]apitypes.RawIssue{}, nil).Once()

	h := newHost(fetcher, time.Minute, "")

	h.Poll()
	good := h.State()

	h.Poll()
	failed := h.State()
	assert.Equal(t, "boom", failed.Warning)
	assert.Equal(t, good.DisplayIssues, failed.DisplayIssues)
	assert.Equal(t, good.LastChecked, failed.LastChecked)

	h.Poll()
	empty := h.State()
	assert.Equal(t, widgetmessages.MsgNoData, empty.Warning)
	assert.Equal(t, good.DisplayIssues, empty.DisplayIssues)

	assert.Equal(t, 3, h.Updates())
}

func TestHost_DispatchAfterStopIsDropped(t *testing.T) {
	h := newHost(new(api.MockFetcher), time.Minute, "")

	h.Stop()
	h.Dispatch(feedtypes.Succeeded(rawIssues()))
	h.Poll()

	assert.Equal(t, 0, h.Updates())
	assert.Equal(t, widgetmessages.MsgFetching, h.State().Warning)
}

func TestHost_StopAbandonsInFlightFetch(t *testing.T) {
	entered := make(chan struct{})

	fetcher := new(api.MockFetcher)
	fetcher.On("FetchIssues", mock.Anything, "felixhageloh", "uebersicht").
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			close(entered)
			<-ctx.Done()
		}).
		Return(nil, context.Canceled).Once()

	h := newHost(fetcher, time.Minute, "")

	done := make(chan struct{})

	go func() {
		h.Poll()
		close(done)
	}()

	<-entered
	h.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poll did not return after Stop")
	}

	assert.Equal(t, 0, h.Updates())
	assert.Equal(t, widgetmessages.MsgFetching, h.State().Warning)
}

func TestHost_StartPollsOnInterval(t *testing.T) {
	fetcher := new(api.MockFetcher)
	fetcher.On("FetchIssues", mock.Anything, "felixhageloh", "uebersicht").Return(rawIssues(), nil)

	h := newHost(fetcher, 20*time.Millisecond, "")

	require.NoError(t, h.Start())
	defer h.Stop()

	assert.Eventually(t, func() bool {
		return h.Updates() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	assert.Empty(t, h.State().Warning)
}

func TestHost_StartWithCronPollsImmediately(t *testing.T) {
	fetcher := new(api.MockFetcher)
	fetcher.On("FetchIssues", mock.Anything, "felixhageloh", "uebersicht").Return(rawIssues(), nil)

	h := newHost(fetcher, time.Minute, "0 0 1 1 *")

	require.NoError(t, h.Start())
	defer h.Stop()

	assert.Eventually(t, func() bool {
		return h.Updates() >= 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHost_StartRejectsBadSchedule(t *testing.T) {
	type TestCase struct {
		name     string
		refresh  time.Duration
		cronSpec string
	}

	testCases := []TestCase{
		{name: "words instead of fields", refresh: time.Minute, cronSpec: "every tuesday"},
		{name: "minute out of range", refresh: time.Minute, cronSpec: "61 * * * *"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(tt *testing.T) {
			h := newHost(new(api.MockFetcher), testCase.refresh, testCase.cronSpec)

			err := h.Start()
			assert.ErrorIs(tt, err, e.ErrScheduler)
		})
	}
}
