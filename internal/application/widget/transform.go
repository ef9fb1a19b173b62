package widget

import (
	"fmt"
	"go-gitissues/internal/domain/types/apitypes"
	"go-gitissues/internal/domain/types/feedtypes"
	"go-gitissues/internal/domain/widgetmessages"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// Transform builds the next state from a fetch event. previous is only read;
// on failure its issues and last-checked label carry over unchanged.
func Transform(event feedtypes.Event, previous feedtypes.FeedState, now time.Time) feedtypes.FeedState {
	if event.Type == feedtypes.FetchFailed || event.Err != nil {
		msg := "unknown error"
		if event.Err != nil {
			msg = event.Err.Error()
		}

		return feedtypes.FeedState{
			Warning:       msg,
			DisplayIssues: previous.DisplayIssues,
			LastChecked:   previous.LastChecked,
		}
	}

	if len(event.Data) == 0 {
		return feedtypes.FeedState{
			Warning:       widgetmessages.MsgNoData,
			DisplayIssues: previous.DisplayIssues,
			LastChecked:   previous.LastChecked,
		}
	}

	displayIssues := make([]feedtypes.DisplayIssue, 0, feedtypes.MaxDisplayIssues)

	for _, issue := range event.Data {
		if !issue.IsOpen() {
			continue
		}

		displayIssues = append(displayIssues, toDisplayIssue(issue, now))
		if len(displayIssues) == feedtypes.MaxDisplayIssues {
			break
		}
	}

	return feedtypes.FeedState{
		DisplayIssues: displayIssues,
		LastChecked:   FormatLastChecked(now),
	}
}

func toDisplayIssue(issue apitypes.RawIssue, now time.Time) feedtypes.DisplayIssue {
	display := feedtypes.DisplayIssue{
		Title:    issue.Title,
		Number:   issue.Number,
		URL:      issue.HTMLURL,
		User:     issue.User.Login,
		Time:     RelativeTime(issue.UpdatedAt, now),
		Comments: issue.Comments,
	}

	if len(issue.Labels) > 0 {
		display.Labels = make([]feedtypes.Label, len(issue.Labels))
		for i, l := range issue.Labels {
			display.Labels[i] = feedtypes.Label{Name: l.Name, Color: l.Color}
		}
	}

	return display
}

// RelativeTime buckets updated against now. The buckets are a flat 24 hours and
// 7 days, not calendar days: anything newer than a day, including timestamps in
// the future, is "yesterday".
func RelativeTime(updated, now time.Time) string {
	delta := now.Sub(updated)

	switch {
	case delta < day:
		return widgetmessages.MsgYesterday
	case delta < week:
		return widgetmessages.MsgLastWeek
	default:
		return "on " + updated.In(now.Location()).Format("Jan 2, 2006")
	}
}

// FormatLastChecked renders now as "Oct 18, 2026, 9:5": 24-hour clock, no
// leading zeros on hour or minute.
func FormatLastChecked(now time.Time) string {
	return fmt.Sprintf("%s, %d:%d", now.Format("Jan 2, 2006"), now.Hour(), now.Minute())
}
