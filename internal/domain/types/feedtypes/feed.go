package feedtypes

import (
	"go-gitissues/internal/domain/types/apitypes"
	"go-gitissues/internal/domain/widgetmessages"
)

// MaxDisplayIssues caps FeedState.DisplayIssues.
const MaxDisplayIssues = 10

type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type DisplayIssue struct {
	Title    string  `json:"title"`
	Number   int     `json:"number"`
	URL      string  `json:"url"`
	User     string  `json:"user"`
	Time     string  `json:"time"`
	Comments int     `json:"comments,omitempty"`
	Labels   []Label `json:"labels,omitempty"`
}

// FeedState is replaced as a whole on every poll. Nothing mutates a FeedState
// after it has been returned.
type FeedState struct {
	Warning       string         `json:"warning"`
	DisplayIssues []DisplayIssue `json:"displayIssues"`
	LastChecked   string         `json:"lastChecked"`
}

func InitialState() FeedState {
	return FeedState{
		Warning:       widgetmessages.MsgFetching,
		DisplayIssues: []DisplayIssue{},
	}
}

type EventType uint8

const (
	FetchSucceeded EventType = iota
	FetchFailed
)

func (t EventType) String() string {
	switch t {
	case FetchSucceeded:
		return "FETCH_SUCCEEDED"
	case FetchFailed:
		return "FETCH_FAILED"
	default:
		return ""
	}
}

// Event is the result of one fetch, handed to the update step.
type Event struct {
	Type EventType
	Data []apitypes.RawIssue
	Err  error
}

func Succeeded(data []apitypes.RawIssue) Event {
	return Event{Type: FetchSucceeded, Data: data}
}

func Failed(err error) Event {
	return Event{Type: FetchFailed, Err: err}
}
