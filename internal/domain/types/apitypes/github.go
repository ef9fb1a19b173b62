package apitypes

import "time"

const StateOpen = "open"

type RawLabel struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type RawUser struct {
	Login string `json:"login"`
}

// RawIssue is the part of a GitHub issues API record the widget reads.
type RawIssue struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	HTMLURL   string     `json:"html_url"`
	State     string     `json:"state"`
	UpdatedAt time.Time  `json:"updated_at"`
	User      RawUser    `json:"user"`
	Comments  int        `json:"comments"`
	Labels    []RawLabel `json:"labels"`
}

func (i RawIssue) IsOpen() bool {
	return i.State == StateOpen
}
