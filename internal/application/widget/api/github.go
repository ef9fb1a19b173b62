package api

import (
	"context"
	"fmt"
	"go-gitissues/internal/domain/types/apitypes"
	"go-gitissues/lib/e"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
)

type IssuesFetcher interface {
	FetchIssues(ctx context.Context, owner, repo string) ([]apitypes.RawIssue, error)
}

// GithubFetcher lists the first page of a repository's issues without
// authentication.
type GithubFetcher struct {
	client *github.Client
}

func NewGithubFetcher(httpClient *http.Client, baseURL string) (*GithubFetcher, error) {
	client := github.NewClient(httpClient)

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}

		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, e.Wrap("invalid GitHub API URL", err)
		}

		client.BaseURL = u
	}

	return &GithubFetcher{client: client}, nil
}

func (f *GithubFetcher) IssuesURL(owner, repo string) string {
	return fmt.Sprintf("%srepos/%s/%s/issues", f.client.BaseURL, owner, repo)
}

func (f *GithubFetcher) FetchIssues(ctx context.Context, owner, repo string) ([]apitypes.RawIssue, error) {
	urlString := f.IssuesURL(owner, repo)

	issues, resp, err := f.client.Issues.ListByRepo(ctx, owner, repo, nil)
	if err != nil {
		fetchErr := classify(urlString, resp, err)

		slog.Error(
			e.ErrDoRequest.Error(),
			slog.String("error", err.Error()),
			slog.String("function", "FetchIssues"),
			slog.String("method", http.MethodGet),
			slog.String("url", urlString),
			slog.Int("status code", fetchErr.StatusCode),
		)

		return nil, fetchErr
	}

	result := ConvertIssues(issues)

	slog.Info("Get Github issues",
		slog.String("url", urlString),
		slog.Int("Number of Github issues", len(result)))

	return result, nil
}

func classify(urlString string, resp *github.Response, err error) *e.FetchError {
	if resp == nil || resp.Response == nil {
		return &e.FetchError{URL: urlString, Err: fmt.Errorf("%w: %v", e.ErrDoRequest, err)}
	}

	code := resp.StatusCode
	if code < 200 || code > 299 {
		return &e.FetchError{
			URL:        urlString,
			StatusCode: code,
			Err:        fmt.Errorf("%w: %s", e.ErrAPI, http.StatusText(code)),
		}
	}

	return &e.FetchError{URL: urlString, Err: fmt.Errorf("%w: %v", e.ErrDecodeJSONBody, err)}
}

func ConvertIssues(issues []*github.Issue) []apitypes.RawIssue {
	if len(issues) == 0 {
		return nil
	}

	result := make([]apitypes.RawIssue, 0, len(issues))

	for _, gh := range issues {
		if gh == nil {
			continue
		}

		result = append(result, convertIssue(gh))
	}

	return result
}

func convertIssue(gh *github.Issue) apitypes.RawIssue {
	issue := apitypes.RawIssue{
		Number:   gh.GetNumber(),
		Title:    gh.GetTitle(),
		HTMLURL:  gh.GetHTMLURL(),
		State:    gh.GetState(),
		Comments: gh.GetComments(),
	}

	if gh.User != nil {
		issue.User.Login = gh.User.GetLogin()
	}

	if gh.UpdatedAt != nil {
		issue.UpdatedAt = gh.UpdatedAt.Time
	}

	for _, label := range gh.Labels {
		if label == nil {
			continue
		}

		issue.Labels = append(issue.Labels, apitypes.RawLabel{
			Name:  label.GetName(),
			Color: label.GetColor(),
		})
	}

	return issue
}
