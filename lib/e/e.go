package e

import (
	"errors"
	"fmt"
)

var (
	ErrOpenFile   = errors.New("error opening file")
	ErrNoValInEnv = errors.New("value is not specified in env")
	ErrParseEnv   = errors.New("error parsing env value")
	ErrReadStyle  = errors.New("error reading widget style file")

	ErrMakeRequest = errors.New("error making request")
	ErrDoRequest   = errors.New("error doing request")
	ErrAPI         = errors.New("API returned error")

	ErrDecodeJSONBody = errors.New("error decoding json body")
	ErrEncodeToJSON   = errors.New("error encoding json")

	ErrInvalidRepo = errors.New("repository must have the form owner/name")
	ErrEmptyData   = errors.New("API returned no data")

	ErrRender       = errors.New("render error")
	ErrServerFailed = errors.New("server failed")
	ErrScheduler    = errors.New("scheduler error")
)

func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

func WrapIfErr(msg string, err error) error {
	if err == nil {
		return nil
	}

	return Wrap(msg, err)
}

// FetchError is returned for every failed issues request. Its message is shown to the
// user as is, so it names the request and the cause but nothing else.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (f *FetchError) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("fetching %s failed with status %d: %v", f.URL, f.StatusCode, f.Err)
	}

	return fmt.Sprintf("fetching %s failed: %v", f.URL, f.Err)
}

func (f *FetchError) Unwrap() error {
	return f.Err
}
