package section

import (
	"errors"
	"fmt"
	"strings"
)

// FetchError reports a document that could not be retrieved: either the
// transport failed or the response status was not successful.
type FetchError struct {
	Section    Name
	Source     string
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("http error: status %d for %s", e.StatusCode, e.Source)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("fetch %s failed", e.Source)
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError reports a document body that could not be decoded as JSON.
type ParseError struct {
	Section Name
	Source  string
	Err     error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invalid JSON in %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RenderError reports a failure while turning a loaded document into page
// fragments.
type RenderError struct {
	Section Name
	Err     error
}

func (e *RenderError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("render %s: %v", e.Section, e.Err)
}

func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MissingSectionsError reports sections that are absent (or null) from the
// aggregate after every fetch succeeded.
type MissingSectionsError struct {
	Missing []Name
}

func (e *MissingSectionsError) Error() string {
	if e == nil {
		return "<nil>"
	}
	names := make([]string, 0, len(e.Missing))
	for _, name := range e.Missing {
		names = append(names, string(name))
	}
	return "missing essential data: " + strings.Join(names, ", ")
}

// IsLoadError reports whether err is a fetch or parse failure. Load errors are
// fatal and replace the whole page.
func IsLoadError(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return true
	}
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// SourceOf returns the source location named by a load error, or "" when err
// is not a load error.
func SourceOf(err error) string {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Source
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Source
	}
	return ""
}
