package model

import "fmt"

// InvalidLocatorError is returned for blank or malformed input.
type InvalidLocatorError struct {
	Locator string
}

func (e *InvalidLocatorError) Error() string {
	return fmt.Sprintf("invalid locator %q", e.Locator)
}

// MetadataFetchError indicates that resolving a URL failed.
type MetadataFetchError struct {
	URL string
	Err error
}

func (e *MetadataFetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("error getting video info: %s", e.URL)
	}
	return fmt.Sprintf("error getting video info: %s: %v", e.URL, e.Err)
}

func (e *MetadataFetchError) Unwrap() error { return e.Err }

// SearchError indicates that the search provider failed for a keyword.
type SearchError struct {
	Keyword string
	Err     error
}

func (e *SearchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("error searching video info: %s", e.Keyword)
	}
	return fmt.Sprintf("error searching video info: %s: %v", e.Keyword, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// TranslationError is recovered inside the title formatter and never
// reaches the orchestrator.
type TranslationError struct {
	Lang string
	Err  error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translate title to %q: %v", e.Lang, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// StreamError is a transfer-layer failure.
type StreamError struct {
	Path string
	Err  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream %s: %v", e.Path, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }
