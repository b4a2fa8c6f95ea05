package catalog

import "fmt"

// NotFoundError indicates the posting catalog file is missing. This is fatal
// for a pipeline run: with no postings there is nothing to rank.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("posting catalog not found: %s", e.Path)
}

// ColumnError indicates a required catalog column is absent.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("posting catalog is missing required column %q", e.Column)
}
