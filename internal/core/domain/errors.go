package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks an expected dataset-shape condition that prevents a
	// computation, e.g. clustering with a single numeric feature. Callers check
	// it with errors.Is and render a "not enough data" state.
	ErrUnavailable = errors.New("computation unavailable")

	ErrColumnNotFound = errors.New("column not found")
	ErrNoDataset      = errors.New("no dataset loaded")
	ErrNoRecipients   = errors.New("no valid email recipients")
	ErrObjectNotFound = errors.New("object not found")
	ErrNoObjectStore  = errors.New("object store not configured")
	ErrInvalidInput   = errors.New("invalid input")
)

// IngestionError reports source data that cannot be read as a table at all.
type IngestionError struct {
	Source string
	Err    error
}

func (e *IngestionError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("ingestion failed: %v", e.Err)
	}
	return fmt.Sprintf("ingestion of %s failed: %v", e.Source, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// UnsupportedFormatError is returned by export for an unknown format name.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format: %q", e.Format)
}

// ExternalBackendError wraps a failure of a text-completion backend. It is
// recovered locally by the insight router and never shown to end users.
type ExternalBackendError struct {
	Backend string
	Err     error
}

func (e *ExternalBackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *ExternalBackendError) Unwrap() error { return e.Err }
