package provisioning

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal bootstrap error.
type Kind string

const (
	// KindDirectory means a required path is not a directory or could not be created.
	KindDirectory Kind = "directory"
	// KindTransportUnavailable means no configured transport exists on this host.
	KindTransportUnavailable Kind = "transport-unavailable"
	// KindDownload means the selected transport failed to fetch an artifact.
	KindDownload Kind = "download"
)

// FatalError aborts the run. No retry and no rollback follow it.
type FatalError struct {
	Kind Kind
	// Path is the directory or artifact destination involved, if any.
	Path string
	Err  error
}

func (e *FatalError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal wraps err as a FatalError of the given kind.
func Fatal(kind Kind, path string, err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Kind: kind, Path: path, Err: err}
}

// IsFatal checks if an error is a FatalError.
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}

// FatalKind returns the kind of the FatalError in err's chain.
func FatalKind(err error) (Kind, bool) {
	var fatalErr *FatalError
	if errors.As(err, &fatalErr) {
		return fatalErr.Kind, true
	}
	return "", false
}

// Warning is a recoverable condition. Warnings are collected in State and
// reported, never raised.
type Warning struct {
	Source  string `json:"source"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s: %s", w.Source, w.Subject, w.Message)
}
