package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// RemoteWriteError reports a failed insert or delete against the data API.
// StatusCode is the upstream HTTP status, or 0 when the request never got
// an answer (transport failure, timeout, database error).
type RemoteWriteError struct {
	Op         string
	Collection Collection
	StatusCode int
	Code       string
	Message    string
	Timeout    bool
	Err        error
}

func (e *RemoteWriteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Collection, e.Message)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }

// RemoteUploadError reports a failed object upload.
type RemoteUploadError struct {
	Bucket     string
	ObjectKey  string
	StatusCode int
	Message    string
	Timeout    bool
	Err        error
}

func (e *RemoteUploadError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("Storage upload failed: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("Storage upload failed: %s", e.Message)
}

func (e *RemoteUploadError) Unwrap() error { return e.Err }

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
