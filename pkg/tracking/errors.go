package tracking

import "fmt"

// ValidationError reports missing or malformed required input. Handlers map
// it to 422.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an absent referenced entity or absent tracking data.
// Handlers map it to 404. Subject identifies what was missing so callers
// never have to parse the message.
type NotFoundError struct {
	Subject string
	Message string
}

func (e NotFoundError) Error() string {
	return e.Message
}

// StoreError reports an I/O failure against the backing store, including
// cancelled or timed-out queries. It is never conflated with "no data".
type StoreError struct {
	Operation string
	Err       error
}

func (e StoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Err)
}

func (e StoreError) Unwrap() error {
	return e.Err
}

func newTrackingNotFound() NotFoundError {
	return NotFoundError{Subject: "tracking", Message: "No tracking data available"}
}
