// Package validation turns a form state into a submission verdict. Invalid
// input never yields a Go error from Validate; the Result carries the reason
// and Result.Err maps it onto ErrMissingRequiredField or
// ErrInvalidEmailFormat for callers that prefer errors.Is.
package validation
