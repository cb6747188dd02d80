package mdnewline

import "errors"

// Sentinel errors for the streaming API. Process itself never fails.
var (
	// ErrReadFailed indicates the input reader returned an error.
	ErrReadFailed = errors.New("mdnewline: read failed")

	// ErrWriteFailed indicates the output writer returned an error.
	ErrWriteFailed = errors.New("mdnewline: write failed")
)
