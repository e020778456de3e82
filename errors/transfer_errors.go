// errors/transfer_errors.go
package errors

import "errors"

var (
	// ErrInvalidImportFormat marks a structurally incomplete or malformed
	// import payload. Nothing is persisted when it is returned.
	ErrInvalidImportFormat = errors.New("invalid import format")

	ErrUnsupportedFormat = errors.New("unsupported export format")
)
