// errors/project_errors.go
package errors

import "errors"

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectConflict    = errors.New("project conflict")
	ErrInvalidProjectData = errors.New("invalid project data")
	ErrDatabaseOperation  = errors.New("database operation failed")
	ErrInternalServer     = errors.New("internal server error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidPagination  = errors.New("invalid pagination parameters")
)
