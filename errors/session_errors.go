// errors/session_errors.go
package errors

import "errors"

var (
	ErrSessionNotFound  = errors.New("assessment session not found")
	ErrSessionCompleted = errors.New("assessment session already completed")
	ErrEmptyAssetList   = errors.New("asset list is empty")
	ErrAssetListFrozen  = errors.New("asset list is frozen once assessment has started")
	ErrDuplicateAsset   = errors.New("asset id already registered in session")
	ErrAssetNotFound    = errors.New("asset not found in session")
	ErrEmptyAggregation = errors.New("cannot aggregate empty result set")
)
