// errors/catalog_errors.go
package errors

import "errors"

var (
	// ErrMalformedDecisionTree indicates a catalog authoring bug (dangling
	// edge or cycle). It is fatal at load time and never user-recoverable.
	ErrMalformedDecisionTree = errors.New("malformed decision tree")

	ErrTreeNotFound     = errors.New("decision tree not found")
	ErrTestCaseNotFound = errors.New("test case not found")
)
