package model

import "errors"

// Error taxonomy. Every error returned by the domain wraps one of these.
var (
	// ErrInvalidInput marks rejected arguments: non-positive lengths, bad fractions, a zero current length.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDocument marks open/parse failures and missing subtrees.
	ErrDocument = errors.New("document error")
	// ErrIO marks commit and write failures.
	ErrIO = errors.New("io error")
	// ErrDuplicateUID is returned when an identifier is minted twice in one document.
	ErrDuplicateUID = errors.New("duplicate uid")
	// ErrClosed is returned by a document handle used after Close.
	ErrClosed = errors.New("document closed")
)
