package vectorstore

import "errors"

var (
	// ErrWriteFailed indicates an upsert or namespace deletion failed.
	ErrWriteFailed = errors.New("vector store write failed")

	// ErrQueryFailed indicates a similarity query or namespace listing failed.
	ErrQueryFailed = errors.New("vector store query failed")

	// ErrDimensionMismatch indicates a vector's dimension does not match the
	// namespace's existing records.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
