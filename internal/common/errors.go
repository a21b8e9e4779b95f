// Package common defines shared sentinel errors used across the cache
// subsystem. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrNotFound indicates the requested record is not in the local store.
	ErrNotFound = errors.New("not found")

	// ErrInvalidAnalysis indicates an upstream analysis payload failed
	// schema validation at ingestion.
	ErrInvalidAnalysis = errors.New("invalid analysis payload")

	// ErrStoreClosed indicates an operation was attempted after Close.
	ErrStoreClosed = errors.New("store closed")
)
