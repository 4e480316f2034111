package entity

import "errors"

// Sentinel errors for content reads.
var (
	// ErrNotFound indicates that a requested slug has no backing resource
	ErrNotFound = errors.New("content not found")

	// ErrContentTypeRequired indicates a snapshot list read without the
	// mandatory content type filter. Snapshots are partitioned by type,
	// so the read cannot be served. Not recoverable by retry.
	ErrContentTypeRequired = errors.New("content type is required in snapshot mode")

	// ErrResourceUnavailable indicates the backend does not expose the
	// requested resource at all (e.g. an older CMS deployment without the
	// public-documents endpoint).
	ErrResourceUnavailable = errors.New("resource unavailable")
)
