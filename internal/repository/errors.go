package repository

import "errors"

var (
	// ErrRemoteQuery indicates a whole fetch failed at the transport layer.
	ErrRemoteQuery = errors.New("remote query failed")

	// ErrRemoteWrite indicates a single save or delete was rejected.
	ErrRemoteWrite = errors.New("remote write failed")
)
