package domain

import "errors"

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized indicates unauthorized access
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict indicates the resource already exists
	ErrConflict = errors.New("resource already exists")
	// ErrReplyInFlight indicates a reply is already being generated for
	// the conversation; the turn is rejected, never queued
	ErrReplyInFlight = errors.New("reply already in flight")
	// ErrStaleGeneration indicates the conversation was reset while a
	// reply was pending; the pending result must be discarded
	ErrStaleGeneration = errors.New("conversation generation changed")
)
