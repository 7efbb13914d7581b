package service

import "errors"

var (
	// ErrEmptyText is returned when a turn carries no text.
	ErrEmptyText = errors.New("message text is empty")
	// ErrDuplicateMessage is returned when a message id was already applied to the session.
	ErrDuplicateMessage = errors.New("duplicate message")
	// ErrNotStarted is returned when an operation runs before Start.
	ErrNotStarted = errors.New("service not started")
)
