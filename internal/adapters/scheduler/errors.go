package scheduler

import "errors"

var (
	// ErrNilLister is returned when no appointment source is given.
	ErrNilLister = errors.New("scheduler: appointment lister is nil")
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("scheduler: already started")
)
