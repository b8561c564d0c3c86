package service

import (
	"errors"
	"fmt"

	"github.com/okian/placement/internal/domain/fault"
)

var (
	// ErrNilSource is returned by New without a data source.
	ErrNilSource = errors.New("service: data source is nil")
	// ErrStopped is returned by Start after Stop.
	ErrStopped = errors.New("service: cannot restart a stopped service")

	errNotFailed    = fmt.Errorf("message is not in a failed state: %w", fault.ErrValidation)
	errStillSending = fmt.Errorf("message is still being sent: %w", fault.ErrValidation)
)
