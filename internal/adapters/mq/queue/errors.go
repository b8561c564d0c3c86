package queue

import (
	"errors"
	"fmt"

	"github.com/okian/placement/internal/domain/fault"
)

// Sentinel kinds for enqueue failures. Both are reported to callers as
// operation failures so they can retry.
var (
	ErrFull   = fmt.Errorf("queue full: %w", fault.ErrOperationFailed)
	ErrClosed = errors.New("queue closed")
)
