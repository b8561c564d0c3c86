package repository

import (
	"fmt"

	"github.com/okian/placement/internal/domain/fault"
)

// Sentinel kinds for store errors.
var (
	ErrNotFound   = fmt.Errorf("record %w", fault.ErrNotFound)
	ErrEmptyKey   = fmt.Errorf("record key is empty: %w", fault.ErrValidation)
	ErrKeyChanged = fmt.Errorf("record key changed by update: %w", fault.ErrValidation)
)
