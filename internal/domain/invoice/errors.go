package invoice

import (
	"errors"
	"fmt"

	"buildledger/internal/domain/auth"
)

var (
	// ErrDeletionRequestRequired is returned when a non-admin tries to delete
	// an invoice directly instead of filing a deletion request.
	ErrDeletionRequestRequired = fmt.Errorf("invoice deletion requires an approved deletion request: %w", auth.ErrForbidden)

	ErrOverpayment = errors.New("payment exceeds the outstanding balance")
)
