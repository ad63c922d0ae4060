package quotation

import (
	"fmt"

	"buildledger/internal/domain/auth"
)

// ErrDeletionRequestRequired is returned when a non-admin tries to delete a
// quotation directly instead of filing a deletion request.
var ErrDeletionRequestRequired = fmt.Errorf("quotation deletion requires an approved deletion request: %w", auth.ErrForbidden)
