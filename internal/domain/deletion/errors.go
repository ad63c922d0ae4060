package deletion

import (
	"fmt"

	"buildledger/internal/domain/auth"
	"buildledger/internal/store"
)

var (
	ErrAlreadyReviewed  = fmt.Errorf("deletion request already reviewed: %w", store.ErrConflict)
	ErrDuplicatePending = fmt.Errorf("a pending deletion request already exists for this item: %w", store.ErrConflict)
	ErrNotOwner         = fmt.Errorf("only the creator may request deletion of this item: %w", auth.ErrForbidden)
	ErrAdminRequired    = fmt.Errorf("admin access required: %w", auth.ErrForbidden)
)
