package settings

import (
	"fmt"

	"buildledger/internal/domain/auth"
)

var ErrAdminRequired = fmt.Errorf("only admins may change company settings: %w", auth.ErrForbidden)
