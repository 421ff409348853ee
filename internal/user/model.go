package user

import (
	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(apperror.KindNotFound, "user not found")
	ErrEmailAlreadyUsed = apperror.New(apperror.KindConflict, "email already used")
	ErrEmailRequired    = apperror.New(apperror.KindValidation, "email is required")
	ErrNameRequired     = apperror.New(apperror.KindValidation, "name is required")
)

// User represents a user in the system.
type User struct {
	ID    int64
	Name  string
	Email string
}

// UpdateUserRequest carries a partial update. Nil or blank fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string
	Email *string
}
