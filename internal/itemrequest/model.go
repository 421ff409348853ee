package itemrequest

import (
	"time"

	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(apperror.KindNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(apperror.KindValidation, "description must not be blank")
)

// ItemRequest is a "wanted" posting published by a user.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time

	// Items listed by other users in answer to this request.
	Items []ItemReply
}

// ItemReply is a short view of an item that references a request.
type ItemReply struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	RequestID   int64
	OwnerID     int64
}
