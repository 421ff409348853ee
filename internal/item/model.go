package item

import (
	"time"

	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(apperror.KindNotFound, "item not found")
	ErrNotOwner            = apperror.New(apperror.KindAccessDenied, "only the owner can modify this item")
	ErrCommentNotAllowed   = apperror.New(apperror.KindNotAvailable, "only users who have finished a booking of this item can comment on it")
	ErrNameRequired        = apperror.New(apperror.KindValidation, "name must not be blank")
	ErrDescriptionRequired = apperror.New(apperror.KindValidation, "description must not be blank")
	ErrTextRequired        = apperror.New(apperror.KindValidation, "comment text must not be blank")
)

// Item is a thing a user lists for rent.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64

	// Filled only for views.
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []Comment
}

// BookingRef is the short booking summary attached to an owner's item view.
type BookingRef struct {
	ID       int64
	BookerID int64
}

// BookingSlot is an approved booking of an item as seen by the item views.
type BookingSlot struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

type CreateItemRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// UpdateItemRequest carries a partial update. Nil fields and blank strings are left unchanged.
type UpdateItemRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// LastAndNext picks, among approved bookings, the one with the latest start before now
// and the one with the earliest start after now. Either may be nil.
func LastAndNext(approved []BookingSlot, now time.Time) (last, next *BookingRef) {
	var lastStart, nextStart time.Time
	for _, b := range approved {
		switch {
		case b.Start.Before(now):
			if last == nil || b.Start.After(lastStart) {
				last = &BookingRef{ID: b.ID, BookerID: b.BookerID}
				lastStart = b.Start
			}
		case b.Start.After(now):
			if next == nil || b.Start.Before(nextStart) {
				next = &BookingRef{ID: b.ID, BookerID: b.BookerID}
				nextStart = b.Start
			}
		}
	}
	return last, next
}
