package booking

import (
	"strings"
	"time"

	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(apperror.KindNotFound, "booking not found")
	ErrOwnItem       = apperror.New(apperror.KindNotFound, "item not found")
	ErrNotAvailable  = apperror.New(apperror.KindNotAvailable, "booking is not available")
	ErrNotOwner      = apperror.New(apperror.KindAccessDenied, "only the item owner can approve or reject a booking")
	ErrAccessDenied  = apperror.New(apperror.KindAccessDenied, "booking is visible only to its booker and the item owner")
	ErrInvalidWindow = apperror.New(apperror.KindValidation, "booking start must be before its end")
	ErrUnknownState  = apperror.New(apperror.KindValidation, "Unknown state: UNSUPPORTED_STATUS")

	// Both are NotAvailable failures; errors.Is(err, ErrNotAvailable) holds for each.
	ErrItemUnavailable = &apperror.AppError{Kind: apperror.KindNotAvailable, Message: "item is not available for booking", Err: ErrNotAvailable}
	ErrAlreadyApproved = &apperror.AppError{Kind: apperror.KindConflict, Message: "booking is already approved", Err: ErrNotAvailable}
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// State partitions booking listings by time window or status.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

type Booking struct {
	ID     int64
	Start  time.Time
	End    time.Time
	Status Status

	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
}

type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// Filter selects bookings for one side of the relationship.
// Exactly one of BookerID and OwnerID is set.
type Filter struct {
	BookerID int64
	OwnerID  int64
	State    State
	Now      time.Time
	Limit    int
	Offset   int
}

// ParseState accepts a state name in any letter case. Empty means ALL.
func ParseState(s string) (State, error) {
	if strings.TrimSpace(s) == "" {
		return StateAll, nil
	}
	switch st := State(strings.ToUpper(strings.TrimSpace(s))); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	default:
		return "", ErrUnknownState
	}
}

// ValidateWindow requires start strictly before end.
func ValidateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidWindow
	}
	return nil
}

// Transition returns the status an owner decision leads to.
// Approving an already approved booking is the only rejected edge.
func Transition(current Status, approved bool) (Status, error) {
	if !approved {
		return StatusRejected, nil
	}
	if current == StatusApproved {
		return "", ErrAlreadyApproved
	}
	return StatusApproved, nil
}

// Includes reports whether b falls into the state at the given instant.
func (s State) Includes(b *Booking, now time.Time) bool {
	switch s {
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateCurrent:
		return b.Start.Before(now) && b.End.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return true
	}
}
