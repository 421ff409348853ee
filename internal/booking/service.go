package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/pkg/request"
	"github.com/shareit/shareit-backend/internal/user"
)

type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

type ItemGetter interface {
	GetByID(ctx context.Context, itemID int64) (*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, userID int64, req CreateRequest) (*Booking, error)
	Approve(ctx context.Context, userID, bookingID int64, approved bool) (*Booking, error)
	GetByID(ctx context.Context, userID, bookingID int64) (*Booking, error)

	// ListForBooker lists the caller's own bookings; ListForOwner lists bookings of the caller's items.
	ListForBooker(ctx context.Context, userID int64, state string, page request.PageParams) ([]*Booking, error)
	ListForOwner(ctx context.Context, userID int64, state string, page request.PageParams) ([]*Booking, error)
}

type service struct {
	repo  Repository
	users UserGetter
	items ItemGetter
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo Repository, users UserGetter, items ItemGetter, log *zap.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		log:   log.Named("booking"),
		now:   time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID int64, req CreateRequest) (*Booking, error) {
	if err := ValidateWindow(req.Start, req.End); err != nil {
		return nil, err
	}

	booker, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	// Owners are told the item does not exist rather than that they cannot book it.
	if it.OwnerID == userID {
		return nil, ErrOwnItem.Withf("item with id %d not found", it.ID)
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}

	b := &Booking{
		Start:       req.Start.UTC(),
		End:         req.End.UTC(),
		Status:      StatusWaiting,
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("item_id", b.ItemID),
		zap.Int64("booker_id", b.BookerID),
	)
	return b, nil
}

func (s *service) Approve(ctx context.Context, userID, bookingID int64, approved bool) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != userID {
		return nil, ErrNotOwner.Withf("user %d does not own the item of booking %d", userID, bookingID)
	}

	next, err := Transition(b.Status, approved)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, b.ID, next); err != nil {
		return nil, err
	}

	s.log.Info("booking decided",
		zap.Int64("booking_id", b.ID),
		zap.String("from", string(b.Status)),
		zap.String("to", string(next)),
	)
	b.Status = next
	return b, nil
}

func (s *service) GetByID(ctx context.Context, userID, bookingID int64) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != userID && b.ItemOwnerID != userID {
		return nil, ErrAccessDenied
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, userID int64, state string, page request.PageParams) ([]*Booking, error) {
	return s.list(ctx, userID, state, page, func(f *Filter) { f.BookerID = userID })
}

func (s *service) ListForOwner(ctx context.Context, userID int64, state string, page request.PageParams) ([]*Booking, error) {
	return s.list(ctx, userID, state, page, func(f *Filter) { f.OwnerID = userID })
}

func (s *service) list(ctx context.Context, userID int64, rawState string, page request.PageParams, scope func(*Filter)) ([]*Booking, error) {
	state, err := ParseState(rawState)
	if err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	filter := Filter{
		State:  state,
		Now:    s.now().UTC(),
		Limit:  page.Limit(),
		Offset: page.Offset(),
	}
	scope(&filter)

	return s.repo.List(ctx, filter)
}
