package item

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shareit/shareit-backend/internal/pkg/request"
	"github.com/shareit/shareit-backend/internal/user"
)

type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

type RequestChecker interface {
	Exists(ctx context.Context, requestID int64) error
}

type Service interface {
	Create(ctx context.Context, userID int64, req CreateItemRequest) (*Item, error)
	Update(ctx context.Context, userID, itemID int64, req UpdateItemRequest) (*Item, error)

	// GetByID returns the stored item without view enrichment.
	GetByID(ctx context.Context, itemID int64) (*Item, error)
	// GetView returns the item with comments, plus last/next approved bookings when userID owns it.
	GetView(ctx context.Context, userID, itemID int64) (*Item, error)

	ListByOwner(ctx context.Context, userID int64, page request.PageParams) ([]*Item, error)
	Search(ctx context.Context, userID int64, text string, page request.PageParams) ([]*Item, error)
	Delete(ctx context.Context, userID, itemID int64) error
	AddComment(ctx context.Context, userID, itemID int64, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	users    UserGetter
	requests RequestChecker
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, users UserGetter, requests RequestChecker, log *zap.Logger) Service {
	return &service{
		repo:     repo,
		users:    users,
		requests: requests,
		log:      log.Named("item"),
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID int64, req CreateItemRequest) (*Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if err := s.requests.Exists(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	it := &Item{
		Name:        name,
		Description: description,
		Available:   req.Available,
		OwnerID:     userID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.log.Info("item created", zap.Int64("item_id", it.ID), zap.Int64("owner_id", userID))
	return it, nil
}

func (s *service) Update(ctx context.Context, userID, itemID int64, req UpdateItemRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	it, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			it.Name = name
		}
	}
	if req.Description != nil {
		if description := strings.TrimSpace(*req.Description); description != "" {
			it.Description = description
		}
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, itemID int64) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

func (s *service) GetView(ctx context.Context, userID, itemID int64) (*Item, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.enrich(ctx, userID, []*Item{it}); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) ListByOwner(ctx context.Context, userID int64, page request.PageParams) ([]*Item, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) Search(ctx context.Context, userID int64, text string, page request.PageParams) ([]*Item, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return []*Item{}, nil
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.repo.Search(ctx, text, page.Limit(), page.Offset())
}

func (s *service) Delete(ctx context.Context, userID, itemID int64) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}

	s.log.Info("item deleted", zap.Int64("item_id", itemID), zap.Int64("owner_id", userID))
	return nil
}

func (s *service) AddComment(ctx context.Context, userID, itemID int64, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ok, err := s.repo.HasFinishedBooking(ctx, itemID, userID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCommentNotAllowed.Withf("user %d has no finished booking of item %d", userID, itemID)
	}

	cm := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.repo.CreateComment(ctx, cm); err != nil {
		return nil, err
	}

	s.log.Info("comment added",
		zap.Int64("comment_id", cm.ID),
		zap.Int64("item_id", itemID),
		zap.Int64("author_id", userID),
	)
	return cm, nil
}

func (s *service) ownedItem(ctx context.Context, userID, itemID int64) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != userID {
		return nil, ErrNotOwner.Withf("user %d does not own item %d", userID, itemID)
	}
	return it, nil
}

// enrich attaches comments to every item and last/next bookings to the items viewerID owns.
func (s *service) enrich(ctx context.Context, viewerID int64, items []*Item) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, len(items))
	var owned []int64
	for i, it := range items {
		ids[i] = it.ID
		if it.OwnerID == viewerID {
			owned = append(owned, it.ID)
		}
	}

	comments, err := s.repo.Comments(ctx, ids)
	if err != nil {
		return err
	}

	var slots map[int64][]BookingSlot
	if len(owned) > 0 {
		slots, err = s.repo.ApprovedBookings(ctx, owned)
		if err != nil {
			return err
		}
	}

	now := s.now()
	for _, it := range items {
		it.Comments = comments[it.ID]
		if it.OwnerID == viewerID {
			it.LastBooking, it.NextBooking = LastAndNext(slots[it.ID], now)
		}
	}
	return nil
}
