package itemrequest

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shareit/shareit-backend/internal/pkg/request"
	"github.com/shareit/shareit-backend/internal/user"
)

// UserGetter is the part of the user service needed to check that a caller exists.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, userID int64, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, userID int64) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, userID int64, page request.PageParams) ([]*ItemRequest, error)
	GetByID(ctx context.Context, userID, requestID int64) (*ItemRequest, error)

	// Exists reports ErrNotFound when no request has the given id.
	Exists(ctx context.Context, requestID int64) error
}

type service struct {
	repo  Repository
	users UserGetter
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo Repository, users UserGetter, log *zap.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		log:   log.Named("itemrequest"),
		now:   time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID int64, description string) (*ItemRequest, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return nil, ErrDescriptionRequired
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	ir := &ItemRequest{
		Description: desc,
		RequesterID: userID,
		Created:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, ir); err != nil {
		return nil, err
	}

	s.log.Info("item request created", zap.Int64("request_id", ir.ID), zap.Int64("user_id", userID))
	return ir, nil
}

func (s *service) ListOwn(ctx context.Context, userID int64) ([]*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, list)
}

func (s *service) ListOthers(ctx context.Context, userID int64, page request.PageParams) ([]*ItemRequest, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListExcludingRequester(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, list)
}

func (s *service) GetByID(ctx context.Context, userID, requestID int64) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	ir, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	list, err := s.attachItems(ctx, []*ItemRequest{ir})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (s *service) Exists(ctx context.Context, requestID int64) error {
	_, err := s.repo.GetByID(ctx, requestID)
	return err
}

func (s *service) attachItems(ctx context.Context, list []*ItemRequest) ([]*ItemRequest, error) {
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]int64, len(list))
	for i, ir := range list {
		ids[i] = ir.ID
	}

	items, err := s.repo.ItemsForRequests(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, ir := range list {
		ir.Items = items[ir.ID]
	}
	return list, nil
}
