package itemrequest

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shareit/shareit-backend/internal/pkg/request"
	"github.com/shareit/shareit-backend/internal/user"
)

type users map[int64]bool

func (u users) GetByID(_ context.Context, id int64) (*user.User, error) {
	if !u[id] {
		return nil, user.ErrNotFound
	}
	return &user.User{ID: id}, nil
}

type memRepo struct {
	mu       sync.Mutex
	nextID   atomic.Int64
	requests []*ItemRequest
	items    []ItemReply
	calls    int
}

func (r *memRepo) Create(_ context.Context, ir *ItemRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ir.ID = r.nextID.Add(1)
	cp := *ir
	r.requests = append(r.requests, &cp)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ir := range r.requests {
		if ir.ID == id {
			cp := *ir
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) filter(keep func(*ItemRequest) bool) []*ItemRequest {
	var out []*ItemRequest
	for _, ir := range r.requests {
		if keep(ir) {
			cp := *ir
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.After(out[j].Created) })
	return out
}

func (r *memRepo) ListByRequester(_ context.Context, requesterID int64) ([]*ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(ir *ItemRequest) bool { return ir.RequesterID == requesterID }), nil
}

func (r *memRepo) ListExcludingRequester(_ context.Context, requesterID int64, limit, offset int) ([]*ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.filter(func(ir *ItemRequest) bool { return ir.RequesterID != requesterID })
	if offset >= len(all) {
		return nil, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (r *memRepo) ItemsForRequests(_ context.Context, ids []int64) (map[int64][]ItemReply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := map[int64][]ItemReply{}
	for _, id := range ids {
		for _, it := range r.items {
			if it.RequestID == id {
				out[id] = append(out[id], it)
			}
		}
	}
	return out, nil
}

func newTestService(repo *memRepo, known users) *service {
	svc := NewService(repo, known, zap.NewNop()).(*service)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func TestCreateValidates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&memRepo{}, users{1: true})

	_, err := svc.Create(ctx, 1, "   ")
	assert.ErrorIs(t, err, ErrDescriptionRequired)

	_, err = svc.Create(ctx, 99, "need a ladder")
	assert.ErrorIs(t, err, user.ErrNotFound)

	ir, err := svc.Create(ctx, 1, " need a ladder ")
	require.NoError(t, err)
	assert.Equal(t, "need a ladder", ir.Description)
	assert.Equal(t, int64(1), ir.RequesterID)
	assert.False(t, ir.Created.IsZero())
}

func TestListOwnAndOthers(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	svc := newTestService(repo, users{1: true, 2: true})

	first, _ := svc.Create(ctx, 1, "ladder")
	second, _ := svc.Create(ctx, 1, "drill")
	other, _ := svc.Create(ctx, 2, "tent")
	repo.items = []ItemReply{{ID: 10, Name: "Ladder", RequestID: first.ID, OwnerID: 2}}

	own, err := svc.ListOwn(ctx, 1)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, second.ID, own[0].ID, "newest first")
	assert.Equal(t, first.ID, own[1].ID)
	require.Len(t, own[1].Items, 1)
	assert.Equal(t, int64(10), own[1].Items[0].ID)

	others, err := svc.ListOthers(ctx, 1, request.NewPage(0, 10))
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, other.ID, others[0].ID)

	_, err = svc.ListOthers(ctx, 1, request.NewPage(-1, 10))
	assert.ErrorIs(t, err, request.ErrNegativeFrom)
}

func TestGetByIDVisibleToAnyUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&memRepo{}, users{1: true, 2: true})

	ir, err := svc.Create(ctx, 1, "ladder")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, 2, ir.ID)
	require.NoError(t, err)
	assert.Equal(t, ir.ID, got.ID)
	assert.Empty(t, got.Items)

	_, err = svc.GetByID(ctx, 2, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(ctx, 3, ir.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)

	assert.NoError(t, svc.Exists(ctx, ir.ID))
	assert.ErrorIs(t, svc.Exists(ctx, 404), ErrNotFound)
}

func TestEmptyListSkipsItemLookup(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo, users{1: true})

	list, err := svc.ListOwn(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, repo.calls)
}
