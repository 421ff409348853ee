package user

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

type memRepo struct {
	mu     sync.Mutex
	nextID atomic.Int64
	users  map[int64]User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[int64]User)}
}

func (r *memRepo) emailTaken(email string, except int64) bool {
	for id, u := range r.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memRepo) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(u.Email, 0) {
		return ErrEmailAlreadyUsed
	}
	u.ID = r.nextID.Add(1)
	r.users[u.ID] = *u
	return nil
}

func (r *memRepo) List(_ context.Context) ([]*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*User
	for id := int64(1); id <= r.nextID.Load(); id++ {
		if u, ok := r.users[id]; ok {
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return ErrEmailAlreadyUsed
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func ptr(s string) *string { return &s }

func TestCreateNormalizesAndEnforcesUniqueEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), zap.NewNop())

	u, err := svc.Create(ctx, "  Alice ", " Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)

	_, err = svc.Create(ctx, "Other", "alice@example.com")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = svc.Create(ctx, "   ", "b@example.com")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestUpdateIgnoresBlankFields(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), zap.NewNop())

	u, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, u.ID, UpdateUserRequest{Name: ptr("  "), Email: ptr("new@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)

	updated, err = svc.Update(ctx, u.ID, UpdateUserRequest{Name: ptr("Alicia")})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestUpdateRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), zap.NewNop())

	_, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	bob, err := svc.Create(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob.ID, UpdateUserRequest{Email: ptr("ALICE@example.com")})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestMissingUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), zap.NewNop())

	_, err := svc.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, 42, UpdateUserRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 42), ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), zap.NewNop())

	a, _ := svc.Create(ctx, "Alice", "alice@example.com")
	b, _ := svc.Create(ctx, "Bob", "bob@example.com")

	require.NoError(t, svc.Delete(ctx, a.ID))

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, b.ID, users[0].ID)
}
