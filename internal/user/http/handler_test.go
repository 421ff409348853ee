package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit/shareit-backend/internal/pkg/validate"
	"github.com/shareit/shareit-backend/internal/user"
	userHttp "github.com/shareit/shareit-backend/internal/user/http"
)

// stubService answers from a fixed set of users and records the last update.
type stubService struct {
	users      map[int64]*user.User
	lastUpdate user.UpdateUserRequest
}

func (s *stubService) Create(_ context.Context, name, email string) (*user.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return nil, user.ErrEmailAlreadyUsed
		}
	}
	u := &user.User{ID: int64(len(s.users) + 1), Name: name, Email: email}
	s.users[u.ID] = u
	return u, nil
}

func (s *stubService) GetByID(_ context.Context, id int64) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (s *stubService) List(_ context.Context) ([]*user.User, error) {
	var out []*user.User
	for id := int64(1); id <= int64(len(s.users)); id++ {
		out = append(out, s.users[id])
	}
	return out, nil
}

func (s *stubService) Update(ctx context.Context, id int64, req user.UpdateUserRequest) (*user.User, error) {
	s.lastUpdate = req
	return s.GetByID(ctx, id)
}

func (s *stubService) Delete(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func setupRouter(svc user.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validate.Register()

	r := gin.New()
	userHttp.RegisterRoutes(&r.RouterGroup, userHttp.NewHandler(svc))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserRoutes(t *testing.T) {
	svc := &stubService{users: map[int64]*user.User{}}
	r := setupRouter(svc)

	w := do(r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created userHttp.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "alice@example.com", created.Email)

	w = do(r, http.MethodPost, "/users", `{"name":"Again","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"email already used"}`, w.Body.String())

	w = do(r, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Alice","email":"alice@example.com"}]`, w.Body.String())

	w = do(r, http.MethodPatch, "/users/1", `{"name":"Alicia"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastUpdate.Name)
	assert.Equal(t, "Alicia", *svc.lastUpdate.Name)
	assert.Nil(t, svc.lastUpdate.Email)

	w = do(r, http.MethodGet, "/users/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserValidation(t *testing.T) {
	r := setupRouter(&stubService{users: map[int64]*user.User{}})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"blank name", http.MethodPost, "/users", `{"name":"  ","email":"a@example.com"}`},
		{"bad email", http.MethodPost, "/users", `{"name":"A","email":"not-an-email"}`},
		{"missing email", http.MethodPost, "/users", `{"name":"A"}`},
		{"bad patch email", http.MethodPatch, "/users/1", `{"email":"nope"}`},
		{"non numeric id", http.MethodGet, "/users/abc", ""},
		{"zero id", http.MethodDelete, "/users/0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
