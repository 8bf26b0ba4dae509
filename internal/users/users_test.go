package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibecodes/vibecodes-api/internal/auth"
)

type memStore struct {
	byUID    map[string]string
	profiles map[string]*Profile
	fail     error
}

func newMemStore() *memStore {
	return &memStore{byUID: map[string]string{}, profiles: map[string]*Profile{}}
}

func (m *memStore) EnsureUser(_ context.Context, u UpsertUser) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	if id, ok := m.byUID[u.FirebaseUID]; ok {
		return id, nil
	}
	id := uuid.NewString()
	m.byUID[u.FirebaseUID] = id
	p := &Profile{ID: id}
	if u.Email != "" {
		p.Email = &u.Email
	}
	m.profiles[id] = p
	return id, nil
}

func (m *memStore) Get(_ context.Context, id string) (*Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) Update(_ context.Context, p *Profile) (*Profile, error) {
	cp := *p
	m.profiles[p.ID] = &cp
	return p, nil
}

func ptr(s string) *string { return &s }

func TestWithUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemStore()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-UID"); uid != "" {
			c.Set(auth.CtxFirebaseUID, uid)
		}
		c.Next()
	})
	r.Use(WithUser(store))
	r.GET("/who", func(c *gin.Context) { c.String(http.StatusOK, auth.UserID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("X-Test-UID", "fb-1")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	first := rr.Body.String()
	assert.Equal(t, store.byUID["fb-1"], first)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, first, rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/who", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	store.fail = errors.New("db down")
	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("X-Test-UID", "fb-2")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "db down")
}

func TestUpdateProfile(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	id, err := svc.EnsureUser(ctx, UpsertUser{FirebaseUID: "fb-1", Email: "a@example.com"})
	require.NoError(t, err)

	p, err := svc.UpdateProfile(ctx, id, ProfileUpdate{
		DisplayName: ptr(" Ada "),
		Bio:         ptr("Builds things"),
		GithubURL:   ptr("https://www.github.com/ada"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", *p.DisplayName)
	assert.Equal(t, "https://www.github.com/ada", *p.GithubURL)

	_, err = svc.UpdateProfile(ctx, id, ProfileUpdate{GithubURL: ptr("http://github.com/ada")})
	require.Error(t, err)
	assert.Equal(t, "Must be a valid GitHub URL (https://github.com/...)", err.Error())

	cleared, err := svc.UpdateProfile(ctx, id, ProfileUpdate{Bio: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Bio)
	assert.Equal(t, "Ada", *cleared.DisplayName)
}

func TestGetProfile_HidesEmail(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	id, err := svc.EnsureUser(ctx, UpsertUser{FirebaseUID: "fb-1", Email: "a@example.com"})
	require.NoError(t, err)

	me, err := svc.GetMe(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, me.Email)

	public, err := svc.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, public.Email)

	_, err = svc.GetProfile(ctx, "someone")
	require.Error(t, err)
	assert.Equal(t, "User ID must be a valid UUID", err.Error())
}

func TestHTTP_UpdateMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemStore()
	svc := NewService(store)
	id, err := svc.EnsureUser(context.Background(), UpsertUser{FirebaseUID: "fb-1"})
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) { c.Set(auth.CtxUserID, id); c.Next() })
	Register(api, svc)

	long := bytes.Repeat([]byte("b"), 501)
	payload, _ := json.Marshal(map[string]string{"bio": string(long)})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/me", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Bio must be 500 characters or less"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
