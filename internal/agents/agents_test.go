package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibecodes/vibecodes-api/internal/auth"
	"github.com/vibecodes/vibecodes-api/internal/validation"
)

type memStore struct {
	bots map[string]*Bot
}

func (m *memStore) Create(_ context.Context, b *Bot) (*Bot, error) {
	for _, existing := range m.bots {
		if existing.OwnerID == b.OwnerID && existing.Name == b.Name {
			return nil, ErrNameTaken
		}
	}
	b.ID = uuid.NewString()
	cp := *b
	m.bots[b.ID] = &cp
	return b, nil
}

func (m *memStore) ListByOwner(_ context.Context, ownerID string) ([]Bot, error) {
	out := []Bot{}
	for _, b := range m.bots {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, id string) (*Bot, error) {
	b, ok := m.bots[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) Update(_ context.Context, b *Bot) (*Bot, error) {
	cp := *b
	m.bots[b.ID] = &cp
	return b, nil
}

func (m *memStore) SetActive(_ context.Context, id string, active bool) (*Bot, error) {
	m.bots[id].IsActive = active
	cp := *m.bots[id]
	return &cp, nil
}

func (m *memStore) Delete(_ context.Context, id string) (bool, error) {
	_, ok := m.bots[id]
	delete(m.bots, id)
	return ok, nil
}

func ptr(s string) *string { return &s }

func newService() (*Service, *memStore) {
	store := &memStore{bots: map[string]*Bot{}}
	return NewService(store), store
}

func TestCreateBot(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	b, err := svc.CreateBot(ctx, "owner", BotInput{
		Name:      ptr(" Reviewer "),
		Role:      ptr("Code review"),
		Bio:       ptr("   "),
		AvatarURL: ptr("https://cdn.example.com/bot.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Reviewer", b.Name)
	assert.Equal(t, "Code review", *b.Role)
	assert.Nil(t, b.Bio)
	assert.Nil(t, b.SystemPrompt)

	_, err = svc.CreateBot(ctx, "owner", BotInput{Name: ptr("Reviewer")})
	assert.ErrorIs(t, err, ErrNameTaken)

	_, err = svc.CreateBot(ctx, "owner", BotInput{})
	require.Error(t, err)
	assert.Equal(t, "Name is required", err.Error())

	_, err = svc.CreateBot(ctx, "owner", BotInput{Name: ptr("x"), SystemPrompt: ptr(strings.Repeat("p", validation.MaxSystemPromptLength+1))})
	assert.True(t, validation.IsValidationError(err))

	_, err = svc.CreateBot(ctx, "owner", BotInput{Name: ptr("x"), AvatarURL: ptr("not a url")})
	require.Error(t, err)
	assert.Equal(t, "Invalid avatar URL", err.Error())
}

func TestGetBot_ValidatesID(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetBot(context.Background(), "42")
	require.Error(t, err)
	assert.Equal(t, "Bot ID must be a valid UUID", err.Error())

	_, err = svc.GetBot(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOwnerOnlyOperations(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	b, err := svc.CreateBot(ctx, "owner", BotInput{Name: ptr("Planner")})
	require.NoError(t, err)

	_, err = svc.UpdateBot(ctx, "intruder", b.ID, BotInput{Name: ptr("Mine now")})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.SetActive(ctx, "intruder", b.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.DeleteBot(ctx, "intruder", b.ID), ErrForbidden)

	updated, err := svc.UpdateBot(ctx, "owner", b.ID, BotInput{Role: ptr("PM")})
	require.NoError(t, err)
	assert.Equal(t, "Planner", updated.Name)
	assert.Equal(t, "PM", *updated.Role)

	active, err := svc.SetActive(ctx, "owner", b.ID, true)
	require.NoError(t, err)
	assert.True(t, active.IsActive)

	require.NoError(t, svc.DeleteBot(ctx, "owner", b.ID))
	assert.Empty(t, store.bots)
}

func TestHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newService()

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) { c.Set(auth.CtxUserID, "owner"); c.Next() })
	Register(api.Group("/bots"), svc)

	payload, _ := json.Marshal(map[string]string{"name": "Helper"})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bots", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		Bot Bot `json:"bot"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Helper", created.Bot.Name)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/bots/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Bot ID must be a valid UUID"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/bots/"+created.Bot.ID+"/active", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/bots/"+created.Bot.ID+"/active", strings.NewReader(`{"active":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"is_active":true`)
}
