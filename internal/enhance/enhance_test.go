package enhance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibecodes/vibecodes-api/internal/auth"
	"github.com/vibecodes/vibecodes-api/internal/ideas/domain"
	"github.com/vibecodes/vibecodes-api/internal/validation"
)

const ideaID = "ffffffff-0000-0000-0000-000000000001"

type fakeIdeas struct {
	idea *domain.Idea
}

func (f fakeIdeas) GetIdea(_ context.Context, _, id string) (*domain.Idea, error) {
	if f.idea == nil || f.idea.ID != id {
		return nil, domain.ErrIdeaNotFound
	}
	cp := *f.idea
	return &cp, nil
}

func gateway(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/enhance", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Idea", req.Title)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response{Description: reply})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func ideas(author string) fakeIdeas {
	return fakeIdeas{idea: &domain.Idea{ID: ideaID, AuthorID: author, Title: "Idea", Description: "rough"}}
}

func TestClient_SendsBearerToken(t *testing.T) {
	srv := gateway(t, "polished")
	c := NewClient(srv.URL+"/", "secret", 5*time.Second)

	resp, err := c.Enhance(context.Background(), Request{Title: "Idea", Description: "rough"})
	require.NoError(t, err)
	assert.Equal(t, "polished", resp.Description)
}

func TestLimiter_RejectsAfterBurst(t *testing.T) {
	l := NewLimiter(5, 2)

	assert.True(t, l.Allow("u1"))
	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))
	assert.True(t, l.Allow("u2"))
}

func TestService(t *testing.T) {
	ctx := context.Background()
	srv := gateway(t, "  polished  ")

	t.Run("disabled without client", func(t *testing.T) {
		svc := NewService(ideas("u1"), nil, NewLimiter(5, 2))
		_, err := svc.Enhance(ctx, "u1", ideaID, "")
		assert.ErrorIs(t, err, ErrDisabled)
	})

	t.Run("author only", func(t *testing.T) {
		svc := NewService(ideas("u1"), NewClient(srv.URL, "secret", time.Second), NewLimiter(5, 2))
		_, err := svc.Enhance(ctx, "u2", ideaID, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("prompt too long", func(t *testing.T) {
		svc := NewService(ideas("u1"), NewClient(srv.URL, "secret", time.Second), NewLimiter(5, 2))
		_, err := svc.Enhance(ctx, "u1", ideaID, strings.Repeat("p", MaxPromptLength+1))
		assert.True(t, validation.IsValidationError(err))
	})

	t.Run("returns trimmed suggestion then rate limits", func(t *testing.T) {
		svc := NewService(ideas("u1"), NewClient(srv.URL, "secret", time.Second), NewLimiter(5, 1))
		desc, err := svc.Enhance(ctx, "u1", ideaID, "make it punchy")
		require.NoError(t, err)
		assert.Equal(t, "polished", desc)

		_, err = svc.Enhance(ctx, "u1", ideaID, "again")
		assert.ErrorIs(t, err, ErrRateLimited)
	})
}

func TestService_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewService(ideas("u1"), NewClient(srv.URL, "secret", time.Second), NewLimiter(5, 2))
	_, err := svc.Enhance(context.Background(), "u1", ideaID, "")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestHTTP_StatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := gateway(t, "polished")

	newRouter := func(svc *Service) *gin.Engine {
		r := gin.New()
		api := r.Group("/api/v1")
		api.Use(func(c *gin.Context) { c.Set(auth.CtxUserID, "u1"); c.Next() })
		Register(api, svc)
		return r
	}

	disabled := newRouter(NewService(ideas("u1"), nil, NewLimiter(5, 2)))
	rr := httptest.NewRecorder()
	disabled.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/ideas/"+ideaID+"/enhance", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	enabled := newRouter(NewService(ideas("u1"), NewClient(srv.URL, "secret", time.Second), NewLimiter(5, 1)))
	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ideas/"+ideaID+"/enhance", strings.NewReader(`{"prompt":"shorter"}`))
	req.Header.Set("Content-Type", "application/json")
	enabled.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"ok":true,"description":"polished"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	enabled.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/ideas/"+ideaID+"/enhance", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}
