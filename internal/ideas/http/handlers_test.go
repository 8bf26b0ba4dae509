package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibecodes/vibecodes-api/internal/auth"
	"github.com/vibecodes/vibecodes-api/internal/ideas/repository"
	"github.com/vibecodes/vibecodes-api/internal/ideas/service"
)

const (
	ideaID = "cccccccc-0000-0000-0000-000000000001"
	viewer = "dddddddd-0000-0000-0000-000000000001"
)

var ideaCols = []string{"id", "author_id", "title", "description", "tags", "github_url", "status", "visibility", "upvotes", "comment_count", "created_at", "updated_at"}

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewIdeaService(repository.NewIdeaRepository(db), nil)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) { c.Set(auth.CtxUserID, viewer); c.Next() })
	New(svc).Register(api)
	return r, mock
}

func TestList_IncludesVotedMap(t *testing.T) {
	router, mock := setupRouter(t)
	now := time.Now()

	mock.ExpectQuery(`FROM ideas`).
		WillReturnRows(sqlmock.NewRows(ideaCols).
			AddRow(ideaID, "someone", "Idea", "Desc", "{go,web}", nil, "open", "public", 2, 0, now, now))
	mock.ExpectQuery(`SELECT idea_id FROM votes`).
		WillReturnRows(sqlmock.NewRows([]string{"idea_id"}).AddRow(ideaID))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/ideas?sort=popular", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body struct {
		OK    bool `json:"ok"`
		Ideas []struct {
			ID   string   `json:"id"`
			Tags []string `json:"tags"`
		} `json:"ideas"`
		Voted map[string]bool `json:"voted"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.OK)
	require.Len(t, body.Ideas, 1)
	assert.Equal(t, []string{"go", "web"}, body.Ideas[0].Tags)
	assert.True(t, body.Voted[ideaID])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_InvalidSort(t *testing.T) {
	router, _ := setupRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/ideas?sort=random", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid sort")
}

func TestCreate_TooManyTags(t *testing.T) {
	router, _ := setupRouter(t)

	payload, _ := json.Marshal(map[string]any{
		"title":       "Idea",
		"description": "Desc",
		"tags":        []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ideas", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Maximum 10 tags allowed"}`, rr.Body.String())
}

func TestGet_PrivateIdeaIsNotFound(t *testing.T) {
	router, mock := setupRouter(t)
	now := time.Now()

	mock.ExpectQuery(`FROM ideas WHERE id`).
		WithArgs(ideaID).
		WillReturnRows(sqlmock.NewRows(ideaCols).
			AddRow(ideaID, "someone-else", "Secret", "Desc", "{}", nil, "open", "private", 0, 0, now, now))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/ideas/"+ideaID, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "idea not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleVote(t *testing.T) {
	router, mock := setupRouter(t)
	now := time.Now()

	mock.ExpectQuery(`FROM ideas WHERE id`).
		WithArgs(ideaID).
		WillReturnRows(sqlmock.NewRows(ideaCols).
			AddRow(ideaID, "someone", "Idea", "Desc", "{}", nil, "open", "public", 4, 0, now, now))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM votes`).
		WithArgs(ideaID, viewer).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO votes`).
		WithArgs(ideaID, viewer).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`UPDATE ideas\s+SET upvotes`).
		WithArgs(ideaID).
		WillReturnRows(sqlmock.NewRows([]string{"upvotes"}).AddRow(5))
	mock.ExpectCommit()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/ideas/"+ideaID+"/vote", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"ok":true,"voted":true,"upvotes":5}`, rr.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_Invalid(t *testing.T) {
	router, _ := setupRouter(t)

	payload, _ := json.Marshal(map[string]string{"status": "shipped"})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/ideas/"+ideaID+"/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
