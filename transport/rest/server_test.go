package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/resobingo-backend/internal/config"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
	"github.com/rocketscienceinc/resobingo-backend/internal/repository"
	"github.com/rocketscienceinc/resobingo-backend/internal/service"
	"github.com/rocketscienceinc/resobingo-backend/internal/usecase"
)

type testServer struct {
	*testing.T
	handler http.Handler
	token   string
	board   *BoardHandler
}

type fakeUsers struct{}

func (fakeUsers) GetOrCreate(_ context.Context, email string) (*entity.User, error) {
	return &entity.User{ID: "user-" + email, Email: email}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := discardLogger()
	auth := service.NewAuthService("secret")
	manager := usecase.NewBoardManager(logger, repository.NewFileBoardStore(t.TempDir()))
	t.Cleanup(manager.Close)

	board := NewBoardHandler(logger, manager)
	board.now = func() time.Time { return time.Date(2026, time.March, 4, 23, 0, 0, 0, time.UTC) }

	server := NewServer(logger, "session-secret", auth,
		NewAuthHandler(logger, config.GoogleOAuth{ClientID: "client"}, false, auth, fakeUsers{}),
		board,
	)

	token, err := auth.GenerateToken(&entity.User{ID: "user-1", Email: "ana@example.com"})
	require.NoError(t, err)

	return &testServer{T: t, handler: server.Handler(), token: token, board: board}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	s.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func validListsBody() string {
	standard := make([]string, 0, 24)
	for i := 1; i <= 24; i++ {
		standard = append(standard, fmt.Sprintf("%q", fmt.Sprintf("R%d", i)))
	}

	return fmt.Sprintf(`{"standard":[%s],"boss":["Run a marathon"]}`, strings.Join(standard, ","))
}

func TestPing(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRequireAuth(t *testing.T) {
	s := newTestServer(t)

	t.Run("Rejects requests without a token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/board", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Rejects invalid tokens", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/board", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Accepts the auth cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/board", nil)
		req.AddCookie(&http.Cookie{Name: authCookieName, Value: s.token})
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBoardHandler_Flow(t *testing.T) {
	s := newTestServer(t)

	// Given: no board yet
	rec := s.do(http.MethodGet, "/api/board", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[boardResponse](t, rec).Board)

	// When: generating without lists
	rec = s.do(http.MethodPost, "/api/board/new", "")

	// Then: the validation message is returned
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "need at least 1 boss resolution", decode[errorResponse](t, rec).Error)

	// When: saving lists and generating a card
	rec = s.do(http.MethodPost, "/api/lists", validListsBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/board/new", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Then: the boss sits in the center
	created := decode[boardResponse](t, rec)
	require.NotNil(t, created.Board)
	assert.Equal(t, "Run a marathon", created.Board.Squares[entity.CenterIndex].Text)
	assert.False(t, created.HasBingo)

	// When: marking the middle row
	var result usecase.MutationResult
	for _, index := range []int{10, 11, 12, 13, 14} {
		rec = s.do(http.MethodPost, fmt.Sprintf("/api/board/squares/%d/toggle", index), "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		result = decode[usecase.MutationResult](t, rec)
	}

	// Then: the last toggle produced a new bingo
	assert.True(t, result.HasBingo)
	assert.True(t, result.NewBingo)

	rec = s.do(http.MethodGet, "/api/board", "")
	loaded := decode[boardResponse](t, rec)
	assert.True(t, loaded.HasBingo)
	assert.Equal(t, [][5]int{{10, 11, 12, 13, 14}}, loaded.CompletedLines)

	// When: editing a square and resetting
	rec = s.do(http.MethodPut, "/api/board/squares/0", `{"text":"Learn Go","isBoss":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	edited := decode[usecase.MutationResult](t, rec)
	assert.Equal(t, []int{0}, edited.Board.BossIndices())

	rec = s.do(http.MethodPost, "/api/board/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[usecase.MutationResult](t, rec).HasBingo)

	// When: clearing everything
	rec = s.do(http.MethodDelete, "/api/data", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Then: the board and lists are gone
	rec = s.do(http.MethodGet, "/api/board", "")
	assert.Nil(t, decode[boardResponse](t, rec).Board)

	rec = s.do(http.MethodGet, "/api/lists", "")
	assert.Equal(t, entity.NewResolutionLists(nil, nil), ptr(decode[entity.ResolutionLists](t, rec)))
}

func ptr[T any](v T) *T {
	return &v
}

func TestBoardHandler_Errors(t *testing.T) {
	s := newTestServer(t)

	t.Run("Toggle without a board is not found", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/board/squares/3/toggle", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/board/new", validListsBody()).Code)

	t.Run("Rejects indices off the card", func(t *testing.T) {
		for _, index := range []string{"25", "-1", "abc"} {
			rec := s.do(http.MethodPost, "/api/board/squares/"+index+"/toggle", "")

			assert.Equal(t, http.StatusBadRequest, rec.Code, index)
		}
	})

	t.Run("Rejects blank square text", func(t *testing.T) {
		rec := s.do(http.MethodPut, "/api/board/squares/3", `{"text":"   "}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Rejects short lists with the count", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/lists", `{"standard":["a","b"],"boss":["c"]}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decode[errorResponse](t, rec).Error, "you have 2")
	})

	t.Run("Rejects a board with 24 squares", func(t *testing.T) {
		squares := make([]entity.Cell, 24)
		for i := range squares {
			squares[i] = entity.Cell{Text: "x"}
		}
		body, err := json.Marshal(map[string]any{"squares": squares})
		require.NoError(t, err)

		rec := s.do(http.MethodPost, "/api/board", string(body))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[errorResponse](t, rec).Error, "got 24")
	})
}

func TestBoardHandler_PutBoard(t *testing.T) {
	s := newTestServer(t)

	// Given: 25 squares without a boss
	squares := make([]entity.Cell, entity.BoardSize)
	for i := range squares {
		squares[i] = entity.Cell{Text: fmt.Sprintf("S%d", i)}
	}
	body, err := json.Marshal(map[string]any{"squares": squares})
	require.NoError(t, err)

	// When: storing them
	rec := s.do(http.MethodPost, "/api/board", string(body))

	// Then: the center becomes the boss
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []int{entity.CenterIndex}, decode[boardResponse](t, rec).Board.BossIndices())
}

func TestBoardHandler_ExportImport(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/board/new", validListsBody()).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/board/squares/4/toggle", "").Code)

	// When: exporting
	rec := s.do(http.MethodGet, "/api/export", "")

	// Then: a dated attachment is returned
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="resobingo-backup-2026-03-04.json"`, rec.Header().Get("Content-Disposition"))
	exported := rec.Body.String()
	document := decode[entity.ExportDocument](t, rec)
	assert.Equal(t, entity.ExportVersion, document.Version)
	assert.True(t, document.Squares[4].Marked)

	t.Run("Imports the exported document", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/data", "").Code)

		rec := s.do(http.MethodPost, "/api/import", exported)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, document.Squares, decode[boardResponse](t, rec).Board.Squares)

		lists := decode[entity.ResolutionLists](t, s.do(http.MethodGet, "/api/lists", ""))
		assert.Len(t, lists.Standard, 24)
	})

	t.Run("Returns the import error verbatim", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/import", `{"version":2,"createdAt":"2026-01-01T00:00:00Z","squares":[]}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid squares array: expected 25 items, got 0", decode[errorResponse](t, rec).Error)
	})
}
