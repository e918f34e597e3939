package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResponse struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

type testErrorExtras struct {
	Message string            `json:"message"`
	Game    *usecase.GameView `json:"game"`
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository())

	return NewRouter(logger, manager)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (int, testResponse) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp testResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}

	return rec.Code, resp
}

func decodeView(t *testing.T, resp testResponse) usecase.GameView {
	t.Helper()

	var view usecase.GameView
	require.NoError(t, json.Unmarshal(resp.Extras, &view))

	return view
}

func decodeError(t *testing.T, resp testResponse) testErrorExtras {
	t.Helper()

	var extras testErrorExtras
	require.NoError(t, json.Unmarshal(resp.Extras, &extras))

	return extras
}

func createGame(t *testing.T, router http.Handler) string {
	t.Helper()

	code, resp := doRequest(t, router, http.MethodPost, "/games", "")
	require.Equal(t, http.StatusCreated, code)

	return decodeView(t, resp).ID
}

func TestPing(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestNewGame(t *testing.T) {
	router := newTestRouter()

	// When: a game is created
	code, resp := doRequest(t, router, http.MethodPost, "/games", "")

	// Then: the empty game is returned
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, resp.Success)

	view := decodeView(t, resp)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Next player: X", view.Status)
	assert.Equal(t, entity.Board{}, view.Board)
}

func TestPlayAndJump(t *testing.T) {
	router := newTestRouter()
	id := createGame(t, router)

	// When: X plays 0 and O plays 4
	code, _ := doRequest(t, router, http.MethodPost, "/games/"+id+"/moves", `{"cell":0}`)
	require.Equal(t, http.StatusOK, code)
	code, resp := doRequest(t, router, http.MethodPost, "/games/"+id+"/moves", `{"cell":4}`)
	require.Equal(t, http.StatusOK, code)

	// Then: both marks are on the board
	view := decodeView(t, resp)
	assert.Equal(t, entity.Board{0: entity.PlayerX, 4: entity.PlayerO}, view.Board)
	assert.Equal(t, "Next player: X", view.Status)

	// When: the game jumps back to the start with the list in descending order
	code, resp = doRequest(t, router, http.MethodPost, "/games/"+id+"/jump?order=desc", `{"move":0}`)

	// Then: the empty board is shown, the start entry is last and current
	require.Equal(t, http.StatusOK, code)
	view = decodeView(t, resp)
	assert.Equal(t, entity.Board{}, view.Board)
	require.Len(t, view.Moves, 3)
	assert.Equal(t, "Go to move #2", view.Moves[0].Label)
	assert.Equal(t, "Go to game start", view.Moves[2].Label)
	assert.True(t, view.Moves[2].IsCurrent)

	// When: the game is read in ascending order
	code, resp = doRequest(t, router, http.MethodGet, "/games/"+id+"?order=asc", "")

	// Then: the order only changes the list
	require.Equal(t, http.StatusOK, code)
	view = decodeView(t, resp)
	assert.Equal(t, 0, view.Moves[0].MoveIndex)
	assert.Equal(t, 0, view.CurrentMove)
}

func TestRejectedMoves(t *testing.T) {
	router := newTestRouter()
	id := createGame(t, router)

	code, _ := doRequest(t, router, http.MethodPost, "/games/"+id+"/moves", `{"cell":0}`)
	require.Equal(t, http.StatusOK, code)

	t.Run("Occupied cell", func(t *testing.T) {
		code, resp := doRequest(t, router, http.MethodPost, "/games/"+id+"/moves", `{"cell":0}`)

		require.Equal(t, http.StatusConflict, code)
		assert.False(t, resp.Success)

		extras := decodeError(t, resp)
		assert.Contains(t, extras.Message, "illegal move")
		require.NotNil(t, extras.Game)
		assert.Equal(t, 1, extras.Game.CurrentMove)
	})

	t.Run("Jump out of range", func(t *testing.T) {
		code, resp := doRequest(t, router, http.MethodPost, "/games/"+id+"/jump", `{"move":5}`)

		require.Equal(t, http.StatusConflict, code)
		extras := decodeError(t, resp)
		require.NotNil(t, extras.Game)
		assert.Equal(t, 1, extras.Game.CurrentMove)
	})

	t.Run("Missing cell", func(t *testing.T) {
		code, resp := doRequest(t, router, http.MethodPost, "/games/"+id+"/moves", `{}`)

		require.Equal(t, http.StatusBadRequest, code)
		assert.Nil(t, decodeError(t, resp).Game)
	})

	t.Run("Unknown order", func(t *testing.T) {
		code, _ := doRequest(t, router, http.MethodGet, "/games/"+id+"?order=random", "")

		require.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("Unknown game", func(t *testing.T) {
		code, _ := doRequest(t, router, http.MethodPost, "/games/missing/moves", `{"cell":0}`)

		require.Equal(t, http.StatusNotFound, code)
	})
}

func TestDeleteGame(t *testing.T) {
	router := newTestRouter()
	id := createGame(t, router)

	code, _ := doRequest(t, router, http.MethodDelete, "/games/"+id, "")
	require.Equal(t, http.StatusNoContent, code)

	code, _ = doRequest(t, router, http.MethodGet, "/games/"+id, "")
	require.Equal(t, http.StatusNotFound, code)

	code, _ = doRequest(t, router, http.MethodDelete, "/games/"+id, "")
	require.Equal(t, http.StatusNotFound, code)
}
