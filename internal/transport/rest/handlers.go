package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

type uGame interface {
	NewGame(ctx context.Context, order tictactoe.SortOrder) (*usecase.GameView, error)
	GetGame(ctx context.Context, id string, order tictactoe.SortOrder) (*usecase.GameView, error)
	Play(ctx context.Context, id string, cell int, order tictactoe.SortOrder) (*usecase.GameView, error)
	JumpTo(ctx context.Context, id string, move int, order tictactoe.SortOrder) (*usecase.GameView, error)
	DeleteGame(ctx context.Context, id string) error
}

type playRequest struct {
	Cell *int `json:"cell" binding:"required"`
}

type jumpRequest struct {
	Move *int `json:"move" binding:"required"`
}

type handlers struct {
	logger *slog.Logger
	uGame  uGame
}

// NewRouter - the REST API of the game. Extra routes (the websocket endpoint) are added by the caller.
func NewRouter(logger *slog.Logger, uGame uGame) *gin.Engine {
	h := &handlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}

	router := gin.New()
	router.Use(gin.Recovery(), h.logRequests)

	router.GET("/ping", h.Ping)

	games := router.Group("/games")
	games.POST("", h.NewGame)
	games.GET("/:id", h.GetGame)
	games.DELETE("/:id", h.DeleteGame)
	games.POST("/:id/moves", h.Play)
	games.POST("/:id/jump", h.JumpTo)

	return router
}

func (that *handlers) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (that *handlers) NewGame(c *gin.Context) {
	order, ok := that.sortOrder(c)
	if !ok {
		return
	}

	view, err := that.uGame.NewGame(c.Request.Context(), order)
	if err != nil {
		that.fail(c, err, nil)
		return
	}

	SuccessResponse(c, http.StatusCreated, view)
}

func (that *handlers) GetGame(c *gin.Context) {
	order, ok := that.sortOrder(c)
	if !ok {
		return
	}

	view, err := that.uGame.GetGame(c.Request.Context(), c.Param("id"), order)
	if err != nil {
		that.fail(c, err, nil)
		return
	}

	SuccessResponse(c, http.StatusOK, view)
}

func (that *handlers) DeleteGame(c *gin.Context) {
	if err := that.uGame.DeleteGame(c.Request.Context(), c.Param("id")); err != nil {
		that.fail(c, err, nil)
		return
	}

	c.Status(http.StatusNoContent)
}

func (that *handlers) Play(c *gin.Context) {
	order, ok := that.sortOrder(c)
	if !ok {
		return
	}

	var req playRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	view, err := that.uGame.Play(c.Request.Context(), c.Param("id"), *req.Cell, order)
	if err != nil {
		that.fail(c, err, view)
		return
	}

	SuccessResponse(c, http.StatusOK, view)
}

func (that *handlers) JumpTo(c *gin.Context) {
	order, ok := that.sortOrder(c)
	if !ok {
		return
	}

	var req jumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	view, err := that.uGame.JumpTo(c.Request.Context(), c.Param("id"), *req.Move, order)
	if err != nil {
		that.fail(c, err, view)
		return
	}

	SuccessResponse(c, http.StatusOK, view)
}

func (that *handlers) sortOrder(c *gin.Context) (tictactoe.SortOrder, bool) {
	order, err := tictactoe.ParseSortOrder(c.Query("order"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
		return "", false
	}

	return order, true
}

// fail - view is only sent back when it is set, i.e. for rejected moves.
func (that *handlers) fail(c *gin.Context, err error, view *usecase.GameView) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}

	var game any
	if view != nil {
		game = view
	}

	ErrorResponse(c, code, err.Error(), game)
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrIllegalMove), errors.Is(err, apperror.ErrOutOfRange):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidSortOrder):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) logRequests(c *gin.Context) {
	start := time.Now()

	c.Next()

	that.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	)
}
