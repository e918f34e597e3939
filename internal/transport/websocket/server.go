package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

var (
	ErrNoGame         = errors.New("connection has no game, send game:new first")
	ErrUnknownAction  = errors.New("unknown action")
	ErrMissingPayload = errors.New("missing payload field")
)

type uGame interface {
	NewGame(ctx context.Context, order tictactoe.SortOrder) (*usecase.GameView, error)
	GetGame(ctx context.Context, id string, order tictactoe.SortOrder) (*usecase.GameView, error)
	Play(ctx context.Context, id string, cell int, order tictactoe.SortOrder) (*usecase.GameView, error)
	JumpTo(ctx context.Context, id string, move int, order tictactoe.SortOrder) (*usecase.GameView, error)
}

// session - per-connection state. The sort order lives here and never reaches the stored game.
type session struct {
	gameID string
	order  tictactoe.SortOrder
}

type handlerFunc func(ctx context.Context, sess *session, payload RequestPayload) (*usecase.GameView, error)

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionNew] = server.handleNewGame
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionOrder] = server.handleOrder

	return server
}

// ServeHTTP - upgrades the request. "?game=<id>" binds the connection to an existing game.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	sess := &session{
		gameID: r.URL.Query().Get("game"),
		order:  tictactoe.Ascending,
	}

	log.Info("client connected", "remote_addr", r.RemoteAddr, "game_id", sess.gameID)

	that.serve(r.Context(), conn, sess)

	log.Info("client disconnected", "remote_addr", r.RemoteAddr, "game_id", sess.gameID)
}

func (that *Server) serve(ctx context.Context, conn *websocket.Conn, sess *session) {
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				that.logger.Warn("failed to read message", "error", err)
			}
			return
		}

		response := that.dispatch(ctx, sess, &msg)

		if err := conn.WriteJSON(response); err != nil {
			that.logger.Warn("failed to write message", "error", err)
			return
		}
	}
}

func (that *Server) dispatch(ctx context.Context, sess *session, msg *Message) Message {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		return errorMessage(fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action), nil)
	}

	var payload RequestPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return errorMessage(fmt.Errorf("failed to unmarshal payload: %w", err), nil)
		}
	}

	view, err := handler(ctx, sess, payload)
	if err != nil {
		return errorMessage(err, view)
	}

	return newMessage(msg.Action, ResponsePayload{Game: view})
}

func (that *Server) handleState(ctx context.Context, sess *session, _ RequestPayload) (*usecase.GameView, error) {
	if sess.gameID == "" {
		return nil, ErrNoGame
	}

	return that.uGame.GetGame(ctx, sess.gameID, sess.order)
}

func (that *Server) handleNewGame(ctx context.Context, sess *session, _ RequestPayload) (*usecase.GameView, error) {
	view, err := that.uGame.NewGame(ctx, sess.order)
	if err != nil {
		return nil, err
	}

	sess.gameID = view.ID

	return view, nil
}

func (that *Server) handleTurn(ctx context.Context, sess *session, payload RequestPayload) (*usecase.GameView, error) {
	if sess.gameID == "" {
		return nil, ErrNoGame
	}

	if payload.Cell == nil {
		return nil, fmt.Errorf("%w: cell", ErrMissingPayload)
	}

	return that.uGame.Play(ctx, sess.gameID, *payload.Cell, sess.order)
}

func (that *Server) handleJump(ctx context.Context, sess *session, payload RequestPayload) (*usecase.GameView, error) {
	if sess.gameID == "" {
		return nil, ErrNoGame
	}

	if payload.Move == nil {
		return nil, fmt.Errorf("%w: move", ErrMissingPayload)
	}

	return that.uGame.JumpTo(ctx, sess.gameID, *payload.Move, sess.order)
}

// handleOrder - changes only how this connection lists moves.
func (that *Server) handleOrder(ctx context.Context, sess *session, payload RequestPayload) (*usecase.GameView, error) {
	order, err := tictactoe.ParseSortOrder(payload.Order)
	if err != nil {
		return nil, err
	}

	sess.order = order

	if sess.gameID == "" {
		return nil, nil
	}

	return that.uGame.GetGame(ctx, sess.gameID, sess.order)
}

func newMessage(action string, payload ResponsePayload) Message {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{Action: actionError}
	}

	return Message{
		Action:  action,
		Payload: data,
	}
}

func errorMessage(err error, view *usecase.GameView) Message {
	return newMessage(actionError, ResponsePayload{
		Game:  view,
		Error: err.Error(),
	})
}
