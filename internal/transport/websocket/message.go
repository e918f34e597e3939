package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

const (
	actionState = "game:state"
	actionNew   = "game:new"
	actionTurn  = "game:turn"
	actionJump  = "game:jump"
	actionOrder = "game:order"
	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Cell  *int   `json:"cell,omitempty"`
	Move  *int   `json:"move,omitempty"`
	Order string `json:"order,omitempty"`
}

type ResponsePayload struct {
	Game  *usecase.GameView `json:"game,omitempty"`
	Error string            `json:"error,omitempty"`
}
