package rest

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Extras  any  `json:"extras"`
}

type ErrorExtras struct {
	Message string `json:"message"`
	Game    any    `json:"game,omitempty"`
}

func SuccessResponse(c *gin.Context, code int, extras any) {
	c.JSON(code, Response{
		Success: true,
		Code:    code,
		Extras:  extras,
	})
}

// ErrorResponse - game is the unchanged game for rejected moves, nil otherwise.
func ErrorResponse(c *gin.Context, code int, message string, game any) {
	c.JSON(code, Response{
		Success: false,
		Code:    code,
		Extras: ErrorExtras{
			Message: message,
			Game:    game,
		},
	})
}
