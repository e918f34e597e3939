package entity

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardSize = 9
	RowSize   = 3
)

// Board - a 3x3 board stored row-major: rows are [0,1,2], [3,4,5], [6,7,8].
type Board [BoardSize]Mark

// Game - a snapshot of one game: every board since the start and the move currently shown.
type Game struct {
	ID          string  `json:"id"`
	History     []Board `json:"history"`
	CurrentMove int     `json:"current_move"`
}

// Rows - groups the cells by board row, for renderers.
func (that Board) Rows() [RowSize][RowSize]Mark {
	var rows [RowSize][RowSize]Mark

	for cell, mark := range that {
		rows[cell/RowSize][cell%RowSize] = mark
	}

	return rows
}

func (that Board) IsEmpty() bool {
	return that == Board{}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}
