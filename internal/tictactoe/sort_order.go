package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
)

// SortOrder - display order of the move list. It never changes the history itself.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortOrder - accepts "asc", "desc" or an empty string, which means ascending.
func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(value) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidSortOrder, value)
	}
}
