package hexapawn

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the number of rows and columns on the board.
const Size = 3

var (
	ErrInvalidPiece = errors.New("invalid piece")
	ErrInvalidSide  = errors.New("invalid side")
	ErrInvalidBoard = errors.New("invalid board")
)

// Piece is the content of a single cell.
type Piece uint8

const (
	Empty Piece = iota
	WhitePawn
	BlackPawn
)

func (that Piece) String() string {
	switch that {
	case WhitePawn:
		return "W"
	case BlackPawn:
		return "B"
	default:
		return "."
	}
}

// Side returns the owner of the piece, ok is false for an empty cell.
func (that Piece) Side() (Side, bool) {
	switch that {
	case WhitePawn:
		return White, true
	case BlackPawn:
		return Black, true
	default:
		return White, false
	}
}

func (that Piece) MarshalText() ([]byte, error) {
	if that == Empty {
		return []byte(""), nil
	}

	return []byte(that.String()), nil
}

func (that *Piece) UnmarshalText(text []byte) error {
	piece, err := parsePiece(string(text))
	if err != nil {
		return err
	}

	*that = piece
	return nil
}

func parsePiece(s string) (Piece, error) {
	switch s {
	case "", ".":
		return Empty, nil
	case "W":
		return WhitePawn, nil
	case "B":
		return BlackPawn, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidPiece, s)
	}
}

// Side is one of the two players. White is the human side and moves up the
// board, Black is the computer side and moves down.
type Side uint8

const (
	White Side = iota
	Black
)

// HumanSide and ComputerSide are fixed by the rules.
const (
	HumanSide    = White
	ComputerSide = Black
)

func (that Side) String() string {
	if that == Black {
		return "black"
	}
	return "white"
}

func (that Side) Opponent() Side {
	if that == Black {
		return White
	}
	return Black
}

func (that Side) Pawn() Piece {
	if that == Black {
		return BlackPawn
	}
	return WhitePawn
}

// Forward is the row delta of a single step.
func (that Side) Forward() int {
	if that == Black {
		return 1
	}
	return -1
}

// HomeRank is the row the side's pawns start on.
func (that Side) HomeRank() int {
	if that == Black {
		return 0
	}
	return Size - 1
}

// GoalRank is the row the side's pawns must reach, i.e. the opponent's home rank.
func (that Side) GoalRank() int {
	return that.Opponent().HomeRank()
}

func (that Side) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*that = White
	case "black":
		*that = Black
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSide, string(text))
	}

	return nil
}

// Position is a cell coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Move carries no reference to the board it was generated from.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (that Move) String() string {
	return that.From.String() + "->" + that.To.String()
}

// IsCapture reports whether the move changes file.
func (that Move) IsCapture() bool {
	return that.From.Col != that.To.Col
}

// Board is indexed [row][col], row 0 at the top.
type Board [Size][Size]Piece

// NewBoard returns the starting position: Black on row 0, White on row 2.
func NewBoard() Board {
	var board Board
	for col := 0; col < Size; col++ {
		board[Black.HomeRank()][col] = BlackPawn
		board[White.HomeRank()][col] = WhitePawn
	}

	return board
}

func (that *Board) At(pos Position) Piece {
	return that[pos.Row][pos.Col]
}

// Count returns the number of pawns the side has left.
func (that *Board) Count(side Side) int {
	pawn := side.Pawn()

	count := 0
	for row := range that {
		for _, cell := range that[row] {
			if cell == pawn {
				count++
			}
		}
	}

	return count
}

// HasPawnOnRank reports whether the side has a pawn anywhere on the row.
func (that *Board) HasPawnOnRank(side Side, row int) bool {
	pawn := side.Pawn()
	for _, cell := range that[row] {
		if cell == pawn {
			return true
		}
	}

	return false
}

// String renders the board as rows separated by '/', e.g. "BBB/.../WWW".
func (that Board) String() string {
	var sb strings.Builder
	for row := range that {
		if row > 0 {
			sb.WriteByte('/')
		}
		for _, cell := range that[row] {
			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}

// ParseBoard is the inverse of Board.String.
func ParseBoard(s string) (Board, error) {
	var board Board

	rows := strings.Split(s, "/")
	if len(rows) != Size {
		return board, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, Size, len(rows))
	}

	for row, line := range rows {
		if len(line) != Size {
			return board, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, row, len(line))
		}

		for col := 0; col < Size; col++ {
			piece, err := parsePiece(line[col : col+1])
			if err != nil {
				return board, fmt.Errorf("%w: row %d: %w", ErrInvalidBoard, row, err)
			}
			board[row][col] = piece
		}
	}

	return board, nil
}

// MustParseBoard panics on malformed input. Intended for tests and fixtures.
func MustParseBoard(s string) Board {
	board, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}

	return board
}
