package domain

type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "DST"
)

// AllPositions is ordered the way the draft board lays out its columns.
var AllPositions = []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDST}

// CorePositions are shown by default; K and DST only appear on explicit request.
var CorePositions = []Position{PositionQB, PositionRB, PositionWR, PositionTE}

func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDST:
		return Position(s), nil
	}
	return "", &ValidationError{Field: "position", Value: s, Reason: "unknown position"}
}

// HiddenByDefault reports whether the position is excluded from the board
// unless the caller asks for it.
func (p Position) HiddenByDefault() bool {
	return p == PositionK || p == PositionDST
}

func (p Position) String() string { return string(p) }

// SortRank orders teammates the way the board groups positions.
func (p Position) SortRank() int {
	for i, pos := range AllPositions {
		if p == pos {
			return i
		}
	}
	return len(AllPositions)
}
