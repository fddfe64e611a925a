package domain

type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterAvailable StatusFilter = "available" // not yet drafted; avoid does not matter
	StatusFilterTarget    StatusFilter = "target"
	StatusFilterAvoid     StatusFilter = "avoid"
	StatusFilterDrafted   StatusFilter = "drafted"
)

func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" {
		return StatusFilterAll, nil
	}
	switch StatusFilter(s) {
	case StatusFilterAll, StatusFilterAvailable, StatusFilterTarget, StatusFilterAvoid, StatusFilterDrafted:
		return StatusFilter(s), nil
	}
	return "", &ValidationError{Field: "status", Value: s, Reason: "unknown status filter"}
}

type BoardOrder string

const (
	OrderOverall    BoardOrder = "overall"  // rank_overall ascending
	OrderByPosition BoardOrder = "position" // rank_position ascending within the group
)

func ParseBoardOrder(s string) (BoardOrder, error) {
	if s == "" {
		return OrderOverall, nil
	}
	switch BoardOrder(s) {
	case OrderOverall, OrderByPosition:
		return BoardOrder(s), nil
	}
	return "", &ValidationError{Field: "order", Value: s, Reason: "unknown ordering"}
}

// PlayerView is one board row: the draft value joined with its ledger entry,
// the inflation-adjusted price, and presence flags for the optional extras.
type PlayerView struct {
	PlayerName    string       `json:"playerName"`
	Season        int          `json:"season"`
	Position      Position     `json:"position"`
	Team          string       `json:"team"`
	RankOverall   int          `json:"rankOverall"`
	RankPosition  int          `json:"rankPosition"`
	BaseValue     int          `json:"baseValue"`
	AdjustedValue int          `json:"adjustedValue"`
	Status        DraftStatus  `json:"status"`
	HasAnalysis   bool         `json:"hasAnalysis"`
	HasTeammates  bool         `json:"hasTeammates"`
}
