package models

const DefaultSeason = "2025/2026"

// TableRow is one team's line in the league standings
type TableRow struct {
	Season       string `json:"season"`
	Round        string `json:"round"`
	Team         string `json:"team" validate:"required"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

// Row returns the column values for the table_rows collection
func (r TableRow) Row() map[string]any {
	return map[string]any{
		"season":        r.Season,
		"round":         r.Round,
		"team":          r.Team,
		"played":        r.Played,
		"wins":          r.Wins,
		"draws":         r.Draws,
		"losses":        r.Losses,
		"goals_for":     r.GoalsFor,
		"goals_against": r.GoalsAgainst,
		"goal_diff":     r.GoalDiff,
		"points":        r.Points,
	}
}

// TableReplacement is a complete standings table for one season and round.
// It replaces whatever standings are currently stored.
type TableReplacement struct {
	Season string     `json:"season"`
	Round  string     `json:"round"`
	Rows   []TableRow `json:"rows" validate:"min=1"`
}

// Stamped returns the rows with the replacement's season and round set
// on every row, in their original order.
func (t TableReplacement) Stamped() []TableRow {
	out := make([]TableRow, len(t.Rows))
	for i, r := range t.Rows {
		r.Season = t.Season
		r.Round = t.Round
		out[i] = r
	}
	return out
}
