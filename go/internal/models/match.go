package models

const (
	DefaultCompetition = "Zona Dunav"
	DefaultMatchStatus = "scheduled"
)

// Match represents a fixture or result. Date and time are kept as the
// operator typed them (YYYY-MM-DD, HH:MM); the database casts them.
type Match struct {
	Competition string  `json:"competition"`
	MatchDate   *string `json:"match_date"`
	MatchTime   *string `json:"match_time"`
	HomeTeam    string  `json:"home_team" validate:"required"`
	AwayTeam    string  `json:"away_team" validate:"required"`
	Venue       *string `json:"venue"`
	Round       *string `json:"round"`
	Status      string  `json:"status"`
}

// Row returns the column values for the matches collection
func (m Match) Row() map[string]any {
	return map[string]any{
		"competition": m.Competition,
		"match_date":  optional(m.MatchDate),
		"match_time":  optional(m.MatchTime),
		"home_team":   m.HomeTeam,
		"away_team":   m.AwayTeam,
		"venue":       optional(m.Venue),
		"round":       optional(m.Round),
		"status":      m.Status,
	}
}
