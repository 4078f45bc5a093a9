package models

// Player represents a squad member listed on the club site
type Player struct {
	FullName      string  `json:"full_name" validate:"required"`
	Number        float64 `json:"number" validate:"gt=0"`
	PositionGroup string  `json:"position_group" validate:"required"`
}

// Row returns the column values for the players collection
func (p Player) Row() map[string]any {
	return map[string]any{
		"full_name":      p.FullName,
		"number":         p.Number,
		"position_group": p.PositionGroup,
	}
}
