package admin

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mcdev12/clubadmin/go/internal/models"
)

// Defaults are the values used when an optional field is left empty.
type Defaults struct {
	Competition string
	Season      string
	MatchStatus string
	ContentType string
	Filename    string
}

func StandardDefaults() Defaults {
	return Defaults{
		Competition: models.DefaultCompetition,
		Season:      models.DefaultSeason,
		MatchStatus: models.DefaultMatchStatus,
		ContentType: models.DefaultContentType,
		Filename:    models.DefaultMediaFilename,
	}
}

// Normalizer turns raw request fields into typed commands. It does no I/O.
type Normalizer struct {
	defaults Defaults
	validate *validator.Validate
}

func NewNormalizer(defaults Defaults) *Normalizer {
	std := StandardDefaults()
	if defaults.Competition == "" {
		defaults.Competition = std.Competition
	}
	if defaults.Season == "" {
		defaults.Season = std.Season
	}
	if defaults.MatchStatus == "" {
		defaults.MatchStatus = std.MatchStatus
	}
	if defaults.ContentType == "" {
		defaults.ContentType = std.ContentType
	}
	if defaults.Filename == "" {
		defaults.Filename = std.Filename
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	return &Normalizer{defaults: defaults, validate: v}
}

// Parse selects the normalization routine for action.
func (n *Normalizer) Parse(action Action, f Fields) (Command, error) {
	switch action {
	case ActionPing:
		return PingCommand{}, nil
	case ActionAddNews:
		return n.News(f)
	case ActionAddMatch:
		return n.Match(f)
	case ActionAddPlayer:
		return n.Player(f)
	case ActionReplaceTable:
		return n.Table(f)
	case ActionUploadMedia:
		return n.Media(f)
	}
	return nil, newError(CategoryUnknownAction, "Unknown action")
}

func (n *Normalizer) News(f Fields) (NewsCommand, error) {
	post := models.NewsPost{
		Title:    text(f["title"]),
		Body:     text(f["body"]),
		ImageURL: optionalText(f["image_url"]),
	}
	if err := n.check(post); err != nil {
		return NewsCommand{}, err
	}
	return NewsCommand{Post: post}, nil
}

func (n *Normalizer) Match(f Fields) (MatchCommand, error) {
	match := models.Match{
		Competition: textOr(f["competition"], n.defaults.Competition),
		MatchDate:   optionalText(f["match_date"]),
		MatchTime:   optionalText(f["match_time"]),
		HomeTeam:    text(f["home_team"]),
		AwayTeam:    text(f["away_team"]),
		Venue:       optionalText(f["venue"]),
		Round:       optionalText(f["round"]),
		Status:      textOr(f["status"], n.defaults.MatchStatus),
	}
	if err := n.check(match); err != nil {
		return MatchCommand{}, err
	}
	return MatchCommand{Match: match}, nil
}

func (n *Normalizer) Player(f Fields) (PlayerCommand, error) {
	num, ok := number(f["number"])
	if !ok {
		num = 0
	}
	player := models.Player{
		FullName:      text(f["full_name"]),
		Number:        num,
		PositionGroup: text(f["position_group"]),
	}
	if err := n.check(player); err != nil {
		return PlayerCommand{}, err
	}
	return PlayerCommand{Player: player}, nil
}

// Table keeps the submitted row order and silently drops rows without a
// team. Rows are stamped later, when the replacement is executed.
func (n *Normalizer) Table(f Fields) (TableCommand, error) {
	rawRows, _ := f["rows"].([]any)
	if len(rawRows) == 0 {
		return TableCommand{}, validationError("Missing rows")
	}

	table := models.TableReplacement{
		Season: textOr(f["season"], n.defaults.Season),
		Round:  text(f["round"]),
	}
	for _, raw := range rawRows {
		r, _ := raw.(map[string]any)
		row := models.TableRow{
			Team:         text(r["team"]),
			Played:       integer(r["played"]),
			Wins:         integer(r["wins"]),
			Draws:        integer(r["draws"]),
			Losses:       integer(r["losses"]),
			GoalsFor:     integer(r["goals_for"]),
			GoalsAgainst: integer(r["goals_against"]),
			GoalDiff:     integer(r["goal_diff"]),
			Points:       integer(r["points"]),
		}
		if row.Team == "" {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	if len(table.Rows) == 0 {
		return TableCommand{}, validationError("Rows invalid")
	}
	if err := n.check(table); err != nil {
		return TableCommand{}, err
	}
	return TableCommand{Table: table}, nil
}

func (n *Normalizer) Media(f Fields) (MediaCommand, error) {
	encoded := text(f["base64"])
	if encoded == "" {
		return MediaCommand{}, validationError("Missing base64")
	}
	mediaType, encoded := splitDataURL(encoded)
	data, err := decodeBase64(encoded)
	if err != nil || len(data) == 0 {
		return MediaCommand{}, validationError("Bad base64")
	}

	contentType := n.defaults.ContentType
	if mediaType != "" {
		contentType = mediaType
	}
	asset := models.MediaAsset{
		Filename:    models.SanitizeFilename(textOr(f["filename"], n.defaults.Filename)),
		ContentType: textOr(f["contentType"], contentType),
		Data:        data,
	}
	if err := n.check(asset); err != nil {
		return MediaCommand{}, err
	}
	return MediaCommand{Asset: asset}, nil
}

// fieldMessages overrides the generic "Missing <field>" text where the
// admin UI expects a specific message.
var fieldMessages = map[string]string{
	"home_team": "Missing teams",
	"away_team": "Missing teams",
	"number":    "Bad number",
}

// check runs the struct tags and reports the first failing field.
func (n *Normalizer) check(v any) error {
	err := n.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &Error{Category: CategoryValidation, Message: err.Error(), Err: err}
	}

	field := verrs[0].Field()
	if msg, ok := fieldMessages[field]; ok {
		return &Error{Category: CategoryValidation, Message: msg, Err: err}
	}
	if verrs[0].Tag() == "required" || verrs[0].Tag() == "min" {
		return &Error{Category: CategoryValidation, Message: "Missing " + field, Err: err}
	}
	return &Error{Category: CategoryValidation, Message: "Bad " + field, Err: err}
}

// text coerces a raw value to trimmed text. Strings and numbers keep
// their textual form, true becomes "true"; null, false, zero, arrays and
// objects count as absent.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		if f == 0 {
			return ""
		}
		return formatNumber(f)
	case float64:
		if t == 0 || math.IsNaN(t) {
			return ""
		}
		return formatNumber(t)
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case bool:
		if t {
			return "true"
		}
	}
	return ""
}

// formatNumber writes f in its shortest plain form, so 1e2 reads "100".
// Very large and very small magnitudes keep exponent notation.
func formatNumber(f float64) string {
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func textOr(v any, fallback string) string {
	if s := text(v); s != "" {
		return s
	}
	return fallback
}

func optionalText(v any) *string {
	s := text(v)
	if s == "" {
		return nil
	}
	return &s
}

// number parses JSON numbers and numeric strings. ok is false for
// absent, non-numeric, NaN and infinite values.
func number(v any) (float64, bool) {
	var f float64
	var err error
	switch t := v.(type) {
	case json.Number:
		f, err = strconv.ParseFloat(t.String(), 64)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	case float64:
		f = t
	case int:
		f = float64(t)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// integer is number truncated toward zero, with 0 for anything invalid
// or outside the int32 range.
func integer(v any) int {
	f, ok := number(v)
	if !ok {
		return 0
	}
	f = math.Trunc(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// splitDataURL strips a "data:<type>;base64," prefix and returns the
// media type it named. Plain payloads come back unchanged.
func splitDataURL(s string) (mediaType, payload string) {
	if !strings.HasPrefix(s, "data:") {
		return "", s
	}
	header, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", s
	}
	mediaType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	return strings.TrimSpace(mediaType), payload
}

// decodeBase64 accepts standard and URL-safe alphabets, with or without
// padding, ignoring embedded line breaks.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)

	var lastErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
