package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mcdev12/clubadmin/go/internal/models"
)

// Action names one admin operation.
type Action string

const (
	ActionPing         Action = "ping"
	ActionAddNews      Action = "add_news"
	ActionAddMatch     Action = "add_match"
	ActionAddPlayer    Action = "add_player"
	ActionReplaceTable Action = "replace_table"
	ActionUploadMedia  Action = "upload_media"
)

// Fields is the raw request body. Numbers are json.Number.
type Fields map[string]any

// Request is a decoded but not yet validated admin request.
type Request struct {
	Pin    string
	Action Action
	Fields Fields
}

// Result holds the action specific fields of a successful response.
type Result map[string]any

// Command is a validated, typed admin operation.
type Command interface {
	Action() Action
}

type PingCommand struct{}

type NewsCommand struct {
	Post models.NewsPost
}

type MatchCommand struct {
	Match models.Match
}

type PlayerCommand struct {
	Player models.Player
}

type TableCommand struct {
	Table models.TableReplacement
}

type MediaCommand struct {
	Asset models.MediaAsset
}

func (PingCommand) Action() Action   { return ActionPing }
func (NewsCommand) Action() Action   { return ActionAddNews }
func (MatchCommand) Action() Action  { return ActionAddMatch }
func (PlayerCommand) Action() Action { return ActionAddPlayer }
func (TableCommand) Action() Action  { return ActionReplaceTable }
func (MediaCommand) Action() Action  { return ActionUploadMedia }

// ParseRequest decodes a JSON object body. An empty body is treated as {}.
func ParseRequest(body io.Reader) (Request, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return Request{}, validationError("Request body too large")
		}
		return Request{}, validationError("Bad JSON")
	}

	fields := Fields{}
	if len(bytes.TrimSpace(raw)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&fields); err != nil || fields == nil {
			return Request{}, validationError("Bad JSON")
		}
		if dec.More() {
			return Request{}, validationError("Bad JSON")
		}
	}

	return Request{
		Pin:    text(fields["pin"]),
		Action: Action(text(fields["action"])),
		Fields: fields,
	}, nil
}
