package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/clubadmin/go/internal/backend"
	"github.com/mcdev12/clubadmin/go/internal/events"
	"github.com/rs/zerolog/log"
)

// TableScope decides which stored standings a replace_table wipes before
// inserting the new ones.
type TableScope string

const (
	// TableScopeAll wipes every stored row; the site shows one table.
	TableScopeAll TableScope = "all"
	// TableScopeSeason wipes only rows of the submitted season.
	TableScopeSeason TableScope = "season"
	// TableScopeSeasonRound wipes only rows of the submitted season and round.
	TableScopeSeasonRound TableScope = "season_round"
)

// Valid reports whether s is a known scope.
func (s TableScope) Valid() bool {
	switch s {
	case TableScopeAll, TableScopeSeason, TableScopeSeasonRound:
		return true
	}
	return false
}

// Filter returns the delete filter for a replacement of season/round.
func (s TableScope) Filter(season, round string) backend.Filter {
	switch s {
	case TableScopeSeason:
		return backend.Where("season", backend.OpEq, season)
	case TableScopeSeasonRound:
		return backend.Where("season", backend.OpEq, season).And("round", backend.OpEq, round)
	default:
		return backend.AllRows()
	}
}

// Config is the dispatcher's read-only configuration.
type Config struct {
	MediaBucket    string
	MediaFolder    string
	TableScope     TableScope
	RequestTimeout time.Duration
}

// Notifier is told about every successful content change.
type Notifier interface {
	ContentChanged(ctx context.Context, ev events.ContentChanged)
}

// App dispatches admin requests to the backend
type App struct {
	cfg        Config
	gate       *Gate
	normalizer *Normalizer
	backend    backend.Client
	notifier   Notifier
	clock      clockwork.Clock

	// serializes delete+insert pairs within this process
	tableMu sync.Mutex
}

// NewApp creates a new admin App. A nil notifier or clock falls back to
// events.Nop and the real clock.
func NewApp(cfg Config, gate *Gate, normalizer *Normalizer, client backend.Client, notifier Notifier, clock clockwork.Clock) *App {
	if cfg.MediaBucket == "" {
		cfg.MediaBucket = "public"
	}
	if cfg.MediaFolder == "" {
		cfg.MediaFolder = "news"
	}
	if !cfg.TableScope.Valid() {
		cfg.TableScope = TableScopeAll
	}
	if notifier == nil {
		notifier = events.Nop{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		cfg:        cfg,
		gate:       gate,
		normalizer: normalizer,
		backend:    client,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle authenticates, validates and executes a request.
func (a *App) Handle(ctx context.Context, req Request) (Result, error) {
	if err := a.gate.Check(req.Pin); err != nil {
		return nil, err
	}
	if req.Action == "" {
		return nil, validationError("Missing action")
	}

	cmd, err := a.normalizer.Parse(req.Action, req.Fields)
	if err != nil {
		return nil, err
	}
	return a.Execute(ctx, cmd)
}

// Execute runs an already validated command.
func (a *App) Execute(ctx context.Context, cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case PingCommand:
		return Result{"pong": true}, nil
	case NewsCommand:
		return a.insertOne(ctx, c.Action(), backend.CollectionNews, c.Post.Row())
	case MatchCommand:
		return a.insertOne(ctx, c.Action(), backend.CollectionMatches, c.Match.Row())
	case PlayerCommand:
		return a.insertOne(ctx, c.Action(), backend.CollectionPlayers, c.Player.Row())
	case TableCommand:
		return a.replaceTable(ctx, c)
	case MediaCommand:
		return a.uploadMedia(ctx, c)
	}
	return nil, newError(CategoryUnknownAction, "Unknown action")
}

func (a *App) insertOne(ctx context.Context, action Action, collection backend.Collection, row backend.Row) (Result, error) {
	callCtx, cancel := a.callContext(ctx)
	defer cancel()

	inserted, err := a.backend.Insert(callCtx, collection, []backend.Row{row}, true)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("action", string(action)).Str("collection", string(collection)).Msg("insert failed")
		return nil, fromBackend(err)
	}

	log.Ctx(ctx).Info().Str("action", string(action)).Str("collection", string(collection)).Int("count", len(inserted)).Msg("rows inserted")
	a.notifier.ContentChanged(ctx, events.ContentChanged{
		Action:     string(action),
		Collection: string(collection),
		Count:      1,
	})
	return Result{"inserted": inserted}, nil
}

// replaceTable deletes the stored standings and inserts the new rows.
// Between a successful delete and a failed insert the table is empty;
// that case gets its own error category so the operator re-submits.
func (a *App) replaceTable(ctx context.Context, c TableCommand) (Result, error) {
	stamped := c.Table.Stamped()
	rows := make([]backend.Row, len(stamped))
	for i, r := range stamped {
		rows[i] = r.Row()
	}
	filter := a.cfg.TableScope.Filter(c.Table.Season, c.Table.Round)

	a.tableMu.Lock()
	defer a.tableMu.Unlock()

	logger := log.Ctx(ctx).With().
		Str("action", string(ActionReplaceTable)).
		Str("season", c.Table.Season).
		Str("round", c.Table.Round).
		Str("scope", string(a.cfg.TableScope)).
		Logger()

	deleteCtx, cancelDelete := a.callContext(ctx)
	err := a.backend.DeleteAll(deleteCtx, backend.CollectionTableRows, filter)
	cancelDelete()
	if err != nil {
		logger.Error().Err(err).Msg("clearing table rows failed")
		return nil, fromBackend(err)
	}

	insertCtx, cancelInsert := a.callContext(ctx)
	inserted, err := a.backend.Insert(insertCtx, backend.CollectionTableRows, rows, true)
	cancelInsert()
	if err != nil {
		logger.Error().Err(err).Int("rows", len(rows)).Msg("table rows deleted but reinsertion failed")
		cause := fromBackend(err)
		return nil, &Error{
			Category: CategoryPartialReplace,
			Message:  fmt.Sprintf("table rows deleted but reinsertion failed: %s", cause.Message),
			Err:      err,
		}
	}

	count := len(inserted)
	if inserted == nil {
		count = len(rows)
	}
	logger.Info().Int("count", count).Msg("table replaced")
	a.notifier.ContentChanged(ctx, events.ContentChanged{
		Action:     string(ActionReplaceTable),
		Collection: string(backend.CollectionTableRows),
		Count:      count,
	})
	return Result{"inserted": count}, nil
}

func (a *App) uploadMedia(ctx context.Context, c MediaCommand) (Result, error) {
	key := c.Asset.ObjectKey(a.cfg.MediaFolder, a.clock.Now())

	callCtx, cancel := a.callContext(ctx)
	defer cancel()

	url, err := a.backend.UploadObject(callCtx, a.cfg.MediaBucket, key, c.Asset.Data, c.Asset.ContentType)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("bucket", a.cfg.MediaBucket).Str("path", key).Msg("upload failed")
		out := fromBackend(err)
		out.Category = CategoryRemoteUpload
		return nil, out
	}

	log.Ctx(ctx).Info().Str("bucket", a.cfg.MediaBucket).Str("path", key).Int("bytes", len(c.Asset.Data)).Msg("media uploaded")
	a.notifier.ContentChanged(ctx, events.ContentChanged{
		Action:     string(ActionUploadMedia),
		Collection: "media",
		Count:      1,
		URL:        url,
	})
	return Result{"url": url, "path": key}, nil
}

func (a *App) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.cfg.RequestTimeout)
}
