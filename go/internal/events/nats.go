package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

type NATSConfig struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
	FlushTimeout  time.Duration
}

func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: "site.content",
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
		FlushTimeout:  2 * time.Second,
	}
}

// publisher is the part of *nats.Conn the notifier needs.
type publisher interface {
	PublishMsg(msg *nats.Msg) error
	FlushTimeout(timeout time.Duration) error
	IsConnected() bool
	Close()
}

// NATSNotifier publishes ContentChanged events as core NATS messages on
// <prefix>.<collection>.
type NATSNotifier struct {
	conn   publisher
	config NATSConfig
	clock  clockwork.Clock
}

var _ Notifier = (*NATSNotifier)(nil)

func NewNATSNotifier(cfg NATSConfig) (*NATSNotifier, error) {
	defaults := DefaultNATSConfig()
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = defaults.SubjectPrefix
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = defaults.ReconnectWait
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = defaults.FlushTimeout
	}

	opts := []nats.Option{
		nats.Name("clubadmin"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return newNATSNotifier(nc, cfg, clockwork.NewRealClock()), nil
}

func newNATSNotifier(conn publisher, cfg NATSConfig, clock clockwork.Clock) *NATSNotifier {
	return &NATSNotifier{conn: conn, config: cfg, clock: clock}
}

// ContentChanged fills in the id and timestamp when unset and publishes
// the event. Errors are logged only.
func (n *NATSNotifier) ContentChanged(ctx context.Context, ev ContentChanged) {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = n.clock.Now().UTC()
	}

	subject := fmt.Sprintf("%s.%s", n.config.SubjectPrefix, ev.Collection)
	logger := log.Ctx(ctx).With().
		Str("subject", subject).
		Str("event_id", ev.ID.String()).
		Logger()

	data, err := json.Marshal(ev)
	if err != nil {
		logger.Error().Err(err).Msg("marshal content event")
		return
	}

	err = n.conn.PublishMsg(&nats.Msg{
		Subject: subject,
		Data:    data,
		Header: nats.Header{
			"Event-ID": []string{ev.ID.String()},
			"Action":   []string{ev.Action},
		},
	})
	if err == nil {
		err = n.conn.FlushTimeout(n.config.FlushTimeout)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("content event not delivered")
		return
	}

	logger.Debug().Str("action", ev.Action).Msg("published content event")
}

// Connected reports whether the NATS connection is currently up.
func (n *NATSNotifier) Connected() bool {
	return n.conn != nil && n.conn.IsConnected()
}

func (n *NATSNotifier) Close() error {
	if n.conn != nil {
		n.conn.Close()
	}
	return nil
}
