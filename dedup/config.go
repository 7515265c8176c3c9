package dedup

import (
	"fmt"
	"time"

	"github.com/plgd-dev/coapmsg/pkg/runner/periodic"
)

// ExchangeLifetime is EXCHANGE_LIFETIME of RFC 7252 computed from the
// default transmission parameters.
const ExchangeLifetime = 247 * time.Second

type ErrorFunc = func(error)

var DefaultConfig = func() Config {
	return Config{
		Errors: func(err error) {
			fmt.Println(err)
		},
		Lifetime:   ExchangeLifetime,
		MaxEntries: 64 * 1024,
	}
}()

// Config of a Filter. A nil PeriodicRunner leaves expiration to explicit
// CheckExpirations calls.
type Config struct {
	Errors         ErrorFunc
	PeriodicRunner periodic.Func
	Lifetime       time.Duration
	// MaxEntries limits the number of tracked identities, 0 means no limit.
	MaxEntries  int
	MatchTokens bool
}

// Option configures a Filter.
type Option interface {
	DedupApply(cfg *Config)
}

// ErrorsOpt errors option.
type ErrorsOpt struct {
	errors ErrorFunc
}

func (o ErrorsOpt) DedupApply(cfg *Config) {
	cfg.Errors = o.errors
}

// WithErrors set function for logging error.
func WithErrors(errors ErrorFunc) ErrorsOpt {
	return ErrorsOpt{errors: errors}
}

// PeriodicRunnerOpt function which is executed in every ticks
type PeriodicRunnerOpt struct {
	periodicRunner periodic.Func
}

func (o PeriodicRunnerOpt) DedupApply(cfg *Config) {
	cfg.PeriodicRunner = o.periodicRunner
}

// WithPeriodicRunner set function which is executed in every ticks.
func WithPeriodicRunner(periodicRunner periodic.Func) PeriodicRunnerOpt {
	return PeriodicRunnerOpt{periodicRunner: periodicRunner}
}

// LifetimeOpt sets how long an identity is remembered.
type LifetimeOpt struct {
	lifetime time.Duration
}

func (o LifetimeOpt) DedupApply(cfg *Config) {
	cfg.Lifetime = o.lifetime
}

// WithLifetime sets how long a received message is remembered, ExchangeLifetime by default.
func WithLifetime(lifetime time.Duration) LifetimeOpt {
	return LifetimeOpt{lifetime: lifetime}
}

// MaxEntriesOpt limits the filter size.
type MaxEntriesOpt struct {
	maxEntries int
}

func (o MaxEntriesOpt) DedupApply(cfg *Config) {
	cfg.MaxEntries = o.maxEntries
}

// WithMaxEntries limits the number of remembered identities.
func WithMaxEntries(maxEntries int) MaxEntriesOpt {
	return MaxEntriesOpt{maxEntries: maxEntries}
}

// MatchTokensOpt makes the token part of the duplicate key.
type MatchTokensOpt struct {
	enable bool
}

func (o MatchTokensOpt) DedupApply(cfg *Config) {
	cfg.MatchTokens = o.enable
}

// WithMatchTokens makes two messages duplicates only when both the message
// ID and the token are equal. By default only the message ID is compared.
func WithMatchTokens(enable bool) MatchTokensOpt {
	return MatchTokensOpt{enable: enable}
}
