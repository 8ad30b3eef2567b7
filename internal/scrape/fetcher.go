package scrape

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/fortuna/hardwood/internal/store"
)

// Politeness bounds for the sleep inserted before the single fallback
// attempt. The source site blocks aggressive scrapers; keep these generous.
const (
	DefaultMinDelay = 5 * time.Second
	DefaultMaxDelay = 15 * time.Second

	// DefaultTimeout bounds a single request. The site can hang
	// indefinitely without it.
	DefaultTimeout = 30 * time.Second

	// cacheTTL for fetched pages. Historical boxscores never change, so
	// the TTL mostly bounds cache growth.
	cacheTTL = 14 * 24 * time.Hour
)

// userAgents is the fixed pool of browser signatures rotated per session.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/42.0.2311.135 Safari/537.36 Edge/12.246",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/119.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_11_2) AppleWebKit/601.3.9 (KHTML, like Gecko) Version/9.0.2 Safari/601.3.9",
	"Mozilla/5.0 (X11; CrOS x86_64 8172.45.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/51.0.2704.64 Safari/537.36",
}

// PageCache stores fetched page bodies keyed by URL. A Redis-backed
// implementation lives in internal/cache; nil disables caching.
type PageCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Session performs page retrieval with one browser identity chosen from the
// pool at construction. Fetching is strictly sequential; the politeness sleep
// before the fallback attempt is the only suspension point.
type Session struct {
	client   *resty.Client
	base     string
	minDelay time.Duration
	maxDelay time.Duration
	rng      *rand.Rand
	cache    PageCache
	log      zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithBaseURL overrides the source site base URL (tests point this at a
// local server).
func WithBaseURL(base string) Option {
	return func(s *Session) { s.base = base }
}

// WithDelayBounds overrides the politeness sleep bounds.
func WithDelayBounds(min, max time.Duration) Option {
	return func(s *Session) { s.minDelay, s.maxDelay = min, max }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.client.SetTimeout(d) }
}

// WithCache attaches a page cache consulted before any network call.
func WithCache(c PageCache) Option {
	return func(s *Session) { s.cache = c }
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// NewSession creates a fetch session with a randomized browser identity.
func NewSession(opts ...Option) *Session {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	s := &Session{
		client:   resty.New().SetTimeout(DefaultTimeout),
		base:     BaseURL,
		minDelay: DefaultMinDelay,
		maxDelay: DefaultMaxDelay,
		rng:      rng,
		log:      zerolog.Nop(),
	}
	s.client.SetHeader("User-Agent", userAgents[rng.Intn(len(userAgents))])
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchGamePage retrieves the boxscore page for a game. Policy: fetch the
// primary URL; on 404 sleep a randomized politeness interval, then fetch the
// fallback URL exactly once. A second 404 yields ErrPageNotFound. Any other
// non-200 status is surfaced unmodified as a *StatusError; server errors and
// timeouts are never retried.
func (s *Session) FetchGamePage(ctx context.Context, game store.Game, homeAbbr string) ([]byte, error) {
	primary := BoxscoreURL(s.base, game.Date, homeAbbr, false)

	body, status, err := s.get(ctx, primary)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		// fall through to the single fallback attempt
	default:
		return nil, &StatusError{URL: primary, Code: status}
	}

	if err := s.politenessSleep(ctx); err != nil {
		return nil, err
	}

	fallback := BoxscoreURL(s.base, game.Date, homeAbbr, true)
	s.log.Info().Int("game_id", game.ID).Str("url", fallback).Msg("primary page missing, trying fallback link")

	body, status, err = s.get(ctx, fallback)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, fallback)
	default:
		return nil, &StatusError{URL: fallback, Code: status}
	}
}

func (s *Session) get(ctx context.Context, url string) ([]byte, int, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, url); err == nil && cached != "" {
			s.log.Debug().Str("url", url).Msg("page cache hit")
			return []byte(cached), http.StatusOK, nil
		}
	}

	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch %s: %w", url, err)
	}

	if resp.StatusCode() == http.StatusOK && s.cache != nil {
		if err := s.cache.Set(ctx, url, resp.String(), cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("url", url).Msg("page cache write failed")
		}
	}

	return resp.Body(), resp.StatusCode(), nil
}

// politenessSleep pauses for a random duration within the configured bounds,
// honoring context cancellation.
func (s *Session) politenessSleep(ctx context.Context) error {
	d := s.minDelay
	if s.maxDelay > s.minDelay {
		d += time.Duration(s.rng.Int63n(int64(s.maxDelay - s.minDelay)))
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
