package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/fortuna/hardwood/internal/api/rest"
	"github.com/fortuna/hardwood/internal/api/websocket"
	"github.com/fortuna/hardwood/internal/cache"
	"github.com/fortuna/hardwood/internal/config"
	"github.com/fortuna/hardwood/internal/pipeline"
	"github.com/fortuna/hardwood/internal/publisher"
	"github.com/fortuna/hardwood/internal/schedule"
	"github.com/fortuna/hardwood/internal/scrape"
	"github.com/fortuna/hardwood/internal/store"
	"github.com/fortuna/hardwood/internal/store/repository"
	"github.com/fortuna/hardwood/internal/teams"
)

const (
	appName    = "hardwood"
	appVersion = "1.0.0"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	var (
		dsn         = flag.String("dsn", cfg.DatabaseDSN, "PostgreSQL DSN")
		scheduleDir = flag.String("schedule-dir", cfg.ScheduleDir, "Directory holding schedule_<YYYY>-<YYYY>.json files")
		seasons     = flag.String("seasons", "", "Season closing years to import, e.g. 2024 or 1985-2025")
		statsType   = flag.String("stats", cfg.StatsType, "Stat table variant: basic or advanced")
		baseURL     = flag.String("base-url", cfg.BaseURL, "Source site base URL")
		serve       = flag.Bool("serve", false, "Start the REST and websocket servers")
		cronSpec    = flag.String("cron", "", "Cron spec for periodic schedule refresh runs")
		dryRun      = flag.Bool("dry-run", false, "Normalize the schedule and report counts, write and fetch nothing")
	)
	flag.Parse()

	logger.Info().Str("version", appVersion).Msg(appName)

	if *seasons == "" && !*serve {
		logger.Fatal().Msg("specify --seasons, --serve, or both")
	}
	if *cronSpec != "" && *seasons == "" {
		logger.Fatal().Msg("--cron requires --seasons")
	}

	db, err := store.NewDatabase(*dsn, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	resolver := teams.NewResolver()
	teamRepo := repository.NewTeamRepository(db)
	gameRepo := repository.NewGameRepository(db)
	boxRepo := repository.NewBoxscoreRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := teamRepo.Seed(ctx, resolver.All()); err != nil {
		logger.Fatal().Err(err).Msg("seed teams")
	}

	sessionOpts := []scrape.Option{
		scrape.WithBaseURL(*baseURL),
		scrape.WithDelayBounds(cfg.MinDelay, cfg.MaxDelay),
		scrape.WithTimeout(cfg.HTTPTimeout),
		scrape.WithLogger(logger),
	}
	reporters := []pipeline.Reporter{&consoleReporter{log: logger}}

	if cfg.RedisURL != "" {
		pageCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect redis")
		}
		defer pageCache.Close()
		sessionOpts = append(sessionOpts, scrape.WithCache(pageCache))

		streamPub, err := publisher.NewStreamPublisher(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect redis stream")
		}
		defer streamPub.Close()
		reporters = append(reporters, streamPub)
	}
	session := scrape.NewSession(sessionOpts...)

	var wsServer *websocket.Server
	if *serve {
		wsServer = websocket.NewServer(logger)
		reporters = append(reporters, websocket.NewProgressReporter(wsServer.Hub()))

		restServer := rest.NewServer(cfg.HTTPPort, db, logger)
		go func() {
			logger.Info().Str("port", cfg.HTTPPort).Msg("rest server listening")
			if err := restServer.Start(); err != nil {
				logger.Error().Err(err).Msg("rest server stopped")
			}
		}()
		go func() {
			if err := wsServer.Start(cfg.WSPort); err != nil {
				logger.Error().Err(err).Msg("websocket server stopped")
			}
		}()
		defer restServer.Shutdown(context.Background())
		defer wsServer.Shutdown(context.Background())
	}

	runner := pipeline.NewRunner(session, resolver, boxRepo, multiReporter(reporters), *statsType, logger)
	normalizer := schedule.NewNormalizer(resolver, logger)

	runOnce := func(ctx context.Context) error {
		years, err := parseSeasons(*seasons)
		if err != nil {
			return err
		}

		raw, err := schedule.LoadSeasons(*scheduleDir, years)
		if err != nil {
			return err
		}
		existing, err := gameRepo.ExistingIDs(ctx)
		if err != nil {
			return err
		}
		games, err := normalizer.Normalize(raw, existing)
		if err != nil {
			return err
		}

		// A re-imported schedule must not hand already-known games a
		// second identifier.
		keys, err := gameRepo.ExistingKeys(ctx)
		if err != nil {
			return err
		}
		fresh := games[:0]
		for _, g := range games {
			if _, ok := keys[repository.GameKey(g.Date, g.HomeTeamID, g.AwayTeamID)]; !ok {
				fresh = append(fresh, g)
			}
		}

		logger.Info().
			Int("schedule_rows", len(raw)).
			Int("normalized", len(games)).
			Int("new_games", len(fresh)).
			Msg("schedule normalized")

		if *dryRun {
			logger.Info().Msg("dry run, stopping before insert and fetch")
			return nil
		}

		if err := gameRepo.InsertGames(ctx, fresh); err != nil {
			return err
		}

		pending, err := gameRepo.UnscrapedGames(ctx)
		if err != nil {
			return err
		}
		summary, err := runner.Run(ctx, pending)
		logger.Info().
			Int("processed", summary.Processed).
			Int("skipped", summary.Skipped).
			Int("failed", summary.Failed).
			Msg("run finished")
		return err
	}

	if *seasons != "" {
		if err := runOnce(ctx); err != nil && ctx.Err() == nil {
			logger.Fatal().Err(err).Msg("run failed")
		}
	}

	if *cronSpec != "" {
		c := cron.New()
		if _, err := c.AddFunc(*cronSpec, func() {
			if err := runOnce(ctx); err != nil {
				logger.Error().Err(err).Msg("scheduled run failed")
			}
		}); err != nil {
			logger.Fatal().Err(err).Str("spec", *cronSpec).Msg("invalid cron spec")
		}
		c.Start()
		defer c.Stop()
		logger.Info().Str("spec", *cronSpec).Msg("scheduled refresh enabled")
	}

	if *serve || *cronSpec != "" {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
	}
}

// parseSeasons expands "1985-2025" or "2024" into season closing years.
func parseSeasons(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("no seasons specified")
	}

	parts := strings.SplitN(s, "-", 2)
	first, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid season %q: %w", parts[0], err)
	}
	last := first
	if len(parts) == 2 {
		if last, err = strconv.Atoi(parts[1]); err != nil {
			return nil, fmt.Errorf("invalid season %q: %w", parts[1], err)
		}
	}
	if last < first {
		return nil, fmt.Errorf("season range %q is reversed", s)
	}

	years := make([]int, 0, last-first+1)
	for y := first; y <= last; y++ {
		years = append(years, y)
	}
	return years, nil
}

// consoleReporter logs per-game progress.
type consoleReporter struct {
	log zerolog.Logger
}

func (c *consoleReporter) OnRunStart(total int) {
	c.log.Info().Int("games", total).Msg("starting scrape run")
}

func (c *consoleReporter) OnGameProcessed(game store.Game, playerRows, totalsRows int) {
	c.log.Info().Int("game_id", game.ID).Int("player_rows", playerRows).Msg("processed")
}

func (c *consoleReporter) OnGameSkipped(game store.Game, reason error) {
	c.log.Warn().Int("game_id", game.ID).Err(reason).Msg("skipped")
}

func (c *consoleReporter) OnGameFailed(game store.Game, err error) {
	c.log.Error().Int("game_id", game.ID).Err(err).Msg("failed")
}

func (c *consoleReporter) OnRunComplete(summary pipeline.Summary) {
	c.log.Info().
		Int("processed", summary.Processed).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("run complete")
}

// multiReporter fans events out to several reporters.
func multiReporter(reporters []pipeline.Reporter) pipeline.Reporter {
	if len(reporters) == 1 {
		return reporters[0]
	}
	return &fanoutReporter{reporters: reporters}
}

type fanoutReporter struct {
	reporters []pipeline.Reporter
}

func (f *fanoutReporter) OnRunStart(total int) {
	for _, r := range f.reporters {
		r.OnRunStart(total)
	}
}

func (f *fanoutReporter) OnGameProcessed(game store.Game, playerRows, totalsRows int) {
	for _, r := range f.reporters {
		r.OnGameProcessed(game, playerRows, totalsRows)
	}
}

func (f *fanoutReporter) OnGameSkipped(game store.Game, reason error) {
	for _, r := range f.reporters {
		r.OnGameSkipped(game, reason)
	}
}

func (f *fanoutReporter) OnGameFailed(game store.Game, err error) {
	for _, r := range f.reporters {
		r.OnGameFailed(game, err)
	}
}

func (f *fanoutReporter) OnRunComplete(summary pipeline.Summary) {
	for _, r := range f.reporters {
		r.OnRunComplete(summary)
	}
}
