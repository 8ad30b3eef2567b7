package pipeline

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/fortuna/hardwood/internal/scrape"
	"github.com/fortuna/hardwood/internal/store"
	"github.com/fortuna/hardwood/internal/teams"
)

// Fetcher retrieves the boxscore page for one game.
type Fetcher interface {
	FetchGamePage(ctx context.Context, game store.Game, homeAbbr string) ([]byte, error)
}

// BoxscoreWriter receives the normalized output of one game. The repository
// implements it; tests substitute an in-memory sink.
type BoxscoreWriter interface {
	InsertPlayerRows(ctx context.Context, rows []store.PlayerBoxscoreRow) error
	InsertTeamTotals(ctx context.Context, rows []store.TeamTotalsRow) error
}

// Reporter observes per-game progress. All methods are optional no-ops for
// a nil reporter.
type Reporter interface {
	OnRunStart(total int)
	OnGameProcessed(game store.Game, playerRows, totalsRows int)
	OnGameSkipped(game store.Game, reason error)
	OnGameFailed(game store.Game, err error)
	OnRunComplete(summary Summary)
}

// Summary is the per-run accounting: one game's failure never aborts the
// batch, so the run always reports all three buckets.
type Summary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Runner walks a batch of games strictly sequentially: fetch, parse both team
// tables, assemble, normalize, write, then move on. There is no concurrent
// fetching against the source site.
type Runner struct {
	fetcher   Fetcher
	resolver  *teams.Resolver
	writer    BoxscoreWriter
	reporter  Reporter
	statsType string
	log       zerolog.Logger
}

// NewRunner wires a pipeline runner. reporter may be nil.
func NewRunner(fetcher Fetcher, resolver *teams.Resolver, writer BoxscoreWriter, reporter Reporter, statsType string, log zerolog.Logger) *Runner {
	if statsType == "" {
		statsType = scrape.StatsBasic
	}
	return &Runner{
		fetcher:   fetcher,
		resolver:  resolver,
		writer:    writer,
		reporter:  reporter,
		statsType: statsType,
		log:       log,
	}
}

// Run processes every game in order. Cancellation is honored between games;
// a partially processed game is dropped, never partially committed.
func (r *Runner) Run(ctx context.Context, games []store.Game) (Summary, error) {
	if r.reporter != nil {
		r.reporter.OnRunStart(len(games))
	}

	var summary Summary
	for _, game := range games {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		playerRows, totalsRows, err := r.processGame(ctx, game)
		switch {
		case err == nil:
			summary.Processed++
			r.log.Info().Int("game_id", game.ID).Int("players", playerRows).Msg("game processed")
			if r.reporter != nil {
				r.reporter.OnGameProcessed(game, playerRows, totalsRows)
			}
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return summary, err
		case isSkippable(err):
			summary.Skipped++
			r.log.Warn().Err(err).Int("game_id", game.ID).Msg("game skipped")
			if r.reporter != nil {
				r.reporter.OnGameSkipped(game, err)
			}
		default:
			summary.Failed++
			r.log.Error().Err(err).Int("game_id", game.ID).Msg("game failed")
			if r.reporter != nil {
				r.reporter.OnGameFailed(game, err)
			}
		}
	}

	if r.reporter != nil {
		r.reporter.OnRunComplete(summary)
	}
	return summary, nil
}

// isSkippable classifies the errors that mark a single game unrecoverable by
// policy: a page missing on both URLs, a page without the expected table, a
// row that cannot be normalized, or a team outside the reference table.
// Everything else (unexpected HTTP statuses, network failures, storage
// errors) counts as a failure but still only affects the one game.
func isSkippable(err error) bool {
	var missingTable *scrape.MissingTableError
	var malformed *scrape.MalformedRowError
	return errors.Is(err, scrape.ErrPageNotFound) ||
		errors.Is(err, teams.ErrUnknownTeam) ||
		errors.Is(err, teams.ErrIDRange) ||
		errors.As(err, &missingTable) ||
		errors.As(err, &malformed)
}

func (r *Runner) processGame(ctx context.Context, game store.Game) (int, int, error) {
	homeAbbr, err := r.resolver.Abbreviation(game.HomeTeamID)
	if err != nil {
		return 0, 0, err
	}
	awayAbbr, err := r.resolver.Abbreviation(game.AwayTeamID)
	if err != nil {
		return 0, 0, err
	}

	body, err := r.fetcher.FetchGamePage(ctx, game, homeAbbr)
	if err != nil {
		return 0, 0, err
	}

	doc, err := scrape.ParseDocument(body)
	if err != nil {
		return 0, 0, err
	}

	homeTable, err := scrape.ExtractTeamTable(doc, homeAbbr, r.statsType)
	if err != nil {
		return 0, 0, err
	}
	awayTable, err := scrape.ExtractTeamTable(doc, awayAbbr, r.statsType)
	if err != nil {
		return 0, 0, err
	}

	rawPlayers, err := scrape.AssemblePlayerRows(homeTable, awayTable, game, homeAbbr, awayAbbr)
	if err != nil {
		return 0, 0, err
	}
	rawTotals, err := scrape.AssembleTotalsRows(homeTable, awayTable, game, homeAbbr, awayAbbr)
	if err != nil {
		return 0, 0, err
	}

	players, err := scrape.NormalizePlayerRows(rawPlayers)
	if err != nil {
		return 0, 0, err
	}
	totals, err := scrape.NormalizeTotalsRows(rawTotals)
	if err != nil {
		return 0, 0, err
	}

	if err := r.writer.InsertPlayerRows(ctx, players); err != nil {
		return 0, 0, err
	}
	if err := r.writer.InsertTeamTotals(ctx, totals); err != nil {
		return 0, 0, err
	}
	return len(players), len(totals), nil
}
