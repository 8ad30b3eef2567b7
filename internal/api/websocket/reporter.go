package websocket

import (
	"encoding/json"

	"github.com/fortuna/hardwood/internal/pipeline"
	"github.com/fortuna/hardwood/internal/store"
)

// ProgressReporter implements pipeline.Reporter by broadcasting one JSON
// event per game to the hub.
type ProgressReporter struct {
	hub *Hub
}

// NewProgressReporter wraps a hub.
func NewProgressReporter(hub *Hub) *ProgressReporter {
	return &ProgressReporter{hub: hub}
}

type progressEvent struct {
	Event      string            `json:"event"`
	GameID     int               `json:"game_id,omitempty"`
	Date       string            `json:"date,omitempty"`
	PlayerRows int               `json:"player_rows,omitempty"`
	TotalsRows int               `json:"totals_rows,omitempty"`
	Total      int               `json:"total,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	Summary    *pipeline.Summary `json:"summary,omitempty"`
}

func (r *ProgressReporter) publish(ev progressEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	r.hub.Broadcast(data)
}

func (r *ProgressReporter) OnRunStart(total int) {
	r.publish(progressEvent{Event: "run_start", Total: total})
}

func (r *ProgressReporter) OnGameProcessed(game store.Game, playerRows, totalsRows int) {
	r.publish(progressEvent{
		Event:      "game_processed",
		GameID:     game.ID,
		Date:       game.Date.Format("2006-01-02"),
		PlayerRows: playerRows,
		TotalsRows: totalsRows,
	})
}

func (r *ProgressReporter) OnGameSkipped(game store.Game, reason error) {
	r.publish(progressEvent{
		Event:  "game_skipped",
		GameID: game.ID,
		Date:   game.Date.Format("2006-01-02"),
		Reason: reason.Error(),
	})
}

func (r *ProgressReporter) OnGameFailed(game store.Game, err error) {
	r.publish(progressEvent{
		Event:  "game_failed",
		GameID: game.ID,
		Date:   game.Date.Format("2006-01-02"),
		Reason: err.Error(),
	})
}

func (r *ProgressReporter) OnRunComplete(summary pipeline.Summary) {
	r.publish(progressEvent{Event: "run_complete", Summary: &summary})
}
