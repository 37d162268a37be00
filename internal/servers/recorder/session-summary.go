package recorder

import (
	"context"
	"fmt"

	"github.com/raceline/f1-telemetry/internal/packets"
)

// SessionSummary is what the recorder reports when a session ends.
type SessionSummary struct {
	SessionUID uint64
	Events     int
	ByCode     map[string]int

	// FastestLap is the last fastest lap announced in the session, if any.
	FastestLap *packets.FastestLap
}

// SummarizeSession reads back everything stored for a session.
func (s *RecorderWorker) SummarizeSession(ctx context.Context, sessionUID uint64) (SessionSummary, error) {
	sessionEvents, err := s.events.GetSessionEventsBySessionUID(ctx, sessionUID)
	if err != nil {
		return SessionSummary{}, fmt.Errorf("failed to load events of session %x: %w", sessionUID, err)
	}

	summary := SessionSummary{
		SessionUID: sessionUID,
		Events:     len(sessionEvents),
		ByCode:     make(map[string]int),
	}

	for _, sessionEvent := range sessionEvents {
		summary.ByCode[sessionEvent.EventCode]++
	}

	fastestLaps, err := s.events.GetSessionEventsByCode(ctx, sessionUID, packets.EventCodeFastestLap.String())
	if err != nil {
		return SessionSummary{}, fmt.Errorf("failed to load fastest laps of session %x: %w", sessionUID, err)
	}

	if len(fastestLaps) == 0 {
		return summary, nil
	}

	// rows come back in frame order
	event, err := fastestLaps[len(fastestLaps)-1].EventData()
	if err != nil {
		return SessionSummary{}, err
	}

	if lap, ok := event.Details.(packets.FastestLap); ok {
		summary.FastestLap = &lap
	}

	return summary, nil
}

func (s *RecorderWorker) logSessionSummary(ctx context.Context, sessionUID uint64) {
	summary, err := s.SummarizeSession(ctx, sessionUID)
	if err != nil {
		s.Logger().Warn("failed to summarize session", "sessionUID", sessionUID, "error", err)
		return
	}

	attrs := []any{"sessionUID", sessionUID, "events", summary.Events, "byCode", summary.ByCode}
	if summary.FastestLap != nil {
		attrs = append(attrs, "fastestLapVehicleIdx", summary.FastestLap.VehicleIdx, "fastestLapTime", summary.FastestLap.LapTime)
	}

	s.Logger().Info("session ended", attrs...)
}
