package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/raceline/f1-telemetry/internal/packets"
)

const (
	ConstraintSessionEventsFrameUnique = "session_events_frame_unique"

	// NoVehicle is stored for events that do not refer to a single car.
	NoVehicle uint8 = 255
)

var ErrSessionEventNotUnique = errors.New("session event not unique")

// SessionEvent is one event packet as stored in the session_events table. A frame can carry
// several events with the same code (two penalties, say), so rows are unique on the hash of their
// details as well. Only a repeated delivery of the same packet is rejected.
type SessionEvent struct {
	bun.BaseModel `bun:"table:session_events"`

	ID              uint64          `bun:"id,pk,autoincrement,type:bigint unsigned"`
	SessionUID      uint64          `bun:"type:bigint unsigned,notnull,unique:session_events_frame_unique"`
	FrameIdentifier uint32          `bun:"type:int unsigned,notnull,unique:session_events_frame_unique"`
	SessionTime     float32         `bun:"type:float,notnull"`
	EventCode       string          `bun:"type:char(4),notnull,unique:session_events_frame_unique"`
	VehicleIdx      uint8           `bun:"type:tinyint unsigned,notnull"`
	DetailsHash     string          `bun:"type:char(64),notnull,unique:session_events_frame_unique"`
	Details         json.RawMessage `bun:"type:json,notnull"`

	CreatedAt time.Time `bun:"type:timestamp,notnull,default:current_timestamp"`
}

// NewSessionEvent builds the row for an event packet. VehicleIdx is NoVehicle unless the event
// refers to a single car.
func NewSessionEvent(header packets.Header, event packets.EventData) (SessionEvent, error) {
	details, err := json.Marshal(event.Details)
	if err != nil {
		return SessionEvent{}, fmt.Errorf("failed to marshal %s event details: %w", event.Code, err)
	}

	sessionEvent := SessionEvent{
		SessionUID:      header.SessionUID,
		FrameIdentifier: header.FrameIdentifier,
		SessionTime:     header.SessionTime,
		EventCode:       event.Code.String(),
		VehicleIdx:      NoVehicle,
		DetailsHash:     detailsHash(details),
		Details:         details,
	}

	if vehicleEvent, ok := event.Details.(packets.VehicleEvent); ok {
		sessionEvent.VehicleIdx = vehicleEvent.VehicleIndex()
	}

	return sessionEvent, nil
}

func detailsHash(details []byte) string {
	sum := sha256.Sum256(details)
	return hex.EncodeToString(sum[:])
}

// EventData decodes the stored row back into the event payload.
func (m *SessionEvent) EventData() (packets.EventData, error) {
	var event packets.EventData

	raw, err := json.Marshal(struct {
		Code    string          `json:"code"`
		Details json.RawMessage `json:"details"`
	}{Code: m.EventCode, Details: m.Details})
	if err != nil {
		return packets.EventData{}, err
	}

	if err = json.Unmarshal(raw, &event); err != nil {
		return packets.EventData{}, fmt.Errorf("failed to decode stored event %d: %w", m.ID, err)
	}

	return event, nil
}

// SessionEventQueries reads and writes session_events. The getters return an empty slice, never
// an error, when nothing matches.
type SessionEventQueries interface {
	CreateSessionEvent(ctx context.Context, sessionEvent *SessionEvent) (SessionEvent, error)
	GetSessionEventsBySessionUID(ctx context.Context, sessionUID uint64) ([]SessionEvent, error)
	GetSessionEventsByCode(ctx context.Context, sessionUID uint64, code string) ([]SessionEvent, error)
}

func (q *queriesImpl) CreateSessionEvent(ctx context.Context, sessionEvent *SessionEvent) (SessionEvent, error) {
	_, err := q.db.NewInsert().Model(sessionEvent).Exec(ctx)
	if err != nil {
		if isViolationOfConstraint(err, ConstraintSessionEventsFrameUnique) {
			return SessionEvent{}, ErrSessionEventNotUnique
		}

		return SessionEvent{}, err
	}

	return *sessionEvent, nil
}

func (q *queriesImpl) GetSessionEventsBySessionUID(ctx context.Context, sessionUID uint64) ([]SessionEvent, error) {
	var sessionEvents []SessionEvent

	err := q.db.NewSelect().
		Model(&sessionEvents).
		Where("session_uid = ?", sessionUID).
		Order("frame_identifier ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return sessionEvents, nil
}

func (q *queriesImpl) GetSessionEventsByCode(ctx context.Context, sessionUID uint64, code string) ([]SessionEvent, error) {
	var sessionEvents []SessionEvent

	err := q.db.NewSelect().
		Model(&sessionEvents).
		Where("session_uid = ?", sessionUID).
		Where("event_code = ?", code).
		Order("frame_identifier ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return sessionEvents, nil
}
