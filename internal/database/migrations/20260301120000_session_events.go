package migrations

import (
	"context"
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

//nolint:gochecknoinits // this is the typical way to register bun migrations
func init() {
	migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().
			Model((*SessionEvent20260301120000)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = db.NewCreateIndex().
			Model((*SessionEvent20260301120000)(nil)).
			Index("session_events_session_code_idx").
			Column("session_uid", "event_code").
			Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().
			Model((*SessionEvent20260301120000)(nil)).
			IfExists().
			Exec(ctx)
		return err
	})
}

type SessionEvent20260301120000 struct {
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
