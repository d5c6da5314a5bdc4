package postgres

import (
	"context"
	"database/sql"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type outboxRepository struct {
	db *sql.DB
}

func NewOutboxRepository(db *sql.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}

const outboxInsert = `INSERT INTO outbox_events (id, kind, entity_kind, entity_id, actor_id, status, attempts, date_created)
	          VALUES ($1, $2, $3, $4, $5, $6, 0, $7)`

func (r *outboxRepository) Append(ctx context.Context, event *domain.OutboxEvent) error {
	_, err := r.db.ExecContext(ctx, outboxInsert, event.ID, event.Kind, event.EntityKind,
		event.EntityID, event.ActorID, domain.EventStatusPending, time.Now())
	return translateErr(err, "")
}

// appendEventTx writes the event inside the caller's transaction so the
// event commits or rolls back with the mutation that produced it.
func appendEventTx(ctx context.Context, tx *sql.Tx, event *domain.OutboxEvent) error {
	if event == nil {
		return nil
	}
	_, err := tx.ExecContext(ctx, outboxInsert, event.ID, event.Kind, event.EntityKind,
		event.EntityID, event.ActorID, domain.EventStatusPending, time.Now())
	return err
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int32) ([]domain.OutboxEvent, error) {
	query := `SELECT id, kind, entity_kind, entity_id, actor_id, status, attempts, date_created
	          FROM outbox_events WHERE status = $1 ORDER BY date_created LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, domain.EventStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.OutboxEvent
	for rows.Next() {
		var e domain.OutboxEvent
		if err := rows.Scan(&e.ID, &e.Kind, &e.EntityKind, &e.EntityID, &e.ActorID,
			&e.Status, &e.Attempts, &e.DateCreated); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	query := `UPDATE outbox_events SET status = $1, attempts = attempts + 1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, domain.EventStatusSent, id)
	return translateErr(err, "")
}

// MarkFailed counts the attempt but leaves the event pending so the
// dispatcher retries it; delivery is at-least-once.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string) error {
	query := `UPDATE outbox_events SET attempts = attempts + 1,
	          status = CASE WHEN attempts + 1 >= 5 THEN $1 ELSE status END
	          WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, domain.EventStatusFailed, id)
	return translateErr(err, "")
}
