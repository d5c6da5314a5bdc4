package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type supportRequestRepository struct {
	db *sql.DB
}

func NewSupportRequestRepository(db *sql.DB) repository.SupportRequestRepository {
	return &supportRequestRepository{db: db}
}

const supportRequestColumns = `id, volunteer_id, meetup_id, description, status, date_created`

func (r *supportRequestRepository) Create(ctx context.Context, req *domain.SupportRequest) error {
	query := `INSERT INTO support_requests (volunteer_id, meetup_id, description, status, date_created)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, req.VolunteerID, req.MeetupID, req.Description,
		domain.RequestStatusPending, time.Now()).Scan(&req.ID)
	if err != nil {
		return translateErr(err, "")
	}
	req.Status = domain.RequestStatusPending
	return nil
}

func (r *supportRequestRepository) GetByID(ctx context.Context, id int32) (*domain.SupportRequest, error) {
	req := &domain.SupportRequest{}
	query := `SELECT ` + supportRequestColumns + ` FROM support_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.VolunteerID, &req.MeetupID,
		&req.Description, &req.Status, &req.DateCreated)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return req, nil
}

func (r *supportRequestRepository) ListByMeetup(ctx context.Context, meetupID int32) ([]domain.SupportRequest, error) {
	query := `SELECT ` + supportRequestColumns + ` FROM support_requests WHERE meetup_id = $1 ORDER BY date_created`
	rows, err := r.db.QueryContext(ctx, query, meetupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.SupportRequest
	for rows.Next() {
		var req domain.SupportRequest
		if err := rows.Scan(&req.ID, &req.VolunteerID, &req.MeetupID, &req.Description,
			&req.Status, &req.DateCreated); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// Approve only stamps the terminal status; support requests have no live
// entity to materialize.
func (r *supportRequestRepository) Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE support_requests SET status = $1, approved_by_id = $2
	          WHERE id = $3 AND status = $4`
	res, err := tx.ExecContext(ctx, query, domain.RequestStatusApproved, approverID, id, domain.RequestStatusPending)
	if err != nil {
		return translateErr(err, "")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvalidTransition
	}

	if err := appendEventTx(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to append outbox event: %w", err)
	}
	return tx.Commit()
}

func (r *supportRequestRepository) Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error {
	return rejectRequest(ctx, r.db, "support_requests", id, event)
}
