package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type requestMeetupRepository struct {
	db *sql.DB
}

func NewRequestMeetupRepository(db *sql.DB) repository.RequestMeetupRepository {
	return &requestMeetupRepository{db: db}
}

const requestMeetupColumns = `id, title, slug, date, start_time, end_time, venue, description, meetup_location_id, created_by_id, approved_by_id, status, date_created`

func (r *requestMeetupRepository) Create(ctx context.Context, req *domain.RequestMeetup) error {
	query := `INSERT INTO request_meetups (title, slug, date, start_time, end_time, venue, description, meetup_location_id, created_by_id, status, date_created)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, req.Title, req.Slug, req.Date, req.StartTime,
		req.EndTime, req.Venue, req.Description, req.MeetupLocationID, req.CreatedByID,
		domain.RequestStatusPending, time.Now()).Scan(&req.ID)
	if err != nil {
		return translateErr(err, "slug")
	}
	req.Status = domain.RequestStatusPending
	return nil
}

func (r *requestMeetupRepository) GetByID(ctx context.Context, id int32) (*domain.RequestMeetup, error) {
	req := &domain.RequestMeetup{}
	query := `SELECT ` + requestMeetupColumns + ` FROM request_meetups WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.Title, &req.Slug, &req.Date,
		&req.StartTime, &req.EndTime, &req.Venue, &req.Description, &req.MeetupLocationID,
		&req.CreatedByID, &req.ApprovedByID, &req.Status, &req.DateCreated)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return req, nil
}

func (r *requestMeetupRepository) ListPendingByLocation(ctx context.Context, locationID int32) ([]domain.RequestMeetup, error) {
	query := `SELECT ` + requestMeetupColumns + ` FROM request_meetups
	          WHERE meetup_location_id = $1 AND status = $2 ORDER BY date_created`
	rows, err := r.db.QueryContext(ctx, query, locationID, domain.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RequestMeetup
	for rows.Next() {
		var req domain.RequestMeetup
		if err := rows.Scan(&req.ID, &req.Title, &req.Slug, &req.Date, &req.StartTime,
			&req.EndTime, &req.Venue, &req.Description, &req.MeetupLocationID,
			&req.CreatedByID, &req.ApprovedByID, &req.Status, &req.DateCreated); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// Approve copies the descriptive fields of a pending request into a live
// meetup. The request row keeps its approver and terminal status as the
// audit trail; it is never deleted.
func (r *requestMeetupRepository) Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) (*domain.Meetup, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	meetup := &domain.Meetup{}
	query := `UPDATE request_meetups SET status = $1, approved_by_id = $2
	          WHERE id = $3 AND status = $4
	          RETURNING title, slug, date, start_time, end_time, venue, description, meetup_location_id, created_by_id`
	err = tx.QueryRowContext(ctx, query, domain.RequestStatusApproved, approverID, id, domain.RequestStatusPending).
		Scan(&meetup.Title, &meetup.Slug, &meetup.Date, &meetup.StartTime, &meetup.EndTime,
			&meetup.Venue, &meetup.Description, &meetup.MeetupLocationID, &meetup.CreatedByID)
	if err == sql.ErrNoRows {
		return nil, domain.ErrInvalidTransition
	}
	if err != nil {
		return nil, translateErr(err, "")
	}

	insert := `INSERT INTO meetups (title, slug, date, start_time, end_time, venue, description, meetup_location_id, created_by_id, leader_id, last_updated)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	leaderID := meetup.CreatedByID
	meetup.LeaderID = &leaderID
	err = tx.QueryRowContext(ctx, insert, meetup.Title, meetup.Slug, meetup.Date, meetup.StartTime,
		meetup.EndTime, meetup.Venue, meetup.Description, meetup.MeetupLocationID,
		meetup.CreatedByID, meetup.LeaderID, time.Now()).Scan(&meetup.ID)
	if err != nil {
		return nil, translateErr(err, "slug")
	}

	if err := appendEventTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to append outbox event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return meetup, nil
}

func (r *requestMeetupRepository) Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error {
	return rejectRequest(ctx, r.db, "request_meetups", id, event)
}
