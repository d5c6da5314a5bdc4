package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type requestMeetupLocationRepository struct {
	db *sql.DB
}

func NewRequestMeetupLocationRepository(db *sql.DB) repository.RequestMeetupLocationRepository {
	return &requestMeetupLocationRepository{db: db}
}

const requestMeetupLocationColumns = `id, name, slug, location, description, user_id, approved_by_id, status, date_created`

func (r *requestMeetupLocationRepository) Create(ctx context.Context, req *domain.RequestMeetupLocation) error {
	query := `INSERT INTO request_meetup_locations (name, slug, location, description, user_id, status, date_created)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Slug, req.Location, req.Description,
		req.RequesterID, domain.RequestStatusPending, time.Now()).Scan(&req.ID)
	if err != nil {
		return translateErr(err, "slug")
	}
	req.Status = domain.RequestStatusPending
	return nil
}

func (r *requestMeetupLocationRepository) GetByID(ctx context.Context, id int32) (*domain.RequestMeetupLocation, error) {
	req := &domain.RequestMeetupLocation{}
	query := `SELECT ` + requestMeetupLocationColumns + ` FROM request_meetup_locations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.Name, &req.Slug, &req.Location,
		&req.Description, &req.RequesterID, &req.ApprovedByID, &req.Status, &req.DateCreated)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return req, nil
}

func (r *requestMeetupLocationRepository) ListPending(ctx context.Context) ([]domain.RequestMeetupLocation, error) {
	query := `SELECT ` + requestMeetupLocationColumns + ` FROM request_meetup_locations WHERE status = $1 ORDER BY date_created`
	rows, err := r.db.QueryContext(ctx, query, domain.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RequestMeetupLocation
	for rows.Next() {
		var req domain.RequestMeetupLocation
		if err := rows.Scan(&req.ID, &req.Name, &req.Slug, &req.Location, &req.Description,
			&req.RequesterID, &req.ApprovedByID, &req.Status, &req.DateCreated); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// Approve materializes the meetup location with the requester as leader and
// first member/moderator, mirroring the original portal's behavior.
func (r *requestMeetupLocationRepository) Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) (*domain.MeetupLocation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	location := &domain.MeetupLocation{}
	query := `UPDATE request_meetup_locations SET status = $1, approved_by_id = $2
	          WHERE id = $3 AND status = $4
	          RETURNING name, slug, location, description, user_id`
	err = tx.QueryRowContext(ctx, query, domain.RequestStatusApproved, approverID, id, domain.RequestStatusPending).
		Scan(&location.Name, &location.Slug, &location.Location, &location.Description, &location.LeaderID)
	if err == sql.ErrNoRows {
		return nil, domain.ErrInvalidTransition
	}
	if err != nil {
		return nil, translateErr(err, "")
	}

	insert := `INSERT INTO meetup_locations (name, slug, location, description, leader_id, date_created)
	           VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = tx.QueryRowContext(ctx, insert, location.Name, location.Slug, location.Location,
		location.Description, location.LeaderID, time.Now()).Scan(&location.ID)
	if err != nil {
		return nil, translateErr(err, "slug")
	}

	member := `INSERT INTO meetup_location_members (meetup_location_id, user_id, joined_on)
	           VALUES ($1, $2, $3) ON CONFLICT (meetup_location_id, user_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, member, location.ID, location.LeaderID, time.Now()); err != nil {
		return nil, err
	}
	moderator := `INSERT INTO meetup_location_moderators (meetup_location_id, user_id, added_on)
	              VALUES ($1, $2, $3) ON CONFLICT (meetup_location_id, user_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, moderator, location.ID, location.LeaderID, time.Now()); err != nil {
		return nil, err
	}

	if err := appendEventTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to append outbox event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return location, nil
}

func (r *requestMeetupLocationRepository) Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error {
	return rejectRequest(ctx, r.db, "request_meetup_locations", id, event)
}
