package postgres

import (
	"context"
	"database/sql"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type meetupRepository struct {
	db *sql.DB
}

func NewMeetupRepository(db *sql.DB) repository.MeetupRepository {
	return &meetupRepository{db: db}
}

const meetupColumns = `id, title, slug, date, start_time, end_time, venue, description, meetup_location_id, created_by_id, leader_id, last_updated`

func (r *meetupRepository) Create(ctx context.Context, m *domain.Meetup) error {
	query := `INSERT INTO meetups (title, slug, date, start_time, end_time, venue, description, meetup_location_id, created_by_id, leader_id, last_updated)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, m.Title, m.Slug, m.Date, m.StartTime, m.EndTime,
		m.Venue, m.Description, m.MeetupLocationID, m.CreatedByID, m.LeaderID, time.Now()).Scan(&m.ID)
	return translateErr(err, "slug")
}

func (r *meetupRepository) GetByID(ctx context.Context, id int32) (*domain.Meetup, error) {
	return r.getOne(ctx, `SELECT `+meetupColumns+` FROM meetups WHERE id = $1`, id)
}

func (r *meetupRepository) GetBySlug(ctx context.Context, locationID int32, slug string) (*domain.Meetup, error) {
	return r.getOne(ctx, `SELECT `+meetupColumns+` FROM meetups WHERE meetup_location_id = $1 AND slug = $2`, locationID, slug)
}

func (r *meetupRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Meetup, error) {
	m := &domain.Meetup{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.Title, &m.Slug, &m.Date,
		&m.StartTime, &m.EndTime, &m.Venue, &m.Description, &m.MeetupLocationID,
		&m.CreatedByID, &m.LeaderID, &m.LastUpdated)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return m, nil
}

func (r *meetupRepository) ListByLocation(ctx context.Context, locationID int32) ([]domain.Meetup, error) {
	query := `SELECT ` + meetupColumns + ` FROM meetups WHERE meetup_location_id = $1 ORDER BY date, start_time`
	return r.list(ctx, query, locationID)
}

func (r *meetupRepository) ListUpcoming(ctx context.Context, from string) ([]domain.Meetup, error) {
	query := `SELECT ` + meetupColumns + ` FROM meetups WHERE date >= $1 ORDER BY date, start_time`
	return r.list(ctx, query, from)
}

func (r *meetupRepository) list(ctx context.Context, query string, args ...any) ([]domain.Meetup, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetups []domain.Meetup
	for rows.Next() {
		var m domain.Meetup
		if err := rows.Scan(&m.ID, &m.Title, &m.Slug, &m.Date, &m.StartTime, &m.EndTime,
			&m.Venue, &m.Description, &m.MeetupLocationID, &m.CreatedByID, &m.LeaderID,
			&m.LastUpdated); err != nil {
			return nil, err
		}
		meetups = append(meetups, m)
	}
	return meetups, rows.Err()
}

func (r *meetupRepository) Update(ctx context.Context, m *domain.Meetup) error {
	query := `UPDATE meetups SET title = $1, slug = $2, date = $3, start_time = $4, end_time = $5,
	          venue = $6, description = $7, leader_id = $8, last_updated = $9
	          WHERE id = $10`
	_, err := r.db.ExecContext(ctx, query, m.Title, m.Slug, m.Date, m.StartTime, m.EndTime,
		m.Venue, m.Description, m.LeaderID, time.Now(), m.ID)
	return translateErr(err, "slug")
}
