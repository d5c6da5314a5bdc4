package postgres

import (
	"context"
	"database/sql"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type meetupLocationRepository struct {
	db *sql.DB
}

func NewMeetupLocationRepository(db *sql.DB) repository.MeetupLocationRepository {
	return &meetupLocationRepository{db: db}
}

const meetupLocationColumns = `id, name, slug, location, description, sponsors, leader_id, date_created`

func (r *meetupLocationRepository) Create(ctx context.Context, l *domain.MeetupLocation) error {
	query := `INSERT INTO meetup_locations (name, slug, location, description, sponsors, leader_id, date_created)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, l.Name, l.Slug, l.Location, l.Description,
		l.Sponsors, l.LeaderID, time.Now()).Scan(&l.ID)
	return translateErr(err, "slug")
}

func (r *meetupLocationRepository) GetByID(ctx context.Context, id int32) (*domain.MeetupLocation, error) {
	return r.getOne(ctx, `SELECT `+meetupLocationColumns+` FROM meetup_locations WHERE id = $1`, id)
}

func (r *meetupLocationRepository) GetBySlug(ctx context.Context, slug string) (*domain.MeetupLocation, error) {
	return r.getOne(ctx, `SELECT `+meetupLocationColumns+` FROM meetup_locations WHERE slug = $1`, slug)
}

func (r *meetupLocationRepository) getOne(ctx context.Context, query string, arg any) (*domain.MeetupLocation, error) {
	l := &domain.MeetupLocation{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&l.ID, &l.Name, &l.Slug, &l.Location,
		&l.Description, &l.Sponsors, &l.LeaderID, &l.DateCreated)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return l, nil
}

func (r *meetupLocationRepository) List(ctx context.Context) ([]domain.MeetupLocation, error) {
	query := `SELECT ` + meetupLocationColumns + ` FROM meetup_locations ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []domain.MeetupLocation
	for rows.Next() {
		var l domain.MeetupLocation
		if err := rows.Scan(&l.ID, &l.Name, &l.Slug, &l.Location, &l.Description,
			&l.Sponsors, &l.LeaderID, &l.DateCreated); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *meetupLocationRepository) Update(ctx context.Context, l *domain.MeetupLocation) error {
	query := `UPDATE meetup_locations SET name = $1, slug = $2, location = $3, description = $4, sponsors = $5, leader_id = $6
	          WHERE id = $7`
	_, err := r.db.ExecContext(ctx, query, l.Name, l.Slug, l.Location, l.Description,
		l.Sponsors, l.LeaderID, l.ID)
	return translateErr(err, "slug")
}

func (r *meetupLocationRepository) AddMember(ctx context.Context, locationID, userID int32) error {
	query := `INSERT INTO meetup_location_members (meetup_location_id, user_id, joined_on)
	          VALUES ($1, $2, $3) ON CONFLICT (meetup_location_id, user_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, locationID, userID, time.Now())
	return translateErr(err, "")
}

func (r *meetupLocationRepository) RemoveMember(ctx context.Context, locationID, userID int32) error {
	query := `DELETE FROM meetup_location_members WHERE meetup_location_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, locationID, userID)
	return translateErr(err, "")
}

func (r *meetupLocationRepository) ListMembers(ctx context.Context, locationID int32) ([]domain.SystersUser, error) {
	query := `SELECT u.id, u.user_id, u.username, u.email, u.country, u.blog, u.homepage, u.is_staff, u.date_created
	          FROM systers_users u
	          JOIN meetup_location_members m ON m.user_id = u.id
	          WHERE m.meetup_location_id = $1
	          ORDER BY u.username`
	return scanUsers(r.db.QueryContext(ctx, query, locationID))
}

func (r *meetupLocationRepository) AddModerator(ctx context.Context, locationID, userID int32) error {
	query := `INSERT INTO meetup_location_moderators (meetup_location_id, user_id, added_on)
	          VALUES ($1, $2, $3) ON CONFLICT (meetup_location_id, user_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, locationID, userID, time.Now())
	return translateErr(err, "")
}

func (r *meetupLocationRepository) ListModerators(ctx context.Context, locationID int32) ([]domain.SystersUser, error) {
	query := `SELECT u.id, u.user_id, u.username, u.email, u.country, u.blog, u.homepage, u.is_staff, u.date_created
	          FROM systers_users u
	          JOIN meetup_location_moderators m ON m.user_id = u.id
	          WHERE m.meetup_location_id = $1
	          ORDER BY u.username`
	return scanUsers(r.db.QueryContext(ctx, query, locationID))
}

func (r *meetupLocationRepository) IsModerator(ctx context.Context, locationID, userID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM meetup_location_moderators WHERE meetup_location_id = $1 AND user_id = $2)`
	err := r.db.QueryRowContext(ctx, query, locationID, userID).Scan(&exists)
	return exists, err
}
