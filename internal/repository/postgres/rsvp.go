package postgres

import (
	"context"
	"database/sql"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type rsvpRepository struct {
	db *sql.DB
}

func NewRsvpRepository(db *sql.DB) repository.RsvpRepository {
	return &rsvpRepository{db: db}
}

// Set upserts on the (user_id, meetup_id) unique index, so repeated calls
// converge on a single row carrying the latest values.
func (r *rsvpRepository) Set(ctx context.Context, rsvp *domain.Rsvp) error {
	query := `INSERT INTO rsvps (user_id, meetup_id, coming, plus_one)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id, meetup_id) DO UPDATE SET coming = $3, plus_one = $4
	          RETURNING id`
	err := r.db.QueryRowContext(ctx, query, rsvp.UserID, rsvp.MeetupID, rsvp.Coming, rsvp.PlusOne).Scan(&rsvp.ID)
	return translateErr(err, "")
}

func (r *rsvpRepository) Get(ctx context.Context, userID, meetupID int32) (*domain.Rsvp, error) {
	rsvp := &domain.Rsvp{}
	query := `SELECT id, user_id, meetup_id, coming, plus_one FROM rsvps WHERE user_id = $1 AND meetup_id = $2`
	err := r.db.QueryRowContext(ctx, query, userID, meetupID).
		Scan(&rsvp.ID, &rsvp.UserID, &rsvp.MeetupID, &rsvp.Coming, &rsvp.PlusOne)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return rsvp, nil
}

func (r *rsvpRepository) ListByMeetup(ctx context.Context, meetupID int32) ([]domain.Rsvp, error) {
	query := `SELECT id, user_id, meetup_id, coming, plus_one FROM rsvps WHERE meetup_id = $1`
	rows, err := r.db.QueryContext(ctx, query, meetupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rsvps []domain.Rsvp
	for rows.Next() {
		var rsvp domain.Rsvp
		if err := rows.Scan(&rsvp.ID, &rsvp.UserID, &rsvp.MeetupID, &rsvp.Coming, &rsvp.PlusOne); err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, rows.Err()
}
