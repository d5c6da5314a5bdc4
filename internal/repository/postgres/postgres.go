package postgres

import (
	"database/sql"
	"errors"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CommunityRepository
	repository.RequestCommunityRepository
	repository.JoinRequestRepository
	repository.MeetupLocationRepository
	repository.RequestMeetupLocationRepository
	repository.MeetupRepository
	repository.RequestMeetupRepository
	repository.RsvpRepository
	repository.SupportRequestRepository
	repository.CommentRepository
	repository.OutboxRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                              db,
		UserRepository:                  NewUserRepository(db),
		CommunityRepository:             NewCommunityRepository(db),
		RequestCommunityRepository:      NewRequestCommunityRepository(db),
		JoinRequestRepository:           NewJoinRequestRepository(db),
		MeetupLocationRepository:        NewMeetupLocationRepository(db),
		RequestMeetupLocationRepository: NewRequestMeetupLocationRepository(db),
		MeetupRepository:                NewMeetupRepository(db),
		RequestMeetupRepository:         NewRequestMeetupRepository(db),
		RsvpRepository:                  NewRsvpRepository(db),
		SupportRequestRepository:        NewSupportRequestRepository(db),
		CommentRepository:               NewCommentRepository(db),
		OutboxRepository:                NewOutboxRepository(db),
	}
}

// translateErr maps driver errors onto the domain taxonomy: missing rows
// become ErrNotFound and unique violations become a ValidationError on the
// named field.
func translateErr(err error, uniqueField string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" && uniqueField != "" {
		return domain.NewValidationError(uniqueField, "This value is already in use.")
	}
	return err
}
