package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/logger"
	"community-portal-backend/internal/repository"
)

type meetupService struct {
	locationRepo        repository.MeetupLocationRepository
	locationRequestRepo repository.RequestMeetupLocationRepository
	meetupRepo          repository.MeetupRepository
	meetupRequestRepo   repository.RequestMeetupRepository
	rsvpRepo            repository.RsvpRepository
	supportRepo         repository.SupportRequestRepository
	commentRepo         repository.CommentRepository
	outboxRepo          repository.OutboxRepository
	authz               *Authorizer
	now                 func() time.Time
}

func NewMeetupService(
	locationRepo repository.MeetupLocationRepository,
	locationRequestRepo repository.RequestMeetupLocationRepository,
	meetupRepo repository.MeetupRepository,
	meetupRequestRepo repository.RequestMeetupRepository,
	rsvpRepo repository.RsvpRepository,
	supportRepo repository.SupportRequestRepository,
	commentRepo repository.CommentRepository,
	outboxRepo repository.OutboxRepository,
	authz *Authorizer,
) MeetupService {
	return &meetupService{
		locationRepo:        locationRepo,
		locationRequestRepo: locationRequestRepo,
		meetupRepo:          meetupRepo,
		meetupRequestRepo:   meetupRequestRepo,
		rsvpRepo:            rsvpRepo,
		supportRepo:         supportRepo,
		commentRepo:         commentRepo,
		outboxRepo:          outboxRepo,
		authz:               authz,
		now:                 time.Now,
	}
}

func (s *meetupService) emitEvent(ctx context.Context, event *domain.OutboxEvent) {
	if err := s.outboxRepo.Append(ctx, event); err != nil {
		logger.Warn("Failed to append outbox event", "event_id", event.ID, "kind", event.Kind, "error", err)
	}
}

func (s *meetupService) RequestMeetupLocation(ctx context.Context, req *domain.RequestMeetupLocation) error {
	if err := domain.ValidateRequired("name", req.Name); err != nil {
		return err
	}
	if err := domain.ValidateSlug(req.Slug); err != nil {
		return err
	}
	if _, err := s.locationRepo.GetBySlug(ctx, req.Slug); err == nil {
		return domain.NewValidationError("slug", "Meetup location slug already exists.")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to check location slug: %w", err)
	}

	if err := s.locationRequestRepo.Create(ctx, req); err != nil {
		return err
	}
	s.emitEvent(ctx, newEvent(domain.EventRequestCreated, domain.EntityRequestMeetupLocation, req.ID, req.RequesterID))
	return nil
}

func (s *meetupService) ApproveMeetupLocationRequest(ctx context.Context, actorID, requestID int32) (*domain.MeetupLocation, error) {
	if _, err := s.locationRequestRepo.GetByID(ctx, requestID); err != nil {
		return nil, err
	}
	ok, err := s.authz.CanApproveMeetupLocationRequest(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPermissionDenied
	}

	event := newEvent(domain.EventRequestApproved, domain.EntityRequestMeetupLocation, requestID, actorID)
	location, err := s.locationRequestRepo.Approve(ctx, requestID, actorID, event)
	if err != nil {
		return nil, err
	}
	logger.Info("Meetup location request approved", "request_id", requestID,
		"location_id", location.ID, "approved_by", actorID)
	return location, nil
}

func (s *meetupService) RejectMeetupLocationRequest(ctx context.Context, actorID, requestID int32) error {
	if _, err := s.locationRequestRepo.GetByID(ctx, requestID); err != nil {
		return err
	}
	ok, err := s.authz.CanApproveMeetupLocationRequest(ctx, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	event := newEvent(domain.EventRequestRejected, domain.EntityRequestMeetupLocation, requestID, actorID)
	return s.locationRequestRepo.Reject(ctx, requestID, event)
}

func (s *meetupService) ListPendingMeetupLocationRequests(ctx context.Context) ([]domain.RequestMeetupLocation, error) {
	return s.locationRequestRepo.ListPending(ctx)
}

// validateMeetupFields runs the field checks shared by the request path and
// the direct moderator path.
func (s *meetupService) validateMeetupFields(ctx context.Context, title, slug, date, startTime string, locationID int32) error {
	if err := domain.ValidateRequired("title", title); err != nil {
		return err
	}
	if err := domain.ValidateSlug(slug); err != nil {
		return err
	}
	if err := domain.ValidateRequired("date", date); err != nil {
		return err
	}
	if err := domain.ValidateEventDate(date, startTime, s.now()); err != nil {
		return err
	}
	if _, err := s.locationRepo.GetByID(ctx, locationID); err != nil {
		return err
	}
	// Meetup slugs are scoped to the location, not global.
	if _, err := s.meetupRepo.GetBySlug(ctx, locationID, slug); err == nil {
		return domain.NewValidationError("slug", "Meetup slug already exists for this location.")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to check meetup slug: %w", err)
	}
	return nil
}

func (s *meetupService) RequestMeetup(ctx context.Context, req *domain.RequestMeetup) error {
	if err := s.validateMeetupFields(ctx, req.Title, req.Slug, req.Date, req.StartTime, req.MeetupLocationID); err != nil {
		return err
	}
	if err := s.meetupRequestRepo.Create(ctx, req); err != nil {
		return err
	}
	s.emitEvent(ctx, newEvent(domain.EventRequestCreated, domain.EntityRequestMeetup, req.ID, req.CreatedByID))
	return nil
}

func (s *meetupService) ApproveMeetupRequest(ctx context.Context, actorID, requestID int32) (*domain.Meetup, error) {
	req, err := s.meetupRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	ok, err := s.authz.CanModerateLocation(ctx, actorID, req.MeetupLocationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPermissionDenied
	}

	event := newEvent(domain.EventRequestApproved, domain.EntityRequestMeetup, requestID, actorID)
	meetup, err := s.meetupRequestRepo.Approve(ctx, requestID, actorID, event)
	if err != nil {
		return nil, err
	}
	logger.Info("Meetup request approved", "request_id", requestID, "meetup_id", meetup.ID,
		"slug", meetup.Slug, "approved_by", actorID)
	return meetup, nil
}

func (s *meetupService) RejectMeetupRequest(ctx context.Context, actorID, requestID int32) error {
	req, err := s.meetupRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	ok, err := s.authz.CanModerateLocation(ctx, actorID, req.MeetupLocationID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	event := newEvent(domain.EventRequestRejected, domain.EntityRequestMeetup, requestID, actorID)
	return s.meetupRequestRepo.Reject(ctx, requestID, event)
}

func (s *meetupService) ListPendingMeetupRequests(ctx context.Context, actorID, locationID int32) ([]domain.RequestMeetup, error) {
	ok, err := s.authz.CanModerateLocation(ctx, actorID, locationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPermissionDenied
	}
	return s.meetupRequestRepo.ListPendingByLocation(ctx, locationID)
}

func (s *meetupService) CreateMeetup(ctx context.Context, m *domain.Meetup) error {
	if err := s.validateMeetupFields(ctx, m.Title, m.Slug, m.Date, m.StartTime, m.MeetupLocationID); err != nil {
		return err
	}
	ok, err := s.authz.CanModerateLocation(ctx, m.CreatedByID, m.MeetupLocationID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	if err := s.meetupRepo.Create(ctx, m); err != nil {
		return err
	}
	s.emitEvent(ctx, newEvent(domain.EventRequestApproved, domain.EntityMeetup, m.ID, m.CreatedByID))
	return nil
}

func (s *meetupService) GetMeetup(ctx context.Context, locationID int32, slug string) (*domain.Meetup, error) {
	return s.meetupRepo.GetBySlug(ctx, locationID, slug)
}

func (s *meetupService) ListMeetups(ctx context.Context, locationID int32) ([]domain.Meetup, error) {
	return s.meetupRepo.ListByLocation(ctx, locationID)
}

// SetRsvp upserts the caller's answer; calling it again overwrites the
// previous coming/plus_one values on the same row.
func (s *meetupService) SetRsvp(ctx context.Context, userID, meetupID int32, coming, plusOne bool) (*domain.Rsvp, error) {
	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateEventDate(meetup.Date, meetup.StartTime, s.now()); err != nil {
		return nil, domain.NewValidationError("meetup", "Cannot RSVP for a meetup that has already started.")
	}
	rsvp := &domain.Rsvp{UserID: userID, MeetupID: meetupID, Coming: coming, PlusOne: plusOne}
	if err := s.rsvpRepo.Set(ctx, rsvp); err != nil {
		return nil, err
	}
	return rsvp, nil
}

func (s *meetupService) CreateSupportRequest(ctx context.Context, req *domain.SupportRequest) error {
	if err := domain.ValidateRequired("description", req.Description); err != nil {
		return err
	}
	if _, err := s.meetupRepo.GetByID(ctx, req.MeetupID); err != nil {
		return err
	}
	if err := s.supportRepo.Create(ctx, req); err != nil {
		return err
	}
	s.emitEvent(ctx, newEvent(domain.EventRequestCreated, domain.EntitySupportRequest, req.ID, req.VolunteerID))
	return nil
}

func (s *meetupService) ApproveSupportRequest(ctx context.Context, actorID, requestID int32) error {
	req, err := s.supportRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	ok, err := s.authz.CanModerateMeetup(ctx, actorID, req.MeetupID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	event := newEvent(domain.EventRequestApproved, domain.EntitySupportRequest, requestID, actorID)
	return s.supportRepo.Approve(ctx, requestID, actorID, event)
}

func (s *meetupService) RejectSupportRequest(ctx context.Context, actorID, requestID int32) error {
	req, err := s.supportRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	ok, err := s.authz.CanModerateMeetup(ctx, actorID, req.MeetupID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	event := newEvent(domain.EventRequestRejected, domain.EntitySupportRequest, requestID, actorID)
	return s.supportRepo.Reject(ctx, requestID, event)
}

func (s *meetupService) AddComment(ctx context.Context, c *domain.Comment) error {
	if err := domain.ValidateRequired("body", c.Body); err != nil {
		return err
	}
	if !c.TargetKind.Valid() {
		return domain.NewValidationError("target_kind", "Unknown comment target.")
	}
	switch c.TargetKind {
	case domain.CommentTargetMeetup:
		if _, err := s.meetupRepo.GetByID(ctx, c.TargetID); err != nil {
			return err
		}
	case domain.CommentTargetSupportRequest:
		if _, err := s.supportRepo.GetByID(ctx, c.TargetID); err != nil {
			return err
		}
	}
	// Comments stay hidden until a moderator approves them.
	c.IsApproved = false
	return s.commentRepo.Create(ctx, c)
}

func (s *meetupService) ApproveComment(ctx context.Context, actorID, commentID int32) error {
	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	var meetupID int32
	switch c.TargetKind {
	case domain.CommentTargetMeetup:
		meetupID = c.TargetID
	case domain.CommentTargetSupportRequest:
		sr, err := s.supportRepo.GetByID(ctx, c.TargetID)
		if err != nil {
			return err
		}
		meetupID = sr.MeetupID
	default:
		return domain.NewValidationError("target_kind", "Unknown comment target.")
	}
	ok, err := s.authz.CanModerateMeetup(ctx, actorID, meetupID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	return s.commentRepo.SetApproved(ctx, commentID, true)
}

func (s *meetupService) ListComments(ctx context.Context, kind domain.CommentTargetKind, targetID int32, approvedOnly bool) ([]domain.Comment, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("target_kind", "Unknown comment target.")
	}
	return s.commentRepo.ListByTarget(ctx, kind, targetID, approvedOnly)
}

func (s *meetupService) AddLocationMember(ctx context.Context, actorID, locationID, userID int32) error {
	ok, err := s.authz.CanModerateLocation(ctx, actorID, locationID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	return s.locationRepo.AddMember(ctx, locationID, userID)
}

func (s *meetupService) AddLocationModerator(ctx context.Context, actorID, locationID, userID int32) error {
	ok, err := s.authz.CanModerateLocation(ctx, actorID, locationID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	return s.locationRepo.AddModerator(ctx, locationID, userID)
}
