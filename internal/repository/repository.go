package repository

import (
	"context"

	"community-portal-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.SystersUser) error
	GetByID(ctx context.Context, id int32) (*domain.SystersUser, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.SystersUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.SystersUser, error)
	Update(ctx context.Context, user *domain.SystersUser) error
	ListStaff(ctx context.Context) ([]domain.SystersUser, error)
}

type CommunityRepository interface {
	Create(ctx context.Context, c *domain.Community) error
	GetByID(ctx context.Context, id int32) (*domain.Community, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Community, error)
	List(ctx context.Context) ([]domain.Community, error)
	Update(ctx context.Context, c *domain.Community) error

	// Membership ledger. AddMember is idempotent.
	AddMember(ctx context.Context, communityID, userID int32) error
	RemoveMember(ctx context.Context, communityID, userID int32) error
	ListMembers(ctx context.Context, communityID int32) ([]domain.SystersUser, error)
	IsMember(ctx context.Context, communityID, userID int32) (bool, error)
}

type RequestCommunityRepository interface {
	Create(ctx context.Context, req *domain.RequestCommunity) error
	GetByID(ctx context.Context, id int32) (*domain.RequestCommunity, error)
	ListPending(ctx context.Context) ([]domain.RequestCommunity, error)
	// Approve flips PENDING to APPROVED, materializes the community and
	// appends the event, all in one transaction. Zero pending rows means
	// another approver won the race: domain.ErrInvalidTransition.
	Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) (*domain.Community, error)
	Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error
}

type JoinRequestRepository interface {
	Create(ctx context.Context, req *domain.JoinRequest) error
	GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error)
	GetPending(ctx context.Context, userID, communityID int32) (*domain.JoinRequest, error)
	ListByCommunity(ctx context.Context, communityID int32) ([]domain.JoinRequest, error)
	// Approve stamps the request and adds the member in one transaction.
	Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) error
	Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error
}

type MeetupLocationRepository interface {
	Create(ctx context.Context, l *domain.MeetupLocation) error
	GetByID(ctx context.Context, id int32) (*domain.MeetupLocation, error)
	GetBySlug(ctx context.Context, slug string) (*domain.MeetupLocation, error)
	List(ctx context.Context) ([]domain.MeetupLocation, error)
	Update(ctx context.Context, l *domain.MeetupLocation) error

	AddMember(ctx context.Context, locationID, userID int32) error
	RemoveMember(ctx context.Context, locationID, userID int32) error
	ListMembers(ctx context.Context, locationID int32) ([]domain.SystersUser, error)
	AddModerator(ctx context.Context, locationID, userID int32) error
	ListModerators(ctx context.Context, locationID int32) ([]domain.SystersUser, error)
	IsModerator(ctx context.Context, locationID, userID int32) (bool, error)
}

type RequestMeetupLocationRepository interface {
	Create(ctx context.Context, req *domain.RequestMeetupLocation) error
	GetByID(ctx context.Context, id int32) (*domain.RequestMeetupLocation, error)
	ListPending(ctx context.Context) ([]domain.RequestMeetupLocation, error)
	Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) (*domain.MeetupLocation, error)
	Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error
}

type MeetupRepository interface {
	Create(ctx context.Context, m *domain.Meetup) error
	GetByID(ctx context.Context, id int32) (*domain.Meetup, error)
	GetBySlug(ctx context.Context, locationID int32, slug string) (*domain.Meetup, error)
	ListByLocation(ctx context.Context, locationID int32) ([]domain.Meetup, error)
	ListUpcoming(ctx context.Context, from string) ([]domain.Meetup, error)
	Update(ctx context.Context, m *domain.Meetup) error
}

type RequestMeetupRepository interface {
	Create(ctx context.Context, req *domain.RequestMeetup) error
	GetByID(ctx context.Context, id int32) (*domain.RequestMeetup, error)
	ListPendingByLocation(ctx context.Context, locationID int32) ([]domain.RequestMeetup, error)
	Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) (*domain.Meetup, error)
	Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error
}

type RsvpRepository interface {
	// Set upserts the single row for (user, meetup).
	Set(ctx context.Context, rsvp *domain.Rsvp) error
	Get(ctx context.Context, userID, meetupID int32) (*domain.Rsvp, error)
	ListByMeetup(ctx context.Context, meetupID int32) ([]domain.Rsvp, error)
}

type SupportRequestRepository interface {
	Create(ctx context.Context, req *domain.SupportRequest) error
	GetByID(ctx context.Context, id int32) (*domain.SupportRequest, error)
	ListByMeetup(ctx context.Context, meetupID int32) ([]domain.SupportRequest, error)
	Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) error
	Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id int32) (*domain.Comment, error)
	ListByTarget(ctx context.Context, kind domain.CommentTargetKind, targetID int32, approvedOnly bool) ([]domain.Comment, error)
	SetApproved(ctx context.Context, id int32, approved bool) error
	Delete(ctx context.Context, id int32) error
}

type OutboxRepository interface {
	Append(ctx context.Context, event *domain.OutboxEvent) error
	ListPending(ctx context.Context, limit int32) ([]domain.OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}
