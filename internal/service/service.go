package service

import (
	"context"

	"community-portal-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, accountID int32, username, email, password string) (*domain.SystersUser, error)
	Login(ctx context.Context, email, password string) (string, *domain.SystersUser, error)
	GetProfile(ctx context.Context, profileID int32) (*domain.SystersUser, error)
	UpdateProfile(ctx context.Context, user *domain.SystersUser) error
}

type CommunityService interface {
	RequestCommunity(ctx context.Context, req *domain.RequestCommunity) error
	ApproveCommunityRequest(ctx context.Context, actorID, requestID int32) (*domain.Community, error)
	RejectCommunityRequest(ctx context.Context, actorID, requestID int32) error
	ListPendingCommunityRequests(ctx context.Context) ([]domain.RequestCommunity, error)

	RequestToJoin(ctx context.Context, userID, communityID int32) (*domain.JoinRequest, error)
	ApproveJoinRequest(ctx context.Context, actorID, requestID int32) error
	RejectJoinRequest(ctx context.Context, actorID, requestID int32) error
	ListJoinRequests(ctx context.Context, actorID, communityID int32) ([]domain.JoinRequest, error)

	GetCommunity(ctx context.Context, id int32) (*domain.Community, error)
	ListCommunities(ctx context.Context) ([]domain.Community, error)
	ListMembers(ctx context.Context, communityID int32) ([]domain.SystersUser, error)
	LeaveCommunity(ctx context.Context, userID, communityID int32) error
	RemoveMember(ctx context.Context, actorID, communityID, userID int32) error
}

type MeetupService interface {
	RequestMeetupLocation(ctx context.Context, req *domain.RequestMeetupLocation) error
	ApproveMeetupLocationRequest(ctx context.Context, actorID, requestID int32) (*domain.MeetupLocation, error)
	RejectMeetupLocationRequest(ctx context.Context, actorID, requestID int32) error
	ListPendingMeetupLocationRequests(ctx context.Context) ([]domain.RequestMeetupLocation, error)

	RequestMeetup(ctx context.Context, req *domain.RequestMeetup) error
	ApproveMeetupRequest(ctx context.Context, actorID, requestID int32) (*domain.Meetup, error)
	RejectMeetupRequest(ctx context.Context, actorID, requestID int32) error
	ListPendingMeetupRequests(ctx context.Context, actorID, locationID int32) ([]domain.RequestMeetup, error)

	// CreateMeetup is the moderator/leader path that skips the request
	// step; the same field validation applies.
	CreateMeetup(ctx context.Context, m *domain.Meetup) error
	GetMeetup(ctx context.Context, locationID int32, slug string) (*domain.Meetup, error)
	ListMeetups(ctx context.Context, locationID int32) ([]domain.Meetup, error)

	SetRsvp(ctx context.Context, userID, meetupID int32, coming, plusOne bool) (*domain.Rsvp, error)

	CreateSupportRequest(ctx context.Context, req *domain.SupportRequest) error
	ApproveSupportRequest(ctx context.Context, actorID, requestID int32) error
	RejectSupportRequest(ctx context.Context, actorID, requestID int32) error

	AddComment(ctx context.Context, c *domain.Comment) error
	ApproveComment(ctx context.Context, actorID, commentID int32) error
	ListComments(ctx context.Context, kind domain.CommentTargetKind, targetID int32, approvedOnly bool) ([]domain.Comment, error)

	AddLocationMember(ctx context.Context, actorID, locationID, userID int32) error
	AddLocationModerator(ctx context.Context, actorID, locationID, userID int32) error
}

// EmailService is the transport boundary: one call, one message. Delivery
// mechanics live behind it.
type EmailService interface {
	Send(ctx context.Context, to, toName, subject, body string) error
}

// Dispatcher drains pending outbox events into emails. It runs outside the
// transactions that produced the events; a failed send only delays the
// event, it never unwinds the committed mutation.
type Dispatcher interface {
	DispatchPending(ctx context.Context) (int, error)
}
