package service

import (
	"context"

	"community-portal-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.SystersUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.SystersUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystersUser), args.Error(1)
}
func (m *MockUserRepo) GetByUserID(ctx context.Context, userID int32) (*domain.SystersUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystersUser), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.SystersUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystersUser), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.SystersUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) ListStaff(ctx context.Context) ([]domain.SystersUser, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SystersUser), args.Error(1)
}

// MockCommunityRepo
type MockCommunityRepo struct {
	mock.Mock
}

func (m *MockCommunityRepo) Create(ctx context.Context, c *domain.Community) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCommunityRepo) GetByID(ctx context.Context, id int32) (*domain.Community, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}
func (m *MockCommunityRepo) GetBySlug(ctx context.Context, slug string) (*domain.Community, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}
func (m *MockCommunityRepo) List(ctx context.Context) ([]domain.Community, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Community), args.Error(1)
}
func (m *MockCommunityRepo) Update(ctx context.Context, c *domain.Community) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCommunityRepo) AddMember(ctx context.Context, communityID, userID int32) error {
	args := m.Called(ctx, communityID, userID)
	return args.Error(0)
}
func (m *MockCommunityRepo) RemoveMember(ctx context.Context, communityID, userID int32) error {
	args := m.Called(ctx, communityID, userID)
	return args.Error(0)
}
func (m *MockCommunityRepo) ListMembers(ctx context.Context, communityID int32) ([]domain.SystersUser, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]domain.SystersUser), args.Error(1)
}
func (m *MockCommunityRepo) IsMember(ctx context.Context, communityID, userID int32) (bool, error) {
	args := m.Called(ctx, communityID, userID)
	return args.Bool(0), args.Error(1)
}

// MockRequestCommunityRepo
type MockRequestCommunityRepo struct {
	mock.Mock
}

func (m *MockRequestCommunityRepo) Create(ctx context.Context, req *domain.RequestCommunity) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestCommunityRepo) GetByID(ctx context.Context, id int32) (*domain.RequestCommunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequestCommunity), args.Error(1)
}
func (m *MockRequestCommunityRepo) ListPending(ctx context.Context) ([]domain.RequestCommunity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RequestCommunity), args.Error(1)
}
func (m *MockRequestCommunityRepo) Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) (*domain.Community, error) {
	args := m.Called(ctx, id, approverID, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}
func (m *MockRequestCommunityRepo) Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error {
	args := m.Called(ctx, id, event)
	return args.Error(0)
}

// MockJoinRequestRepo
type MockJoinRequestRepo struct {
	mock.Mock
}

func (m *MockJoinRequestRepo) Create(ctx context.Context, req *domain.JoinRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) GetPending(ctx context.Context, userID, communityID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, userID, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) ListByCommunity(ctx context.Context, communityID int32) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) error {
	args := m.Called(ctx, id, approverID, event)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error {
	args := m.Called(ctx, id, event)
	return args.Error(0)
}

// MockMeetupLocationRepo
type MockMeetupLocationRepo struct {
	mock.Mock
}

func (m *MockMeetupLocationRepo) Create(ctx context.Context, l *domain.MeetupLocation) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockMeetupLocationRepo) GetByID(ctx context.Context, id int32) (*domain.MeetupLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MeetupLocation), args.Error(1)
}
func (m *MockMeetupLocationRepo) GetBySlug(ctx context.Context, slug string) (*domain.MeetupLocation, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MeetupLocation), args.Error(1)
}
func (m *MockMeetupLocationRepo) List(ctx context.Context) ([]domain.MeetupLocation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MeetupLocation), args.Error(1)
}
func (m *MockMeetupLocationRepo) Update(ctx context.Context, l *domain.MeetupLocation) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockMeetupLocationRepo) AddMember(ctx context.Context, locationID, userID int32) error {
	args := m.Called(ctx, locationID, userID)
	return args.Error(0)
}
func (m *MockMeetupLocationRepo) RemoveMember(ctx context.Context, locationID, userID int32) error {
	args := m.Called(ctx, locationID, userID)
	return args.Error(0)
}
func (m *MockMeetupLocationRepo) ListMembers(ctx context.Context, locationID int32) ([]domain.SystersUser, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).([]domain.SystersUser), args.Error(1)
}
func (m *MockMeetupLocationRepo) AddModerator(ctx context.Context, locationID, userID int32) error {
	args := m.Called(ctx, locationID, userID)
	return args.Error(0)
}
func (m *MockMeetupLocationRepo) ListModerators(ctx context.Context, locationID int32) ([]domain.SystersUser, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).([]domain.SystersUser), args.Error(1)
}
func (m *MockMeetupLocationRepo) IsModerator(ctx context.Context, locationID, userID int32) (bool, error) {
	args := m.Called(ctx, locationID, userID)
	return args.Bool(0), args.Error(1)
}

// MockRequestMeetupLocationRepo
type MockRequestMeetupLocationRepo struct {
	mock.Mock
}

func (m *MockRequestMeetupLocationRepo) Create(ctx context.Context, req *domain.RequestMeetupLocation) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestMeetupLocationRepo) GetByID(ctx context.Context, id int32) (*domain.RequestMeetupLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequestMeetupLocation), args.Error(1)
}
func (m *MockRequestMeetupLocationRepo) ListPending(ctx context.Context) ([]domain.RequestMeetupLocation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RequestMeetupLocation), args.Error(1)
}
func (m *MockRequestMeetupLocationRepo) Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) (*domain.MeetupLocation, error) {
	args := m.Called(ctx, id, approverID, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MeetupLocation), args.Error(1)
}
func (m *MockRequestMeetupLocationRepo) Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error {
	args := m.Called(ctx, id, event)
	return args.Error(0)
}

// MockMeetupRepo
type MockMeetupRepo struct {
	mock.Mock
}

func (m *MockMeetupRepo) Create(ctx context.Context, meetup *domain.Meetup) error {
	args := m.Called(ctx, meetup)
	return args.Error(0)
}
func (m *MockMeetupRepo) GetByID(ctx context.Context, id int32) (*domain.Meetup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meetup), args.Error(1)
}
func (m *MockMeetupRepo) GetBySlug(ctx context.Context, locationID int32, slug string) (*domain.Meetup, error) {
	args := m.Called(ctx, locationID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meetup), args.Error(1)
}
func (m *MockMeetupRepo) ListByLocation(ctx context.Context, locationID int32) ([]domain.Meetup, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).([]domain.Meetup), args.Error(1)
}
func (m *MockMeetupRepo) ListUpcoming(ctx context.Context, from string) ([]domain.Meetup, error) {
	args := m.Called(ctx, from)
	return args.Get(0).([]domain.Meetup), args.Error(1)
}
func (m *MockMeetupRepo) Update(ctx context.Context, meetup *domain.Meetup) error {
	args := m.Called(ctx, meetup)
	return args.Error(0)
}

// MockRequestMeetupRepo
type MockRequestMeetupRepo struct {
	mock.Mock
}

func (m *MockRequestMeetupRepo) Create(ctx context.Context, req *domain.RequestMeetup) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestMeetupRepo) GetByID(ctx context.Context, id int32) (*domain.RequestMeetup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequestMeetup), args.Error(1)
}
func (m *MockRequestMeetupRepo) ListPendingByLocation(ctx context.Context, locationID int32) ([]domain.RequestMeetup, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).([]domain.RequestMeetup), args.Error(1)
}
func (m *MockRequestMeetupRepo) Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) (*domain.Meetup, error) {
	args := m.Called(ctx, id, approverID, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meetup), args.Error(1)
}
func (m *MockRequestMeetupRepo) Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error {
	args := m.Called(ctx, id, event)
	return args.Error(0)
}

// MockRsvpRepo
type MockRsvpRepo struct {
	mock.Mock
}

func (m *MockRsvpRepo) Set(ctx context.Context, rsvp *domain.Rsvp) error {
	args := m.Called(ctx, rsvp)
	return args.Error(0)
}
func (m *MockRsvpRepo) Get(ctx context.Context, userID, meetupID int32) (*domain.Rsvp, error) {
	args := m.Called(ctx, userID, meetupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rsvp), args.Error(1)
}
func (m *MockRsvpRepo) ListByMeetup(ctx context.Context, meetupID int32) ([]domain.Rsvp, error) {
	args := m.Called(ctx, meetupID)
	return args.Get(0).([]domain.Rsvp), args.Error(1)
}

// MockSupportRequestRepo
type MockSupportRequestRepo struct {
	mock.Mock
}

func (m *MockSupportRequestRepo) Create(ctx context.Context, req *domain.SupportRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockSupportRequestRepo) GetByID(ctx context.Context, id int32) (*domain.SupportRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportRequest), args.Error(1)
}
func (m *MockSupportRequestRepo) ListByMeetup(ctx context.Context, meetupID int32) ([]domain.SupportRequest, error) {
	args := m.Called(ctx, meetupID)
	return args.Get(0).([]domain.SupportRequest), args.Error(1)
}
func (m *MockSupportRequestRepo) Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) error {
	args := m.Called(ctx, id, approverID, event)
	return args.Error(0)
}
func (m *MockSupportRequestRepo) Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error {
	args := m.Called(ctx, id, event)
	return args.Error(0)
}

// MockCommentRepo
type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCommentRepo) GetByID(ctx context.Context, id int32) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}
func (m *MockCommentRepo) ListByTarget(ctx context.Context, kind domain.CommentTargetKind, targetID int32, approvedOnly bool) ([]domain.Comment, error) {
	args := m.Called(ctx, kind, targetID, approvedOnly)
	return args.Get(0).([]domain.Comment), args.Error(1)
}
func (m *MockCommentRepo) SetApproved(ctx context.Context, id int32, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}
func (m *MockCommentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOutboxRepo
type MockOutboxRepo struct {
	mock.Mock
}

func (m *MockOutboxRepo) Append(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockOutboxRepo) ListPending(ctx context.Context, limit int32) ([]domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.OutboxEvent), args.Error(1)
}
func (m *MockOutboxRepo) MarkSent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOutboxRepo) MarkFailed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, to, toName, subject, body string) error {
	args := m.Called(ctx, to, toName, subject, body)
	return args.Error(0)
}
