package service

import (
	"context"
	"testing"
	"time"

	"community-portal-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type meetupFixture struct {
	locationRepo        *MockMeetupLocationRepo
	locationRequestRepo *MockRequestMeetupLocationRepo
	meetupRepo          *MockMeetupRepo
	meetupRequestRepo   *MockRequestMeetupRepo
	rsvpRepo            *MockRsvpRepo
	supportRepo         *MockSupportRequestRepo
	commentRepo         *MockCommentRepo
	outboxRepo          *MockOutboxRepo
	userRepo            *MockUserRepo
	svc                 MeetupService
}

func newMeetupFixture(now time.Time) *meetupFixture {
	f := &meetupFixture{
		locationRepo:        new(MockMeetupLocationRepo),
		locationRequestRepo: new(MockRequestMeetupLocationRepo),
		meetupRepo:          new(MockMeetupRepo),
		meetupRequestRepo:   new(MockRequestMeetupRepo),
		rsvpRepo:            new(MockRsvpRepo),
		supportRepo:         new(MockSupportRequestRepo),
		commentRepo:         new(MockCommentRepo),
		outboxRepo:          new(MockOutboxRepo),
		userRepo:            new(MockUserRepo),
	}
	communityRepo := new(MockCommunityRepo)
	authz := NewAuthorizer(f.userRepo, communityRepo, f.locationRepo, f.meetupRepo)
	f.svc = NewMeetupService(
		f.locationRepo, f.locationRequestRepo, f.meetupRepo, f.meetupRequestRepo,
		f.rsvpRepo, f.supportRepo, f.commentRepo, f.outboxRepo, authz,
	)
	f.svc.(*meetupService).now = func() time.Time { return now }
	return f
}

var testClock = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func TestMeetupService_RequestMeetup(t *testing.T) {
	ctx := context.Background()
	location := &domain.MeetupLocation{ID: 3, Name: "Bangalore", Slug: "bangalore", LeaderID: 1}

	t.Run("Success", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		req := &domain.RequestMeetup{
			Title: "Go 101", Slug: "go-101", Date: "2025-06-20", StartTime: "18:00",
			MeetupLocationID: 3, CreatedByID: 9,
		}

		f.locationRepo.On("GetByID", ctx, int32(3)).Return(location, nil)
		f.meetupRepo.On("GetBySlug", ctx, int32(3), "go-101").Return(nil, domain.ErrNotFound)
		f.meetupRequestRepo.On("Create", ctx, req).Return(nil)
		f.outboxRepo.On("Append", ctx, mock.AnythingOfType("*domain.OutboxEvent")).Return(nil)

		err := f.svc.RequestMeetup(ctx, req)
		assert.NoError(t, err)
		f.outboxRepo.AssertNumberOfCalls(t, "Append", 1)
	})

	t.Run("PastDate", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		req := &domain.RequestMeetup{
			Title: "Go 101", Slug: "go-101", Date: "2025-06-10", StartTime: "18:00",
			MeetupLocationID: 3, CreatedByID: 9,
		}

		err := f.svc.RequestMeetup(ctx, req)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "date", verr.Field)
		f.meetupRequestRepo.AssertNotCalled(t, "Create", ctx, req)
	})

	t.Run("TodayPassedTime", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		req := &domain.RequestMeetup{
			Title: "Go 101", Slug: "go-101", Date: "2025-06-15", StartTime: "09:00",
			MeetupLocationID: 3, CreatedByID: 9,
		}

		err := f.svc.RequestMeetup(ctx, req)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "time", verr.Field)
	})

	t.Run("DuplicateSlugInLocation", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		req := &domain.RequestMeetup{
			Title: "Go 101", Slug: "go-101", Date: "2025-06-20",
			MeetupLocationID: 3, CreatedByID: 9,
		}

		f.locationRepo.On("GetByID", ctx, int32(3)).Return(location, nil)
		f.meetupRepo.On("GetBySlug", ctx, int32(3), "go-101").Return(&domain.Meetup{ID: 8, Slug: "go-101"}, nil)

		err := f.svc.RequestMeetup(ctx, req)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "slug", verr.Field)
	})

	t.Run("UnknownLocation", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		req := &domain.RequestMeetup{
			Title: "Go 101", Slug: "go-101", Date: "2025-06-20",
			MeetupLocationID: 55, CreatedByID: 9,
		}

		f.locationRepo.On("GetByID", ctx, int32(55)).Return(nil, domain.ErrNotFound)

		err := f.svc.RequestMeetup(ctx, req)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMeetupService_ApproveMeetupRequest(t *testing.T) {
	ctx := context.Background()
	location := &domain.MeetupLocation{ID: 3, LeaderID: 1}
	req := &domain.RequestMeetup{ID: 12, Title: "Go 101", Slug: "go-101", MeetupLocationID: 3, CreatedByID: 9, Status: domain.RequestStatusPending}

	t.Run("LeaderApproves", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		created := &domain.Meetup{ID: 30, Title: "Go 101", Slug: "go-101", MeetupLocationID: 3}

		f.meetupRequestRepo.On("GetByID", ctx, int32(12)).Return(req, nil)
		f.locationRepo.On("GetByID", ctx, int32(3)).Return(location, nil)
		f.meetupRequestRepo.On("Approve", ctx, int32(12), int32(1), mock.AnythingOfType("*domain.OutboxEvent")).Return(created, nil)

		meetup, err := f.svc.ApproveMeetupRequest(ctx, 1, 12)
		assert.NoError(t, err)
		assert.Equal(t, int32(30), meetup.ID)
	})

	t.Run("ModeratorApproves", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		created := &domain.Meetup{ID: 30, Slug: "go-101", MeetupLocationID: 3}

		f.meetupRequestRepo.On("GetByID", ctx, int32(12)).Return(req, nil)
		f.locationRepo.On("GetByID", ctx, int32(3)).Return(location, nil)
		f.locationRepo.On("IsModerator", ctx, int32(3), int32(5)).Return(true, nil)
		f.meetupRequestRepo.On("Approve", ctx, int32(12), int32(5), mock.AnythingOfType("*domain.OutboxEvent")).Return(created, nil)

		meetup, err := f.svc.ApproveMeetupRequest(ctx, 5, 12)
		assert.NoError(t, err)
		assert.Equal(t, int32(30), meetup.ID)
	})

	t.Run("MemberDenied", func(t *testing.T) {
		f := newMeetupFixture(testClock)

		f.meetupRequestRepo.On("GetByID", ctx, int32(12)).Return(req, nil)
		f.locationRepo.On("GetByID", ctx, int32(3)).Return(location, nil)
		f.locationRepo.On("IsModerator", ctx, int32(3), int32(9)).Return(false, nil)

		meetup, err := f.svc.ApproveMeetupRequest(ctx, 9, 12)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		assert.Nil(t, meetup)
	})

	t.Run("SecondApproverLosesRace", func(t *testing.T) {
		f := newMeetupFixture(testClock)

		f.meetupRequestRepo.On("GetByID", ctx, int32(12)).Return(req, nil)
		f.locationRepo.On("GetByID", ctx, int32(3)).Return(location, nil)
		f.meetupRequestRepo.On("Approve", ctx, int32(12), int32(1), mock.AnythingOfType("*domain.OutboxEvent")).Return(nil, domain.ErrInvalidTransition)

		meetup, err := f.svc.ApproveMeetupRequest(ctx, 1, 12)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Nil(t, meetup)
	})
}

func TestMeetupService_ApproveMeetupLocationRequest(t *testing.T) {
	ctx := context.Background()
	req := &domain.RequestMeetupLocation{ID: 6, Name: "Bangalore", Slug: "bangalore", RequesterID: 9, Status: domain.RequestStatusPending}

	t.Run("StaffApproves", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		created := &domain.MeetupLocation{ID: 3, Slug: "bangalore", LeaderID: 9}

		f.locationRequestRepo.On("GetByID", ctx, int32(6)).Return(req, nil)
		f.userRepo.On("GetByID", ctx, int32(1)).Return(&domain.SystersUser{ID: 1, IsStaff: true}, nil)
		f.locationRequestRepo.On("Approve", ctx, int32(6), int32(1), mock.AnythingOfType("*domain.OutboxEvent")).Return(created, nil)

		location, err := f.svc.ApproveMeetupLocationRequest(ctx, 1, 6)
		assert.NoError(t, err)
		assert.Equal(t, int32(9), location.LeaderID)
	})

	t.Run("NonStaffDenied", func(t *testing.T) {
		f := newMeetupFixture(testClock)

		f.locationRequestRepo.On("GetByID", ctx, int32(6)).Return(req, nil)
		f.userRepo.On("GetByID", ctx, int32(9)).Return(&domain.SystersUser{ID: 9, IsStaff: false}, nil)

		location, err := f.svc.ApproveMeetupLocationRequest(ctx, 9, 6)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		assert.Nil(t, location)
	})
}

func TestMeetupService_SetRsvp(t *testing.T) {
	ctx := context.Background()

	t.Run("Upsert", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		meetup := &domain.Meetup{ID: 30, Date: "2025-06-20", StartTime: "18:00", MeetupLocationID: 3}

		f.meetupRepo.On("GetByID", ctx, int32(30)).Return(meetup, nil)
		f.rsvpRepo.On("Set", ctx, mock.AnythingOfType("*domain.Rsvp")).Return(nil)

		rsvp, err := f.svc.SetRsvp(ctx, 9, 30, true, false)
		assert.NoError(t, err)
		assert.True(t, rsvp.Coming)

		// Changing the answer reuses the same (user, meetup) row.
		rsvp, err = f.svc.SetRsvp(ctx, 9, 30, false, false)
		assert.NoError(t, err)
		assert.False(t, rsvp.Coming)
		f.rsvpRepo.AssertNumberOfCalls(t, "Set", 2)
	})

	t.Run("MeetupAlreadyStarted", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		meetup := &domain.Meetup{ID: 30, Date: "2025-06-15", StartTime: "09:00", MeetupLocationID: 3}

		f.meetupRepo.On("GetByID", ctx, int32(30)).Return(meetup, nil)

		rsvp, err := f.svc.SetRsvp(ctx, 9, 30, true, false)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Nil(t, rsvp)
		f.rsvpRepo.AssertNotCalled(t, "Set", ctx, mock.Anything)
	})
}

func TestMeetupService_CreateMeetup(t *testing.T) {
	ctx := context.Background()
	location := &domain.MeetupLocation{ID: 3, LeaderID: 1}

	t.Run("LeaderCreatesDirectly", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		m := &domain.Meetup{Title: "Go 101", Slug: "go-101", Date: "2025-06-20", MeetupLocationID: 3, CreatedByID: 1}

		f.locationRepo.On("GetByID", ctx, int32(3)).Return(location, nil)
		f.meetupRepo.On("GetBySlug", ctx, int32(3), "go-101").Return(nil, domain.ErrNotFound)
		f.meetupRepo.On("Create", ctx, m).Return(nil)
		f.outboxRepo.On("Append", ctx, mock.AnythingOfType("*domain.OutboxEvent")).Return(nil)

		err := f.svc.CreateMeetup(ctx, m)
		assert.NoError(t, err)
	})

	t.Run("MemberDenied", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		m := &domain.Meetup{Title: "Go 101", Slug: "go-101", Date: "2025-06-20", MeetupLocationID: 3, CreatedByID: 9}

		f.locationRepo.On("GetByID", ctx, int32(3)).Return(location, nil)
		f.meetupRepo.On("GetBySlug", ctx, int32(3), "go-101").Return(nil, domain.ErrNotFound)
		f.locationRepo.On("IsModerator", ctx, int32(3), int32(9)).Return(false, nil)

		err := f.svc.CreateMeetup(ctx, m)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		f.meetupRepo.AssertNotCalled(t, "Create", ctx, m)
	})
}

func TestMeetupService_SupportRequests(t *testing.T) {
	ctx := context.Background()
	location := &domain.MeetupLocation{ID: 3, LeaderID: 1}
	meetup := &domain.Meetup{ID: 30, MeetupLocationID: 3}

	t.Run("CreateAndApprove", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		req := &domain.SupportRequest{VolunteerID: 9, MeetupID: 30, Description: "Need a projector"}

		f.meetupRepo.On("GetByID", ctx, int32(30)).Return(meetup, nil)
		f.supportRepo.On("Create", ctx, req).Return(nil)
		f.outboxRepo.On("Append", ctx, mock.AnythingOfType("*domain.OutboxEvent")).Return(nil)

		assert.NoError(t, f.svc.CreateSupportRequest(ctx, req))

		stored := &domain.SupportRequest{ID: 14, VolunteerID: 9, MeetupID: 30, Status: domain.RequestStatusPending}
		f.supportRepo.On("GetByID", ctx, int32(14)).Return(stored, nil)
		f.locationRepo.On("GetByID", ctx, int32(3)).Return(location, nil)
		f.supportRepo.On("Approve", ctx, int32(14), int32(1), mock.AnythingOfType("*domain.OutboxEvent")).Return(nil)

		assert.NoError(t, f.svc.ApproveSupportRequest(ctx, 1, 14))
	})

	t.Run("EmptyDescription", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		req := &domain.SupportRequest{VolunteerID: 9, MeetupID: 30}

		err := f.svc.CreateSupportRequest(ctx, req)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "description", verr.Field)
	})
}

func TestMeetupService_Comments(t *testing.T) {
	ctx := context.Background()
	location := &domain.MeetupLocation{ID: 3, LeaderID: 1}
	meetup := &domain.Meetup{ID: 30, MeetupLocationID: 3}

	t.Run("NewCommentStartsUnapproved", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		c := &domain.Comment{AuthorID: 9, Body: "Looking forward to it", TargetKind: domain.CommentTargetMeetup, TargetID: 30, IsApproved: true}

		f.meetupRepo.On("GetByID", ctx, int32(30)).Return(meetup, nil)
		f.commentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Comment")).Return(nil)

		err := f.svc.AddComment(ctx, c)
		assert.NoError(t, err)
		assert.False(t, c.IsApproved)
	})

	t.Run("UnknownTargetKind", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		c := &domain.Comment{AuthorID: 9, Body: "hi", TargetKind: "blog_post", TargetID: 30}

		err := f.svc.AddComment(ctx, c)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "target_kind", verr.Field)
	})

	t.Run("ModeratorApprovesComment", func(t *testing.T) {
		f := newMeetupFixture(testClock)
		c := &domain.Comment{ID: 21, AuthorID: 9, TargetKind: domain.CommentTargetMeetup, TargetID: 30}

		f.commentRepo.On("GetByID", ctx, int32(21)).Return(c, nil)
		f.meetupRepo.On("GetByID", ctx, int32(30)).Return(meetup, nil)
		f.locationRepo.On("GetByID", ctx, int32(3)).Return(location, nil)
		f.commentRepo.On("SetApproved", ctx, int32(21), true).Return(nil)

		assert.NoError(t, f.svc.ApproveComment(ctx, 1, 21))
	})
}
