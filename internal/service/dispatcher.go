package service

import (
	"context"
	"fmt"
	"strings"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/logger"
	"community-portal-backend/internal/repository"
)

// outboxDispatcher turns committed outbox events into emails. Recipient sets
// are derived from the entity's scope at dispatch time, so a moderator added
// between commit and dispatch still gets the mail.
type outboxDispatcher struct {
	outboxRepo          repository.OutboxRepository
	userRepo            repository.UserRepository
	communityRepo       repository.CommunityRepository
	requestRepo         repository.RequestCommunityRepository
	joinRepo            repository.JoinRequestRepository
	locationRepo        repository.MeetupLocationRepository
	locationRequestRepo repository.RequestMeetupLocationRepository
	meetupRepo          repository.MeetupRepository
	meetupRequestRepo   repository.RequestMeetupRepository
	supportRepo         repository.SupportRequestRepository
	emailSvc            EmailService
	batchSize           int32
}

func NewOutboxDispatcher(
	outboxRepo repository.OutboxRepository,
	userRepo repository.UserRepository,
	communityRepo repository.CommunityRepository,
	requestRepo repository.RequestCommunityRepository,
	joinRepo repository.JoinRequestRepository,
	locationRepo repository.MeetupLocationRepository,
	locationRequestRepo repository.RequestMeetupLocationRepository,
	meetupRepo repository.MeetupRepository,
	meetupRequestRepo repository.RequestMeetupRepository,
	supportRepo repository.SupportRequestRepository,
	emailSvc EmailService,
) Dispatcher {
	return &outboxDispatcher{
		outboxRepo:          outboxRepo,
		userRepo:            userRepo,
		communityRepo:       communityRepo,
		requestRepo:         requestRepo,
		joinRepo:            joinRepo,
		locationRepo:        locationRepo,
		locationRequestRepo: locationRequestRepo,
		meetupRepo:          meetupRepo,
		meetupRequestRepo:   meetupRequestRepo,
		supportRepo:         supportRepo,
		emailSvc:            emailSvc,
		batchSize:           50,
	}
}

// message is one rendered notification bound for a recipient set.
type message struct {
	recipients []domain.SystersUser
	subject    string
	body       string
}

// DispatchPending drains one batch. It returns the number of events fully
// dispatched; per-recipient failures leave the event pending for a retry,
// and the caller treats a non-nil error as a warning, never as a rollback.
func (d *outboxDispatcher) DispatchPending(ctx context.Context) (int, error) {
	events, err := d.outboxRepo.ListPending(ctx, d.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending events: %w", err)
	}

	sent := 0
	for _, event := range events {
		msg, err := d.render(ctx, &event)
		if err != nil {
			logger.Warn("Failed to render outbox event", "event_id", event.ID, "kind", event.Kind, "error", err)
			if err := d.outboxRepo.MarkFailed(ctx, event.ID); err != nil {
				logger.Error("Failed to mark event failed", "event_id", event.ID, "error", err)
			}
			continue
		}

		failed := false
		for _, recipient := range dedupe(msg.recipients) {
			if err := d.emailSvc.Send(ctx, recipient.Email, recipient.Username, msg.subject, msg.body); err != nil {
				logger.Warn("Failed to deliver notification", "event_id", event.ID,
					"to", recipient.Email, "error", err)
				failed = true
			}
		}
		if failed {
			if err := d.outboxRepo.MarkFailed(ctx, event.ID); err != nil {
				logger.Error("Failed to mark event failed", "event_id", event.ID, "error", err)
			}
			continue
		}
		if err := d.outboxRepo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("Failed to mark event sent", "event_id", event.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

func (d *outboxDispatcher) render(ctx context.Context, event *domain.OutboxEvent) (*message, error) {
	switch event.EntityKind {
	case domain.EntityRequestCommunity:
		return d.renderCommunityRequest(ctx, event)
	case domain.EntityJoinRequest:
		return d.renderJoinRequest(ctx, event)
	case domain.EntityRequestMeetupLocation:
		return d.renderLocationRequest(ctx, event)
	case domain.EntityRequestMeetup:
		return d.renderMeetupRequest(ctx, event)
	case domain.EntitySupportRequest:
		return d.renderSupportRequest(ctx, event)
	case domain.EntityMeetup:
		return d.renderMeetupAnnouncement(ctx, event)
	}
	return nil, fmt.Errorf("unknown entity kind %q", event.EntityKind)
}

func (d *outboxDispatcher) renderCommunityRequest(ctx context.Context, event *domain.OutboxEvent) (*message, error) {
	req, err := d.requestRepo.GetByID(ctx, event.EntityID)
	if err != nil {
		return nil, err
	}
	requester, err := d.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil {
		return nil, err
	}
	body := renderFields(req.VerboseFields(), "Requested by: "+requester.Username)

	switch event.Kind {
	case domain.EventRequestCreated:
		staff, err := d.userRepo.ListStaff(ctx)
		if err != nil {
			return nil, err
		}
		return &message{staff, "New Community Request: " + req.Name, body}, nil
	case domain.EventRequestApproved:
		return &message{[]domain.SystersUser{*requester},
			"Community Request Approved: " + req.Name,
			fmt.Sprintf("Hello %s,\n\nYour community %q has been approved and is now live.\n\n%s", requester.Username, req.Name, body)}, nil
	case domain.EventRequestRejected:
		return &message{[]domain.SystersUser{*requester},
			"Community Request Rejected: " + req.Name,
			fmt.Sprintf("Hello %s,\n\nYour request for the community %q was not approved.", requester.Username, req.Name)}, nil
	}
	return nil, fmt.Errorf("unsupported kind %q for community request", event.Kind)
}

func (d *outboxDispatcher) renderJoinRequest(ctx context.Context, event *domain.OutboxEvent) (*message, error) {
	req, err := d.joinRepo.GetByID(ctx, event.EntityID)
	if err != nil {
		return nil, err
	}
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	community, err := d.communityRepo.GetByID(ctx, req.CommunityID)
	if err != nil {
		return nil, err
	}
	admin, err := d.userRepo.GetByID(ctx, community.AdminID)
	if err != nil {
		return nil, err
	}

	switch event.Kind {
	case domain.EventRequestCreated:
		return &message{[]domain.SystersUser{*admin},
			"New Join Request: " + community.Name,
			fmt.Sprintf("%s has requested to join the community %q.", user.Username, community.Name)}, nil
	case domain.EventMemberJoined:
		return &message{[]domain.SystersUser{*user, *admin},
			"Welcome to " + community.Name,
			fmt.Sprintf("%s is now a member of the community %q.", user.Username, community.Name)}, nil
	case domain.EventRequestRejected:
		return &message{[]domain.SystersUser{*user},
			"Join Request Declined: " + community.Name,
			fmt.Sprintf("Hello %s,\n\nYour request to join %q was not approved.", user.Username, community.Name)}, nil
	}
	return nil, fmt.Errorf("unsupported kind %q for join request", event.Kind)
}

func (d *outboxDispatcher) renderLocationRequest(ctx context.Context, event *domain.OutboxEvent) (*message, error) {
	req, err := d.locationRequestRepo.GetByID(ctx, event.EntityID)
	if err != nil {
		return nil, err
	}
	requester, err := d.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil {
		return nil, err
	}
	body := renderFields(req.VerboseFields(), "Requested by: "+requester.Username)

	switch event.Kind {
	case domain.EventRequestCreated:
		staff, err := d.userRepo.ListStaff(ctx)
		if err != nil {
			return nil, err
		}
		return &message{staff, "New Meetup Location Request: " + req.Name, body}, nil
	case domain.EventRequestApproved:
		return &message{[]domain.SystersUser{*requester},
			"Meetup Location Request Approved: " + req.Name,
			fmt.Sprintf("Hello %s,\n\nYour meetup location %q has been approved. You are its leader.", requester.Username, req.Name)}, nil
	case domain.EventRequestRejected:
		return &message{[]domain.SystersUser{*requester},
			"Meetup Location Request Rejected: " + req.Name,
			fmt.Sprintf("Hello %s,\n\nYour request for the meetup location %q was not approved.", requester.Username, req.Name)}, nil
	}
	return nil, fmt.Errorf("unsupported kind %q for meetup location request", event.Kind)
}

func (d *outboxDispatcher) renderMeetupRequest(ctx context.Context, event *domain.OutboxEvent) (*message, error) {
	req, err := d.meetupRequestRepo.GetByID(ctx, event.EntityID)
	if err != nil {
		return nil, err
	}
	requester, err := d.userRepo.GetByID(ctx, req.CreatedByID)
	if err != nil {
		return nil, err
	}
	body := renderFields(req.VerboseFields(), "Requested by: "+requester.Username)

	switch event.Kind {
	case domain.EventRequestCreated:
		// Location leader and moderators decide meetup requests.
		recipients, err := d.locationStaff(ctx, req.MeetupLocationID)
		if err != nil {
			return nil, err
		}
		return &message{recipients, "New Meetup Request: " + req.Title, body}, nil
	case domain.EventRequestApproved:
		members, err := d.locationRepo.ListMembers(ctx, req.MeetupLocationID)
		if err != nil {
			return nil, err
		}
		recipients := append([]domain.SystersUser{*requester}, members...)
		return &message{recipients, "New Meetup: " + req.Title, body}, nil
	case domain.EventRequestRejected:
		return &message{[]domain.SystersUser{*requester},
			"Meetup Request Rejected: " + req.Title,
			fmt.Sprintf("Hello %s,\n\nYour meetup request %q was not approved.", requester.Username, req.Title)}, nil
	}
	return nil, fmt.Errorf("unsupported kind %q for meetup request", event.Kind)
}

func (d *outboxDispatcher) renderSupportRequest(ctx context.Context, event *domain.OutboxEvent) (*message, error) {
	req, err := d.supportRepo.GetByID(ctx, event.EntityID)
	if err != nil {
		return nil, err
	}
	volunteer, err := d.userRepo.GetByID(ctx, req.VolunteerID)
	if err != nil {
		return nil, err
	}
	meetup, err := d.meetupRepo.GetByID(ctx, req.MeetupID)
	if err != nil {
		return nil, err
	}

	switch event.Kind {
	case domain.EventRequestCreated:
		recipients, err := d.locationStaff(ctx, meetup.MeetupLocationID)
		if err != nil {
			return nil, err
		}
		return &message{recipients, "New Support Request: " + meetup.Title,
			fmt.Sprintf("%s volunteered for meetup %s.\n\n%s", volunteer.Username, meetup.Title, req.Description)}, nil
	case domain.EventRequestApproved:
		return &message{[]domain.SystersUser{*volunteer},
			"Support Request Approved: " + meetup.Title,
			fmt.Sprintf("Hello %s,\n\nYour support request for %q has been approved.", volunteer.Username, meetup.Title)}, nil
	case domain.EventRequestRejected:
		return &message{[]domain.SystersUser{*volunteer},
			"Support Request Rejected: " + meetup.Title,
			fmt.Sprintf("Hello %s,\n\nYour support request for %q was not approved.", volunteer.Username, meetup.Title)}, nil
	}
	return nil, fmt.Errorf("unsupported kind %q for support request", event.Kind)
}

func (d *outboxDispatcher) renderMeetupAnnouncement(ctx context.Context, event *domain.OutboxEvent) (*message, error) {
	meetup, err := d.meetupRepo.GetByID(ctx, event.EntityID)
	if err != nil {
		return nil, err
	}
	members, err := d.locationRepo.ListMembers(ctx, meetup.MeetupLocationID)
	if err != nil {
		return nil, err
	}
	body := fmt.Sprintf("A new meetup %q is scheduled on %s at %s.\n\n%s",
		meetup.Title, meetup.Date, meetup.StartTime, meetup.Description)
	return &message{members, "New Meetup: " + meetup.Title, body}, nil
}

// locationStaff is the approval audience of a location: leader plus
// moderators.
func (d *outboxDispatcher) locationStaff(ctx context.Context, locationID int32) ([]domain.SystersUser, error) {
	location, err := d.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	leader, err := d.userRepo.GetByID(ctx, location.LeaderID)
	if err != nil {
		return nil, err
	}
	moderators, err := d.locationRepo.ListModerators(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return append([]domain.SystersUser{*leader}, moderators...), nil
}

func renderFields(fields []domain.VerboseField, extra string) string {
	var b strings.Builder
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	if extra != "" {
		b.WriteString(extra)
		b.WriteString("\n")
	}
	return b.String()
}

func dedupe(users []domain.SystersUser) []domain.SystersUser {
	seen := make(map[string]bool, len(users))
	out := users[:0:0]
	for _, u := range users {
		if u.Email == "" || seen[u.Email] {
			continue
		}
		seen[u.Email] = true
		out = append(out, u)
	}
	return out
}
