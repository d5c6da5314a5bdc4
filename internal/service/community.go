package service

import (
	"context"
	"errors"
	"fmt"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/logger"
	"community-portal-backend/internal/repository"

	"github.com/google/uuid"
)

type communityService struct {
	communityRepo repository.CommunityRepository
	requestRepo   repository.RequestCommunityRepository
	joinRepo      repository.JoinRequestRepository
	userRepo      repository.UserRepository
	outboxRepo    repository.OutboxRepository
	authz         *Authorizer
}

func NewCommunityService(
	communityRepo repository.CommunityRepository,
	requestRepo repository.RequestCommunityRepository,
	joinRepo repository.JoinRequestRepository,
	userRepo repository.UserRepository,
	outboxRepo repository.OutboxRepository,
	authz *Authorizer,
) CommunityService {
	return &communityService{
		communityRepo: communityRepo,
		requestRepo:   requestRepo,
		joinRepo:      joinRepo,
		userRepo:      userRepo,
		outboxRepo:    outboxRepo,
		authz:         authz,
	}
}

func newEvent(kind domain.EventKind, entityKind domain.EntityKind, entityID, actorID int32) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		EntityKind: entityKind,
		EntityID:   entityID,
		ActorID:    actorID,
	}
}

// emitEvent appends an event outside a transaction, for mutations that are a
// single statement. Losing the event only delays a notification; it is
// logged and swallowed.
func (s *communityService) emitEvent(ctx context.Context, event *domain.OutboxEvent) {
	if err := s.outboxRepo.Append(ctx, event); err != nil {
		logger.Warn("Failed to append outbox event", "event_id", event.ID, "kind", event.Kind, "error", err)
	}
}

func (s *communityService) RequestCommunity(ctx context.Context, req *domain.RequestCommunity) error {
	if err := domain.ValidateRequired("name", req.Name); err != nil {
		return err
	}
	if err := domain.ValidateSlug(req.Slug); err != nil {
		return err
	}
	if _, err := s.communityRepo.GetBySlug(ctx, req.Slug); err == nil {
		return domain.NewValidationError("slug", "Community slug already exists.")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to check community slug: %w", err)
	}
	if req.ParentID != nil {
		if _, err := s.communityRepo.GetByID(ctx, *req.ParentID); err != nil {
			return fmt.Errorf("failed to get parent community: %w", err)
		}
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return err
	}
	s.emitEvent(ctx, newEvent(domain.EventRequestCreated, domain.EntityRequestCommunity, req.ID, req.RequesterID))
	return nil
}

func (s *communityService) ApproveCommunityRequest(ctx context.Context, actorID, requestID int32) (*domain.Community, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	ok, err := s.authz.CanApproveCommunityRequest(ctx, actorID, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPermissionDenied
	}

	event := newEvent(domain.EventRequestApproved, domain.EntityRequestCommunity, requestID, actorID)
	community, err := s.requestRepo.Approve(ctx, requestID, actorID, event)
	if err != nil {
		return nil, err
	}
	logger.Info("Community request approved", "request_id", requestID, "community_id", community.ID, "approved_by", actorID)
	return community, nil
}

func (s *communityService) RejectCommunityRequest(ctx context.Context, actorID, requestID int32) error {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	ok, err := s.authz.CanApproveCommunityRequest(ctx, actorID, req)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	event := newEvent(domain.EventRequestRejected, domain.EntityRequestCommunity, requestID, actorID)
	return s.requestRepo.Reject(ctx, requestID, event)
}

func (s *communityService) ListPendingCommunityRequests(ctx context.Context) ([]domain.RequestCommunity, error) {
	return s.requestRepo.ListPending(ctx)
}

// RequestToJoin refuses a second pending request for the same pair and is a
// no-op validation error for existing members. The storage layer does not
// enforce the pair's uniqueness; this check is the only guard.
func (s *communityService) RequestToJoin(ctx context.Context, userID, communityID int32) (*domain.JoinRequest, error) {
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, err
	}
	member, err := s.communityRepo.IsMember(ctx, communityID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if member {
		return nil, domain.NewValidationError("community", "You are already a member of this community.")
	}
	if _, err := s.joinRepo.GetPending(ctx, userID, communityID); err == nil {
		return nil, domain.NewValidationError("community", "You have already requested to join this community.")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check pending join request: %w", err)
	}

	req := &domain.JoinRequest{UserID: userID, CommunityID: communityID}
	if err := s.joinRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	s.emitEvent(ctx, newEvent(domain.EventRequestCreated, domain.EntityJoinRequest, req.ID, userID))
	return req, nil
}

func (s *communityService) ApproveJoinRequest(ctx context.Context, actorID, requestID int32) error {
	req, err := s.joinRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	ok, err := s.authz.CanApproveJoinRequest(ctx, actorID, req)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}

	event := newEvent(domain.EventMemberJoined, domain.EntityJoinRequest, requestID, actorID)
	if err := s.joinRepo.Approve(ctx, requestID, actorID, event); err != nil {
		return err
	}
	logger.Info("Join request approved", "request_id", requestID, "user_id", req.UserID,
		"community_id", req.CommunityID, "approved_by", actorID)
	return nil
}

func (s *communityService) RejectJoinRequest(ctx context.Context, actorID, requestID int32) error {
	req, err := s.joinRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	ok, err := s.authz.CanApproveJoinRequest(ctx, actorID, req)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	event := newEvent(domain.EventRequestRejected, domain.EntityJoinRequest, requestID, actorID)
	return s.joinRepo.Reject(ctx, requestID, event)
}

func (s *communityService) ListJoinRequests(ctx context.Context, actorID, communityID int32) ([]domain.JoinRequest, error) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if community.AdminID != actorID {
		actor, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if !actor.IsStaff {
			return nil, domain.ErrPermissionDenied
		}
	}
	return s.joinRepo.ListByCommunity(ctx, communityID)
}

func (s *communityService) GetCommunity(ctx context.Context, id int32) (*domain.Community, error) {
	return s.communityRepo.GetByID(ctx, id)
}

func (s *communityService) ListCommunities(ctx context.Context) ([]domain.Community, error) {
	return s.communityRepo.List(ctx)
}

func (s *communityService) ListMembers(ctx context.Context, communityID int32) ([]domain.SystersUser, error) {
	return s.communityRepo.ListMembers(ctx, communityID)
}

func (s *communityService) LeaveCommunity(ctx context.Context, userID, communityID int32) error {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return err
	}
	if community.AdminID == userID {
		return domain.NewValidationError("community", "The community admin cannot leave the community.")
	}
	return s.communityRepo.RemoveMember(ctx, communityID, userID)
}

func (s *communityService) RemoveMember(ctx context.Context, actorID, communityID, userID int32) error {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return err
	}
	if community.AdminID != actorID {
		return domain.ErrPermissionDenied
	}
	if userID == community.AdminID {
		return domain.NewValidationError("user", "The community admin cannot be removed.")
	}
	return s.communityRepo.RemoveMember(ctx, communityID, userID)
}
