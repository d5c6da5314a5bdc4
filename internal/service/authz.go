package service

import (
	"context"
	"fmt"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

// Authorizer answers the single question every transition asks first: may
// this actor decide this request? The checks are explicit here instead of
// being implied by relationship traversal at the call sites.
type Authorizer struct {
	userRepo      repository.UserRepository
	communityRepo repository.CommunityRepository
	locationRepo  repository.MeetupLocationRepository
	meetupRepo    repository.MeetupRepository
}

func NewAuthorizer(
	userRepo repository.UserRepository,
	communityRepo repository.CommunityRepository,
	locationRepo repository.MeetupLocationRepository,
	meetupRepo repository.MeetupRepository,
) *Authorizer {
	return &Authorizer{
		userRepo:      userRepo,
		communityRepo: communityRepo,
		locationRepo:  locationRepo,
		meetupRepo:    meetupRepo,
	}
}

// CanApproveCommunityRequest allows portal staff, and the parent community's
// admin when the request names a parent.
func (a *Authorizer) CanApproveCommunityRequest(ctx context.Context, actorID int32, req *domain.RequestCommunity) (bool, error) {
	actor, err := a.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return false, fmt.Errorf("failed to get actor: %w", err)
	}
	if actor.IsStaff {
		return true, nil
	}
	if req.ParentID != nil {
		parent, err := a.communityRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return false, fmt.Errorf("failed to get parent community: %w", err)
		}
		return parent.AdminID == actorID, nil
	}
	return false, nil
}

// CanApproveJoinRequest allows the community admin and portal staff.
func (a *Authorizer) CanApproveJoinRequest(ctx context.Context, actorID int32, req *domain.JoinRequest) (bool, error) {
	community, err := a.communityRepo.GetByID(ctx, req.CommunityID)
	if err != nil {
		return false, fmt.Errorf("failed to get community: %w", err)
	}
	if community.AdminID == actorID {
		return true, nil
	}
	actor, err := a.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return false, fmt.Errorf("failed to get actor: %w", err)
	}
	return actor.IsStaff, nil
}

// CanApproveMeetupLocationRequest allows portal staff only; there is no
// narrower scope before the location exists.
func (a *Authorizer) CanApproveMeetupLocationRequest(ctx context.Context, actorID int32) (bool, error) {
	actor, err := a.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return false, fmt.Errorf("failed to get actor: %w", err)
	}
	return actor.IsStaff, nil
}

// CanModerateLocation allows the location's leader and its moderators.
func (a *Authorizer) CanModerateLocation(ctx context.Context, actorID, locationID int32) (bool, error) {
	location, err := a.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return false, fmt.Errorf("failed to get meetup location: %w", err)
	}
	if location.LeaderID == actorID {
		return true, nil
	}
	return a.locationRepo.IsModerator(ctx, locationID, actorID)
}

// CanModerateMeetup resolves the meetup's location and defers to
// CanModerateLocation.
func (a *Authorizer) CanModerateMeetup(ctx context.Context, actorID, meetupID int32) (bool, error) {
	meetup, err := a.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		return false, fmt.Errorf("failed to get meetup: %w", err)
	}
	return a.CanModerateLocation(ctx, actorID, meetup.MeetupLocationID)
}
