package domain

type EventKind string

const (
	EventRequestCreated  EventKind = "request_created"
	EventRequestApproved EventKind = "request_approved"
	EventRequestRejected EventKind = "request_rejected"
	EventMemberJoined    EventKind = "member_joined"
)

type EventStatus string

const (
	EventStatusPending EventStatus = "PENDING"
	EventStatusSent    EventStatus = "SENT"
	EventStatusFailed  EventStatus = "FAILED"
)

// EntityKind names the aggregate an outbox event refers to.
type EntityKind string

const (
	EntityRequestCommunity      EntityKind = "request_community"
	EntityRequestMeetupLocation EntityKind = "request_meetup_location"
	EntityRequestMeetup         EntityKind = "request_meetup"
	EntityJoinRequest           EntityKind = "join_request"
	EntitySupportRequest        EntityKind = "support_request"
	EntityMeetup                EntityKind = "meetup"
)

// OutboxEvent is a domain event persisted in the same transaction as the
// mutation that produced it. A separate dispatcher turns it into emails, so
// delivery failures can never roll back the mutation.
type OutboxEvent struct {
	ID          string      `json:"id"` // uuid
	Kind        EventKind   `json:"kind"`
	EntityKind  EntityKind  `json:"entity_kind"`
	EntityID    int32       `json:"entity_id"`
	ActorID     int32       `json:"actor_id"`
	Status      EventStatus `json:"status"`
	Attempts    int32       `json:"attempts"`
	DateCreated string      `json:"date_created"`
}
