package domain

// CommentTargetKind is the explicit tag replacing the original's untyped
// generic relation: a comment attaches to a meetup or a support request.
type CommentTargetKind string

const (
	CommentTargetMeetup         CommentTargetKind = "meetup"
	CommentTargetSupportRequest CommentTargetKind = "support_request"
)

func (k CommentTargetKind) Valid() bool {
	return k == CommentTargetMeetup || k == CommentTargetSupportRequest
}

// Comment is hidden from public listings until approved by a moderator.
type Comment struct {
	ID          int32             `json:"id"`
	AuthorID    int32             `json:"author_id"`
	Body        string            `json:"body"`
	IsApproved  bool              `json:"is_approved"`
	TargetKind  CommentTargetKind `json:"target_kind"`
	TargetID    int32             `json:"target_id"`
	DateCreated string            `json:"date_created"`
}
