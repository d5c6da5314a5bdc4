package domain

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// IsTerminal reports whether the status admits no further transition.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

type Community struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Order       int32  `json:"order"`
	AdminID     int32  `json:"admin_id"`
	ParentID    *int32 `json:"parent_community_id,omitempty"`
	Location    string `json:"location"`
	Email       string `json:"email,omitempty"`
	Website     string `json:"website,omitempty"`
	Facebook    string `json:"facebook,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	DateCreated string `json:"date_created"`
}

func (c *Community) String() string {
	return c.Name
}

// RequestCommunity is a pending proposal to create a Community. It is never
// deleted after a decision; the approver and status remain as an audit trail.
type RequestCommunity struct {
	ID           int32         `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Order        int32         `json:"order"`
	RequesterID  int32         `json:"user_id"`
	ApprovedByID *int32        `json:"approved_by_id,omitempty"`
	ParentID     *int32        `json:"parent_community_id,omitempty"`
	Location     string        `json:"location"`
	Email        string        `json:"email,omitempty"`
	Website      string        `json:"website,omitempty"`
	Status       RequestStatus `json:"status"`
	DateCreated  string        `json:"date_created"`
}

func (r *RequestCommunity) String() string {
	return r.Name
}

// VerboseFields returns label/value pairs of the descriptive fields, used to
// render notification bodies.
func (r *RequestCommunity) VerboseFields() []VerboseField {
	return []VerboseField{
		{"Name", r.Name},
		{"Slug", r.Slug},
		{"Location", r.Location},
		{"Email", r.Email},
		{"Website", r.Website},
	}
}

type JoinRequest struct {
	ID           int32         `json:"id"`
	UserID       int32         `json:"user_id"`
	CommunityID  int32         `json:"community_id"`
	Status       RequestStatus `json:"status"`
	ApprovedByID *int32        `json:"approved_by_id,omitempty"`
	DateCreated  string        `json:"date_created"`
}

// VerboseField is a human-readable label paired with a field value.
type VerboseField struct {
	Label string
	Value string
}
