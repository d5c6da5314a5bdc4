package domain

// SystersUser is the community profile attached 1:1 to an external account.
// The account record (username, email, password hash) is owned by the
// identity provider; the profile adds the community-domain attributes.
type SystersUser struct {
	ID           int32  `json:"id"`
	UserID       int32  `json:"user_id"` // external account id, unique
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Country      string `json:"country,omitempty"`
	Blog         string `json:"blog,omitempty"`
	Homepage     string `json:"homepage,omitempty"`
	IsStaff      bool   `json:"is_staff"`
	DateCreated  string `json:"date_created"`
}

func (u *SystersUser) String() string {
	return u.Username
}
