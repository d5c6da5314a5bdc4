package domain

import "fmt"

type MeetupLocation struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Sponsors    string `json:"sponsors,omitempty"`
	LeaderID    int32  `json:"leader_id"`
	DateCreated string `json:"date_created"`
}

func (l *MeetupLocation) String() string {
	return l.Name
}

type RequestMeetupLocation struct {
	ID           int32         `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Location     string        `json:"location"`
	Description  string        `json:"description"`
	RequesterID  int32         `json:"user_id"`
	ApprovedByID *int32        `json:"approved_by_id,omitempty"`
	Status       RequestStatus `json:"status"`
	DateCreated  string        `json:"date_created"`
}

func (r *RequestMeetupLocation) String() string {
	return r.Name
}

func (r *RequestMeetupLocation) VerboseFields() []VerboseField {
	return []VerboseField{
		{"Name", r.Name},
		{"Slug", r.Slug},
		{"Location", r.Location},
		{"Description", r.Description},
	}
}

// Meetup belongs to exactly one MeetupLocation. Slug is unique within the
// location, not globally.
type Meetup struct {
	ID               int32  `json:"id"`
	Title            string `json:"title"`
	Slug             string `json:"slug"`
	Date             string `json:"date"`       // 2006-01-02
	StartTime        string `json:"start_time"` // 15:04
	EndTime          string `json:"end_time"`
	Venue            string `json:"venue,omitempty"`
	Description      string `json:"description"`
	MeetupLocationID int32  `json:"meetup_location_id"`
	CreatedByID      int32  `json:"created_by_id"`
	LeaderID         *int32 `json:"leader_id,omitempty"`
	LastUpdated      string `json:"last_updated"`
}

func (m *Meetup) String() string {
	return m.Title
}

type RequestMeetup struct {
	ID               int32         `json:"id"`
	Title            string        `json:"title"`
	Slug             string        `json:"slug"`
	Date             string        `json:"date"`
	StartTime        string        `json:"start_time"`
	EndTime          string        `json:"end_time"`
	Venue            string        `json:"venue,omitempty"`
	Description      string        `json:"description"`
	MeetupLocationID int32         `json:"meetup_location_id"`
	CreatedByID      int32         `json:"created_by_id"`
	ApprovedByID     *int32        `json:"approved_by_id,omitempty"`
	Status           RequestStatus `json:"status"`
	DateCreated      string        `json:"date_created"`
}

func (r *RequestMeetup) String() string {
	return r.Title
}

func (r *RequestMeetup) VerboseFields() []VerboseField {
	return []VerboseField{
		{"Title", r.Title},
		{"Slug", r.Slug},
		{"Date", r.Date},
		{"Start Time", r.StartTime},
		{"End Time", r.EndTime},
		{"Venue", r.Venue},
		{"Description", r.Description},
	}
}

// Rsvp is a user's attendance answer for one meetup. One row per
// (user, meetup) pair.
type Rsvp struct {
	ID       int32 `json:"id"`
	UserID   int32 `json:"user_id"`
	MeetupID int32 `json:"meetup_id"`
	Coming   bool  `json:"coming"`
	PlusOne  bool  `json:"plus_one"`
}

// RsvpString renders the original portal's representation, given the
// resolved username and meetup title.
func (r *Rsvp) RsvpString(username, meetupTitle string) string {
	return fmt.Sprintf("%s RSVP for meetup %s", username, meetupTitle)
}

// SupportRequest is a volunteer-logistics need tied to a meetup, itself
// gated on moderator approval.
type SupportRequest struct {
	ID          int32         `json:"id"`
	VolunteerID int32         `json:"volunteer_id"`
	MeetupID    int32         `json:"meetup_id"`
	Description string        `json:"description"`
	Status      RequestStatus `json:"status"`
	DateCreated string        `json:"date_created"`
}

func (s *SupportRequest) SupportString(username, meetupTitle string) string {
	return fmt.Sprintf("%s volunteered for meetup %s", username, meetupTitle)
}
