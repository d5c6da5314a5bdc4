package http

import (
	"net/http"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/service"

	"github.com/gorilla/mux"
)

type MeetupHandler struct {
	meetupSvc service.MeetupService
}

func NewMeetupHandler(meetupSvc service.MeetupService) *MeetupHandler {
	return &MeetupHandler{meetupSvc: meetupSvc}
}

type requestMeetupLocationBody struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (h *MeetupHandler) RequestLocation(w http.ResponseWriter, r *http.Request) {
	var body requestMeetupLocationBody
	if !decodeBody(w, r, &body) {
		return
	}
	req := &domain.RequestMeetupLocation{
		Name:        body.Name,
		Slug:        body.Slug,
		Location:    body.Location,
		Description: body.Description,
		RequesterID: callerID(r),
	}
	if err := h.meetupSvc.RequestMeetupLocation(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *MeetupHandler) ApproveLocationRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	location, err := h.meetupSvc.ApproveMeetupLocationRequest(r.Context(), callerID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, location)
}

func (h *MeetupHandler) RejectLocationRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	if err := h.meetupSvc.RejectMeetupLocationRequest(r.Context(), callerID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"rejected": true})
}

func (h *MeetupHandler) ListPendingLocationRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.meetupSvc.ListPendingMeetupLocationRequests(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

type requestMeetupBody struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
}

func (h *MeetupHandler) RequestMeetup(w http.ResponseWriter, r *http.Request) {
	locationID, ok := pathID(r, "locationID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid location id"})
		return
	}
	var body requestMeetupBody
	if !decodeBody(w, r, &body) {
		return
	}
	req := &domain.RequestMeetup{
		Title:            body.Title,
		Slug:             body.Slug,
		Date:             body.Date,
		StartTime:        body.StartTime,
		EndTime:          body.EndTime,
		Venue:            body.Venue,
		Description:      body.Description,
		MeetupLocationID: locationID,
		CreatedByID:      callerID(r),
	}
	if err := h.meetupSvc.RequestMeetup(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *MeetupHandler) ApproveMeetupRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	meetup, err := h.meetupSvc.ApproveMeetupRequest(r.Context(), callerID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meetup)
}

func (h *MeetupHandler) RejectMeetupRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	if err := h.meetupSvc.RejectMeetupRequest(r.Context(), callerID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"rejected": true})
}

func (h *MeetupHandler) ListPendingMeetupRequests(w http.ResponseWriter, r *http.Request) {
	locationID, ok := pathID(r, "locationID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid location id"})
		return
	}
	reqs, err := h.meetupSvc.ListPendingMeetupRequests(r.Context(), callerID(r), locationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *MeetupHandler) CreateMeetup(w http.ResponseWriter, r *http.Request) {
	locationID, ok := pathID(r, "locationID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid location id"})
		return
	}
	var body requestMeetupBody
	if !decodeBody(w, r, &body) {
		return
	}
	meetup := &domain.Meetup{
		Title:            body.Title,
		Slug:             body.Slug,
		Date:             body.Date,
		StartTime:        body.StartTime,
		EndTime:          body.EndTime,
		Venue:            body.Venue,
		Description:      body.Description,
		MeetupLocationID: locationID,
		CreatedByID:      callerID(r),
	}
	if err := h.meetupSvc.CreateMeetup(r.Context(), meetup); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, meetup)
}

func (h *MeetupHandler) GetMeetup(w http.ResponseWriter, r *http.Request) {
	locationID, ok := pathID(r, "locationID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid location id"})
		return
	}
	meetup, err := h.meetupSvc.GetMeetup(r.Context(), locationID, mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meetup)
}

func (h *MeetupHandler) ListMeetups(w http.ResponseWriter, r *http.Request) {
	locationID, ok := pathID(r, "locationID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid location id"})
		return
	}
	meetups, err := h.meetupSvc.ListMeetups(r.Context(), locationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meetups)
}

type rsvpBody struct {
	Coming  bool `json:"coming"`
	PlusOne bool `json:"plus_one"`
}

func (h *MeetupHandler) SetRsvp(w http.ResponseWriter, r *http.Request) {
	meetupID, ok := pathID(r, "meetupID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid meetup id"})
		return
	}
	var body rsvpBody
	if !decodeBody(w, r, &body) {
		return
	}
	rsvp, err := h.meetupSvc.SetRsvp(r.Context(), callerID(r), meetupID, body.Coming, body.PlusOne)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rsvp)
}

type supportRequestBody struct {
	Description string `json:"description"`
}

func (h *MeetupHandler) CreateSupportRequest(w http.ResponseWriter, r *http.Request) {
	meetupID, ok := pathID(r, "meetupID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid meetup id"})
		return
	}
	var body supportRequestBody
	if !decodeBody(w, r, &body) {
		return
	}
	req := &domain.SupportRequest{
		VolunteerID: callerID(r),
		MeetupID:    meetupID,
		Description: body.Description,
	}
	if err := h.meetupSvc.CreateSupportRequest(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *MeetupHandler) ApproveSupportRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	if err := h.meetupSvc.ApproveSupportRequest(r.Context(), callerID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"approved": true})
}

func (h *MeetupHandler) RejectSupportRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	if err := h.meetupSvc.RejectSupportRequest(r.Context(), callerID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"rejected": true})
}

type commentBody struct {
	Body       string `json:"body"`
	TargetKind string `json:"target_kind"`
	TargetID   int32  `json:"target_id"`
}

func (h *MeetupHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var body commentBody
	if !decodeBody(w, r, &body) {
		return
	}
	c := &domain.Comment{
		AuthorID:   callerID(r),
		Body:       body.Body,
		TargetKind: domain.CommentTargetKind(body.TargetKind),
		TargetID:   body.TargetID,
	}
	if err := h.meetupSvc.AddComment(r.Context(), c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *MeetupHandler) ApproveComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid comment id"})
		return
	}
	if err := h.meetupSvc.ApproveComment(r.Context(), callerID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"approved": true})
}

type locationUserBody struct {
	UserID int32 `json:"user_id"`
}

func (h *MeetupHandler) AddLocationMember(w http.ResponseWriter, r *http.Request) {
	locationID, ok := pathID(r, "locationID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid location id"})
		return
	}
	var body locationUserBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := h.meetupSvc.AddLocationMember(r.Context(), callerID(r), locationID, body.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"added": true})
}

func (h *MeetupHandler) AddLocationModerator(w http.ResponseWriter, r *http.Request) {
	locationID, ok := pathID(r, "locationID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid location id"})
		return
	}
	var body locationUserBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := h.meetupSvc.AddLocationModerator(r.Context(), callerID(r), locationID, body.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"added": true})
}

func (h *MeetupHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathID(r, "targetID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid target id"})
		return
	}
	kind := domain.CommentTargetKind(mux.Vars(r)["kind"])
	comments, err := h.meetupSvc.ListComments(r.Context(), kind, targetID, true)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
