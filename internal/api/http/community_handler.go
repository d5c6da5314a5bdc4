package http

import (
	"net/http"
	"strconv"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/service"

	"github.com/gorilla/mux"
)

type CommunityHandler struct {
	communitySvc service.CommunityService
}

func NewCommunityHandler(communitySvc service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communitySvc: communitySvc}
}

func pathID(r *http.Request, name string) (int32, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, false
	}
	return int32(id), true
}

func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	communities, err := h.communitySvc.ListCommunities(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, communities)
}

func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	community, err := h.communitySvc.GetCommunity(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, community)
}

type requestCommunityBody struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Website  string `json:"website"`
	ParentID *int32 `json:"parent_community_id"`
}

func (h *CommunityHandler) RequestCommunity(w http.ResponseWriter, r *http.Request) {
	var body requestCommunityBody
	if !decodeBody(w, r, &body) {
		return
	}
	req := &domain.RequestCommunity{
		Name:        body.Name,
		Slug:        body.Slug,
		Location:    body.Location,
		Email:       body.Email,
		Website:     body.Website,
		ParentID:    body.ParentID,
		RequesterID: callerID(r),
	}
	if err := h.communitySvc.RequestCommunity(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *CommunityHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.communitySvc.ListPendingCommunityRequests(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *CommunityHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	community, err := h.communitySvc.ApproveCommunityRequest(r.Context(), callerID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, community)
}

func (h *CommunityHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	if err := h.communitySvc.RejectCommunityRequest(r.Context(), callerID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"rejected": true})
}

func (h *CommunityHandler) RequestToJoin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	req, err := h.communitySvc.RequestToJoin(r.Context(), callerID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *CommunityHandler) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	reqs, err := h.communitySvc.ListJoinRequests(r.Context(), callerID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *CommunityHandler) ApproveJoinRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	if err := h.communitySvc.ApproveJoinRequest(r.Context(), callerID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"approved": true})
}

func (h *CommunityHandler) RejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	if err := h.communitySvc.RejectJoinRequest(r.Context(), callerID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"rejected": true})
}

func (h *CommunityHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	members, err := h.communitySvc.ListMembers(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *CommunityHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	if err := h.communitySvc.LeaveCommunity(r.Context(), callerID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"left": true})
}

func (h *CommunityHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	userID, ok := pathID(r, "userID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}
	if err := h.communitySvc.RemoveMember(r.Context(), callerID(r), id, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
