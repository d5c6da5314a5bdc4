package http

import (
	"net/http"

	"community-portal-backend/internal/security"
	"community-portal-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires the public and authenticated route trees. Reads of
// approved content are public; every mutation requires a bearer token.
func NewRouter(tokens security.TokenManager, authSvc service.AuthService, communitySvc service.CommunityService, meetupSvc service.MeetupService) *mux.Router {
	authHandler := NewAuthHandler(authSvc)
	communityHandler := NewCommunityHandler(communitySvc)
	meetupHandler := NewMeetupHandler(meetupSvc)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	api.HandleFunc("/communities", communityHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/communities/{id}", communityHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/communities/{id}/members", communityHandler.ListMembers).Methods(http.MethodGet)
	api.HandleFunc("/meetup-locations/{locationID}/meetups", meetupHandler.ListMeetups).Methods(http.MethodGet)
	api.HandleFunc("/meetup-locations/{locationID}/meetups/{slug}", meetupHandler.GetMeetup).Methods(http.MethodGet)
	api.HandleFunc("/comments/{kind}/{targetID}", meetupHandler.ListComments).Methods(http.MethodGet)

	auth := api.PathPrefix("").Subrouter()
	auth.Use(AuthMiddleware(tokens))

	auth.HandleFunc("/auth/profile", authHandler.Profile).Methods(http.MethodGet)

	auth.HandleFunc("/community-requests", communityHandler.RequestCommunity).Methods(http.MethodPost)
	auth.HandleFunc("/community-requests", communityHandler.ListPendingRequests).Methods(http.MethodGet)
	auth.HandleFunc("/community-requests/{id}/approve", communityHandler.ApproveRequest).Methods(http.MethodPost)
	auth.HandleFunc("/community-requests/{id}/reject", communityHandler.RejectRequest).Methods(http.MethodPost)

	auth.HandleFunc("/communities/{id}/join", communityHandler.RequestToJoin).Methods(http.MethodPost)
	auth.HandleFunc("/communities/{id}/join-requests", communityHandler.ListJoinRequests).Methods(http.MethodGet)
	auth.HandleFunc("/join-requests/{id}/approve", communityHandler.ApproveJoinRequest).Methods(http.MethodPost)
	auth.HandleFunc("/join-requests/{id}/reject", communityHandler.RejectJoinRequest).Methods(http.MethodPost)
	auth.HandleFunc("/communities/{id}/leave", communityHandler.Leave).Methods(http.MethodPost)
	auth.HandleFunc("/communities/{id}/members/{userID}", communityHandler.RemoveMember).Methods(http.MethodDelete)

	auth.HandleFunc("/meetup-location-requests", meetupHandler.RequestLocation).Methods(http.MethodPost)
	auth.HandleFunc("/meetup-location-requests", meetupHandler.ListPendingLocationRequests).Methods(http.MethodGet)
	auth.HandleFunc("/meetup-location-requests/{id}/approve", meetupHandler.ApproveLocationRequest).Methods(http.MethodPost)
	auth.HandleFunc("/meetup-location-requests/{id}/reject", meetupHandler.RejectLocationRequest).Methods(http.MethodPost)
	auth.HandleFunc("/meetup-locations/{locationID}/members", meetupHandler.AddLocationMember).Methods(http.MethodPost)
	auth.HandleFunc("/meetup-locations/{locationID}/moderators", meetupHandler.AddLocationModerator).Methods(http.MethodPost)

	auth.HandleFunc("/meetup-locations/{locationID}/meetup-requests", meetupHandler.RequestMeetup).Methods(http.MethodPost)
	auth.HandleFunc("/meetup-locations/{locationID}/meetup-requests", meetupHandler.ListPendingMeetupRequests).Methods(http.MethodGet)
	auth.HandleFunc("/meetup-requests/{id}/approve", meetupHandler.ApproveMeetupRequest).Methods(http.MethodPost)
	auth.HandleFunc("/meetup-requests/{id}/reject", meetupHandler.RejectMeetupRequest).Methods(http.MethodPost)
	auth.HandleFunc("/meetup-locations/{locationID}/meetups", meetupHandler.CreateMeetup).Methods(http.MethodPost)

	auth.HandleFunc("/meetups/{meetupID}/rsvp", meetupHandler.SetRsvp).Methods(http.MethodPost)
	auth.HandleFunc("/meetups/{meetupID}/support-requests", meetupHandler.CreateSupportRequest).Methods(http.MethodPost)
	auth.HandleFunc("/support-requests/{id}/approve", meetupHandler.ApproveSupportRequest).Methods(http.MethodPost)
	auth.HandleFunc("/support-requests/{id}/reject", meetupHandler.RejectSupportRequest).Methods(http.MethodPost)

	auth.HandleFunc("/comments", meetupHandler.AddComment).Methods(http.MethodPost)
	auth.HandleFunc("/comments/{id}/approve", meetupHandler.ApproveComment).Methods(http.MethodPost)

	return r
}
