package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/peopleops/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops/hrms-backend-go/internal/domain/user"
	"github.com/peopleops/hrms-backend-go/internal/handler/http/response"
	"github.com/peopleops/hrms-backend-go/internal/pkg/jwt"
	"github.com/peopleops/hrms-backend-go/internal/pkg/sse"
	"github.com/peopleops/hrms-backend-go/internal/service/session"
)

type SessionHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	EventsToken(w http.ResponseWriter, r *http.Request)
	Events(w http.ResponseWriter, r *http.Request)
}

type SessionHandlerImpl struct {
	jwtService  jwt.Service
	userService user.UserService
	fetcher     session.ProfileFetcher
	hub         *sse.Hub
}

func NewSessionHandler(jwtService jwt.Service, userService user.UserService, fetcher session.ProfileFetcher, hub *sse.Hub) SessionHandler {
	return &SessionHandlerImpl{
		jwtService:  jwtService,
		userService: userService,
		fetcher:     fetcher,
		hub:         hub,
	}
}

type meResponse struct {
	Profile    user.Profile    `json:"profile"`
	Visibility map[string]bool `json:"visibility"`
}

// Me implements SessionHandler. The visibility flags drive which
// portal pages the client renders for this role.
func (s *SessionHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	profile, err := s.userService.GetProfile(r.Context(), userID)
	if err != nil {
		slog.Error("Me service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, meResponse{
		Profile:    profile,
		Visibility: user.Visibility(profile.Role),
	})
}

// UpdateProfile implements SessionHandler.
func (s *SessionHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var updateReq user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := s.userService.UpdateProfile(r.Context(), userID, updateReq)
	if err != nil {
		slog.Error("UpdateProfile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", profile)
}

// UpdateRole implements SessionHandler. Admin only, enforced by the router.
func (s *SessionHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var roleReq user.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&roleReq); err != nil {
		slog.Error("UpdateRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := s.userService.UpdateRole(r.Context(), roleReq)
	if err != nil {
		slog.Error("UpdateRole service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role updated successfully", profile)
}

type eventsTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// EventsToken issues a short-lived token for the event stream. The
// EventSource API cannot set an Authorization header, so the stream
// authenticates with this token in the query string instead.
func (s *SessionHandlerImpl) EventsToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	token, expiresIn, err := s.jwtService.GenerateEventsToken(userID)
	if err != nil {
		slog.Error("EventsToken generate error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, eventsTokenResponse{Token: token, ExpiresIn: expiresIn})
}

type snapshotPayload struct {
	SignedIn bool          `json:"signed_in"`
	Loading  bool          `json:"loading"`
	Profile  *user.Profile `json:"profile,omitempty"`
	Error    string        `json:"error,omitempty"`
}

func toSnapshotPayload(snap session.Snapshot) snapshotPayload {
	payload := snapshotPayload{
		SignedIn: snap.Session != nil,
		Loading:  snap.Loading,
		Profile:  snap.Profile,
	}
	if snap.Err != nil {
		payload.Error = snap.Err.Error()
	}
	return payload
}

// Events implements SessionHandler. It streams session/profile
// snapshots over SSE; each connected client gets its own reconciler
// fed by the auth event hub.
func (s *SessionHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	userID, err := s.jwtService.ValidateEventsToken(tokenString)
	if err != nil {
		slog.Error("Events token validate error", "error", err)
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	reconciler := session.NewReconciler(s.fetcher, s.hub, slog.Default())
	defer reconciler.Dispose()
	reconciler.Init(r.Context(), &session.Session{UserID: userID})

	writeSnapshot := func(snap session.Snapshot) bool {
		data, err := json.Marshal(toSnapshotPayload(snap))
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, open := <-reconciler.Updates():
			if !open {
				return
			}
			if !writeSnapshot(snap) {
				return
			}
		}
	}
}
