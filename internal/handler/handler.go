package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"matricare-api/internal/analytics"
	"matricare-api/internal/apperr"
	"matricare-api/internal/middleware"
	"matricare-api/internal/model"
	"matricare-api/internal/service"
	"matricare-api/internal/store"
)

// AuthStore is the slice of the store the auth endpoints need.
type AuthStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	RefreshTokenByHash(ctx context.Context, tokenHash string) (*store.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}

// CommunityStore writes BellyTalk posts and their replies.
type CommunityStore interface {
	CreatePost(ctx context.Context, p *model.Post) error
	CreateComment(ctx context.Context, c *model.Comment) error
}

type Handler struct {
	appointments *service.Appointments
	analytics    *analytics.Service
	auth         AuthStore
	community    CommunityStore
	secret       string
	log          *zap.Logger
}

func New(appts *service.Appointments, an *analytics.Service, auth AuthStore, community CommunityStore, secret string, log *zap.Logger) *Handler {
	return &Handler{appointments: appts, analytics: an, auth: auth, community: community, secret: secret, log: log}
}

// Routes wires every endpoint. The auth endpoints sit behind the per-IP rate
// limiter; everything else requires a valid token.
func (h *Handler) Routes(rl *middleware.RateLimiter) http.Handler {
	r := mux.NewRouter()

	limited := middleware.RateLimit(rl)
	r.Handle("/auth/register", limited(http.HandlerFunc(h.register))).Methods(http.MethodPost)
	r.Handle("/auth/login", limited(http.HandlerFunc(h.login))).Methods(http.MethodPost)
	r.Handle("/auth/refresh", limited(http.HandlerFunc(h.refresh))).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(middleware.Auth(h.secret))
	api.HandleFunc("/appointment/user", h.appointmentUserGet).Methods(http.MethodGet)
	api.HandleFunc("/appointment", h.appointmentGet).Methods(http.MethodGet)
	api.HandleFunc("/appointment", h.appointmentPost).Methods(http.MethodPost)
	api.HandleFunc("/appointment", h.appointmentPut).Methods(http.MethodPut)
	api.HandleFunc("/appointment", h.appointmentDelete).Methods(http.MethodDelete)
	api.HandleFunc("/notification", h.notificationGet).Methods(http.MethodGet)
	api.HandleFunc("/post", h.postPost).Methods(http.MethodPost)
	api.HandleFunc("/post/comment", h.postCommentPost).Methods(http.MethodPost)
	api.HandleFunc("/analytics", h.analyticsGet).Methods(http.MethodGet)
	api.HandleFunc("/analytics/article", h.analyticsArticleGet).Methods(http.MethodGet)

	return r
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("response encode failed", zap.Error(err))
	}
}

// writeError is the single place business errors become HTTP responses.
// Anything the services did not classify is a 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.StatusOf(err)
	msg := "internal error"
	var e *apperr.Error
	if errors.As(err, &e) {
		msg = e.Message
	} else {
		h.log.Error("unhandled error",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	h.writeJSON(w, status, map[string]string{"message": msg})
}
