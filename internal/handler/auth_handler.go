package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"matricare-api/internal/apperr"
	"matricare-api/internal/auth"
	"matricare-api/internal/model"
)

const refreshTokenTTL = 7 * 24 * time.Hour

var allowedRoles = map[string]bool{
	model.RolePatient:   true,
	model.RoleObgyne:    true,
	model.RoleAssistant: true,
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

// POST /auth/register
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, apperr.BadRequest("invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		h.writeError(w, r, apperr.BadRequest("all fields required"))
		return
	}
	if len(req.Password) < 8 {
		h.writeError(w, r, apperr.BadRequest("password too short"))
		return
	}
	if req.Role == "" {
		req.Role = model.RolePatient
	}
	if !allowedRoles[req.Role] {
		h.writeError(w, r, apperr.BadRequest("unknown role"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Role:         req.Role,
	}
	if err := h.auth.CreateUser(r.Context(), u); err != nil {
		// unique violation = dup email, but don't reveal that
		h.writeError(w, r, apperr.Conflict("registration failed"))
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"userId": u.ID, "token": tok})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /auth/login — issues an access token plus httponly cookies, and a
// rotating refresh token scoped to /auth/.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		h.writeError(w, r, apperr.BadRequest("email and password required"))
		return
	}

	u, err := h.auth.UserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		h.writeError(w, r, apperr.Unauthorized("invalid credentials"))
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	rawRefresh, tokenHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if _, err := h.auth.CreateRefreshToken(r.Context(), u.ID, tokenHash, time.Now().Add(refreshTokenTTL)); err != nil {
		h.writeError(w, r, err)
		return
	}

	setAuthCookies(w, tok, rawRefresh)
	h.writeJSON(w, http.StatusOK, map[string]string{
		"userId": u.ID,
		"name":   u.FullName,
		"role":   u.Role,
		"token":  tok,
	})
}

// POST /auth/refresh — rotates the refresh token and mints a new access
// token.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("refresh_token")
	if err != nil {
		h.writeError(w, r, apperr.Unauthorized("no refresh token"))
		return
	}

	rt, err := h.auth.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		h.writeError(w, r, apperr.Unauthorized("invalid refresh token"))
		return
	}

	u, err := h.auth.UserByID(r.Context(), rt.UserID)
	if err != nil {
		h.writeError(w, r, apperr.Unauthorized("invalid refresh token"))
		return
	}

	rawRefresh, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	newID := uuid.New().String()
	if err := h.auth.RotateRefreshToken(r.Context(), rt.ID, newID, rt.UserID, newHash, time.Now().Add(refreshTokenTTL)); err != nil {
		h.writeError(w, r, err)
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	setAuthCookies(w, tok, rawRefresh)
	h.writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

// POST /auth/logout — revokes every refresh token the cookie's owner holds.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie("refresh_token"); err == nil {
		if rt, err := h.auth.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value)); err == nil {
			if err := h.auth.RevokeAllRefreshTokens(r.Context(), rt.UserID); err != nil {
				h.writeError(w, r, err)
				return
			}
		}
	}
	clearAuthCookies(w)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func setAuthCookies(w http.ResponseWriter, accessTok, rawRefresh string) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: accessTok, HttpOnly: true, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: rawRefresh, HttpOnly: true, Path: "/auth/"})
}

func clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", HttpOnly: true, Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "", HttpOnly: true, Path: "/auth/", MaxAge: -1})
}
