package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/baharkarakas/budget-backend/internal/api/httpx"
	"github.com/baharkarakas/budget-backend/internal/auth"
	"github.com/baharkarakas/budget-backend/internal/services"
)

type AuthHandler struct {
	Users *services.UserService
	Log   *slog.Logger
	now   func() time.Time
}

func NewAuthHandler(us *services.UserService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{Users: us, Log: log, now: time.Now}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds until the access token expires
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}
	u, err := h.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}
	pair, err := h.Users.Login(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.tokens(pair))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}
	if req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, "refresh_token is required", nil)
		return
	}
	pair, err := h.Users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.tokens(pair))
}

func (h *AuthHandler) tokens(p auth.TokenPair) tokenResp {
	now := time.Now
	if h.now != nil {
		now = h.now
	}
	return tokenResp{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    int64(p.AccessExpiry.Sub(now()).Round(time.Second) / time.Second),
	}
}
