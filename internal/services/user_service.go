package services

import (
	"context"
	"errors"
	"strings"

	"github.com/baharkarakas/budget-backend/internal/api/validate"
	"github.com/baharkarakas/budget-backend/internal/auth"
	"github.com/baharkarakas/budget-backend/internal/models"
	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

type UserService struct {
	r  repo.Users
	tm *auth.TokenManager
}

func NewUserService(r repo.Users, tm *auth.TokenManager) *UserService {
	return &UserService{r: r, tm: tm}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	u := models.User{Username: username, Email: email, Role: models.RoleUser}
	u.Normalize()

	var errs validate.Errs
	errs = errs.Append(
		validate.MinLen("username", u.Username, 3),
		validate.MaxLen("username", u.Username, 150),
		validate.Required("email", u.Email),
		validate.MinLen("password", password, 8),
		validate.MaxBytes("password", password, auth.MaxPasswordBytes),
	)
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		errs = errs.Append(&validate.ErrField{Field: "email", Msg: "must be a valid email address"})
	}
	if err := errs.Err(); err != nil {
		return models.User{}, err
	}
	if _, err := s.r.GetByUsername(ctx, u.Username); err == nil {
		return models.User{}, validate.Field("username", "already taken")
	}
	if _, err := s.r.GetByEmail(ctx, u.Email); err == nil {
		return models.User{}, validate.Field("email", "already registered")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, wrap("hash password", err)
	}
	u.PasswordHash = hash
	created, err := s.r.Create(ctx, u)
	if errors.Is(err, repo.ErrDuplicate) {
		return models.User{}, validate.Field(validate.NonField, "username or email already registered")
	}
	return created, wrap("create user", err)
}

// Login accepts either a username or an email. Unknown users and wrong
// passwords are reported the same way.
func (s *UserService) Login(ctx context.Context, username, email, password string) (auth.TokenPair, error) {
	var (
		u   models.User
		err error
	)
	switch {
	case strings.TrimSpace(email) != "":
		u, err = s.r.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	case strings.TrimSpace(username) != "":
		u, err = s.r.GetByUsername(ctx, strings.TrimSpace(username))
	default:
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	if errors.Is(err, repo.ErrNotFound) {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return auth.TokenPair{}, wrap("load user", err)
	}
	if auth.VerifyPassword(password, u.PasswordHash) != nil {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	return s.tm.GeneratePair(u.ID, u.Role)
}

// Refresh exchanges a refresh token for a new pair. The role is re-read from
// storage so a changed role takes effect.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil || !repo.ValidID(claims.UserID) {
		return auth.TokenPair{}, ErrInvalidToken
	}
	u, err := s.r.GetByID(ctx, claims.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return auth.TokenPair{}, ErrInvalidToken
	}
	if err != nil {
		return auth.TokenPair{}, wrap("load user", err)
	}
	return s.tm.GeneratePair(u.ID, u.Role)
}

func (s *UserService) Me(ctx context.Context, id string) (models.User, error) {
	if err := lookupID(id); err != nil {
		return models.User{}, err
	}
	u, err := s.r.GetByID(ctx, id)
	return u, wrap("get user", err)
}

func (s *UserService) List(ctx context.Context, p repo.Page) ([]models.User, int, error) {
	out, n, err := s.r.List(ctx, p)
	return out, n, wrap("list users", err)
}
