package httpapi

import (
	"errors"
	"net/http"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/services"
	"pathways-backend-go/internal/store"
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,password_strength"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
	Role      string `json:"role" validate:"required,oneof=teacher student"`
	ClassCode string `json:"class_code" validate:"required_if=Role student,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,password_strength"`
}

const resetRequestedMessage = "If an account exists for that email, a password reset link has been sent"

func tokenPayload(user *models.User, pair services.TokenPair) Envelope {
	return Envelope{
		"user":          user,
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_at":    pair.ExpiresAt,
	}
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := services.Register(r.Context(), s.Store, s.Tokens, services.Registration{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		ClassCode: req.ClassCode,
	}, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(result.Log)
	pair, err := s.Tokens.IssuePair(result.User.ID, result.User.Email, result.User.Role)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	payload := tokenPayload(result.User, pair)
	if result.Profile != nil {
		payload["profile"] = result.Profile
	}
	WriteSuccess(w, http.StatusCreated, "Registration successful", payload)
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := services.Login(r.Context(), s.Store, s.Tokens, req.Email, req.Password, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(result.Log)
	pair, err := s.Tokens.IssuePair(result.User.ID, result.User.Email, result.User.Role)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "Login successful", tokenPayload(result.User, pair))
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !s.decode(w, r, &req) {
		return
	}
	claims, err := s.Tokens.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		s.fail(w, r, services.ErrUnauthorized("Invalid refresh token"))
		return
	}
	revoked, err := s.Revocations.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	user, err := s.Store.GetUserByID(r.Context(), claims.UserID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && (!user.IsActive || revoked)) {
		s.fail(w, r, services.ErrUnauthorized("Invalid refresh token"))
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	// Refresh tokens are single use.
	if err := s.Revocations.Revoke(r.Context(), claims.ID, claims.ExpiresAt); err != nil {
		s.fail(w, r, err)
		return
	}
	pair, err := s.Tokens.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", tokenPayload(user, pair))
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(r)
	if !ok {
		s.fail(w, r, services.ErrUnauthorized("Authentication required"))
		return
	}
	if err := s.Revocations.Revoke(r.Context(), claims.ID, claims.ExpiresAt); err != nil {
		s.fail(w, r, err)
		return
	}
	entry, err := services.RecordActivity(r.Context(), s.Store, claims.UserID, services.ActionLogout, nil, clientIP(r))
	if err != nil {
		s.Logger.Warn("logout activity not recorded", "user_id", claims.UserID, "error", err)
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Logged out successfully", nil)
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	if identity == nil {
		WriteSuccess(w, http.StatusOK, "", Envelope{"authenticated": false})
		return
	}
	view, err := services.LoadProfileView(r.Context(), s.Store, identity.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	payload := Envelope{"authenticated": true, "user": view.User}
	if view.Profile != nil {
		payload["profile"] = profileSummary(view.Profile)
	}
	WriteSuccess(w, http.StatusOK, "", payload)
}

func (s *Server) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !s.decode(w, r, &req) {
		return
	}
	token, err := services.StartPasswordReset(r.Context(), s.Store, req.Email)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	payload := Envelope{}
	if token != "" {
		s.Logger.Info("password reset requested", "email", req.Email, "expires_in", services.ResetTokenTTL.String())
		if s.Config.IsDevelopment() {
			s.Logger.Debug("password reset token", "email", req.Email, "token", token)
			payload["reset_token"] = token
		}
	}
	WriteSuccess(w, http.StatusOK, resetRequestedMessage, payload)
}

func (s *Server) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !s.decode(w, r, &req) {
		return
	}
	entry, err := services.CompletePasswordReset(r.Context(), s.Store, s.Tokens, req.Token, req.Password, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Password has been reset", nil)
}
