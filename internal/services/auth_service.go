package services

import (
	"fmt"
	"strings"
	"time"

	"hwreview_backend/internal/auth"
	"hwreview_backend/internal/config"
	"hwreview_backend/internal/email"
	"hwreview_backend/internal/logger"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetCodeTTL         = 15 * time.Minute
)

type AuthService interface {
	Register(db *gorm.DB, req dto.RegisterRequest) (*dto.UserDTO, error)
	Login(db *gorm.DB, req dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyEmail(db *gorm.DB, req dto.VerifyEmailRequest) error
	ResendVerification(db *gorm.DB, req dto.ResendVerificationRequest) error
	RequestPasswordReset(db *gorm.DB, req dto.PasswordResetRequest) error
	ConfirmPasswordReset(db *gorm.DB, req dto.PasswordResetConfirm) error
	ChangePassword(db *gorm.DB, userID string, req dto.ChangePasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	resetRepo repositories.PasswordResetRepository
	settings  SettingsService
	mailer    email.Mailer
}

func NewAuthService(settings SettingsService, mailer email.Mailer) AuthService {
	return &AuthServiceImpl{
		userRepo:  repositories.NewUserRepository(),
		resetRepo: repositories.NewPasswordResetRepository(),
		settings:  settings,
		mailer:    mailer,
	}
}

func (s *AuthServiceImpl) Register(db *gorm.DB, req dto.RegisterRequest) (*dto.UserDTO, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.FindByEmail(db, emailAddr); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if err != repositories.ErrUserNotFound {
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.userRepo.FindByUsername(db, req.Username); err == nil {
		return nil, apperrors.ErrUsernameAlreadyExists
	} else if err != repositories.ErrUserNotFound {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:                    emailAddr,
		Username:                 req.Username,
		PasswordHash:             hash,
		FirstName:                req.FirstName,
		LastName:                 req.LastName,
		Role:                     models.UserRoleMember,
		Status:                   models.UserStatusActive,
		VerificationToken:        auth.GenerateVerificationToken(),
		VerificationTokenCreated: &now,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	siteName := s.settings.SiteName(db)
	go s.sendVerificationMail(siteName, user)

	return dto.NewUserDTO(user), nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	switch user.Status {
	case models.UserStatusBanned:
		return nil, apperrors.ErrUserBanned
	case models.UserStatusInactive:
		return nil, apperrors.ErrUserInactive
	}

	if !user.IsVerified() {
		return nil, apperrors.ErrEmailNotVerified
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateLastLogin(db, user.ID); err != nil {
		logger.WithError(err).Warn("failed to stamp last login", "user_id", user.ID)
	}

	return &dto.LoginResponse{AccessToken: token, User: dto.NewUserDTO(user)}, nil
}

func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, req dto.VerifyEmailRequest) error {
	user, err := s.userRepo.FindByVerificationToken(db, req.Token)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if !strings.EqualFold(user.Email, req.Email) {
		return apperrors.ErrInvalidToken
	}
	if user.IsVerified() {
		return nil
	}
	if user.VerificationTokenCreated == nil ||
		time.Now().UTC().Sub(*user.VerificationTokenCreated) > verificationTokenTTL {
		return apperrors.New(apperrors.CodeTokenExpired, "auth", "verification token expired", 400)
	}

	now := time.Now().UTC()
	fields := map[string]interface{}{
		"email_verified":             &now,
		"verification_token":         "",
		"verification_token_created": nil,
	}
	if err := s.userRepo.Update(db, user.ID, fields); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ResendVerification(db *gorm.DB, req dto.ResendVerificationRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		// Do not reveal whether the address is registered.
		if err == repositories.ErrUserNotFound {
			return nil
		}
		return apperrors.InternalError(err)
	}
	if user.IsVerified() {
		return nil
	}

	now := time.Now().UTC()
	token := auth.GenerateVerificationToken()
	fields := map[string]interface{}{
		"verification_token":         token,
		"verification_token_created": &now,
	}
	if err := s.userRepo.Update(db, user.ID, fields); err != nil {
		return apperrors.InternalError(err)
	}

	user.VerificationToken = token
	siteName := s.settings.SiteName(db)
	go s.sendVerificationMail(siteName, user)
	return nil
}

func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, req dto.PasswordResetRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil
		}
		return apperrors.InternalError(err)
	}

	if err := s.resetRepo.InvalidateUnused(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}

	code := &models.PasswordResetCode{
		UserID:    user.ID,
		Code:      auth.GenerateResetCode(),
		ExpiresAt: time.Now().UTC().Add(resetCodeTTL),
	}
	if err := s.resetRepo.Create(db, code); err != nil {
		return apperrors.InternalError(err)
	}

	siteName := s.settings.SiteName(db)
	go func() {
		subject, html, text := email.PasswordResetEmail(siteName, user.DisplayName(), code.Code)
		if err := s.mailer.Send(user.Email, subject, html, text); err != nil {
			logger.WithError(err).Error("failed to send password reset email", "user_id", user.ID)
		}
	}()
	return nil
}

func (s *AuthServiceImpl) ConfirmPasswordReset(db *gorm.DB, req dto.PasswordResetConfirm) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	code, err := s.resetRepo.FindValid(db, user.ID, req.Code, time.Now().UTC())
	if err != nil {
		if err == repositories.ErrResetCodeNotFound {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Update(tx, user.ID, map[string]interface{}{"password_hash": hash}); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.resetRepo.MarkUsed(tx, code.ID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Update(db, user.ID, map[string]interface{}{"password_hash": hash}); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) sendVerificationMail(siteName string, user *models.User) {
	verifyURL := fmt.Sprintf("%s/verify-email?email=%s&token=%s",
		config.GetConfig().Frontend.BaseURL, user.Email, user.VerificationToken)
	subject, html, text := email.VerificationEmail(siteName, user.DisplayName(), verifyURL)
	if err := s.mailer.Send(user.Email, subject, html, text); err != nil {
		logger.WithError(err).Error("failed to send verification email", "user_id", user.ID)
	}
}
