package services

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"hwreview_backend/internal/config"
	"hwreview_backend/internal/imageprocessor"
	"hwreview_backend/internal/logger"
	"hwreview_backend/internal/models"
	"hwreview_backend/internal/repositories"
	"hwreview_backend/internal/services/dto"
	"hwreview_backend/internal/storage"
	"hwreview_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetByID(db *gorm.DB, userID string) (*dto.UserDTO, error)
	UpdateProfile(db *gorm.DB, userID string, req dto.UpdateProfileRequest) (*dto.UserDTO, error)
	UpdateAvatar(db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.UserDTO, error)
	UpdateSettings(db *gorm.DB, userID string, req dto.UpdateUserSettingsRequest) (*dto.UserDTO, error)
	GetPublicProfile(db *gorm.DB, username string) (*dto.PublicProfileDTO, error)
	GetStats(db *gorm.DB, userID string) (*repositories.UserEngagementStats, error)

	List(db *gorm.DB, query dto.UserListQuery, page, pageSize int) (*dto.Paged, error)
	AdminUpdate(db *gorm.DB, actorRole models.UserRole, targetID string, req dto.AdminUpdateUserRequest) (*dto.UserDTO, error)
	AdminDelete(db *gorm.DB, actorID string, actorRole models.UserRole, targetID string) error
}

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	store     storage.Storage
	processor *imageprocessor.Processor
}

func NewUserService(store storage.Storage) UserService {
	return &UserServiceImpl{
		userRepo:  repositories.NewUserRepository(),
		store:     store,
		processor: imageprocessor.NewProcessor(config.GetConfig().Upload.ImageQuality),
	}
}

func (s *UserServiceImpl) GetByID(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserDTO(user), nil
}

func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID string, req dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if len(fields) > 0 {
		if err := s.userRepo.Update(db, user.ID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	return s.GetByID(db, userID)
}

func (s *UserServiceImpl) UpdateAvatar(db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.UserDTO, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}

	url, err := saveImage(s.store, s.processor, fmt.Sprintf("avatars/%s", user.ID), imageprocessor.SizeAvatar, file)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(db, user.ID, map[string]interface{}{"avatar": url}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetByID(db, userID)
}

func (s *UserServiceImpl) UpdateSettings(db *gorm.DB, userID string, req dto.UpdateUserSettingsRequest) (*dto.UserDTO, error) {
	if _, err := s.findUser(db, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.NotificationSettings != nil {
		fields["notification_settings"] = []byte(req.NotificationSettings)
	}
	if req.PrivacySettings != nil {
		fields["privacy_settings"] = []byte(req.PrivacySettings)
	}
	if req.Settings != nil {
		fields["settings"] = []byte(req.Settings)
	}
	if len(fields) > 0 {
		if err := s.userRepo.Update(db, userID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	return s.GetByID(db, userID)
}

func (s *UserServiceImpl) GetPublicProfile(db *gorm.DB, username string) (*dto.PublicProfileDTO, error) {
	user, err := s.userRepo.FindByUsername(db, username)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !profileVisible(user) {
		return nil, apperrors.ErrProfileNotPublic
	}

	return &dto.PublicProfileDTO{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		JoinedAt:  user.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *UserServiceImpl) GetStats(db *gorm.DB, userID string) (*repositories.UserEngagementStats, error) {
	if _, err := s.findUser(db, userID); err != nil {
		return nil, err
	}
	stats, err := s.userRepo.GetEngagementStats(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *UserServiceImpl) List(db *gorm.DB, query dto.UserListQuery, page, pageSize int) (*dto.Paged, error) {
	criteria := repositories.UserFilter{
		Role:          models.UserRole(query.Role),
		Status:        models.UserStatus(query.Status),
		EmailVerified: query.Verified,
		Search:        query.Search,
		Page:          page,
		PageSize:      pageSize,
	}
	users, total, err := s.userRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.UserDTO, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserDTO(&users[i]))
	}
	return dto.NewPaged(items, total, page, pageSize), nil
}

func (s *UserServiceImpl) AdminUpdate(db *gorm.DB, actorRole models.UserRole, targetID string, req dto.AdminUpdateUserRequest) (*dto.UserDTO, error) {
	target, err := s.findUser(db, targetID)
	if err != nil {
		return nil, err
	}

	if target.Role == models.UserRoleSuperAdmin && actorRole != models.UserRoleSuperAdmin {
		return nil, apperrors.ErrCannotModifySuperAdmin
	}

	fields := map[string]interface{}{}
	if req.Role != nil {
		if req.Role.AtLeast(models.UserRoleSuperAdmin) && actorRole != models.UserRoleSuperAdmin {
			return nil, apperrors.ErrCannotModifySuperAdmin
		}
		fields["role"] = *req.Role
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) > 0 {
		if err := s.userRepo.Update(db, target.ID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	return s.GetByID(db, targetID)
}

func (s *UserServiceImpl) AdminDelete(db *gorm.DB, actorID string, actorRole models.UserRole, targetID string) error {
	if actorID == targetID {
		return apperrors.ErrCannotDeleteSelf
	}
	target, err := s.findUser(db, targetID)
	if err != nil {
		return err
	}
	if target.Role == models.UserRoleSuperAdmin && actorRole != models.UserRoleSuperAdmin {
		return apperrors.ErrCannotModifySuperAdmin
	}

	if err := s.userRepo.Delete(db, targetID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("user deleted by admin", "user_id", targetID, "actor_id", actorID)
	return nil
}

func (s *UserServiceImpl) findUser(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// profileVisible honors the profile_visible privacy flag; profiles are
// visible unless the user turned the flag off.
func profileVisible(user *models.User) bool {
	if len(user.PrivacySettings) == 0 {
		return true
	}
	var prefs map[string]interface{}
	if err := json.Unmarshal(user.PrivacySettings, &prefs); err != nil {
		return true
	}
	if v, ok := prefs["profile_visible"].(bool); ok {
		return v
	}
	return true
}
