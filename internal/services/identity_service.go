package services

import (
	"context"
	"errors"
	"time"

	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/repositories"
	"beautymatch_backend/pkg/apperrors"
)

// PlatformStats - сводка для админской команды /stats
type PlatformStats struct {
	Customers           int64 `json:"customers"`
	Models              int64 `json:"models"`
	Viewers             int64 `json:"viewers"`
	BlockedUsers        int64 `json:"blocked_users"`
	Requests            int64 `json:"requests"`
	Posts               int64 `json:"posts"`
	Responses           int64 `json:"responses"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
}

type IdentityService interface {
	// SelectRole - первый контакт: создает пользователя с выбранной ролью
	SelectRole(ctx context.Context, userID int64, username string, role models.UserRole) (*models.User, error)
	// CompleteRegistration заполняет анкету из собранной формы
	CompleteRegistration(ctx context.Context, userID int64, profile models.ProfileFields, gdprConsent bool) (*models.User, error)
	// ChangeRole меняет роль, очищая анкету. Подписки и рейтинг
	// сохраняются; привилегия выводится заново из живых подписок модели.
	ChangeRole(ctx context.Context, userID int64, newRole models.UserRole) (*models.User, error)
	Get(ctx context.Context, userID int64) (*models.User, error)
	Block(ctx context.Context, userID int64) error
	Unblock(ctx context.Context, userID int64) error
	SetPrivileged(ctx context.Context, userID int64, privileged bool) error
	Stats(ctx context.Context) (*PlatformStats, error)
}

type identityService struct {
	userRepo     repositories.UserRepository
	subRepo      repositories.SubscriptionRepository
	listingRepo  repositories.ListingRepository
	responseRepo repositories.ResponseRepository
}

func NewIdentityService(
	userRepo repositories.UserRepository,
	subRepo repositories.SubscriptionRepository,
	listingRepo repositories.ListingRepository,
	responseRepo repositories.ResponseRepository,
) IdentityService {
	return &identityService{
		userRepo:     userRepo,
		subRepo:      subRepo,
		listingRepo:  listingRepo,
		responseRepo: responseRepo,
	}
}

func (s *identityService) SelectRole(ctx context.Context, userID int64, username string, role models.UserRole) (*models.User, error) {
	if !role.IsValid() {
		return nil, apperrors.ErrInvalidUserRole
	}

	existing, err := s.userRepo.FindByID(userID)
	if err == nil {
		// Повторный /start: роль меняется через ChangeRole
		if existing.Role == role {
			return existing, nil
		}
		return nil, apperrors.ErrRoleMismatch
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	user := &models.User{
		ID:       userID,
		Username: username,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "user registered", "user_id", userID, "role", string(role))
	return user, nil
}

func (s *identityService) CompleteRegistration(ctx context.Context, userID int64, profile models.ProfileFields, gdprConsent bool) (*models.User, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, apperrors.ErrUserBlocked
	}
	user.ApplyProfile(profile)
	user.GDPRConsent = gdprConsent
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *identityService) ChangeRole(ctx context.Context, userID int64, newRole models.UserRole) (*models.User, error) {
	if !newRole.IsValid() {
		return nil, apperrors.ErrInvalidUserRole
	}
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, apperrors.ErrUserBlocked
	}
	if user.Role == newRole {
		return nil, apperrors.ErrSameRole
	}

	// Анкета обнуляется, личность и подписки остаются
	user.ApplyProfile(models.ProfileFields{})
	user.Role = newRole

	// Привилегия выводится заново: живая подписка модели могла пережить
	// уход с роли и возврат на нее
	livePrivilege := false
	if newRole == models.UserRoleModel {
		livePrivilege, err = s.subRepo.HasLive(userID, models.UserRoleModel, time.Now())
		if err != nil {
			return nil, err
		}
	}
	user.IsPrivileged = livePrivilege

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "role changed", "user_id", userID, "new_role", string(newRole))
	return user, nil
}

func (s *identityService) Get(ctx context.Context, userID int64) (*models.User, error) {
	return s.findUser(userID)
}

func (s *identityService) Block(ctx context.Context, userID int64) error {
	if err := s.userRepo.SetBlocked(userID, true); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	logger.CtxWarn(ctx, "user blocked", "user_id", userID)
	return nil
}

func (s *identityService) Unblock(ctx context.Context, userID int64) error {
	if err := s.userRepo.SetBlocked(userID, false); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *identityService) SetPrivileged(ctx context.Context, userID int64, privileged bool) error {
	if err := s.userRepo.SetPrivileged(userID, privileged); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	logger.CtxInfo(ctx, "privileged flag set by admin", "user_id", userID, "privileged", privileged)
	return nil
}

func (s *identityService) Stats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}
	var err error

	if stats.Customers, err = s.userRepo.CountByRole(models.UserRoleCustomer); err != nil {
		return nil, err
	}
	if stats.Models, err = s.userRepo.CountByRole(models.UserRoleModel); err != nil {
		return nil, err
	}
	if stats.Viewers, err = s.userRepo.CountByRole(models.UserRoleViewer); err != nil {
		return nil, err
	}
	if stats.BlockedUsers, err = s.userRepo.CountBlocked(); err != nil {
		return nil, err
	}
	if stats.Requests, err = s.listingRepo.CountRequests(); err != nil {
		return nil, err
	}
	if stats.Posts, err = s.listingRepo.CountPosts(); err != nil {
		return nil, err
	}
	if stats.Responses, err = s.responseRepo.CountResponses(); err != nil {
		return nil, err
	}
	if stats.ActiveSubscriptions, err = s.subRepo.CountActive(time.Now()); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *identityService) findUser(userID int64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
