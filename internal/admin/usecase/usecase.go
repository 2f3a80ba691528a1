package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/admin"
	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type adminUseCase struct {
	repo   admin.Repository
	logger logger.ZapLogger
	cost   int
	now    func() time.Time
}

// NewAdminUseCase hashes passwords with bcrypt at cost, zero meaning
// bcrypt.DefaultCost.
func NewAdminUseCase(repo admin.Repository, log logger.ZapLogger, cost int) admin.UseCase {
	return &adminUseCase{
		repo:   repo,
		logger: log,
		cost:   cost,
		now:    time.Now,
	}
}

func (uc *adminUseCase) CreateSuperuser(ctx context.Context, username, email, password string) (*model.AdminUser, error) {
	if password == "" {
		return nil, apperror.Invalid("password", "required", "this field is required")
	}

	u := &model.AdminUser{
		BaseModel:   model.BaseModel{ID: uuid.New().String()},
		Username:    username,
		Email:       email,
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
		DateJoined:  uc.now(),
	}
	if err := validation.Struct(u); err != nil {
		return nil, err
	}

	hash, err := admin.HashPassword(password, uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash

	if err := uc.repo.Create(ctx, u); err != nil {
		uc.logger.Error("failed to create superuser", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("superuser created", zap.String("username", username))
	return u, nil
}

func (uc *adminUseCase) Authenticate(ctx context.Context, username, password string) (*model.AdminUser, error) {
	u, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, apperror.ErrInvalidLogin
	}

	ok, err := admin.CheckPassword(u.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrInvalidLogin
	}

	now := uc.now()
	if err := uc.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLogin = &now
	return u, nil
}
