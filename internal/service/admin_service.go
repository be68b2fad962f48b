package service

import (
	"context"

	"github.com/fadistore/storefront/config"
	"github.com/fadistore/storefront/internal/domain"
	"github.com/fadistore/storefront/internal/dto"
	"github.com/fadistore/storefront/internal/repository"
	"github.com/fadistore/storefront/pkg/errs"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const bootstrapAdminUsername = "admin"

type AdminService interface {
	Bootstrap(ctx context.Context) (err error)
	Login(ctx context.Context, payload dto.LoginRequest) (admin domain.Admin, err error)
	ChangePassword(ctx context.Context, adminID int64, payload dto.ChangePasswordRequest) (err error)
	GetAdminByID(ctx context.Context, id int64) (admin domain.Admin, err error)
}

type AdminServiceImpl struct {
	repo repository.AdminRepository
}

func CreateNewAdminService(repo repository.AdminRepository) AdminService {
	return &AdminServiceImpl{repo: repo}
}

// Bootstrap seeds the single admin account on first startup. The default
// password is a deliberate weak default meant to be rotated through the
// change-password page right after deployment.
func (s *AdminServiceImpl) Bootstrap(ctx context.Context) (err error) {
	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return
	}

	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(config.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.repo.AddAdmin(ctx, domain.Admin{
		Username:     bootstrapAdminUsername,
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}

	log.Info().Str("component", "Bootstrap").Msg("default admin account created, change its password immediately")

	return nil
}

// Login resolves the admin by exact username match and compares the bcrypt
// hash. A missing account and a wrong password both surface as
// errs.ErrInvalidCredentials so usernames cannot be enumerated.
func (s *AdminServiceImpl) Login(ctx context.Context, payload dto.LoginRequest) (admin domain.Admin, err error) {
	admin, err = s.repo.GetAdminByUsername(ctx, payload.Username)
	if err != nil {
		return
	}

	if admin.ID == 0 {
		return admin, errs.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(payload.Password))
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
		return admin, errs.ErrInvalidCredentials
	}

	return admin, nil
}

// ChangePassword re-verifies the current password before overwriting the
// stored hash. No strength policy is applied to the new password.
func (s *AdminServiceImpl) ChangePassword(ctx context.Context, adminID int64, payload dto.ChangePasswordRequest) (err error) {
	admin, err := s.repo.GetAdminByID(ctx, adminID)
	if err != nil {
		return
	}

	if admin.ID == 0 {
		return errs.ErrNotFound
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(payload.CurrentPassword))
	if err != nil {
		return errs.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdateAdminPassword(ctx, adminID, string(hash))
}

func (s *AdminServiceImpl) GetAdminByID(ctx context.Context, id int64) (admin domain.Admin, err error) {
	admin, err = s.repo.GetAdminByID(ctx, id)
	if err != nil {
		return
	}

	if admin.ID == 0 {
		return admin, errs.ErrNotFound
	}

	return
}
