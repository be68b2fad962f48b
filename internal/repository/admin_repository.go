package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fadistore/storefront/internal/domain"
	"github.com/fadistore/storefront/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type AdminRepository interface {
	GetAdminByUsername(ctx context.Context, username string) (res domain.Admin, err error)
	GetAdminByID(ctx context.Context, id int64) (res domain.Admin, err error)
	AddAdmin(ctx context.Context, data domain.Admin) (id int64, err error)
	UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) (err error)
	CountAdmins(ctx context.Context) (count int64, err error)
}

type AdminRepositoryImpl struct {
	db *sqlx.DB
}

func CreateNewAdminRepository(db *sqlx.DB) AdminRepository {
	return &AdminRepositoryImpl{db: db}
}

func (r *AdminRepositoryImpl) GetAdminByUsername(ctx context.Context, username string) (res domain.Admin, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT * FROM admins WHERE username = $1", username)
	err = row.StructScan(&res)
	if err != nil {
		if err == sql.ErrNoRows {
			return res, nil
		}
		log.Error().Err(err).Str("component", "GetAdminByUsername").Msg("")
		return res, errs.ErrInternalServer
	}

	return
}

func (r *AdminRepositoryImpl) GetAdminByID(ctx context.Context, id int64) (res domain.Admin, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT * FROM admins WHERE id = $1", id)
	err = row.StructScan(&res)
	if err != nil {
		if err == sql.ErrNoRows {
			return res, nil
		}
		log.Error().Err(err).Str("component", "GetAdminByID").Msg("")
		return res, errs.ErrInternalServer
	}

	return
}

func (r *AdminRepositoryImpl) AddAdmin(ctx context.Context, data domain.Admin) (id int64, err error) {
	timestamp := time.Now().UnixMilli()
	data.CreatedAt = timestamp
	data.UpdatedAt = timestamp

	nstmt, err := r.db.PrepareNamedContext(ctx, "INSERT INTO admins(username, password_hash, created_at, updated_at) VALUES (:username, :password_hash, :created_at, :updated_at) RETURNING id")
	if err != nil {
		log.Error().Err(err).Str("component", "AddAdmin").Msg("")
		return
	}

	err = nstmt.GetContext(ctx, &id, data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddAdmin").Msg("")
		return
	}

	return
}

func (r *AdminRepositoryImpl) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE admins SET password_hash = $1, updated_at = $2 WHERE id = $3", passwordHash, time.Now().UnixMilli(), id)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateAdminPassword").Msg("")
		return errs.ErrInternalServer
	}

	return
}

func (r *AdminRepositoryImpl) CountAdmins(ctx context.Context) (count int64, err error) {
	err = r.db.GetContext(ctx, &count, "SELECT COUNT(id) FROM admins")
	if err != nil {
		log.Error().Err(err).Str("component", "CountAdmins").Msg("")
		return 0, err
	}

	return
}
