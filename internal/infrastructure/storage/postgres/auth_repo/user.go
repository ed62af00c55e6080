// Package auth_repo implements the user repository on PostgreSQL.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain/auth"
	"stockd/internal/infrastructure/storage/postgres"
)

const userTable = "sec_users"

var userColumns = []string{
	"id", "version", "created_at", "updated_at",
	"username", "email", "password_hash", "roles", "active",
}

// Compile-time check.
var _ auth.Repository = (*UserRepo)(nil)

// UserRepo implements auth.Repository. Roles live in a text[] column.
type UserRepo struct {
	txm *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

func (r *UserRepo) Create(ctx context.Context, u *auth.User) error {
	q := postgres.Builder().
		Insert(userTable).
		SetMap(map[string]any{
			"id":            u.ID,
			"version":       u.Version,
			"created_at":    u.CreatedAt,
			"updated_at":    u.UpdatedAt,
			"username":      u.Username,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"roles":         u.Roles,
			"active":        u.Active,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.TranslateError(err, "user", u.Username)
}

func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": userID}, userID.String())
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username}, username)
}

func (r *UserRepo) getOne(ctx context.Context, where squirrel.Eq, key string) (*auth.User, error) {
	sql, args, err := postgres.Builder().
		Select(userColumns...).
		From(userTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &u, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "user", key)
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *auth.User) error {
	currentVersion := u.Version
	u.Touch()

	q := postgres.Builder().
		Update(userTable).
		SetMap(map[string]any{
			"version":       u.Version,
			"updated_at":    u.UpdatedAt,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"roles":         u.Roles,
			"active":        u.Active,
		}).
		Where(squirrel.Eq{"id": u.ID, "version": currentVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, "user", u.ID.String())
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, u.ID); err != nil {
			return err
		}
		return apperror.NewConcurrentModification("user", u.ID)
	}
	return nil
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	sql, args, err := postgres.Builder().
		Select("1").
		From(userTable).
		Where(squirrel.Eq{"username": username}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists bool
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, postgres.TranslateError(err, "user", username)
	}
	return exists, nil
}
