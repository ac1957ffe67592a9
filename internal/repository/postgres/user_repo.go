package postgres

import (
	"context"
	"errors"
	"strings"

	"ezzleads/internal/models"
	"ezzleads/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct{ db *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) repository.UserRepository { return &UserRepo{db: db} }

// Create user (stores bcrypt hash in password_h). The on_user_created trigger
// provisions the profile and wallet from metadata.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string, metadata map[string]any) (*models.AuthUser, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	var u models.AuthUser
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_h, metadata)
		VALUES (lower($1), $2, $3)
		RETURNING id, email, metadata, created_at, updated_at`,
		strings.TrimSpace(email), passwordHash, metadata).
		Scan(&u.ID, &u.Email, &u.Metadata, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.AuthUser, string, error) {
	var u models.AuthUser
	var ph string
	err := r.db.QueryRow(ctx, `
		SELECT id, email, metadata, password_h, created_at, updated_at
		FROM users WHERE email=lower($1)`, strings.TrimSpace(email)).
		Scan(&u.ID, &u.Email, &u.Metadata, &ph, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &u, ph, nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_h=$1, updated_at=now()
		WHERE id=$2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
