package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ezzleads/internal/models"
	"ezzleads/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepo struct{ db *pgxpool.Pool }

func NewProfileRepo(db *pgxpool.Pool) repository.ProfileRepository { return &ProfileRepo{db: db} }

const profileColumns = `id, email, role, status, display_name, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := row.Scan(&p.ID, &p.Email, &p.Role, &p.Status, &p.DisplayName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert writes the profile keyed by id. Running after the sign-up trigger
// leaves a single row carrying these values.
func (r *ProfileRepo) Upsert(ctx context.Context, p models.UserProfile) (*models.UserProfile, error) {
	out, err := scanProfile(r.db.QueryRow(ctx, `
		INSERT INTO profiles (id, email, role, status, display_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			status = EXCLUDED.status,
			display_name = EXCLUDED.display_name,
			updated_at = now()
		RETURNING `+profileColumns,
		p.ID, p.Email, p.Role, p.Status, p.DisplayName))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// List returns a filtered, paginated list of profiles and total count.
// Filters: q (matches email or display name, ILIKE), role, status.
func (r *ProfileRepo) List(ctx context.Context, f repository.ProfileFilter) ([]models.UserProfile, int, error) {
	f = f.Normalize()

	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Q); s != "" {
		p := "%" + s + "%"
		args = append(args, p, p)
		clauses = append(clauses, "(email ILIKE $"+itoa(len(args)-1)+" OR display_name ILIKE $"+itoa(len(args))+")")
	}
	if f.Role != "" {
		args = append(args, f.Role)
		clauses = append(clauses, "role = $"+itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, "status = $"+itoa(len(args)))
	}

	var total int
	countSQL := `SELECT COUNT(*) FROM profiles WHERE ` + strings.Join(clauses, " AND ")
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	listSQL := fmt.Sprintf(`
		SELECT %s
		FROM profiles
		WHERE %s
		ORDER BY updated_at DESC
		LIMIT $%d OFFSET $%d
	`, profileColumns, strings.Join(clauses, " AND "), len(args)-1, len(args))
	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (r *ProfileRepo) UpdateRole(ctx context.Context, id string, role models.Role) (*models.UserProfile, error) {
	return r.update(ctx, `role=$1`, role, id)
}

func (r *ProfileRepo) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.UserProfile, error) {
	return r.update(ctx, `status=$1`, status, id)
}

func (r *ProfileRepo) UpdateDisplayName(ctx context.Context, id, name string) (*models.UserProfile, error) {
	return r.update(ctx, `display_name=$1`, name, id)
}

func (r *ProfileRepo) update(ctx context.Context, set string, value any, id string) (*models.UserProfile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `
		UPDATE profiles
		SET `+set+`, updated_at=now()
		WHERE id=$2
		RETURNING `+profileColumns, value, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepo) CountByStatus(ctx context.Context, status models.Status) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE status=$1`, status).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
