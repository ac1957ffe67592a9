package postgres

import (
	"context"

	"ezzleads/internal/models"
	"ezzleads/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type CreditRequestRepo struct{ db *pgxpool.Pool }

func NewCreditRequestRepo(db *pgxpool.Pool) repository.CreditRequestRepository {
	return &CreditRequestRepo{db: db}
}

const creditColumns = `id, user_id, amount_requested, status, payment_link, notes, created_at, processed_at, processed_by`

func scanCredit(row pgx.Row) (*models.CreditRequest, error) {
	var c models.CreditRequest
	if err := row.Scan(&c.ID, &c.UserID, &c.AmountRequested, &c.Status, &c.PaymentLink, &c.Notes, &c.CreatedAt, &c.ProcessedAt, &c.ProcessedBy); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CreditRequestRepo) Create(ctx context.Context, userID string, amount decimal.Decimal, notes *string) (*models.CreditRequest, error) {
	var n any
	if notes != nil {
		n = nullIfEmpty(*notes)
	}
	c, err := scanCredit(r.db.QueryRow(ctx, `
		INSERT INTO credit_requests (user_id, amount_requested, notes)
		VALUES ($1, $2, $3)
		RETURNING `+creditColumns, userID, amount, n))
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

// List returns requests with the given status (all when empty), oldest first.
func (r *CreditRequestRepo) List(ctx context.Context, status models.CreditRequestStatus, limit, offset int) ([]models.CreditRequest, int, error) {
	limit, offset = repository.ClampPage(limit, offset)

	where := ""
	args := []any{}
	if status != "" {
		args = append(args, status)
		where = "WHERE status = $1"
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM credit_requests `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(ctx, `
		SELECT `+creditColumns+`
		FROM credit_requests `+where+`
		ORDER BY created_at ASC
		LIMIT $`+itoa(len(args)-1)+` OFFSET $`+itoa(len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.CreditRequest
	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

func (r *CreditRequestRepo) CountOpen(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM credit_requests WHERE status IN ('pending','processing')`).Scan(&n)
	return n, err
}
