package postgres

import (
	"context"

	"ezzleads/internal/models"
	"ezzleads/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type LeadRepo struct{ db *pgxpool.Pool }

func NewLeadRepo(db *pgxpool.Pool) repository.LeadRepository { return &LeadRepo{db: db} }

const leadColumns = `
	id, submitted_by, status, mode, assigned_to,
	property_address, city, state, zip_code, latitude, longitude,
	property_type, bedrooms, bathrooms, square_feet,
	lead_type, owner_name, owner_phone, owner_email, motivation_level, notes,
	asking_price, suggested_price, price, countdown_expires_at, views_count, favorites_count,
	created_at, approved_at, rejected_at, sold_at, rejection_reason`

func scanLead(row pgx.Row) (*models.Lead, error) {
	var l models.Lead
	err := row.Scan(
		&l.ID, &l.SubmittedBy, &l.Status, &l.Mode, &l.AssignedTo,
		&l.PropertyAddress, &l.City, &l.State, &l.ZipCode, &l.Latitude, &l.Longitude,
		&l.PropertyType, &l.Bedrooms, &l.Bathrooms, &l.SquareFeet,
		&l.LeadType, &l.OwnerName, &l.OwnerPhone, &l.OwnerEmail, &l.MotivationLevel, &l.Notes,
		&l.AskingPrice, &l.SuggestedPrice, &l.Price, &l.CountdownExpiresAt, &l.ViewsCount, &l.FavoritesCount,
		&l.CreatedAt, &l.ApprovedAt, &l.RejectedAt, &l.SoldAt, &l.RejectionReason,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a new lead; status and mode default to pending/fixed_price when empty.
func (r *LeadRepo) Create(ctx context.Context, l *models.Lead) error {
	if l.Status == "" {
		l.Status = models.LeadPending
	}
	if l.Mode == "" {
		l.Mode = models.ModeFixedPrice
	}
	created, err := scanLead(r.db.QueryRow(ctx, `
		INSERT INTO leads (
			submitted_by, status, mode,
			property_address, city, state, zip_code, latitude, longitude,
			property_type, bedrooms, bathrooms, square_feet,
			lead_type, owner_name, owner_phone, owner_email, motivation_level, notes,
			asking_price, suggested_price, price
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		RETURNING `+leadColumns,
		l.SubmittedBy, l.Status, l.Mode,
		l.PropertyAddress, l.City, l.State, l.ZipCode, l.Latitude, l.Longitude,
		l.PropertyType, l.Bedrooms, l.Bathrooms, l.SquareFeet,
		l.LeadType, l.OwnerName, l.OwnerPhone, l.OwnerEmail, l.MotivationLevel, l.Notes,
		l.AskingPrice, l.SuggestedPrice, l.Price,
	))
	if err != nil {
		return mapErr(err)
	}
	*l = *created
	return nil
}

func (r *LeadRepo) ListBySubmitter(ctx context.Context, userID string, limit, offset int) ([]models.Lead, int, error) {
	limit, offset = repository.ClampPage(limit, offset)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leads WHERE submitted_by=$1 AND status <> 'deleted'`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE submitted_by=$1 AND status <> 'deleted'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *l)
	}
	return out, total, rows.Err()
}

// CountByStatus counts leads per status; statuses without rows are absent.
func (r *LeadRepo) CountByStatus(ctx context.Context) (map[models.LeadStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.LeadStatus]int{}
	for rows.Next() {
		var s models.LeadStatus
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}

func (r *LeadRepo) AgentStats(ctx context.Context, userID string) (repository.AgentLeadStats, error) {
	var st repository.AgentLeadStats
	var earnings decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status <> 'deleted'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COALESCE(SUM(price) FILTER (WHERE status = 'sold'), 0)
		FROM leads
		WHERE submitted_by=$1
	`, userID).Scan(&st.Total, &st.Approved, &earnings)
	if err != nil {
		return repository.AgentLeadStats{}, err
	}
	st.Earnings = earnings
	return st, nil
}
