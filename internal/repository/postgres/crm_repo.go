package postgres

import (
	"context"
	"errors"
	"time"

	"ezzleads/internal/models"
	"ezzleads/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CRMRepo struct{ db *pgxpool.Pool }

func NewCRMRepo(db *pgxpool.Pool) repository.CRMRepository { return &CRMRepo{db: db} }

const crmColumns = `id, purchase_id, buyer_id, lead_id, status, priority, next_follow_up, notes, last_contact_date, created_at, updated_at`

func scanCRMLead(row pgx.Row) (*models.CRMLead, error) {
	var c models.CRMLead
	if err := row.Scan(&c.ID, &c.PurchaseID, &c.BuyerID, &c.LeadID, &c.Status, &c.Priority,
		&c.NextFollowUp, &c.Notes, &c.LastContactDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CRMRepo) ListByBuyer(ctx context.Context, buyerID string) ([]models.CRMLead, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+crmColumns+`
		FROM crm_leads
		WHERE buyer_id=$1
		ORDER BY next_follow_up ASC NULLS LAST, updated_at DESC
	`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CRMLead
	for rows.Next() {
		c, err := scanCRMLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CRMRepo) Get(ctx context.Context, id string) (*models.CRMLead, error) {
	c, err := scanCRMLead(r.db.QueryRow(ctx, `SELECT `+crmColumns+` FROM crm_leads WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// AddActivity records the activity and stamps the lead's last contact date.
func (r *CRMRepo) AddActivity(ctx context.Context, a *models.CRMActivity) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO crm_activities (crm_lead_id, activity_type, description, created_by)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, a.CRMLeadID, a.ActivityType, a.Description, a.CreatedBy).Scan(&a.ID, &a.CreatedAt)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE crm_leads SET last_contact_date=$1, updated_at=now() WHERE id=$2
		`, a.CreatedAt, a.CRMLeadID)
		return err
	})
}

func (r *CRMRepo) BuyerStats(ctx context.Context, buyerID string, now time.Time) (repository.BuyerCRMStats, error) {
	var st repository.BuyerCRMStats
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE next_follow_up IS NOT NULL AND next_follow_up <= $2 AND status NOT IN ('closed','dead'))
		FROM crm_leads
		WHERE buyer_id=$1
	`, buyerID, now).Scan(&st.Purchased, &st.FollowUpsDue)
	return st, err
}
