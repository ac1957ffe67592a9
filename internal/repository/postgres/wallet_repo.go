package postgres

import (
	"context"
	"errors"

	"ezzleads/internal/models"
	"ezzleads/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WalletRepo struct{ db *pgxpool.Pool }

func NewWalletRepo(db *pgxpool.Pool) repository.WalletRepository { return &WalletRepo{db: db} }

func (r *WalletRepo) GetByUser(ctx context.Context, userID string) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, balance, currency, created_at, updated_at
		FROM wallets WHERE user_id=$1`, userID).
		Scan(&w.ID, &w.UserID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepo) ListTransactions(ctx context.Context, walletID string, limit, offset int) ([]models.WalletTransaction, error) {
	limit, offset = repository.ClampPage(limit, offset)
	rows, err := r.db.Query(ctx, `
		SELECT id, wallet_id, type, amount, description, reference_id, created_by, created_at
		FROM wallet_transactions
		WHERE wallet_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, walletID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.WalletTransaction
	for rows.Next() {
		var t models.WalletTransaction
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Type, &t.Amount, &t.Description, &t.ReferenceID, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
