package postgres

import (
	"errors"
	"strconv"
	"strings"

	"ezzleads/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// mapErr converts driver errors the callers branch on.
func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// small helper to avoid fmt for performance-sensitive path.
func itoa(i int) string { return strconv.Itoa(i) }

// NewRepos wires every Postgres repository to db.
func NewRepos(db *pgxpool.Pool) repository.Repos {
	return repository.Repos{
		Users:    NewUserRepo(db),
		Profiles: NewProfileRepo(db),
		Leads:    NewLeadRepo(db),
		Wallets:  NewWalletRepo(db),
		Credits:  NewCreditRequestRepo(db),
		CRM:      NewCRMRepo(db),
	}
}
