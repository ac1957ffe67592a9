package repository

import (
	"context"
	"errors"
	"time"

	"ezzleads/internal/models"

	"github.com/shopspring/decimal"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// UserRepository stores sign-in credentials (the auth service's own table).
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string, metadata map[string]any) (*models.AuthUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AuthUser, string /*passwordHash*/, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}

type ProfileRepository interface {
	Upsert(ctx context.Context, p models.UserProfile) (*models.UserProfile, error)
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	List(ctx context.Context, f ProfileFilter) ([]models.UserProfile, int, error)
	UpdateRole(ctx context.Context, id string, role models.Role) (*models.UserProfile, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) (*models.UserProfile, error)
	UpdateDisplayName(ctx context.Context, id, name string) (*models.UserProfile, error)
	CountByStatus(ctx context.Context, status models.Status) (int, error)
}

type LeadRepository interface {
	Create(ctx context.Context, l *models.Lead) error
	ListBySubmitter(ctx context.Context, userID string, limit, offset int) ([]models.Lead, int, error)
	CountByStatus(ctx context.Context) (map[models.LeadStatus]int, error)
	AgentStats(ctx context.Context, userID string) (AgentLeadStats, error)
}

// AgentLeadStats aggregates one agent's submissions.
type AgentLeadStats struct {
	Total    int             `json:"total"`
	Approved int             `json:"approved"`
	Earnings decimal.Decimal `json:"earnings"`
}

type WalletRepository interface {
	GetByUser(ctx context.Context, userID string) (*models.Wallet, error)
	ListTransactions(ctx context.Context, walletID string, limit, offset int) ([]models.WalletTransaction, error)
}

type CreditRequestRepository interface {
	Create(ctx context.Context, userID string, amount decimal.Decimal, notes *string) (*models.CreditRequest, error)
	List(ctx context.Context, status models.CreditRequestStatus, limit, offset int) ([]models.CreditRequest, int, error)
	CountOpen(ctx context.Context) (int, error)
}

type CRMRepository interface {
	ListByBuyer(ctx context.Context, buyerID string) ([]models.CRMLead, error)
	Get(ctx context.Context, id string) (*models.CRMLead, error)
	AddActivity(ctx context.Context, a *models.CRMActivity) error
	BuyerStats(ctx context.Context, buyerID string, now time.Time) (BuyerCRMStats, error)
}

type BuyerCRMStats struct {
	Purchased    int `json:"purchased"`
	FollowUpsDue int `json:"followUpsDue"`
}

// Repos bundles one implementation of every repository.
type Repos struct {
	Users    UserRepository
	Profiles ProfileRepository
	Leads    LeadRepository
	Wallets  WalletRepository
	Credits  CreditRequestRepository
	CRM      CRMRepository
}
