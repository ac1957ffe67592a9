package service

import (
	"context"
	"time"

	"ezzleads/internal/cache"
	"ezzleads/internal/metrics"
	"ezzleads/internal/models"
	"ezzleads/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type BuyerMetrics struct {
	WalletBalance  decimal.Decimal `json:"walletBalance"`
	Currency       string          `json:"currency"`
	PurchasedLeads int             `json:"purchasedLeads"`
	FollowUpsDue   int             `json:"followUpsDue"`
}

type AgentMetrics struct {
	TotalLeads    int             `json:"totalLeads"`
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
	ApprovedLeads int             `json:"approvedLeads"`
}

type ManagerMetrics struct {
	PendingLeads       int `json:"pendingLeads"`
	ActiveUsers        int `json:"activeUsers"`
	OpenCreditRequests int `json:"openCreditRequests"`
}

type DashboardRepos struct {
	Leads    repository.LeadRepository
	Profiles repository.ProfileRepository
	Wallets  repository.WalletRepository
	Credits  repository.CreditRequestRepository
	CRM      repository.CRMRepository
}

// DashboardService computes the per-role dashboard figures and caches them
// for a short TTL.
type DashboardService struct {
	repos   DashboardRepos
	cache   cache.Store
	ttl     time.Duration
	now     func() time.Time
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewDashboardService(repos DashboardRepos, store cache.Store, ttl time.Duration, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		repos:   repos,
		cache:   store,
		ttl:     ttl,
		now:     time.Now,
		metrics: metrics.Default(),
		log:     log.With().Str("component", "dashboard").Logger(),
	}
}

func buyerKey(userID string) string { return "dash:buyer:" + userID }
func agentKey(userID string) string { return "dash:agent:" + userID }

const managerKey = "dash:manager"

func (d *DashboardService) Buyer(ctx context.Context, userID string) (BuyerMetrics, error) {
	return cached(ctx, d, buyerKey(userID), func(ctx context.Context) (BuyerMetrics, error) {
		m := BuyerMetrics{Currency: "USD"}
		w, err := d.repos.Wallets.GetByUser(ctx, userID)
		if err != nil {
			return m, err
		}
		if w != nil {
			m.WalletBalance, m.Currency = w.Balance, w.Currency
		}
		st, err := d.repos.CRM.BuyerStats(ctx, userID, d.now())
		if err != nil {
			return m, err
		}
		m.PurchasedLeads, m.FollowUpsDue = st.Purchased, st.FollowUpsDue
		return m, nil
	})
}

func (d *DashboardService) Agent(ctx context.Context, userID string) (AgentMetrics, error) {
	return cached(ctx, d, agentKey(userID), func(ctx context.Context) (AgentMetrics, error) {
		st, err := d.repos.Leads.AgentStats(ctx, userID)
		if err != nil {
			return AgentMetrics{}, err
		}
		return AgentMetrics{TotalLeads: st.Total, TotalEarnings: st.Earnings, ApprovedLeads: st.Approved}, nil
	})
}

func (d *DashboardService) Manager(ctx context.Context) (ManagerMetrics, error) {
	return cached(ctx, d, managerKey, func(ctx context.Context) (ManagerMetrics, error) {
		var m ManagerMetrics
		counts, err := d.repos.Leads.CountByStatus(ctx)
		if err != nil {
			return m, err
		}
		m.PendingLeads = counts[models.LeadPending]
		if m.ActiveUsers, err = d.repos.Profiles.CountByStatus(ctx, models.StatusActive); err != nil {
			return m, err
		}
		if m.OpenCreditRequests, err = d.repos.Credits.CountOpen(ctx); err != nil {
			return m, err
		}
		return m, nil
	})
}

// LeadSubmitted drops the figures a new lead changes.
func (d *DashboardService) LeadSubmitted(ctx context.Context, agentID string) {
	d.invalidate(ctx, agentKey(agentID), managerKey)
}

// CreditRequested drops the figures a new credit request changes.
func (d *DashboardService) CreditRequested(ctx context.Context) {
	d.invalidate(ctx, managerKey)
}

// ProfileChanged drops the figures a role or status change affects.
func (d *DashboardService) ProfileChanged(ctx context.Context) {
	d.invalidate(ctx, managerKey)
}

func (d *DashboardService) invalidate(ctx context.Context, keys ...string) {
	if err := d.cache.Delete(ctx, keys...); err != nil {
		d.log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

// cached serves key from the cache or computes and stores it. Cache errors
// fall through to load.
func cached[T any](ctx context.Context, d *DashboardService, key string, load func(context.Context) (T, error)) (T, error) {
	var v T
	ok, err := d.cache.GetJSON(ctx, key, &v)
	switch {
	case err != nil:
		d.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	case ok:
		d.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return v, nil
	}
	d.metrics.CacheLookups.WithLabelValues("miss").Inc()

	v, err = load(ctx)
	if err != nil {
		return v, err
	}
	if err := d.cache.SetJSON(ctx, key, v, d.ttl); err != nil {
		d.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return v, nil
}
