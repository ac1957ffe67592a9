package service

import (
	"context"
	"testing"
	"time"

	"ezzleads/internal/cache"
	"ezzleads/internal/models"
	"ezzleads/internal/repository/memory"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboard(db *memory.DB) *DashboardService {
	return NewDashboardService(DashboardRepos{
		Leads:    db.Leads(),
		Profiles: db.Profiles(),
		Wallets:  db.Wallets(),
		Credits:  db.Credits(),
		CRM:      db.CRM(),
	}, cache.NewMemory(), time.Minute, zerolog.Nop())
}

func TestDashboard_Buyer(t *testing.T) {
	db := memory.New()
	db.PutWallet(models.Wallet{ID: "w1", UserID: "b1", Balance: decimal.RequireFromString("125.50"), Currency: "USD"})
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	db.PutCRMLead(models.CRMLead{BuyerID: "b1", Status: models.CRMNew, NextFollowUp: &past})
	db.PutCRMLead(models.CRMLead{BuyerID: "b1", Status: models.CRMContacted, NextFollowUp: &future})
	db.PutCRMLead(models.CRMLead{BuyerID: "b1", Status: models.CRMDead, NextFollowUp: &past})

	m, err := newDashboard(db).Buyer(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "125.5", m.WalletBalance.String())
	assert.Equal(t, 3, m.PurchasedLeads)
	assert.Equal(t, 1, m.FollowUpsDue)
}

func TestDashboard_AgentCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	db.PutLead(models.Lead{SubmittedBy: "a1", Status: models.LeadSold, Price: decimal.NewFromInt(200)})
	db.PutLead(models.Lead{SubmittedBy: "a1", Status: models.LeadApproved})
	d := newDashboard(db)

	m, err := d.Agent(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalLeads)
	assert.Equal(t, 1, m.ApprovedLeads)
	assert.Equal(t, "200", m.TotalEarnings.String())

	require.NoError(t, db.Leads().Create(ctx, &models.Lead{SubmittedBy: "a1", Status: models.LeadPending}))
	m, err = d.Agent(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalLeads, "served from cache")

	d.LeadSubmitted(ctx, "a1")
	m, err = d.Agent(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 3, m.TotalLeads)
}

func TestDashboard_Manager(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	db.PutLead(models.Lead{SubmittedBy: "a1", Status: models.LeadPending})
	db.PutLead(models.Lead{SubmittedBy: "a1", Status: models.LeadPending})
	db.PutLead(models.Lead{SubmittedBy: "a1", Status: models.LeadSold})
	db.PutProfile(models.UserProfile{ID: "u1", Status: models.StatusActive})
	db.PutProfile(models.UserProfile{ID: "u2", Status: models.StatusSuspended})
	_, err := db.Credits().Create(ctx, "u1", decimal.NewFromInt(50), nil)
	require.NoError(t, err)

	m, err := newDashboard(db).Manager(ctx)
	require.NoError(t, err)
	assert.Equal(t, ManagerMetrics{PendingLeads: 2, ActiveUsers: 1, OpenCreditRequests: 1}, m)
}
