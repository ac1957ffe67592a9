// Package memory holds in-process repositories with the same semantics as
// the Postgres ones, including the sign-up trigger that provisions a
// profile and wallet. Handlers and services are tested against it.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"ezzleads/internal/models"
	"ezzleads/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DB struct {
	mu         sync.Mutex
	now        func() time.Time
	users      map[string]*models.AuthUser
	hashes     map[string]string
	profiles   map[string]*models.UserProfile
	leads      []*models.Lead
	wallets    map[string]*models.Wallet
	txs        []models.WalletTransaction
	credits    []*models.CreditRequest
	crm        map[string]*models.CRMLead
	activities []models.CRMActivity
}

func New() *DB {
	return &DB{
		now:      time.Now,
		users:    map[string]*models.AuthUser{},
		hashes:   map[string]string{},
		profiles: map[string]*models.UserProfile{},
		wallets:  map[string]*models.Wallet{},
		crm:      map[string]*models.CRMLead{},
	}
}

func (db *DB) Users() repository.UserRepository { return users{db} }
func (db *DB) Profiles() repository.ProfileRepository { return profiles{db} }
func (db *DB) Leads() repository.LeadRepository { return leads{db} }
func (db *DB) Wallets() repository.WalletRepository { return wallets{db} }
func (db *DB) Credits() repository.CreditRequestRepository { return credits{db} }
func (db *DB) CRM() repository.CRMRepository { return crm{db} }

// Repos returns every repository backed by db.
func (db *DB) Repos() repository.Repos {
	return repository.Repos{
		Users:    db.Users(),
		Profiles: db.Profiles(),
		Leads:    db.Leads(),
		Wallets:  db.Wallets(),
		Credits:  db.Credits(),
		CRM:      db.CRM(),
	}
}

// PutProfile stores p as is, replacing any existing row.
func (db *DB) PutProfile(p models.UserProfile) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.profiles[p.ID] = &p
}

// PutWallet stores w keyed by its user.
func (db *DB) PutWallet(w models.Wallet) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.wallets[w.UserID] = &w
}

// PutCRMLead stores l; an empty ID is generated.
func (db *DB) PutCRMLead(l models.CRMLead) string {
	db.mu.Lock()
	defer db.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	db.crm[l.ID] = &l
	return l.ID
}

// PutLead appends l; an empty ID is generated.
func (db *DB) PutLead(l models.Lead) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	db.leads = append(db.leads, &l)
}

// Activities returns the activities recorded for a CRM lead.
func (db *DB) Activities(crmLeadID string) []models.CRMActivity {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []models.CRMActivity
	for _, a := range db.activities {
		if a.CRMLeadID == crmLeadID {
			out = append(out, a)
		}
	}
	return out
}

// ---------- users ----------

type users struct{ db *DB }

func (r users) Create(_ context.Context, email, passwordHash string, metadata map[string]any) (*models.AuthUser, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range db.users {
		if u.Email == email {
			return nil, repository.ErrDuplicate
		}
	}
	now := db.now()
	u := &models.AuthUser{ID: uuid.NewString(), Email: email, Metadata: metadata, CreatedAt: now, UpdatedAt: now}
	db.users[u.ID] = u
	db.hashes[u.ID] = passwordHash

	role := models.RoleBuyer
	if s, _ := metadata["role"].(string); s == string(models.RoleAgent) {
		role = models.RoleAgent
	}
	p := &models.UserProfile{ID: u.ID, Email: email, Role: role, Status: models.StatusActive, CreatedAt: now, UpdatedAt: now}
	if s, _ := metadata["display_name"].(string); s != "" {
		p.DisplayName = &s
	}
	if _, ok := db.profiles[u.ID]; !ok {
		db.profiles[u.ID] = p
	}
	db.wallets[u.ID] = &models.Wallet{ID: uuid.NewString(), UserID: u.ID, Balance: decimal.Zero, Currency: "USD", CreatedAt: now, UpdatedAt: now}

	cp := *u
	return &cp, nil
}

func (r users) GetByEmail(_ context.Context, email string) (*models.AuthUser, string, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range db.users {
		if u.Email == email {
			cp := *u
			return &cp, db.hashes[u.ID], nil
		}
	}
	return nil, "", nil
}

func (r users) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	db.hashes[id] = passwordHash
	u.UpdatedAt = db.now()
	return nil
}

// ---------- profiles ----------

type profiles struct{ db *DB }

func (r profiles) Upsert(_ context.Context, p models.UserProfile) (*models.UserProfile, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	now := db.now()
	if cur, ok := db.profiles[p.ID]; ok {
		p.CreatedAt = cur.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	db.profiles[p.ID] = &p
	cp := p
	return &cp, nil
}

func (r profiles) GetByID(_ context.Context, id string) (*models.UserProfile, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r profiles) List(_ context.Context, f repository.ProfileFilter) ([]models.UserProfile, int, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	f = f.Normalize()
	q := strings.ToLower(strings.TrimSpace(f.Q))

	var all []models.UserProfile
	for _, p := range db.profiles {
		if f.Role != "" && p.Role != f.Role {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Email), q) && !strings.Contains(strings.ToLower(p.Name()), q) {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UpdatedAt.After(all[j].UpdatedAt) })
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r profiles) UpdateRole(_ context.Context, id string, role models.Role) (*models.UserProfile, error) {
	return r.update(id, func(p *models.UserProfile) { p.Role = role })
}

func (r profiles) UpdateStatus(_ context.Context, id string, status models.Status) (*models.UserProfile, error) {
	return r.update(id, func(p *models.UserProfile) { p.Status = status })
}

func (r profiles) UpdateDisplayName(_ context.Context, id, name string) (*models.UserProfile, error) {
	return r.update(id, func(p *models.UserProfile) { p.DisplayName = &name })
}

func (r profiles) update(id string, fn func(*models.UserProfile)) (*models.UserProfile, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.profiles[id]
	if !ok {
		return nil, nil
	}
	fn(p)
	p.UpdatedAt = db.now()
	cp := *p
	return &cp, nil
}

func (r profiles) CountByStatus(_ context.Context, status models.Status) (int, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, p := range db.profiles {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

// ---------- leads ----------

type leads struct{ db *DB }

func (r leads) Create(_ context.Context, l *models.Lead) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if l.Status == "" {
		l.Status = models.LeadPending
	}
	if l.Mode == "" {
		l.Mode = models.ModeFixedPrice
	}
	l.ID = uuid.NewString()
	l.CreatedAt = db.now()
	cp := *l
	db.leads = append(db.leads, &cp)
	return nil
}

func (r leads) ListBySubmitter(_ context.Context, userID string, limit, offset int) ([]models.Lead, int, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	limit, offset = repository.ClampPage(limit, offset)
	var all []models.Lead
	for i := len(db.leads) - 1; i >= 0; i-- {
		if l := db.leads[i]; l.SubmittedBy == userID && l.Status != models.LeadDeleted {
			all = append(all, *l)
		}
	}
	return page(all, limit, offset), len(all), nil
}

func (r leads) CountByStatus(_ context.Context) (map[models.LeadStatus]int, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	out := map[models.LeadStatus]int{}
	for _, l := range db.leads {
		out[l.Status]++
	}
	return out, nil
}

func (r leads) AgentStats(_ context.Context, userID string) (repository.AgentLeadStats, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	st := repository.AgentLeadStats{Earnings: decimal.Zero}
	for _, l := range db.leads {
		if l.SubmittedBy != userID || l.Status == models.LeadDeleted {
			continue
		}
		st.Total++
		switch l.Status {
		case models.LeadApproved:
			st.Approved++
		case models.LeadSold:
			st.Earnings = st.Earnings.Add(l.Price)
		}
	}
	return st, nil
}

// ---------- wallets ----------

type wallets struct{ db *DB }

func (r wallets) GetByUser(_ context.Context, userID string) (*models.Wallet, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	w, ok := db.wallets[userID]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r wallets) ListTransactions(_ context.Context, walletID string, limit, offset int) ([]models.WalletTransaction, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	limit, offset = repository.ClampPage(limit, offset)
	var all []models.WalletTransaction
	for i := len(db.txs) - 1; i >= 0; i-- {
		if db.txs[i].WalletID == walletID {
			all = append(all, db.txs[i])
		}
	}
	return page(all, limit, offset), nil
}

// ---------- credit requests ----------

type credits struct{ db *DB }

func (r credits) Create(_ context.Context, userID string, amount decimal.Decimal, notes *string) (*models.CreditRequest, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	c := &models.CreditRequest{
		ID:              uuid.NewString(),
		UserID:          userID,
		AmountRequested: amount,
		Status:          models.CreditPending,
		Notes:           notes,
		CreatedAt:       db.now(),
	}
	db.credits = append(db.credits, c)
	cp := *c
	return &cp, nil
}

func (r credits) List(_ context.Context, status models.CreditRequestStatus, limit, offset int) ([]models.CreditRequest, int, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	limit, offset = repository.ClampPage(limit, offset)
	var all []models.CreditRequest
	for i := len(db.credits) - 1; i >= 0; i-- {
		if c := db.credits[i]; status == "" || c.Status == status {
			all = append(all, *c)
		}
	}
	return page(all, limit, offset), len(all), nil
}

func (r credits) CountOpen(_ context.Context) (int, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, c := range db.credits {
		if c.Status == models.CreditPending || c.Status == models.CreditProcessing {
			n++
		}
	}
	return n, nil
}

// ---------- crm ----------

type crm struct{ db *DB }

func (r crm) ListByBuyer(_ context.Context, buyerID string) ([]models.CRMLead, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []models.CRMLead
	for _, l := range db.crm {
		if l.BuyerID == buyerID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r crm) Get(_ context.Context, id string) (*models.CRMLead, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	l, ok := db.crm[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r crm) AddActivity(_ context.Context, a *models.CRMActivity) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	l, ok := db.crm[a.CRMLeadID]
	if !ok {
		return fmt.Errorf("crm lead %s not found", a.CRMLeadID)
	}
	a.ID = uuid.NewString()
	a.CreatedAt = db.now()
	db.activities = append(db.activities, *a)
	at := a.CreatedAt
	l.LastContactDate = &at
	l.UpdatedAt = at
	return nil
}

func (r crm) BuyerStats(_ context.Context, buyerID string, now time.Time) (repository.BuyerCRMStats, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()
	var st repository.BuyerCRMStats
	closed := []models.CRMLeadStatus{models.CRMClosed, models.CRMDead}
	for _, l := range db.crm {
		if l.BuyerID != buyerID {
			continue
		}
		st.Purchased++
		if l.NextFollowUp != nil && !l.NextFollowUp.After(now) && !slices.Contains(closed, l.Status) {
			st.FollowUpsDue++
		}
	}
	return st, nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end]
}
