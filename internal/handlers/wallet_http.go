package handlers

import (
	"net/http"

	"ezzleads/internal/guard"
	"ezzleads/internal/models"
	"ezzleads/internal/repository"
	"ezzleads/internal/utils"
)

type WalletHTTP struct {
	repo repository.WalletRepository
}

func NewWalletHTTP(r repository.WalletRepository) *WalletHTTP { return &WalletHTTP{repo: r} }

// GET /api/wallet?limit=&offset=
// Returns: { wallet, transactions }
func (h *WalletHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := guard.GetSession(r.Context())
		wallet, err := h.repo.GetByUser(r.Context(), s.User.ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if wallet == nil {
			utils.Error(w, http.StatusNotFound, "wallet not found")
			return
		}
		limit, offset := utils.Page(r.URL.Query(), 20)
		txs, err := h.repo.ListTransactions(r.Context(), wallet.ID, limit, offset)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if txs == nil {
			txs = []models.WalletTransaction{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"wallet": wallet, "transactions": txs})
	}
}
