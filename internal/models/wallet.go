package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type TransactionType string

const (
	TxCredit TransactionType = "credit"
	TxDebit  TransactionType = "debit"
	TxRefund TransactionType = "refund"
)

type WalletTransaction struct {
	ID          string          `json:"id"`
	WalletID    string          `json:"walletId"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ReferenceID *string         `json:"referenceId"`
	CreatedBy   *string         `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type CreditRequestStatus string

const (
	CreditPending    CreditRequestStatus = "pending"
	CreditProcessing CreditRequestStatus = "processing"
	CreditCompleted  CreditRequestStatus = "completed"
	CreditCancelled  CreditRequestStatus = "cancelled"
)

func (s CreditRequestStatus) Valid() bool {
	switch s {
	case CreditPending, CreditProcessing, CreditCompleted, CreditCancelled:
		return true
	}
	return false
}

// CreditRequest is a manual wallet funding request.
type CreditRequest struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	AmountRequested decimal.Decimal     `json:"amountRequested"`
	Status          CreditRequestStatus `json:"status"`
	PaymentLink     *string             `json:"paymentLink"`
	Notes           *string             `json:"notes"`
	CreatedAt       time.Time           `json:"createdAt"`
	ProcessedAt     *time.Time          `json:"processedAt"`
	ProcessedBy     *string             `json:"processedBy"`
}
