package forms

import (
	"net/http"
	"strings"

	"ezzleads/internal/models"

	"github.com/shopspring/decimal"
)

// CreditRequest asks a manager to fund the wallet.
type CreditRequest struct {
	Amount string `form:"amount" json:"amount" validate:"required,money"`
	Notes  string `form:"notes" json:"notes" validate:"max=500"`
}

func (f CreditRequest) Validate() Errors {
	return check(f, Messages{
		"amount": "Amount must be a positive value with at most 2 decimals",
		"notes":  "Notes must be at most 500 characters",
	})
}

// AmountDecimal returns the parsed amount. Call only after Validate passes.
func (f CreditRequest) AmountDecimal() decimal.Decimal {
	d, _ := decimal.NewFromString(strings.TrimSpace(f.Amount))
	return d
}

func CreditRequestFromRequest(r *http.Request) CreditRequest {
	return CreditRequest{
		Amount: strings.TrimSpace(r.PostFormValue("amount")),
		Notes:  strings.TrimSpace(r.PostFormValue("notes")),
	}
}

type Activity struct {
	ActivityType models.ActivityType `form:"activityType" json:"activityType" validate:"oneof=call email sms note meeting status_change"`
	Description  string              `form:"description" json:"description" validate:"required,max=2000"`
}

func (f Activity) Validate() Errors {
	return check(f, Messages{
		"activityType": "Please select an activity type",
		"description":  "Description is required",
	})
}

type RoleChange struct {
	Role models.Role `form:"role" json:"role" validate:"oneof=buyer agent manager jv_partner"`
}

func (f RoleChange) Validate() Errors {
	return check(f, Messages{"role": "Unknown role"})
}

type StatusChange struct {
	Status models.Status `form:"status" json:"status" validate:"oneof=active inactive suspended pending"`
}

func (f StatusChange) Validate() Errors {
	return check(f, Messages{"status": "Unknown status"})
}
