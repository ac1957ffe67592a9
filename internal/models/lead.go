package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeadStatus string

const (
	LeadPending  LeadStatus = "pending"
	LeadApproved LeadStatus = "approved"
	LeadRejected LeadStatus = "rejected"
	LeadSold     LeadStatus = "sold"
	LeadExpired  LeadStatus = "expired"
	LeadDeleted  LeadStatus = "deleted"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadPending, LeadApproved, LeadRejected, LeadSold, LeadExpired, LeadDeleted:
		return true
	}
	return false
}

type LeadMode string

const (
	ModeFixedPrice  LeadMode = "fixed_price"
	ModeMarketplace LeadMode = "marketplace"
)

type PropertyType string

const (
	PropertySingleFamily PropertyType = "single_family"
	PropertyMultiFamily  PropertyType = "multi_family"
	PropertyLand         PropertyType = "land"
	PropertyCommercial   PropertyType = "commercial"
	PropertyOther        PropertyType = "other"
)

type LeadType string

const (
	LeadMotivatedSeller LeadType = "motivated_seller"
	LeadFSBO            LeadType = "fsbo"
	LeadPreForeclosure  LeadType = "pre_foreclosure"
	LeadProbate         LeadType = "probate"
	LeadInherited       LeadType = "inherited"
	LeadOther           LeadType = "other"
)

type Lead struct {
	ID          string     `json:"id"`
	SubmittedBy string     `json:"submittedBy"`
	Status      LeadStatus `json:"status"`
	Mode        LeadMode   `json:"mode"`
	AssignedTo  *string    `json:"assignedTo"`

	PropertyAddress string       `json:"propertyAddress"`
	City            string       `json:"city"`
	State           string       `json:"state"`
	ZipCode         string       `json:"zipCode"`
	Latitude        *float64     `json:"latitude"`
	Longitude       *float64     `json:"longitude"`
	PropertyType    PropertyType `json:"propertyType"`
	Bedrooms        *int         `json:"bedrooms"`
	Bathrooms       *float64     `json:"bathrooms"`
	SquareFeet      *int         `json:"squareFeet"`

	LeadType        LeadType            `json:"leadType"`
	OwnerName       string              `json:"ownerName"`
	OwnerPhone      string              `json:"ownerPhone"`
	OwnerEmail      *string             `json:"ownerEmail"`
	MotivationLevel int                 `json:"motivationLevel"`
	Notes           *string             `json:"notes"`
	AskingPrice     decimal.NullDecimal `json:"askingPrice"`
	SuggestedPrice  decimal.Decimal     `json:"suggestedPrice"`

	Price              decimal.Decimal `json:"price"`
	CountdownExpiresAt *time.Time      `json:"countdownExpiresAt"`
	ViewsCount         int             `json:"viewsCount"`
	FavoritesCount     int             `json:"favoritesCount"`

	CreatedAt       time.Time  `json:"createdAt"`
	ApprovedAt      *time.Time `json:"approvedAt"`
	RejectedAt      *time.Time `json:"rejectedAt"`
	SoldAt          *time.Time `json:"soldAt"`
	RejectionReason *string    `json:"rejectionReason"`
}
