package forms

import (
	"net/http"
	"strconv"
	"strings"

	"ezzleads/internal/models"

	"github.com/shopspring/decimal"
)

// Lead is the agent's lead submission.
type Lead struct {
	PropertyAddress string `form:"propertyAddress" json:"propertyAddress" validate:"required,max=200"`
	City            string `form:"city" json:"city" validate:"required,max=100"`
	State           string `form:"state" json:"state" validate:"required,len=2,alpha"`
	ZipCode         string `form:"zipCode" json:"zipCode" validate:"required,number,min=5,max=10"`
	PropertyType    string `form:"propertyType" json:"propertyType" validate:"oneof=single_family multi_family land commercial other"`
	Bedrooms        string `form:"bedrooms" json:"bedrooms" validate:"omitempty,number"`
	Bathrooms       string `form:"bathrooms" json:"bathrooms" validate:"omitempty,numeric"`
	SquareFeet      string `form:"squareFeet" json:"squareFeet" validate:"omitempty,number"`

	LeadType        string `form:"leadType" json:"leadType" validate:"oneof=motivated_seller fsbo pre_foreclosure probate inherited other"`
	OwnerName       string `form:"ownerName" json:"ownerName" validate:"min=2,max=120"`
	OwnerPhone      string `form:"ownerPhone" json:"ownerPhone" validate:"min=7,max=20"`
	OwnerEmail      string `form:"ownerEmail" json:"ownerEmail" validate:"omitempty,email"`
	MotivationLevel int    `form:"motivationLevel" json:"motivationLevel" validate:"min=1,max=10"`
	Notes           string `form:"notes" json:"notes" validate:"max=2000"`
	AskingPrice     string `form:"askingPrice" json:"askingPrice" validate:"omitempty,money"`
}

var leadMessages = Messages{
	"propertyAddress": "Property address is required",
	"city":            "City is required",
	"state":           "Use the two-letter state code",
	"zipCode":         "Enter a valid ZIP code",
	"propertyType":    "Please select a property type",
	"bedrooms":        "Bedrooms must be a whole number",
	"bathrooms":       "Bathrooms must be a number",
	"squareFeet":      "Square feet must be a whole number",
	"leadType":        "Please select a lead type",
	"ownerName":       "Owner name must be at least 2 characters",
	"ownerPhone":      "Enter a valid phone number",
	"ownerEmail":      msgInvalidEmail,
	"motivationLevel": "Motivation must be between 1 and 10",
	"notes":           "Notes must be at most 2000 characters",
	"askingPrice":     "Asking price must be a positive amount",
}

func (f *Lead) Normalize() {
	for _, p := range []*string{
		&f.PropertyAddress, &f.City, &f.ZipCode, &f.Bedrooms, &f.Bathrooms,
		&f.SquareFeet, &f.OwnerName, &f.OwnerPhone, &f.OwnerEmail, &f.Notes, &f.AskingPrice,
	} {
		*p = strings.TrimSpace(*p)
	}
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
}

func (f Lead) Validate() Errors {
	errs := check(f, leadMessages)
	extra := Errors{}
	if strings.HasPrefix(f.Bathrooms, "-") {
		extra["bathrooms"] = leadMessages["bathrooms"]
	}
	return merge(errs, extra)
}

func LeadFromRequest(r *http.Request) Lead {
	motivation, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("motivationLevel")))
	f := Lead{
		PropertyAddress: r.PostFormValue("propertyAddress"),
		City:            r.PostFormValue("city"),
		State:           r.PostFormValue("state"),
		ZipCode:         r.PostFormValue("zipCode"),
		PropertyType:    r.PostFormValue("propertyType"),
		Bedrooms:        r.PostFormValue("bedrooms"),
		Bathrooms:       r.PostFormValue("bathrooms"),
		SquareFeet:      r.PostFormValue("squareFeet"),
		LeadType:        r.PostFormValue("leadType"),
		OwnerName:       r.PostFormValue("ownerName"),
		OwnerPhone:      r.PostFormValue("ownerPhone"),
		OwnerEmail:      r.PostFormValue("ownerEmail"),
		MotivationLevel: motivation,
		Notes:           r.PostFormValue("notes"),
		AskingPrice:     r.PostFormValue("askingPrice"),
	}
	f.Normalize()
	return f
}

// ToLead builds a pending lead for submitter. Call only after Validate passes.
func (f Lead) ToLead(submitter string) *models.Lead {
	l := &models.Lead{
		SubmittedBy:     submitter,
		Status:          models.LeadPending,
		Mode:            models.ModeFixedPrice,
		PropertyAddress: f.PropertyAddress,
		City:            f.City,
		State:           f.State,
		ZipCode:         f.ZipCode,
		PropertyType:    models.PropertyType(f.PropertyType),
		LeadType:        models.LeadType(f.LeadType),
		OwnerName:       f.OwnerName,
		OwnerPhone:      f.OwnerPhone,
		MotivationLevel: f.MotivationLevel,
		SuggestedPrice:  decimal.Zero,
		Price:           decimal.Zero,
	}
	l.Bedrooms = optInt(f.Bedrooms)
	l.SquareFeet = optInt(f.SquareFeet)
	if v, err := strconv.ParseFloat(f.Bathrooms, 64); err == nil {
		l.Bathrooms = &v
	}
	if f.OwnerEmail != "" {
		l.OwnerEmail = &f.OwnerEmail
	}
	if f.Notes != "" {
		l.Notes = &f.Notes
	}
	if d, err := decimal.NewFromString(f.AskingPrice); err == nil {
		l.AskingPrice = decimal.NewNullDecimal(d)
	}
	return l
}

func optInt(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
