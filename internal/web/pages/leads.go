package pages

import (
	"context"
	"strconv"

	"ezzleads/internal/forms"

	"github.com/a-h/templ"
)

var propertyTypeOptions = []option{
	{"single_family", "Single Family"},
	{"multi_family", "Multi Family"},
	{"land", "Land"},
	{"commercial", "Commercial"},
	{"other", "Other"},
}

var leadTypeOptions = []option{
	{"motivated_seller", "Motivated Seller"},
	{"fsbo", "For Sale By Owner"},
	{"pre_foreclosure", "Pre-Foreclosure"},
	{"probate", "Probate"},
	{"inherited", "Inherited"},
	{"other", "Other"},
}

func SubmitLead(f forms.Lead, errs forms.Errors, failure string) templ.Component {
	return component(func(ctx context.Context, b *buf) {
		b.raw(`<div class="heading"><h1>Submit New Lead</h1><p>Leads are reviewed by a manager before they go live</p></div>`)
		b.render(ctx, formAlert(failure))
		b.raw(`<form class="card" method="post" action="/dashboard/agent/submit-lead" novalidate><h2>Property</h2>`)
		b.render(ctx, inputField("Address", "propertyAddress", "text", f.PropertyAddress, errs))
		b.render(ctx, inputField("City", "city", "text", f.City, errs))
		b.render(ctx, inputField("State", "state", "text", f.State, errs))
		b.render(ctx, inputField("ZIP Code", "zipCode", "text", f.ZipCode, errs))
		b.render(ctx, selectInput("Property Type", "propertyType", f.PropertyType, propertyTypeOptions, errs))
		b.render(ctx, inputField("Bedrooms", "bedrooms", "number", f.Bedrooms, errs))
		b.render(ctx, inputField("Bathrooms", "bathrooms", "number", f.Bathrooms, errs))
		b.render(ctx, inputField("Square Feet", "squareFeet", "number", f.SquareFeet, errs))
		b.raw(`<h2>Owner</h2>`)
		b.render(ctx, selectInput("Lead Type", "leadType", f.LeadType, leadTypeOptions, errs))
		b.render(ctx, inputField("Owner Name", "ownerName", "text", f.OwnerName, errs))
		b.render(ctx, inputField("Owner Phone", "ownerPhone", "tel", f.OwnerPhone, errs))
		b.render(ctx, inputField("Owner Email", "ownerEmail", "email", f.OwnerEmail, errs))
		motivation := ""
		if f.MotivationLevel > 0 {
			motivation = strconv.Itoa(f.MotivationLevel)
		}
		b.render(ctx, inputField("Motivation (1-10)", "motivationLevel", "number", motivation, errs))
		b.render(ctx, inputField("Asking Price", "askingPrice", "text", f.AskingPrice, errs))
		b.render(ctx, textareaField("Notes", "notes", f.Notes, errs))
		b.raw(`<button type="submit">Submit Lead</button></form>`)
	})
}

func Credits(f forms.CreditRequest, errs forms.Errors, failure string) templ.Component {
	return component(func(ctx context.Context, b *buf) {
		b.raw(`<div class="heading"><h1>Add Credits</h1><p>Request funds for your wallet. A manager will send you a payment link.</p></div>`)
		b.render(ctx, formAlert(failure))
		b.raw(`<form class="card" method="post" action="/dashboard/buyer/credits" novalidate>`)
		b.render(ctx, inputField("Amount (USD)", "amount", "text", f.Amount, errs))
		b.render(ctx, textareaField("Notes", "notes", f.Notes, errs))
		b.raw(`<button type="submit">Request Credits</button></form>`)
	})
}
