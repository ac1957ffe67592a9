package pages

import (
	"context"

	"ezzleads/internal/models"

	"github.com/a-h/templ"
)

func Home(s *models.Session) templ.Component {
	return component(func(_ context.Context, b *buf) {
		b.raw(`<section class="hero"><h1>The Marketplace for Real Estate Leads</h1>`)
		b.raw(`<p>Agents submit verified seller leads. Buyers purchase them and work them in a built-in CRM.</p>`)
		if s == nil {
			b.raw(`<a class="button" href="/register">Get Started</a><a class="button outline" href="/login">Sign In</a>`)
		} else {
			b.raw(`<a class="button" href="/dashboard">Go to Dashboard</a>`)
		}
		b.raw(`</section>`)
	})
}

func Unauthorized() templ.Component {
	return component(func(_ context.Context, b *buf) {
		b.raw(`<section class="card"><h1>Access Denied</h1>`)
		b.raw(`<p>You don't have permission to view this page.</p>`)
		b.raw(`<a class="button" href="/dashboard">Back to Dashboard</a></section>`)
	})
}

func Suspended() templ.Component {
	return component(func(_ context.Context, b *buf) {
		b.raw(`<section class="card"><h1>Account Suspended</h1>`)
		b.raw(`<p>Your account is not active. Contact support to restore access.</p>`)
		b.raw(`<form method="post" action="/logout"><button type="submit">Sign Out</button></form></section>`)
	})
}

func NotFound() templ.Component {
	return component(func(_ context.Context, b *buf) {
		b.raw(`<section class="card"><h1>Page Not Found</h1><a href="/">Go home</a></section>`)
	})
}
