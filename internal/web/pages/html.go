// Package pages renders the server-side HTML views as templ components.
package pages

//go:generate templ generate

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// buf writes markup and keeps the first write error.
type buf struct {
	w   io.Writer
	err error
}

func (b *buf) raw(s string) {
	if b.err == nil {
		_, b.err = io.WriteString(b.w, s)
	}
}

func (b *buf) rawf(format string, args ...any) {
	if b.err == nil {
		_, b.err = fmt.Fprintf(b.w, format, args...)
	}
}

// text writes s HTML-escaped.
func (b *buf) text(s string) { b.raw(templ.EscapeString(s)) }

func (b *buf) render(ctx context.Context, c templ.Component) {
	if b.err == nil && c != nil {
		b.err = c.Render(ctx, b.w)
	}
}

func component(fn func(ctx context.Context, b *buf)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &buf{w: w}
		fn(ctx, b)
		return b.err
	})
}

func esc(s string) string { return templ.EscapeString(s) }
