package components

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// HTML is a small write helper used by the hand-written components. It keeps
// the first write error and turns every later call into a no-op.
type HTML struct {
	w   io.Writer
	ctx context.Context
	err error
}

// NewHTML wraps w for a single Render call
func NewHTML(ctx context.Context, w io.Writer) *HTML {
	return &HTML{w: w, ctx: ctx}
}

// Raw writes trusted markup as is
func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s escaped
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// F formats trusted markup with every argument escaped. Values for href, src
// and action go through templ.URL first so unsafe schemes never render.
func (h *HTML) F(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case int, int64, float64, bool:
			escaped[i] = v
		default:
			escaped[i] = templ.EscapeString(fmt.Sprint(v))
		}
	}
	h.Raw(fmt.Sprintf(format, escaped...))
}

// Render writes a child component
func (h *HTML) Render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// If writes markup only when cond holds
func (h *HTML) If(cond bool, s string) {
	if cond {
		h.Raw(s)
	}
}

func (h *HTML) Err() error {
	return h.err
}

// Component adapts a writer function into a templ.Component
func Component(fn func(h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(ctx, w)
		fn(h)
		return h.Err()
	})
}

// Price renders whole rupees with thousands separators, e.g. ₹1,300
func Price(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.Itoa(amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "₹" + b.String()
}

// Checked returns the checked attribute when b holds
func Checked(b bool) string {
	if b {
		return " checked"
	}
	return ""
}

// Selected returns the selected attribute when a equals b
func Selected(a, b string) string {
	if a == b {
		return " selected"
	}
	return ""
}

// Join renders components one after another, e.g. a swap target plus
// out-of-band fragments
func Join(cs ...templ.Component) templ.Component {
	return Component(func(h *HTML) {
		for _, c := range cs {
			h.Render(c)
		}
	})
}
