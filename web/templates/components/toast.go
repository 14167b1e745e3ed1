package components

import "github.com/a-h/templ"

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot toast message
type Flash struct {
	Kind    string
	Message string
}

var toastClasses = map[string]string{
	FlashSuccess: "bg-green-50 border-green-200 text-green-800",
	FlashError:   "bg-red-50 border-red-200 text-red-800",
	FlashInfo:    "bg-blue-50 border-blue-200 text-blue-800",
}

// Toasts renders the flash stack. It is also returned on its own as an HTMX
// out-of-band swap.
func Toasts(flashes []Flash, oob bool) templ.Component {
	return Component(func(h *HTML) {
		h.Raw(`<div id="toasts" class="fixed top-4 right-4 z-50 space-y-2 w-80"`)
		h.If(oob, ` hx-swap-oob="true"`)
		h.Raw(`>`)
		for _, f := range flashes {
			class, ok := toastClasses[f.Kind]
			if !ok {
				class = toastClasses[FlashInfo]
			}
			h.F(`<div class="border rounded-lg p-3 shadow text-sm %s" role="status" onclick="this.remove()">%s</div>`, class, f.Message)
		}
		h.Raw(`</div>`)
	})
}
