package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"soap-storefront/internal/logging"
)

// Recoverer turns a panic into a 500 and logs the stack trace
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logging.FromContext(r.Context()).
					WithField("panic", fmt.Sprint(rec)).
					WithField("stack", string(debug.Stack())).
					Error("recovered from panic")

				if IsHTMXRequest(r) {
					w.Header().Set("Content-Type", "text/html; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`<div class="bg-red-50 border border-red-200 text-red-800 p-4 rounded-lg">` +
						`<p class="text-sm">Something went wrong. Please try again.</p></div>`))
					return
				}
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// NotFoundHandler renders the not-found fallback. The full page is supplied
// by the caller so the layout stays in one place.
func NotFoundHandler(page http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsHTMXRequest(r) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`<div class="text-center py-12">` +
				`<h3 class="text-lg font-medium text-gray-900 mb-2">Page Not Found</h3>` +
				`<p class="text-gray-600 mb-6">The page you're looking for doesn't exist.</p>` +
				`<a href="/" class="text-emerald-700 underline">Back to the shop</a></div>`))
			return
		}
		if page == nil {
			http.NotFound(w, r)
			return
		}
		page.ServeHTTP(w, r)
	})
}

// MethodNotAllowedHandler handles 405 errors
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsHTMXRequest(r) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte(`<div class="bg-yellow-50 border border-yellow-200 text-yellow-800 p-4 rounded-lg">` +
				`<p class="text-sm">This action is not allowed.</p></div>`))
			return
		}
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
}
