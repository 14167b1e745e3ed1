package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/sessions"

	"soap-storefront/internal/logging"
	"soap-storefront/internal/middleware"
	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/components"
	"soap-storefront/web/templates/pages"
)

const dismissedKey = "dismissed_announcements"

// Base carries what every handler needs to render a page: the session
// store, the cart for the navbar badge and the announcement feed.
type Base struct {
	store         sessions.Store
	sessionName   string
	sessions      *services.SessionHolder
	cart          *services.CartStore
	announcements services.AnnouncementServiceInterface
	now           func() time.Time
}

func NewBase(store sessions.Store, sessionName string, holder *services.SessionHolder, cart *services.CartStore, announcements services.AnnouncementServiceInterface) *Base {
	return &Base{
		store:         store,
		sessionName:   sessionName,
		sessions:      holder,
		cart:          cart,
		announcements: announcements,
		now:           time.Now,
	}
}

// meta builds the shell data. Flashes are consumed here.
func (b *Base) meta(w http.ResponseWriter, r *http.Request, title string) components.PageMeta {
	return components.PageMeta{
		Title:         title,
		Path:          r.URL.Path,
		Session:       middleware.GetSessionFromContext(r.Context()),
		CSRFToken:     middleware.GetCSRFToken(r.Context()),
		CartCount:     b.cart.Get(w, r).GetCartItemsCount(),
		Flashes:       b.popFlashes(w, r),
		Announcements: b.visibleAnnouncements(r),
	}
}

// adminMeta skips the storefront banner feed
func (b *Base) adminMeta(w http.ResponseWriter, r *http.Request, title string) components.PageMeta {
	return components.PageMeta{
		Title:     title,
		Path:      r.URL.Path,
		Session:   middleware.GetSessionFromContext(r.Context()),
		CSRFToken: middleware.GetCSRFToken(r.Context()),
		CartCount: b.cart.Get(w, r).GetCartItemsCount(),
		Flashes:   b.popFlashes(w, r),
	}
}

// visibleAnnouncements is best effort: a failing feed hides the banner
func (b *Base) visibleAnnouncements(r *http.Request) []models.Announcement {
	if b.announcements == nil {
		return nil
	}
	all, err := b.announcements.ListActive(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("announcements unavailable")
		return nil
	}
	return models.VisibleAnnouncements(all, b.dismissed(r), b.now())
}

func (b *Base) dismissed(r *http.Request) map[string]bool {
	session, err := b.store.Get(r, b.sessionName)
	if err != nil {
		return nil
	}
	ids, _ := session.Values[dismissedKey].(string)
	out := make(map[string]bool)
	for _, id := range strings.Split(ids, ",") {
		if id != "" {
			out[id] = true
		}
	}
	return out
}

// dismiss records an announcement id; dismissals never expire
func (b *Base) dismiss(w http.ResponseWriter, r *http.Request, id string) error {
	session, err := b.store.Get(r, b.sessionName)
	if err != nil {
		return err
	}
	ids, _ := session.Values[dismissedKey].(string)
	for _, existing := range strings.Split(ids, ",") {
		if existing == id {
			return nil
		}
	}
	if ids != "" {
		ids += ","
	}
	session.Values[dismissedKey] = ids + id
	return session.Save(r, w)
}

func (b *Base) flash(w http.ResponseWriter, r *http.Request, kind, message string) {
	session, err := b.store.Get(r, b.sessionName)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("flash dropped")
		return
	}
	session.AddFlash(kind+"|"+message, "flash")
	if err := session.Save(r, w); err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("flash dropped")
	}
}

func (b *Base) popFlashes(w http.ResponseWriter, r *http.Request) []components.Flash {
	session, err := b.store.Get(r, b.sessionName)
	if err != nil {
		return nil
	}
	raw := session.Flashes("flash")
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("failed to clear flashes")
	}

	flashes := make([]components.Flash, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		kind, message, found := strings.Cut(s, "|")
		if !found {
			kind, message = components.FlashInfo, s
		}
		flashes = append(flashes, components.Flash{Kind: kind, Message: message})
	}
	return flashes
}

// render writes a component with the given status
func render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("failed to render page")
	}
}

// NotFound renders the full-page fallback
func (b *Base) NotFound(w http.ResponseWriter, r *http.Request) {
	b.notFound(w, r, "")
}

func (b *Base) notFound(w http.ResponseWriter, r *http.Request, message string) {
	render(w, r, http.StatusNotFound, pages.NotFoundPage(b.meta(w, r, "Not found"), message))
}

// token returns the bearer of the signed-in session, or ""
func token(ctx context.Context) string {
	if s := middleware.GetSessionFromContext(ctx); s != nil {
		return s.Token
	}
	return ""
}

// sessionKey identifies the browser for per-visitor guards
func sessionKey(r *http.Request) string {
	if sid := middleware.GetSessionID(r.Context()); sid != "" {
		return sid
	}
	return r.RemoteAddr
}

// endIfUnauthorized destroys the session when an authenticated call came
// back 401, then sends the visitor to the login page. It reports whether it
// handled the response.
func (b *Base) endIfUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, models.ErrUnauthorized) || middleware.GetSessionFromContext(r.Context()) == nil {
		return false
	}
	logging.FromContext(r.Context()).Info("session rejected by backend, signing out")
	if endErr := b.sessions.End(w, r); endErr != nil {
		logging.FromContext(r.Context()).WithError(endErr).Warn("failed to end session")
	}
	b.flash(w, r, components.FlashError, "Your session has expired. Please sign in again.")
	redirect(w, r, "/login?redirect="+url.QueryEscape(r.URL.Path))
	return true
}

// redirect sends HX-Redirect to htmx requests and See Other otherwise
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if middleware.IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// logError logs err on the request logger under msg
func logError(r *http.Request, err error, msg string) {
	logging.FromContext(r.Context()).WithError(err).Error(msg)
}
