package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"soap-storefront/internal/logging"
)

type ctxKeyRequestID struct{}

// RequestLogger assigns a request id, stores a request-scoped logger in the
// context and logs one line when the response is complete.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			reqLog := log.WithFields(logrus.Fields{
				"http.req.path":   r.URL.Path,
				"http.req.method": r.Method,
				"http.req.id":     requestID,
			})
			if sid := GetSessionID(r.Context()); sid != "" {
				reqLog = reqLog.WithField("session", sid)
			}
			if IsHTMXRequest(r) {
				reqLog = reqLog.WithField("http.req.htmx", true)
			}

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, requestID)
			ctx = logging.WithLogger(ctx, reqLog)

			defer func() {
				entry := reqLog.WithFields(logrus.Fields{
					"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
					"http.resp.status":  wrapped.statusCode,
					"http.resp.bytes":   wrapped.size,
					"http.req.ip":       getClientIP(r),
				})
				if wrapped.statusCode >= http.StatusInternalServerError {
					entry.Warn("request complete")
				} else {
					entry.Debug("request complete")
				}
			}()

			next.ServeHTTP(wrapped, r.WithContext(ctx))
		})
	}
}

// GetRequestID returns the id RequestLogger assigned, or ""
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Flush keeps streaming responses working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// getClientIP returns the host part of r.RemoteAddr. Forwarding headers are
// only reflected there when the router runs chi's RealIP behind a trusted proxy.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
