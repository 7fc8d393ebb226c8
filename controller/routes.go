package controller

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/didip/tollbooth"
	"github.com/julienschmidt/httprouter"
	"github.com/nightowlcasino/logline/formatter"
)

const (
	// HeaderContentType is the Content-Type header key.
	HeaderContentType = "Content-Type"
	// ContentTypeJSON is the application/json MIME type.
	ContentTypeJSON = "application/json"
)

type Router struct {
	http.Handler

	ready atomic.Bool
}

// Ready marks the service as accepting traffic, health reports "starting"
// until then.
func (r *Router) Ready() {
	r.ready.Store(true)
}

// NewRouter serves the formatting API. Format requests are limited to
// rateLimit requests per second per client.
func NewRouter(mf *formatter.MessageFormatter, rateLimit float64) *Router {
	h := httprouter.New()
	h.RedirectTrailingSlash = false
	h.RedirectFixedPath = false

	r := &Router{
		Handler: h,
	}

	lmt := tollbooth.NewLimiter(rateLimit, nil)
	lmt.SetMessageContentType(ContentTypeJSON)
	lmt.SetMessage(`{"error": "rate limit exceeded"}`)

	h.Handler(http.MethodPost, "/api/v1/format", tollbooth.LimitHandler(lmt, FormatEvent(mf)))
	h.GET("/api/v1/verbosity", Verbosity())
	h.PUT("/api/v1/verbosity", SetVerbosity())
	h.GET("/api/v1/health", r.health())

	return r
}

func (r *Router) health() httprouter.Handle {
	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set(HeaderContentType, ContentTypeJSON)
		if !r.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, "{\"status\": \"starting\"}")
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "{\"status\": \"ok\"}")
	}
}
