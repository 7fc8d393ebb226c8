package controller

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/nightowlcasino/logline/logger"
	"go.uber.org/zap"
)

// Verbosity reports the level of the service's own diagnostics.
func Verbosity() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		level := logger.GetLevel()

		w.Header().Set(HeaderContentType, ContentTypeJSON)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "{\"verbosity\": \"%s\"}", level)
	}
}

// SetVerbosity changes the level of the service's own diagnostics at
// runtime. It does not touch formatted log lines, whose level comes from the
// event. The level is the "v" query parameter of a PUT request:
//
//	curl -X PUT http://host:port/api/v1/verbosity?v=debug
//
// Accepted values are debug, info, warn and error. Any other value selects
// info, an empty or missing one is rejected with 400.
func SetVerbosity() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		log := zap.L()

		level := r.URL.Query().Get("v")
		if level == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, "{\"error\": \"missing or incorrect query parameter 'v='\"}")
			return
		}
		logger.SetLevel(level)

		log.Info("updated diagnostics level",
			zap.String("requested", level),
			zap.String("level", logger.GetLevel()),
		)

		w.WriteHeader(http.StatusNoContent)
	}
}
