package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/nightowlcasino/logline/event"
	"github.com/nightowlcasino/logline/formatter"
	"go.uber.org/zap"
)

const (
	// HeaderWarnings carries the number of problems met while formatting a
	// line that was still produced.
	HeaderWarnings = "X-Logline-Warnings"

	maxBodyBytes = 1 << 20
)

// FormatEvent decodes the JSON event in the request body and responds with
// its log line.
//
//     curl -X POST http://host:port/api/v1/format -d '{"level":"info","message":"hi"}'
//
func FormatEvent(mf *formatter.MessageFormatter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log := zap.L()
		start := time.Now()
		w.Header().Set(HeaderContentType, ContentTypeJSON)

		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
		if err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			fmt.Fprint(w, "{\"error\": \"request body too large\"}")
			return
		}

		evt, err := event.Decode(body)
		if err != nil {
			log.Debug("rejected event record", zap.Error(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprintf(w, "{\"error\": %s}", strconv.Quote(err.Error()))
			return
		}

		line, err := mf.Format(evt)
		if line == "" {
			log.Error("failed to format event", zap.Error(err), zap.String("logger", evt.LoggerName))
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, "{\"error\": \"failed to format event\"}")
			return
		}

		if err != nil {
			var merr *multierror.Error
			if errors.As(err, &merr) {
				w.Header().Set(HeaderWarnings, strconv.Itoa(len(merr.Errors)))
			} else {
				w.Header().Set(HeaderWarnings, "1")
			}
		}

		log.Debug("formatted event",
			zap.Int64("durationMs", time.Since(start).Milliseconds()),
			zap.String("logger", evt.LoggerName),
		)

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, line)
	})
}
