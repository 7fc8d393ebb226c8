package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nightowlcasino/logline/formatter"
	"github.com/nightowlcasino/logline/layout"
	"github.com/nightowlcasino/logline/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(rateLimit float64) *Router {
	mf := formatter.NewMessageFormatter(true, layout.MustParse("${message}"),
		layout.Field{Name: "fieldname", Layout: layout.Constant("default value")},
	)
	return NewRouter(mf, rateLimit)
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestFormatEvent(t *testing.T) {
	r := newTestRouter(100)

	testCases := []struct {
		name     string
		body     string
		status   int
		contains []string
		warnings string
	}{
		{
			"TestGoodEvent",
			`{"level":"debug","logger":"api","timestamp":"2024-03-01T09:20:30Z","message":"Hello %s","parameters":["World"],"properties":{"tags":["skurk:rånarligan"],"fieldname":"runtime value"}}`,
			http.StatusOK,
			[]string{
				`"message":"Hello World"`,
				`"timestamp":"2024-03-01T09:20:30.000000000Z"`,
				`"level":"Debug"`,
				`"source":{"scheme":"nlog","data":"api"}`,
				`"tags":["skurk:rånarligan"]`,
				`"fieldname":"runtime value"`,
			},
			"",
		},
		{
			"TestDegradedTags",
			`{"message":"x","properties":{"tags":[1,"ok"]}}`,
			http.StatusOK,
			[]string{`"tags":["ok"]`},
			"1",
		},
		{
			"TestBadLevel",
			`{"level":"loud","message":"x"}`,
			http.StatusUnprocessableEntity,
			[]string{`"error":`},
			"",
		},
		{
			"TestEmptyBody",
			``,
			http.StatusUnprocessableEntity,
			[]string{`"error":`},
			"",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/api/v1/format", tc.body)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			for _, s := range tc.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
			assert.Equal(t, tc.warnings, rec.Header().Get(HeaderWarnings))
			assert.Equal(t, ContentTypeJSON, rec.Header().Get(HeaderContentType))
		})
	}
}

func TestFormatEventRateLimited(t *testing.T) {
	r := newTestRouter(1)

	first := do(r, http.MethodPost, "/api/v1/format", `{"message":"one"}`)
	assert.Equal(t, http.StatusOK, first.Code)

	second := do(r, http.MethodPost, "/api/v1/format", `{"message":"two"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestVerbosity(t *testing.T) {
	r := newTestRouter(100)

	rec := do(r, http.MethodPut, "/api/v1/verbosity?v=warn", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "warn", logger.GetLevel())

	rec = do(r, http.MethodGet, "/api/v1/verbosity", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"verbosity": "warn"}`, rec.Body.String())

	rec = do(r, http.MethodPut, "/api/v1/verbosity", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPut, "/api/v1/verbosity?v=loud", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "info", logger.GetLevel())

	logger.SetLevel("info")
}

func TestHealth(t *testing.T) {
	r := newTestRouter(100)

	rec := do(r, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status": "starting"}`, rec.Body.String())

	r.Ready()
	rec = do(r, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
