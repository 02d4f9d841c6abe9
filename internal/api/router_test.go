package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"llm-lms/backend/internal/api"
	"llm-lms/backend/internal/auth"
	"llm-lms/backend/internal/interfaces/mocks"
	"llm-lms/backend/internal/model"
	"llm-lms/backend/internal/observability/metrics"
)

type routerFixture struct {
	router http.Handler
	chat   *mocks.MockChatService
	reg    *prometheus.Registry
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	reg := prometheus.NewRegistry()
	chat := mocks.NewMockChatService(t)

	verifier := auth.VerifierFunc(func(_ context.Context, token string) (model.UserIdentity, error) {
		if token == "real-token" {
			return "uid-real", nil
		}
		return "", errors.New("signature mismatch")
	})

	router := api.NewRouter(api.RouterDeps{
		Chat:        api.NewChatHandler(chat),
		Quiz:        api.NewQuizHandler(mocks.NewMockQuizService(t)),
		Upload:      api.NewUploadHandler(mocks.NewMockUploadService(t), 0),
		Auth:        api.NewAuthHandler(mocks.NewMockAuthService(t)),
		Resolver:    auth.NewResolver(verifier, nil),
		Metrics:     metrics.New(reg),
		Gatherer:    reg,
		CORSOrigins: []string{"http://localhost:3000"},
	})
	return &routerFixture{router: router, chat: chat, reg: reg}
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestRouter_PublicRoutes(t *testing.T) {
	f := newRouterFixture(t)

	rr := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"LLM-LMS Go backend running"}`, rr.Body.String())

	rr = f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "lms_http_requests_total")
}

func TestRouter_ChatIdentity(t *testing.T) {
	t.Run("Verified token", func(t *testing.T) {
		f := newRouterFixture(t)
		f.chat.On("Answer", mock.Anything, model.UserIdentity("uid-real"), "Q?", "").Return("A.", nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/chat/", strings.NewReader(`{"question":"Q?"}`))
		req.Header.Set("Authorization", "Bearer real-token")
		rr := f.do(req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"answer":"A."}`, rr.Body.String())
	})

	t.Run("Path without trailing slash", func(t *testing.T) {
		f := newRouterFixture(t)
		f.chat.On("Answer", mock.Anything, model.MockIdentity, "Q?", "").Return("A.", nil).Once()

		rr := f.do(httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"question":"Q?"}`)))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Invalid token", func(t *testing.T) {
		f := newRouterFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/chat/", strings.NewReader(`{"question":"Q?"}`))
		req.Header.Set("Authorization", "Bearer forged")
		rr := f.do(req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid token"}`, rr.Body.String())

		assert.Equal(t, float64(1), requestCount(t, f.reg, http.MethodPost, "401"))
	})
}

func TestRouter_CORS(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := f.do(req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = f.do(req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/chat/", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = f.do(req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AnyOrigin(t *testing.T) {
	handler := api.CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/quiz/", nil)
	req.Header.Set("Origin", "https://lms.example")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "https://lms.example", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Header().Get("Access-Control-Max-Age"))
}

// requestCount sums lms_http_requests_total across routes for one method and status.
func requestCount(t *testing.T, reg *prometheus.Registry, method, status string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != "lms_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["method"] == method && labels["status"] == status {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}
