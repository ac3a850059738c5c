package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/opsdeck/backoffice/internal/console"
	mock_console "github.com/opsdeck/backoffice/internal/console/mocks"
	"github.com/opsdeck/backoffice/internal/kafka"
	"github.com/opsdeck/backoffice/internal/privacy"
	"github.com/opsdeck/backoffice/internal/records"
	"github.com/opsdeck/backoffice/internal/selection"
	mock_server "github.com/opsdeck/backoffice/internal/server/mocks"
)

func newTestServer(t *testing.T) (*Server, *mock_console.MockFetcher, *mock_server.MockOperatorRepo, *records.Store) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fetcher := mock_console.NewMockFetcher(ctrl)
	operators := mock_server.NewMockOperatorRepo(ctrl)

	store := records.NewStore(zap.NewNop())
	gate := privacy.NewGate(privacy.NewPolicy(), zap.NewNop())
	gate.SetConfirmDelay(0)
	c := console.New(store, fetcher, gate, time.Minute, zap.NewNop())
	t.Cleanup(c.Shutdown)

	auditManager := NewAuditManager(
		kafka.NewConsoleProducer(zap.NewNop()), "audit-log", 1, 4, 50*time.Millisecond, zap.NewNop())

	s := New(c, operators, auditManager, zap.NewNop())
	s.baseCtx = context.Background()
	return s, fetcher, operators, store
}

func domainRequest(method, target, domain string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"domain": domain})
}

func identityRequest(method, target, identity string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"identity": identity})
}

func TestHandleListRecords(t *testing.T) {
	s, _, _, store := newTestServer(t)
	store.ReplaceAll(records.DomainOrder, []records.Record{
		records.Order{ID: "ord-1", Status: "pending"},
		records.Order{ID: "ord-2", Status: "delivered"},
	})

	t.Run("returns the visible page", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.handleListRecords(w, domainRequest(http.MethodGet, "/records/order", "order", nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var result struct {
			Items      []json.RawMessage `json:"items"`
			TotalCount int               `json:"total_count"`
			Page       int               `json:"page"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Len(t, result.Items, 2)
		assert.Equal(t, 2, result.TotalCount)
		assert.Equal(t, 1, result.Page)
	})

	t.Run("unknown domain is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.handleListRecords(w, domainRequest(http.MethodGet, "/records/warehouse", "warehouse", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Unknown domain"}`, w.Body.String())
	})
}

func TestHandleListRecordsMasksUsers(t *testing.T) {
	s, _, _, store := newTestServer(t)
	store.ReplaceAll(records.DomainUser, []records.Record{
		records.User{
			ID:    "user-1",
			Name:  "Rajesh Sharma",
			Email: "rajesh.sharma@gmail.com",
			Phone: "9876543210",
		},
	})

	w := httptest.NewRecorder()
	s.handleListRecords(w, domainRequest(http.MethodGet, "/records/user", "user", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Items []records.User `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "r••••a@gmail.com", result.Items[0].Email)
	assert.Equal(t, "98••••10", result.Items[0].Phone)
	assert.Equal(t, "Rajesh Sharma", result.Items[0].Name)
}

func TestHandleActivateDomain(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	w := httptest.NewRecorder()
	s.handleActivateDomain(w, domainRequest(http.MethodPost, "/records/return/activate", "return", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"active":"return"}`, w.Body.String())
}

func TestHandleSetCriteria(t *testing.T) {
	s, _, _, store := newTestServer(t)
	store.ReplaceAll(records.DomainOrder, []records.Record{
		records.Order{ID: "ord-1", Status: "pending"},
		records.Order{ID: "ord-2", Status: "delivered"},
	})

	body := []byte(`{"equals":{"status":"pending"}}`)
	w := httptest.NewRecorder()
	s.handleSetCriteria(w, domainRequest(http.MethodPut, "/records/order/criteria", "order", body))

	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		TotalCount int `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.TotalCount)
}

func TestHandleSetCriteriaInvalidBody(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	w := httptest.NewRecorder()
	s.handleSetCriteria(w, domainRequest(http.MethodPut, "/records/order/criteria", "order", []byte(`{broken`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, w.Body.String())
}

func TestHandleRefresh(t *testing.T) {
	s, fetcher, _, store := newTestServer(t)

	t.Run("replaces the collection", func(t *testing.T) {
		fetcher.EXPECT().
			FetchRecords(gomock.Any(), records.DomainOrder, gomock.Any()).
			Return([]records.Record{records.Order{ID: "ord-1"}}, 1, nil)

		w := httptest.NewRecorder()
		s.handleRefresh(w, domainRequest(http.MethodPost, "/records/order/refresh", "order", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, store.Count(records.DomainOrder))
	})

	t.Run("upstream failure maps to bad gateway", func(t *testing.T) {
		fetcher.EXPECT().
			FetchRecords(gomock.Any(), records.DomainOrder, gomock.Any()).
			Return(nil, 0, errors.New("connection refused"))

		w := httptest.NewRecorder()
		s.handleRefresh(w, domainRequest(http.MethodPost, "/records/order/refresh", "order", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestHandleSetPolling(t *testing.T) {
	s, fetcher, _, _ := newTestServer(t)
	fetcher.EXPECT().
		FetchRecords(gomock.Any(), records.DomainOrder, gomock.Any()).
		Return(nil, 0, nil).
		AnyTimes()

	w := httptest.NewRecorder()
	s.handleSetPolling(w, domainRequest(http.MethodPut, "/records/order/polling", "order", []byte(`{"enabled":true}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"enabled":true}`, w.Body.String())

	w = httptest.NewRecorder()
	s.handleSetPolling(w, domainRequest(http.MethodPut, "/records/order/polling", "order", []byte(`{"enabled":false}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"enabled":false}`, w.Body.String())
}

func TestHandleStatistics(t *testing.T) {
	s, fetcher, _, _ := newTestServer(t)

	fetcher.EXPECT().
		FetchStatistics(gomock.Any(), records.DomainOrder).
		Return(console.Statistics{
			CountsByStatus: map[string]int{"pending": 2},
			Rates:          map[string]float64{"pending": 1},
		}, nil)

	w := httptest.NewRecorder()
	s.handleStatistics(w, domainRequest(http.MethodGet, "/records/order/stats", "order", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"counts_by_status":{"pending":2},"rates":{"pending":1}}`, w.Body.String())
}

func TestHandleSelection(t *testing.T) {
	s, _, _, store := newTestServer(t)
	store.ReplaceAll(records.DomainOrder, []records.Record{
		records.Order{ID: "ord-1"},
		records.Order{ID: "ord-2"},
	})

	w := httptest.NewRecorder()
	s.handleToggleSelect(w, httptest.NewRequest(http.MethodPost, "/selection/toggle", bytes.NewReader([]byte(`{"id":"ord-1"}`))))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selected":true}`, w.Body.String())

	w = httptest.NewRecorder()
	s.handleSelectAllVisible(w, httptest.NewRequest(http.MethodPost, "/selection/all", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selected":["ord-1","ord-2"]}`, w.Body.String())

	w = httptest.NewRecorder()
	s.handleGetSelection(w, httptest.NewRequest(http.MethodGet, "/selection", nil))
	assert.JSONEq(t, `{"selected":["ord-1","ord-2"]}`, w.Body.String())

	w = httptest.NewRecorder()
	s.handleClearSelection(w, httptest.NewRequest(http.MethodDelete, "/selection", nil))
	assert.JSONEq(t, `{"selected":[]}`, w.Body.String())
}

func TestHandleToggleSelectMissingID(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	w := httptest.NewRecorder()
	s.handleToggleSelect(w, httptest.NewRequest(http.MethodPost, "/selection/toggle", bytes.NewReader([]byte(`{}`))))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleBulkApply(t *testing.T) {
	t.Run("applies the action over the selection", func(t *testing.T) {
		s, fetcher, _, _ := newTestServer(t)
		s.console.ToggleSelect("ord-1")

		fetcher.EXPECT().
			MutateRecord(gomock.Any(), records.DomainOrder, "ord-1", selection.ActionApprove, selection.Params{}).
			Return(selection.MutationResult{Success: true}, nil)
		fetcher.EXPECT().
			FetchRecords(gomock.Any(), records.DomainOrder, gomock.Any()).
			Return(nil, 0, nil)

		w := httptest.NewRecorder()
		s.handleBulkApply(w, httptest.NewRequest(http.MethodPost, "/bulk", bytes.NewReader([]byte(`{"action":"approve"}`))))

		require.Equal(t, http.StatusOK, w.Code)

		var result selection.BulkResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, 1, result.Succeeded)
		assert.Equal(t, 0, result.Failed)
	})

	tests := []struct {
		name string
		body string
	}{
		{"empty selection", `{"action":"approve"}`},
		{"unknown action", `{"action":"explode"}`},
		{"reassign without vendor", `{"action":"reassign"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _, _ := newTestServer(t)
			if tc.name != "empty selection" {
				s.console.ToggleSelect("ord-1")
			}

			w := httptest.NewRecorder()
			s.handleBulkApply(w, httptest.NewRequest(http.MethodPost, "/bulk", bytes.NewReader([]byte(tc.body))))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleVerify(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	t.Run("without a pending verification", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.handleVerify(w, identityRequest(http.MethodPost, "/privacy/user-1/verify", "user-1",
			[]byte(`{"code":"1234","otp":"111222","password":"pw"}`)))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.handleRequestReveal(w, identityRequest(http.MethodPost, "/privacy/user-1/reveal", "user-1",
			[]byte(`{"field":"email"}`)))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		s.handleVerify(w, identityRequest(http.MethodPost, "/privacy/user-1/verify", "user-1",
			[]byte(`{"code":"12","otp":"111222","password":"pw"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid credentials authenticate", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.handleVerify(w, identityRequest(http.MethodPost, "/privacy/user-1/verify", "user-1",
			[]byte(`{"code":"1234","otp":"111222","password":"pw"}`)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"state":"authenticated"}`, w.Body.String())
	})

	t.Run("all fields visible after authentication", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/privacy/user-1/fields/phone", nil)
		req = mux.SetURLVars(req, map[string]string{"identity": "user-1", "field": "phone"})

		w := httptest.NewRecorder()
		s.handleFieldVisibility(w, req)
		assert.JSONEq(t, `{"visible":true}`, w.Body.String())
	})
}

func TestHandleCancelVerification(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	w := httptest.NewRecorder()
	s.handleRequestReveal(w, identityRequest(http.MethodPost, "/privacy/user-1/reveal", "user-1",
		[]byte(`{"field":"phone"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"pending_verification"}`, w.Body.String())

	w = httptest.NewRecorder()
	s.handleCancelVerification(w, identityRequest(http.MethodPost, "/privacy/user-1/cancel", "user-1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"locked"}`, w.Body.String())
}

func TestHandleToggleFieldUnknownField(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/privacy/user-1/fields/ssn", nil)
	req = mux.SetURLVars(req, map[string]string{"identity": "user-1", "field": "ssn"})

	w := httptest.NewRecorder()
	s.handleToggleField(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBasicAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		setAuth    bool
		username   string
		password   string
		valid      bool
		validErr   error
		wantStatus int
	}{
		{"missing credentials", false, "", "", false, nil, http.StatusUnauthorized},
		{"rejected credentials", true, "ops", "wrong", false, nil, http.StatusUnauthorized},
		{"validator failure", true, "ops", "pw", false, errors.New("connection refused"), http.StatusUnauthorized},
		{"accepted credentials", true, "ops", "pw", true, nil, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _, operators, _ := newTestServer(t)
			if tc.setAuth {
				operators.EXPECT().
					ValidateOperator(gomock.Any(), tc.username, tc.password).
					Return(tc.valid, tc.validErr)
			}

			router := s.setupRoutes()
			req := httptest.NewRequest(http.MethodGet, "/records/order", nil)
			if tc.setAuth {
				req.SetBasicAuth(tc.username, tc.password)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestAuditMiddlewareRecordsExchange(t *testing.T) {
	s, _, operators, store := newTestServer(t)
	store.ReplaceAll(records.DomainOrder, []records.Record{
		records.Order{ID: "ord-1", Status: "pending"},
	})
	operators.EXPECT().
		ValidateOperator(gomock.Any(), "ops", "pw").
		Return(true, nil).
		Times(2)

	router := s.setupRoutes()

	t.Run("successful request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/records/order/criteria",
			bytes.NewReader([]byte(`{"equals":{"status":"pending"}}`)))
		req.SetBasicAuth("ops", "pw")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		select {
		case entry := <-s.auditManager.inputChan:
			assert.NotEmpty(t, entry.EventID)
			assert.Equal(t, "ops", entry.Operator)
			assert.Equal(t, http.MethodPut, entry.Method)
			assert.Equal(t, "/records/order/criteria", entry.Path)
			assert.Equal(t, "order", entry.Domain)
			assert.Equal(t, http.StatusOK, entry.StatusCode)
			assert.JSONEq(t, `{"equals":{"status":"pending"}}`, entry.Request)
			assert.Contains(t, entry.Response, "ord-1")
		default:
			t.Fatal("no audit entry recorded")
		}
	})

	t.Run("error status is captured", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/records/warehouse", nil)
		req.SetBasicAuth("ops", "pw")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)

		select {
		case entry := <-s.auditManager.inputChan:
			assert.Equal(t, http.StatusBadRequest, entry.StatusCode)
			assert.JSONEq(t, `{"error":"Unknown domain"}`, entry.Response)
		default:
			t.Fatal("no audit entry recorded")
		}
	})
}

func TestMetricsEndpointSkipsAuth(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	router := s.setupRoutes()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
