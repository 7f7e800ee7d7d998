package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
	"github.com/fatali-fataliyev/household_ledger/internal/auth"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
	"github.com/fatali-fataliyev/household_ledger/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassphrase = "kitchen table"

type testServer struct {
	handler http.Handler
	store   *storage.SQLStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	store, err := storage.OpenSQLite(ctx, ":memory:", time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	hash, err := auth.HashPassword(testPassphrase)
	require.NoError(t, err)

	tracker := ledger.NewTracker(store, nil, time.UTC)
	gate := auth.NewGate(store, tracker, hash, time.Hour)
	api, err := NewApi(tracker, gate, store)
	require.NoError(t, err)

	return &testServer{handler: TraceMiddleware(api.Routes()), store: store}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	rec := s.do(t, "POST", "/api/login", "", `{"passphrase": "`+testPassphrase+`", "name": "Anna"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Positive(t, resp.OwnerID)
	return resp.Token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) appErrors.ErrorResponse {
	t.Helper()
	var resp appErrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, "GET", "/api/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var me UserItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "Anna", me.Name)
	assert.Equal(t, auth.DEFAULT_OPEN_ID, me.OpenID)

	rec = s.do(t, "POST", "/api/login", "", `{"passphrase": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, appErrors.ErrAuth, decodeError(t, rec).Code)
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, "GET", "/api/logout", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "GET", "/api/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequiresToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/transactions", "/api/categories", "/api/budgets", "/api/savings", "/api/export"} {
		rec := s.do(t, "GET", path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := s.do(t, "GET", "/api/transactions", "not-a-session", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTransactions(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, "POST", "/api/transactions", token,
		`{"categoryId": 11, "amount": "12.50", "type": "expense", "person": "Anna", "transactionDate": "2024-03-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created CreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = s.do(t, "POST", "/api/transactions", token,
		`{"categoryId": 1, "amount": 2000, "type": "income", "transactionDate": "2024-03-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, "GET", "/api/transactions?start_date=2024-03-05&end_date=2024-03-10", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []TransactionItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)
	assert.Equal(t, int64(1250), items[0].Amount)
	assert.Equal(t, "expense", items[0].Type)

	rec = s.do(t, "PATCH", "/api/transactions/"+itoa(created.ID), token, `{"amount": "20"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, "GET", "/api/stats/balance", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var balance BalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &balance))
	assert.Equal(t, BalanceResponse{Income: 200000, Expense: 2000, Balance: 198000}, balance)

	rec = s.do(t, "DELETE", "/api/transactions/"+itoa(created.ID), token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "GET", "/api/transactions/"+itoa(created.ID), token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchemaViolations(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "not json", body: `{"amount": `},
		{name: "missing amount", body: `{"categoryId": 11, "type": "expense", "transactionDate": "2024-03-10"}`},
		{name: "unknown kind", body: `{"categoryId": 11, "amount": 1, "type": "gift", "transactionDate": "2024-03-10"}`},
		{name: "unknown field", body: `{"categoryId": 11, "amount": 1, "type": "expense", "transactionDate": "2024-03-10", "userId": 2}`},
		{name: "amount text", body: `{"categoryId": 11, "amount": "ten", "type": "expense", "transactionDate": "2024-03-10"}`},
		{name: "bad date", body: `{"categoryId": 11, "amount": 1, "type": "expense", "transactionDate": "10.03.2024"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, "POST", "/api/transactions", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, appErrors.ErrInvalidInput, decodeError(t, rec).Code)
		})
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, "POST", "/api/transactions", token,
		`{"categoryId": 11, "amount": 5, "type": "expense", "transactionDate": "2024-03-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, "DELETE", "/api/categories/11", token, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, appErrors.ErrConflict, decodeError(t, rec).Code)

	rec = s.do(t, "DELETE", "/api/categories/abc", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBudgetStatus(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, "POST", "/api/budgets", token, `{"categoryId": 11, "amount": "100", "month": "2024-03"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(t, "POST", "/api/transactions", token,
		`{"categoryId": 11, "amount": "85", "type": "expense", "transactionDate": "2024-03-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, "GET", "/api/budgets/status?month=2024-03", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var statuses []BudgetStatusItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
	require.Len(t, statuses, 1)
	assert.Equal(t, int64(8500), statuses[0].Spent)
	assert.True(t, statuses[0].IsNearLimit)
	assert.False(t, statuses[0].IsOverBudget)

	rec = s.do(t, "GET", "/api/budgets/status?month=2024-13", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, "POST", "/api/savings", token, `{"amount": "300", "accountType": "bank", "month": "2024-03"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, "GET", "/api/export", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Regexp(t, `^attachment; filename="household-ledger-\d{4}-\d{2}-\d{2}\.json"$`, rec.Header().Get("Content-Disposition"))

	var export ExportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))
	require.Len(t, export.Savings, 1)
	assert.Equal(t, int64(30000), export.Savings[0].Amount)
	assert.NotNil(t, export.Transactions)
}

func TestWithoutStore(t *testing.T) {
	tracker := ledger.NewTracker(nil, nil, time.UTC)
	api, err := NewApi(tracker, nil, nil)
	require.NoError(t, err)
	handler := api.Routes()

	for _, tc := range []struct{ method, path, body string }{
		{"POST", "/api/login", `{"passphrase": "x"}`},
		{"GET", "/api/transactions", ""},
		{"GET", "/healthz", ""},
	} {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, tc.path)
	}
}

func TestReadsDegradeWhenStoreIsLost(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, "POST", "/api/transactions", token,
		`{"categoryId": 11, "amount": 5, "type": "expense", "transactionDate": "2024-03-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.NoError(t, s.store.Close())

	rec = s.do(t, "GET", "/api/stats/balance", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var balance BalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &balance))
	assert.Equal(t, BalanceResponse{}, balance)

	rec = s.do(t, "GET", "/api/transactions", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, "GET", "/api/budgets/status?month=2024-03", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, "POST", "/api/transactions", token,
		`{"categoryId": 11, "amount": 5, "type": "expense", "transactionDate": "2024-03-11"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, appErrors.ErrUnavailable, decodeError(t, rec).Code)

	// A forged token is still refused.
	rec = s.do(t, "GET", "/api/stats/balance", "forged", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, "GET", "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	require.NoError(t, s.store.Close())
	rec = s.do(t, "GET", "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTraceMiddleware(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(TRACE_HEADER, "trace-42")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", rec.Header().Get(TRACE_HEADER))

	rec = s.do(t, "GET", "/healthz", "", "")
	assert.NotEmpty(t, rec.Header().Get(TRACE_HEADER))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestTimeoutMiddleware(t *testing.T) {
	var deadline bool
	handler := TimeoutMiddleware(time.Second, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.True(t, deadline)
}
