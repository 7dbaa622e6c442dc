package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/config"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/valuation"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600
	cfg.Audit.DefaultLimit = 200

	h, err := NewHandler(cfg, nil, nil, nil)
	require.NoError(t, err)
	return h
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRequestID(t *testing.T) {
	h := newTestHandler(t)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFrom(r)
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.requestID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})

	t.Run("reuses valid incoming id", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", id)

		rec := httptest.NewRecorder()
		h.requestID(next).ServeHTTP(rec, req)

		assert.Equal(t, id, seen)
		assert.Equal(t, id, rec.Header().Get("X-Request-ID"))
	})

	t.Run("replaces garbage id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "not-a-uuid")

		rec := httptest.NewRecorder()
		h.requestID(next).ServeHTTP(rec, req)

		assert.NotEqual(t, "not-a-uuid", seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})
}

func TestRecoverer(t *testing.T) {
	h := newTestHandler(t)

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	h.recoverer(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "服务器内部错误", resp.Message)
}

func TestAuth(t *testing.T) {
	h := newTestHandler(t)

	var sub int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUserID(r)
		require.NoError(t, err)
		sub = id
		h.successResponse(w, r, "ok", nil)
	})

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.auth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "用户未登录", resp.Message)
	})

	t.Run("valid token", func(t *testing.T) {
		ss, _, err := h.signToken(42, time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: ss})

		rec := httptest.NewRecorder()
		h.auth(next).ServeHTTP(rec, req)

		assert.True(t, decodeResponse(t, rec).Success)
		assert.Equal(t, int64(42), sub)
	})

	t.Run("expired token", func(t *testing.T) {
		ss, _, err := h.signToken(42, time.Now().Add(-2*time.Hour))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: ss})

		rec := httptest.NewRecorder()
		h.auth(next).ServeHTTP(rec, req)

		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "无效的令牌", resp.Message)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		ss, err := token.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: ss})

		rec := httptest.NewRecorder()
		h.auth(next).ServeHTTP(rec, req)

		assert.Equal(t, "无效的令牌", decodeResponse(t, rec).Message)
	})
}

func TestBadRequestTranslatesValidationErrors(t *testing.T) {
	h := newTestHandler(t)

	req := workLogRequest{ProviderID: 1, Date: "2025-01-01", StartTime: "08:00", EndTime: "12:00", MealsQty: 6}
	err := h.validate.Struct(req)
	require.Error(t, err)

	rec := httptest.NewRecorder()
	h.badRequest(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "MealsQty")
	assert.Contains(t, resp.Message, "5")
}

func TestValuationError(t *testing.T) {
	h := newTestHandler(t)

	_, err := valuation.ParseClockTime("25:00")
	require.ErrorIs(t, err, valuation.ErrInvalidConfiguration)

	rec := httptest.NewRecorder()
	h.valuationError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Message, "计价参数无效"))

	rec = httptest.NewRecorder()
	h.valuationError(rec, httptest.NewRequest(http.MethodPost, "/", nil), fmt.Errorf("db down"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestFilterFromQuery(t *testing.T) {
	h := newTestHandler(t)

	f, err := h.filterFromQuery(httptest.NewRequest(http.MethodGet, "/?month=2025-03&providerID=7", nil))
	require.NoError(t, err)
	assert.Equal(t, "2025-03", f.Month)
	require.NotNil(t, f.ProviderID)
	assert.Equal(t, int64(7), *f.ProviderID)

	_, err = h.filterFromQuery(httptest.NewRequest(http.MethodGet, "/?month=March", nil))
	assert.Error(t, err)
}

func TestGetAuditLogsRejectsBadLimit(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/audit?limit=-3", nil)
	req = req.WithContext(context.WithValue(req.Context(), SubCtxKey, "1"))

	rec := httptest.NewRecorder()
	h.GetAuditLogs(rec, req)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "limit 必须为正整数", resp.Message)
}
