package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdocuments "github.com/Youssif-Salama/big-data-be/internal/application/service/documents"
	"github.com/Youssif-Salama/big-data-be/internal/config"
	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
	infracache "github.com/Youssif-Salama/big-data-be/internal/infrastructure/cache"
	infradocuments "github.com/Youssif-Salama/big-data-be/internal/infrastructure/documents"
)

type envelope struct {
	OK      bool               `json:"ok"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Meta    *document.PageMeta `json:"meta"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestHandler(t *testing.T, dir string) (*Handler, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client, err := infracache.NewRedisClient(config.RedisConfig{Addr: server.Addr()})
	require.NoError(t, err)
	resultCache := infracache.NewRedisCache(client)
	t.Cleanup(func() { _ = resultCache.Close() })

	svc := appdocuments.NewService(infradocuments.NewFileRepository(dir))
	return NewHandler(svc, resultCache, time.Hour, 200*time.Millisecond, 5*time.Second, quietLogger()), server
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (envelope, []map[string]any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var data []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return env, data
}

func dataIDs(data []map[string]any) []string {
	out := make([]string, 0, len(data))
	for _, item := range data {
		id, _ := item["_id"].(string)
		out = append(out, id)
	}
	return out
}

func Test_GetCandleByID(t *testing.T) {
	h, _ := newTestHandler(t, "testdata")

	rec := serve(t, h, http.MethodGet, "/api/v1/candel/EOD%7CPL.COMM%7C1655762399")
	require.Equal(t, http.StatusOK, rec.Code)

	env, data := decodeEnvelope(t, rec)
	assert.True(t, env.OK)
	require.Len(t, data, 1)
	assert.Equal(t, "EOD|PL.COMM|1655762399", data[0]["_id"])
	assert.Nil(t, env.Meta)
}

func Test_ListExchanges_Pagination(t *testing.T) {
	h, _ := newTestHandler(t, "testdata")

	for _, path := range []string{"/api/v1/exchange", "/api/v1/exchange/all"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(t, h, http.MethodGet, path+"?page=2&limit=5")
			require.Equal(t, http.StatusOK, rec.Code)

			env, data := decodeEnvelope(t, rec)
			assert.Len(t, data, 5)
			assert.Equal(t, []string{"BMW.XETRA", "VOD.LSE", "BP.LSE", "PL.COMM", "GC.COMM"}, dataIDs(data))
			require.NotNil(t, env.Meta)
			assert.Equal(t, document.PageMeta{
				TotalData:  12,
				TotalPages: 3,
				HasNext:    true,
				HasPrev:    true,
				Page:       2,
				Limit:      5,
			}, *env.Meta)
		})
	}
}

func Test_ListMetadata_Selectors(t *testing.T) {
	h, _ := newTestHandler(t, "testdata")

	rec := serve(t, h, http.MethodGet, "/api/v1/meta-data?selectors="+url.QueryEscape(`["_source.symbol"]`))
	require.Equal(t, http.StatusOK, rec.Code)

	_, data := decodeEnvelope(t, rec)
	require.Len(t, data, 3)
	for _, item := range data {
		source, ok := item["_source"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, item, 1)
		assert.Len(t, source, 1)
		assert.NotEmpty(t, source["symbol"])
	}
}

func Test_MalformedSelectors(t *testing.T) {
	h, _ := newTestHandler(t, "testdata")

	rec := serve(t, h, http.MethodGet, "/api/v1/candel?selectors=notjson")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid selectors format", body.Message)
}

func Test_Routes(t *testing.T) {
	h, _ := newTestHandler(t, "testdata")

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantIDs    []string
		wantMsg    string
	}{
		{
			name:       "Candles of an exchange",
			target:     "/api/v1/exchange/PL.COMM/candels",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"EOD|PL.COMM|1655762399", "EOD|PL.COMM|1655848799"},
		},
		{
			name:       "Candles in a date range",
			target:     "/api/v1/exchange/PL.COMM/candels?startDate=2022-06-21&endDate=2022-06-22",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"EOD|PL.COMM|1655848799"},
		},
		{
			name:       "Candle of an exchange by id",
			target:     "/api/v1/exchange/GC.COMM/candels/EOD%7CGC.COMM%7C1655762399",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"EOD|GC.COMM|1655762399"},
		},
		{
			name:       "Candle search",
			target:     "/api/v1/candel/all?search=gc",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"EOD|GC.COMM|1655762399"},
		},
		{
			name:       "Exchange by symbol",
			target:     "/api/v1/exchange/SAP.XETRA",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"SAP.XETRA"},
		},
		{
			name:       "Exchange search ignores case",
			target:     "/api/v1/exchange?search=xetra",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"SAP.XETRA", "BMW.XETRA"},
		},
		{
			name:       "Exchange sort",
			target:     "/api/v1/exchange/all?sortKey=_score&sortValue=asc&limit=3",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"SHOP.TO", "7203.TSE", "GC.COMM"},
		},
		{
			name:       "Metadata of an exchange",
			target:     "/api/v1/exchange/AAPL.US/metas",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"AAPL.US|meta"},
		},
		{
			name:       "Metadata by id",
			target:     "/api/v1/meta-data/GC.COMM%7Cmeta",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"GC.COMM|meta"},
		},
		{
			name:       "Metadata search",
			target:     "/api/v1/exchange/PL.COMM/metas/all?search=commodity",
			wantStatus: http.StatusNotFound,
			wantMsg:    "no metadata found",
		},
		{
			name:       "Unknown exchange",
			target:     "/api/v1/exchange/NOPE.US",
			wantStatus: http.StatusNotFound,
			wantMsg:    "exchange not found",
		},
		{
			name:       "Unknown candle",
			target:     "/api/v1/candel/nope",
			wantStatus: http.StatusNotFound,
			wantMsg:    "candle not found",
		},
		{
			name:       "Empty page",
			target:     "/api/v1/candel?page=5",
			wantStatus: http.StatusNotFound,
			wantMsg:    "no candles found",
		},
		{
			name:       "Invalid sort direction",
			target:     "/api/v1/exchange?sortKey=_score&sortValue=up",
			wantStatus: http.StatusBadRequest,
			wantMsg:    `invalid sortValue "up": must be asc or desc`,
		},
		{
			name:       "Invalid page",
			target:     "/api/v1/meta-data?page=0",
			wantStatus: http.StatusBadRequest,
			wantMsg:    `page must be a positive integer, got "0"`,
		},
		{
			name:       "Invalid date",
			target:     "/api/v1/candel?startDate=soon&endDate=later",
			wantStatus: http.StatusBadRequest,
			wantMsg:    `invalid startDate "soon"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h, http.MethodGet, tt.target)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantMsg != "" {
				var body errorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMsg, body.Message)
				return
			}
			_, data := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantIDs, dataIDs(data))
		})
	}
}

func Test_ResultCache(t *testing.T) {
	h, server := newTestHandler(t, "testdata")
	target := "/api/v1/exchange?search=us&sortKey=_score&sortValue=desc"

	first := serve(t, h, http.MethodGet, target)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(cacheStatusHeader))
	firstEnv, _ := decodeEnvelope(t, first)
	assert.Equal(t, "success", firstEnv.Message)

	cached, err := server.Get(target)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstEnv.Data), cached)
	assert.Equal(t, time.Hour, server.TTL(target))

	second := serve(t, h, http.MethodGet, target)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get(cacheStatusHeader))
	secondEnv, _ := decodeEnvelope(t, second)
	assert.Equal(t, "Fetch cached data successfully", secondEnv.Message)
	assert.Equal(t, []byte(firstEnv.Data), []byte(secondEnv.Data))
	assert.Equal(t, firstEnv.Meta, secondEnv.Meta)

	server.FastForward(time.Hour + time.Second)
	third := serve(t, h, http.MethodGet, target)
	assert.Equal(t, "MISS", third.Header().Get(cacheStatusHeader))
}

func Test_ResultCache_KeyIsVerbatimURI(t *testing.T) {
	h, server := newTestHandler(t, "testdata")

	serve(t, h, http.MethodGet, "/api/v1/exchange?limit=2&page=1")
	serve(t, h, http.MethodGet, "/api/v1/exchange?page=1&limit=2")

	assert.True(t, server.Exists("/api/v1/exchange?limit=2&page=1"))
	assert.True(t, server.Exists("/api/v1/exchange?page=1&limit=2"))
}

func Test_CacheUnavailable(t *testing.T) {
	h, server := newTestHandler(t, "testdata")
	server.Close()

	rec := serve(t, h, http.MethodGet, "/api/v1/exchange/AAPL.US")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get(cacheStatusHeader))
}

func Test_WithoutCache(t *testing.T) {
	svc := appdocuments.NewService(infradocuments.NewFileRepository("testdata"))
	h := NewHandler(svc, nil, 0, 0, 0, quietLogger())

	rec := serve(t, h, http.MethodGet, "/api/v1/exchange/AAPL.US")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = serve(t, h, http.MethodGet, "/api/v1/exchange/AAPL.US")
	assert.Equal(t, "MISS", rec.Header().Get(cacheStatusHeader))
}

func Test_LoadFailure(t *testing.T) {
	h, _ := newTestHandler(t, t.TempDir())

	rec := serve(t, h, http.MethodGet, "/api/v1/candel")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "failed to fetch from candle collection", body.Message)
}

func Test_NotFound(t *testing.T) {
	h, _ := newTestHandler(t, "testdata")

	tests := []struct {
		method      string
		target      string
		wantMessage string
	}{
		{method: http.MethodGet, target: "/api/v2/candel?x=1", wantMessage: "The requested resource was not found"},
		{method: http.MethodPost, target: "/api/v1/candel", wantMessage: "The endpoint does not accept POST requests"},
		{method: http.MethodDelete, target: "/api/v1/exchange/AAPL.US", wantMessage: "The endpoint does not accept DELETE requests"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := serve(t, h, tt.method, tt.target)
			require.Equal(t, http.StatusNotFound, rec.Code)

			var body notFoundResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.OK)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.method, body.Details.Method)
			assert.Equal(t, tt.target, body.Details.Endpoint)
		})
	}
}

func Test_HealthAndRequestID(t *testing.T) {
	h, _ := newTestHandler(t, "testdata")

	rec := serve(t, h, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))
}
