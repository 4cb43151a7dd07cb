// @title           Market Data Export API
// @version         1.0
// @description     Read-only query API over candle, exchange and metadata exports
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Youssif-Salama/big-data-be/internal/application/query"
	appdocuments "github.com/Youssif-Salama/big-data-be/internal/application/service/documents"
	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
	interfaces "github.com/Youssif-Salama/big-data-be/internal/domain/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	basePath              = "/api/v1"
	defaultRequestTimeout = 10 * time.Second
)

var (
	candleSearchFields   = []string{"_id", "_source.symbol"}
	exchangeSearchFields = []string{"_id", "_source.symbol", "_source.name", "_source.exchange"}
	metadataSearchFields = []string{"_id", "_source.symbol", "_source.name", "_source.exchange"}
)

type pipelines struct {
	candleList   *query.Pipeline
	candleAll    *query.Pipeline
	candleByID   *query.Pipeline
	exchangeAll  *query.Pipeline
	exchangeByID *query.Pipeline
	metadataList *query.Pipeline
	metadataAll  *query.Pipeline
	metadataByID *query.Pipeline
}

type Handler struct {
	router         *gin.Engine
	documents      *appdocuments.Service
	cache          interfaces.ResultCache
	cacheTTL       time.Duration
	cacheTimeout   time.Duration
	requestTimeout time.Duration
	logger         *logrus.Logger
	pipelines      pipelines
}

var _ http.Handler = (*Handler)(nil)

// NewHandler wires every route. cache may be nil, which disables result caching.
func NewHandler(docs *appdocuments.Service, cache interfaces.ResultCache, cacheTTL, cacheTimeout, requestTimeout time.Duration, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(requestLogger(logger), gin.Recovery())

	h := &Handler{
		router:         router,
		documents:      docs,
		cache:          cache,
		cacheTTL:       cacheTTL,
		cacheTimeout:   cacheTimeout,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
	h.buildPipelines()
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) pipeline(collection document.Collection, notFound string) *query.Pipeline {
	return query.NewPipeline(collection, h.documents, h.cache, h.cacheTTL, h.logger).
		CacheTimeout(h.cacheTimeout).
		Respond(
			query.Outcome{Status: http.StatusOK, Message: "success"},
			query.Outcome{Status: http.StatusNotFound, Message: notFound},
		)
}

func (h *Handler) buildPipelines() {
	h.pipelines = pipelines{
		candleList: h.pipeline(document.CandleCollection, "no candles found").
			Then(query.FilterSymbol("symbol"), query.DateRange(), query.Paginate(), query.Select()).
			CheckCache(),
		candleAll: h.pipeline(document.CandleCollection, "no candles found").
			Then(query.Search(candleSearchFields...), query.Sort(), query.Paginate(), query.Select()).
			CheckCache(),
		candleByID: h.pipeline(document.CandleCollection, "candle not found").
			Then(query.FilterExact("_id", "id"), query.Select()).
			CheckCache(),

		exchangeAll: h.pipeline(document.ExchangeCollection, "no exchanges found").
			Then(query.Search(exchangeSearchFields...), query.Sort(), query.Paginate(), query.Select()).
			CheckCache(),
		exchangeByID: h.pipeline(document.ExchangeCollection, "exchange not found").
			Then(query.FilterExact("_id", "symbol"), query.Select()).
			CheckCache(),

		metadataList: h.pipeline(document.MetadataCollection, "no metadata found").
			Then(query.FilterSymbol("symbol")).
			CheckCache().
			Then(query.Paginate(), query.Select()),
		metadataAll: h.pipeline(document.MetadataCollection, "no metadata found").
			Then(query.Search(metadataSearchFields...), query.Sort(), query.Paginate(), query.Select()).
			CheckCache(),
		metadataByID: h.pipeline(document.MetadataCollection, "metadata not found").
			Then(query.FilterExact("_id", "id"), query.Select()).
			CheckCache(),
	}
}

func (h *Handler) registerRoutes() {
	h.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	h.router.GET("/health", h.health)

	v1 := h.router.Group(basePath)

	h.registerCandles(v1.Group("/candel"))
	h.registerMetadata(v1.Group("/meta-data"))

	exchanges := v1.Group("/exchange")
	{
		exchanges.GET("", h.listExchanges)
		exchanges.GET("/all", h.listExchanges)
		exchanges.GET("/:symbol", h.getExchange)

		h.registerMetadata(exchanges.Group("/:symbol/metas"))
		h.registerCandles(exchanges.Group("/:symbol/candels"))
	}

	h.router.NoRoute(notFound)
	h.router.NoMethod(notFound)
}

func (h *Handler) registerCandles(g *gin.RouterGroup) {
	g.GET("", h.listCandles)
	g.GET("/all", h.listAllCandles)
	g.GET("/:id", h.getCandle)
}

func (h *Handler) registerMetadata(g *gin.RouterGroup) {
	g.GET("", h.listMetadata)
	g.GET("/all", h.listAllMetadata)
	g.GET("/:id", h.getMetadata)
}

// Candles handlers

// listCandles returns candles, optionally of one exchange symbol and date range
// @Summary      List candles
// @Description  Candles filtered by exchange symbol and [startDate, endDate), paginated
// @Tags         candles
// @Produce      json
// @Param        symbol     path      string  false  "Exchange symbol (nested route only)"
// @Param        startDate  query     string  false  "Inclusive lower bound"
// @Param        endDate    query     string  false  "Exclusive upper bound"
// @Param        page       query     int     false  "Page number"  default(1)
// @Param        limit      query     int     false  "Page size"    default(10)
// @Param        selectors  query     string  false  "JSON array of dotted field paths"
// @Success      200        {object}  query.Envelope
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /candel [get]
func (h *Handler) listCandles(c *gin.Context) {
	h.run(c, h.pipelines.candleList)
}

// listAllCandles searches, sorts and paginates every candle
// @Summary      Search candles
// @Description  Free-text search over candle ids and symbols with numeric sort
// @Tags         candles
// @Produce      json
// @Param        search     query     string  false  "Case-insensitive substring"
// @Param        sortKey    query     string  false  "Top-level field to sort by"
// @Param        sortValue  query     string  false  "asc or desc"
// @Param        page       query     int     false  "Page number"  default(1)
// @Param        limit      query     int     false  "Page size"    default(10)
// @Param        selectors  query     string  false  "JSON array of dotted field paths"
// @Success      200        {object}  query.Envelope
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /candel/all [get]
func (h *Handler) listAllCandles(c *gin.Context) {
	h.run(c, h.pipelines.candleAll)
}

// getCandle returns the candle with the given id
// @Summary      Get candle
// @Tags         candles
// @Produce      json
// @Param        id         path      string  true   "Candle id"
// @Param        selectors  query     string  false  "JSON array of dotted field paths"
// @Success      200        {object}  query.Envelope
// @Failure      404        {object}  errorResponse
// @Router       /candel/{id} [get]
func (h *Handler) getCandle(c *gin.Context) {
	h.run(c, h.pipelines.candleByID)
}

// Exchanges handlers

// listExchanges searches, sorts and paginates exchanges
// @Summary      List exchanges
// @Tags         exchanges
// @Produce      json
// @Param        search     query     string  false  "Case-insensitive substring"
// @Param        sortKey    query     string  false  "Top-level field to sort by"
// @Param        sortValue  query     string  false  "asc or desc"
// @Param        page       query     int     false  "Page number"  default(1)
// @Param        limit      query     int     false  "Page size"    default(10)
// @Param        selectors  query     string  false  "JSON array of dotted field paths"
// @Success      200        {object}  query.Envelope
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /exchange [get]
func (h *Handler) listExchanges(c *gin.Context) {
	h.run(c, h.pipelines.exchangeAll)
}

// getExchange returns the exchange with the given id
// @Summary      Get exchange
// @Tags         exchanges
// @Produce      json
// @Param        symbol     path      string  true   "Exchange id"
// @Param        selectors  query     string  false  "JSON array of dotted field paths"
// @Success      200        {object}  query.Envelope
// @Failure      404        {object}  errorResponse
// @Router       /exchange/{symbol} [get]
func (h *Handler) getExchange(c *gin.Context) {
	h.run(c, h.pipelines.exchangeByID)
}

// Metadata handlers

// listMetadata returns metadata, optionally of one exchange symbol
// @Summary      List metadata
// @Tags         metadata
// @Produce      json
// @Param        page       query     int     false  "Page number"  default(1)
// @Param        limit      query     int     false  "Page size"    default(10)
// @Param        selectors  query     string  false  "JSON array of dotted field paths"
// @Success      200        {object}  query.Envelope
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /meta-data [get]
func (h *Handler) listMetadata(c *gin.Context) {
	h.run(c, h.pipelines.metadataList)
}

// listAllMetadata searches, sorts and paginates metadata
// @Summary      Search metadata
// @Tags         metadata
// @Produce      json
// @Param        search     query     string  false  "Case-insensitive substring"
// @Param        sortKey    query     string  false  "Top-level field to sort by"
// @Param        sortValue  query     string  false  "asc or desc"
// @Param        page       query     int     false  "Page number"  default(1)
// @Param        limit      query     int     false  "Page size"    default(10)
// @Success      200        {object}  query.Envelope
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /meta-data/all [get]
func (h *Handler) listAllMetadata(c *gin.Context) {
	h.run(c, h.pipelines.metadataAll)
}

// getMetadata returns the metadata document with the given id
// @Summary      Get metadata
// @Tags         metadata
// @Produce      json
// @Param        id         path      string  true   "Metadata id"
// @Param        selectors  query     string  false  "JSON array of dotted field paths"
// @Success      200        {object}  query.Envelope
// @Failure      404        {object}  errorResponse
// @Router       /meta-data/{id} [get]
func (h *Handler) getMetadata(c *gin.Context) {
	h.run(c, h.pipelines.metadataByID)
}

// health reports liveness
// @Summary  Health check
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Router   /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": "up"})
}

func (h *Handler) run(c *gin.Context, p *query.Pipeline) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	result, err := p.Run(ctx, buildRequest(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if result.FromCache {
		c.Header(cacheStatusHeader, "HIT")
	} else {
		c.Header(cacheStatusHeader, "MISS")
	}
	c.JSON(result.Status, result.Envelope)
}

func buildRequest(c *gin.Context) query.Request {
	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}
	return query.Request{
		Params:   params,
		Query:    c.Request.URL.Query(),
		CacheKey: cacheKey(c),
	}
}

// cacheKey is the request path and query string exactly as received.
func cacheKey(c *gin.Context) string {
	return c.Request.URL.RequestURI()
}
