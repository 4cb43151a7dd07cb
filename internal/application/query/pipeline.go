package query

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
	interfaces "github.com/Youssif-Salama/big-data-be/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	DefaultCacheTTL     = time.Hour
	DefaultCacheTimeout = time.Second
	cachedMessage       = "Fetch cached data successfully"
)

// Loader reads a whole collection into memory.
type Loader interface {
	Load(ctx context.Context, collection document.Collection) ([]document.Document, error)
}

// Outcome is the status and message a route answers with.
type Outcome struct {
	Status  int
	Message string
}

// Envelope is the success body.
type Envelope struct {
	OK      bool               `json:"ok"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Meta    *document.PageMeta `json:"meta"`
}

// Result is what a pipeline run produces.
type Result struct {
	Status   int
	Envelope Envelope
	// FromCache is set when the cache check short-circuited the run.
	FromCache bool
}

type step struct {
	stage      Stage
	cacheCheck bool
}

// Pipeline runs a fixed sequence of stages over one collection. It is built once
// per route and is safe for concurrent use afterwards.
type Pipeline struct {
	collection document.Collection
	loader     Loader
	cache      interfaces.ResultCache
	ttl        time.Duration
	timeout    time.Duration
	logger     *logrus.Entry
	steps      []step
	success    Outcome
	failure    Outcome
}

// NewPipeline creates a pipeline over collection. cache may be nil to disable caching.
func NewPipeline(collection document.Collection, loader Loader, cache interfaces.ResultCache, ttl time.Duration, logger *logrus.Logger) *Pipeline {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pipeline{
		collection: collection,
		loader:     loader,
		cache:      cache,
		ttl:        ttl,
		timeout:    DefaultCacheTimeout,
		logger: logger.WithFields(logrus.Fields{
			"component":  "query",
			"collection": collection.String(),
		}),
		success: Outcome{Status: http.StatusOK, Message: "success"},
		failure: Outcome{Status: http.StatusNotFound, Message: "failed"},
	}
}

// Then appends stages in the order they run.
func (p *Pipeline) Then(stages ...Stage) *Pipeline {
	for _, stage := range stages {
		p.steps = append(p.steps, step{stage: stage})
	}
	return p
}

// CheckCache places the cache lookup at the current position. On a hit the
// remaining stages are skipped.
func (p *Pipeline) CheckCache() *Pipeline {
	p.steps = append(p.steps, step{cacheCheck: true})
	return p
}

// CacheTimeout bounds every cache read and write, independently of the request deadline.
func (p *Pipeline) CacheTimeout(d time.Duration) *Pipeline {
	if d > 0 {
		p.timeout = d
	}
	return p
}

// Respond sets the outcomes used by the executor.
func (p *Pipeline) Respond(success, failure Outcome) *Pipeline {
	p.success = success
	p.failure = failure
	return p
}

func (p *Pipeline) Collection() document.Collection {
	return p.collection
}

// Run loads the collection, applies every step in order and executes the result.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	docs, err := p.loader.Load(ctx, p.collection)
	if err != nil {
		return nil, p.loadFailure(ctx, err)
	}

	qc := Context{Documents: docs}
	for _, s := range p.steps {
		if s.cacheCheck {
			if hit, ok := p.lookup(ctx, req.CacheKey, qc.Meta); ok {
				return hit, nil
			}
			continue
		}
		if qc, err = s.stage(qc, req); err != nil {
			return nil, err
		}
	}
	return p.execute(ctx, req.CacheKey, qc)
}

func (p *Pipeline) loadFailure(ctx context.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	if ctx.Err() != nil {
		return TimeoutError(err)
	}
	return LoadError("failed to fetch from "+p.collection.String()+" collection", err)
}

// lookup reports a usable cache hit. Cache failures count as misses.
func (p *Pipeline) lookup(ctx context.Context, key string, meta *document.PageMeta) (*Result, bool) {
	if p.cache == nil || key == "" {
		return nil, false
	}
	cacheCtx, cancel := p.cacheContext(ctx)
	defer cancel()
	cached, ok, err := p.cache.Get(cacheCtx, key)
	if err != nil {
		p.logger.WithError(CacheError("read", err)).WithField("key", key).Warn("cache read failed, continuing without cache")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	if !json.Valid(cached) {
		p.logger.WithField("key", key).Warn("ignoring malformed cache entry")
		return nil, false
	}
	return &Result{
		Status: http.StatusOK,
		Envelope: Envelope{
			OK:      true,
			Message: cachedMessage,
			Data:    json.RawMessage(cached),
			Meta:    meta,
		},
		FromCache: true,
	}, true
}

// execute turns the final context into a response. This is the only place an
// empty result becomes an error.
func (p *Pipeline) execute(ctx context.Context, key string, qc Context) (*Result, error) {
	if len(qc.Documents) == 0 {
		return nil, NotFoundError(p.failure.Status, p.failure.Message)
	}

	payload, err := json.Marshal(qc.Documents)
	if err != nil {
		return nil, &AppError{
			Kind:       KindInternal,
			Message:    "encode result",
			StatusCode: http.StatusInternalServerError,
			Err:        err,
		}
	}

	if p.cache != nil && key != "" {
		cacheCtx, cancel := p.cacheContext(ctx)
		err := p.cache.Set(cacheCtx, key, payload, p.ttl)
		cancel()
		if err != nil {
			p.logger.WithError(CacheError("write", err)).WithField("key", key).Warn("cache write failed")
		}
	}

	status := p.success.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &Result{
		Status: status,
		Envelope: Envelope{
			OK:      true,
			Message: p.success.Message,
			Data:    json.RawMessage(payload),
			Meta:    qc.Meta,
		},
	}, nil
}

func (p *Pipeline) cacheContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
}
