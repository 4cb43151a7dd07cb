package query

import (
	"net/url"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
)

// Request is the part of an incoming request the stages may read.
type Request struct {
	// Params holds path parameters by name.
	Params map[string]string
	Query  url.Values
	// CacheKey is the request path plus raw query string, as supplied.
	CacheKey string
}

func (r Request) Param(name string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[name]
}

func (r Request) QueryValue(name string) string {
	if r.Query == nil {
		return ""
	}
	return r.Query.Get(name)
}

// Context is the working set threaded through a pipeline. Stages never modify the
// Context they receive; they return a new one.
type Context struct {
	Documents []document.Document
	Meta      *document.PageMeta
}

func (c Context) withDocuments(docs []document.Document) Context {
	return Context{Documents: docs, Meta: c.Meta}
}

// Stage is one composable transformation.
type Stage func(qc Context, req Request) (Context, error)
