package query

import (
	"strings"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
)

const symbolPath = "_source.symbol"
const dateTimePath = "_source.dateTime"

// FilterExact keeps documents whose field equals the path parameter param.
func FilterExact(field, param string) Stage {
	return func(qc Context, req Request) (Context, error) {
		if field == "" || param == "" {
			return Context{}, ValidationError("missing field name or parameter name")
		}
		value := req.Param(param)
		return qc.withDocuments(keep(qc.Documents, func(doc document.Document) bool {
			v, ok := Lookup(doc, field)
			return ok && looseEqual(v, value)
		})), nil
	}
}

// FilterSymbol keeps documents whose _source.symbol equals the path parameter
// param. It passes everything through when the parameter is absent.
func FilterSymbol(param string) Stage {
	return func(qc Context, req Request) (Context, error) {
		symbol := req.Param(param)
		if symbol == "" {
			return qc, nil
		}
		return qc.withDocuments(keep(qc.Documents, func(doc document.Document) bool {
			v, ok := Lookup(doc, symbolPath)
			return ok && looseEqual(v, symbol)
		})), nil
	}
}

// DateRange keeps documents with startDate <= _source.dateTime < endDate.
func DateRange() Stage {
	return func(qc Context, req Request) (Context, error) {
		rawStart, rawEnd := req.QueryValue("startDate"), req.QueryValue("endDate")
		if rawStart == "" || rawEnd == "" {
			return qc, nil
		}
		start, ok := parseDate(rawStart)
		if !ok {
			return Context{}, ValidationError("invalid startDate %q", rawStart)
		}
		end, ok := parseDate(rawEnd)
		if !ok {
			return Context{}, ValidationError("invalid endDate %q", rawEnd)
		}
		return qc.withDocuments(keep(qc.Documents, func(doc document.Document) bool {
			v, ok := Lookup(doc, dateTimePath)
			if !ok {
				return false
			}
			at, ok := documentTime(v)
			return ok && !at.Before(start) && at.Before(end)
		})), nil
	}
}

// Search keeps documents where any of fields holds a string containing the
// search term, ignoring case.
func Search(fields ...string) Stage {
	return func(qc Context, req Request) (Context, error) {
		term := req.QueryValue("search")
		if len(fields) == 0 || term == "" {
			return qc, nil
		}
		term = strings.ToLower(term)
		return qc.withDocuments(keep(qc.Documents, func(doc document.Document) bool {
			for _, field := range fields {
				v, ok := Lookup(doc, field)
				if !ok {
					continue
				}
				s, isString := v.(string)
				if isString && strings.Contains(strings.ToLower(s), term) {
					return true
				}
			}
			return false
		})), nil
	}
}

func keep(docs []document.Document, match func(document.Document) bool) []document.Document {
	out := make([]document.Document, 0, len(docs))
	for _, doc := range docs {
		if match(doc) {
			out = append(out, doc)
		}
	}
	return out
}
