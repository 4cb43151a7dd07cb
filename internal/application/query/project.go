package query

import (
	"encoding/json"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
)

// Select projects every document onto the dotted paths listed in the selectors
// query parameter (a JSON array), keeping their nesting. Paths that do not
// resolve are left out.
func Select() Stage {
	return func(qc Context, req Request) (Context, error) {
		raw := req.QueryValue("selectors")
		if raw == "" {
			return qc, nil
		}

		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return Context{}, ValidationError("invalid selectors format")
		}
		list, ok := parsed.([]any)
		if !ok {
			return qc, nil
		}
		selectors := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok || s == "" {
				return Context{}, ValidationError("invalid selectors format: entries must be non-empty strings")
			}
			selectors = append(selectors, s)
		}

		projected := make([]document.Document, 0, len(qc.Documents))
		for _, doc := range qc.Documents {
			projected = append(projected, project(doc, selectors))
		}
		return qc.withDocuments(projected), nil
	}
}

func project(doc document.Document, selectors []string) document.Document {
	out := make(map[string]any)
	for _, selector := range selectors {
		if value, ok := Lookup(doc, selector); ok {
			Assign(out, selector, clone(value))
		}
	}
	return out
}
