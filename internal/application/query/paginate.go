package query

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type pageParams struct {
	Page  int `validate:"gte=1"`
	Limit int `validate:"gte=1"`
}

// Paginate slices documents to the requested page and records PageMeta computed
// over the documents it received.
func Paginate() Stage {
	return func(qc Context, req Request) (Context, error) {
		rawPage := strings.TrimSpace(req.QueryValue("page"))
		rawLimit := strings.TrimSpace(req.QueryValue("limit"))

		page, err := parseInt(rawPage, "page", DefaultPage)
		if err != nil {
			return Context{}, err
		}
		limit, err := parseInt(rawLimit, "limit", DefaultLimit)
		if err != nil {
			return Context{}, err
		}
		if err := validate.Struct(pageParams{Page: page, Limit: limit}); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Field() == "Limit" {
				return Context{}, notPositive("limit", rawLimit)
			}
			return Context{}, notPositive("page", rawPage)
		}

		total := len(qc.Documents)
		meta := document.NewPageMeta(total, page, limit)

		// (page-1)*limit may overflow for huge pages; those are past the end anyway.
		start := total
		if page-1 <= total/limit {
			start = min((page-1)*limit, total)
		}
		end := start + min(limit, total-start)
		docs := make([]document.Document, end-start)
		copy(docs, qc.Documents[start:end])

		return Context{Documents: docs, Meta: &meta}, nil
	}
}

func parseInt(raw, name string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, notPositive(name, raw)
	}
	return value, nil
}

func notPositive(name, raw string) *AppError {
	return ValidationError("%s must be a positive integer, got %q", name, raw)
}
