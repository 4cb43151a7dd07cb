package query

import (
	"slices"

	"github.com/go-playground/validator/v10"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
)

var validate = validator.New()

type sortParams struct {
	Key       string `validate:"required"`
	Direction string `validate:"oneof=asc desc"`
}

// Sort orders documents numerically by the top-level sortKey, sortValue being
// asc or desc. Values that are not numeric keep their relative order and go last.
func Sort() Stage {
	return func(qc Context, req Request) (Context, error) {
		params := sortParams{
			Key:       req.QueryValue("sortKey"),
			Direction: req.QueryValue("sortValue"),
		}
		if params.Key == "" || params.Direction == "" {
			return qc, nil
		}
		if err := validate.Struct(params); err != nil {
			return Context{}, ValidationError("invalid sortValue %q: must be asc or desc", params.Direction)
		}

		sorted := slices.Clone(qc.Documents)
		desc := params.Direction == "desc"
		slices.SortStableFunc(sorted, func(a, b document.Document) int {
			left, leftOK := toDecimal(a[params.Key])
			right, rightOK := toDecimal(b[params.Key])
			switch {
			case !leftOK && !rightOK:
				return 0
			case !leftOK:
				return 1
			case !rightOK:
				return -1
			case desc:
				return right.Cmp(left)
			default:
				return left.Cmp(right)
			}
		})
		return qc.withDocuments(sorted), nil
	}
}
