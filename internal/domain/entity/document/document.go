package document

import (
	"fmt"
	"math"
)

// Collection names one export file / document set.
type Collection string

const (
	CandleCollection   Collection = "candle"
	ExchangeCollection Collection = "exchange"
	MetadataCollection Collection = "metadata"
)

func (c Collection) String() string {
	return string(c)
}

func (c Collection) IsValid() bool {
	switch c {
	case CandleCollection, ExchangeCollection, MetadataCollection:
		return true
	default:
		return false
	}
}

// Collections lists every collection the service can serve.
func Collections() []Collection {
	return []Collection{CandleCollection, ExchangeCollection, MetadataCollection}
}

func ParseCollection(s string) (Collection, error) {
	c := Collection(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid collection: %s", s)
	}
	return c, nil
}

const (
	IDField     = "_id"
	SourceField = "_source"
)

// Document is a single hit of a search-engine bulk export. Keys mirror the export
// (`_id`, `_source`, ...); numbers are kept as json.Number.
type Document map[string]any

func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

func (d Document) Source() map[string]any {
	src, _ := d[SourceField].(map[string]any)
	return src
}

// PageMeta describes the page a paginated result belongs to.
type PageMeta struct {
	TotalData  int  `json:"totalData"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
}

// NewPageMeta computes the meta of page/limit over total documents. limit must be positive.
func NewPageMeta(total, page, limit int) PageMeta {
	pages := int(math.Ceil(float64(total) / float64(limit)))
	return PageMeta{
		TotalData:  total,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
		Page:       page,
		Limit:      limit,
	}
}
