package query

import (
	"encoding/json"
	"net/url"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
)

func candle(id, symbol, dateTime string, close json.Number) document.Document {
	return document.Document{
		"_id": id,
		"_source": map[string]any{
			"symbol":   symbol,
			"dateTime": dateTime,
			"close":    close,
		},
		"close": close,
	}
}

func ids(docs []document.Document) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.ID())
	}
	return out
}

func queryRequest(pairs ...string) Request {
	values := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		values.Set(pairs[i], pairs[i+1])
	}
	return Request{Query: values}
}

func paramRequest(name, value string) Request {
	return Request{Params: map[string]string{name: value}}
}
