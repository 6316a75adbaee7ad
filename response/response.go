// Package response models the engine's search reply: hit metadata,
// per-document sources, suggesters and aggregation results.
package response

import (
	"encoding/json"

	"github.com/grainsearch/grain-dsl/pkg/errors"
)

// Total describes how many documents matched and whether that count is exact.
type Total struct {
	Value    int64  `json:"value"`
	Relation string `json:"relation"`
}

// Exact reports whether the total is an exact count rather than a lower bound.
func (t Total) Exact() bool { return t.Relation == "eq" }

// Hit is a single matched document. Source is kept raw so callers can decode
// into their own types.
type Hit struct {
	Index     string              `json:"_index"`
	ID        string              `json:"_id"`
	Score     *float64            `json:"_score"`
	Routing   string              `json:"_routing,omitempty"`
	Source    json.RawMessage     `json:"_source"`
	Fields    map[string]any      `json:"fields,omitempty"`
	Highlight map[string][]string `json:"highlight,omitempty"`
	Sort      []any               `json:"sort,omitempty"`
}

// Decode unmarshals the hit's source into v.
func (h *Hit) Decode(v any) error {
	if len(h.Source) == 0 {
		return errors.ParseError("hit has no source", nil)
	}
	if err := json.Unmarshal(h.Source, v); err != nil {
		return errors.ParseError("failed to decode hit source", err)
	}
	return nil
}

// HitsMetadata carries the matched documents and match statistics.
type HitsMetadata struct {
	Total    Total    `json:"total"`
	MaxScore *float64 `json:"max_score"`
	Hits     []Hit    `json:"hits"`
}

// Shards reports how many shards served the request.
type Shards struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// SuggestOption is one candidate produced by a suggester.
type SuggestOption struct {
	Text  string   `json:"text"`
	Score *float64 `json:"score,omitempty"`
	Freq  int      `json:"freq,omitempty"`
}

// SuggestEntry groups the options generated for one analyzed token.
type SuggestEntry struct {
	Text    string          `json:"text"`
	Offset  int             `json:"offset"`
	Length  int             `json:"length"`
	Options []SuggestOption `json:"options"`
}

// Response is a decoded search reply.
type Response struct {
	Took         int64                      `json:"took"`
	TimedOut     bool                       `json:"timed_out"`
	Shards       Shards                     `json:"_shards"`
	Hits         HitsMetadata               `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations,omitempty"`
	Suggest      map[string][]SuggestEntry  `json:"suggest,omitempty"`
	ScrollID     string                     `json:"_scroll_id,omitempty"`
}

// Parse decodes a raw search reply body.
func Parse(body []byte) (*Response, error) {
	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, errors.ParseError("failed to parse search response", err)
	}
	return &r, nil
}

// Success reports whether the request completed without timing out or
// failing shards.
func (r *Response) Success() bool {
	return !r.TimedOut && r.Shards.Failed == 0
}

// TotalHits returns the (possibly lower-bound) match count.
func (r *Response) TotalHits() int64 { return r.Hits.Total.Value }

// Aggregation decodes the named aggregation result into v.
func (r *Response) Aggregation(name string, v any) error {
	raw, ok := r.Aggregations[name]
	if !ok {
		return errors.NotFoundError("aggregation " + name + " not present in response")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.ParseError("failed to decode aggregation "+name, err)
	}
	return nil
}

// BucketAggregation is the common shape of bucketing aggregation results.
type BucketAggregation struct {
	DocCountErrorUpperBound int64    `json:"doc_count_error_upper_bound,omitempty"`
	SumOtherDocCount        int64    `json:"sum_other_doc_count,omitempty"`
	Buckets                 []Bucket `json:"buckets"`
}

// Bucket is a single aggregation bucket.
type Bucket struct {
	Key         any    `json:"key"`
	KeyAsString string `json:"key_as_string,omitempty"`
	DocCount    int64  `json:"doc_count"`
}

// ValueAggregation is the common shape of single-value metric results.
type ValueAggregation struct {
	Value         *float64 `json:"value"`
	ValueAsString string   `json:"value_as_string,omitempty"`
}

// StatsAggregation is the shape of the stats metric result.
type StatsAggregation struct {
	Count int64    `json:"count"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Avg   *float64 `json:"avg"`
	Sum   float64  `json:"sum"`
}
