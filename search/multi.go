package search

import (
	"bytes"
	"encoding/json"
)

// MultiSearch accumulates an ordered batch of search requests and
// serializes them into the engine's NDJSON multi-search body.
type MultiSearch struct {
	index    []string
	searches []*Search
}

// NewMultiSearch creates an empty multi-search request. Default indices
// apply to every search that does not set its own.
func NewMultiSearch(indices ...string) *MultiSearch {
	return &MultiSearch{index: indices}
}

// Add appends a search to the batch and returns a new MultiSearch.
func (m *MultiSearch) Add(s *Search) *MultiSearch {
	c := &MultiSearch{
		index:    append([]string(nil), m.index...),
		searches: append(append([]*Search(nil), m.searches...), s),
	}
	return c
}

// Searches returns the accumulated requests in order.
func (m *MultiSearch) Searches() []*Search { return m.searches }

// Body serializes the batch as NDJSON: a header line naming the target
// indices, then the request body, per search.
func (m *MultiSearch) Body() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, s := range m.searches {
		header := map[string]any{}
		indices := s.Indices()
		if len(indices) == 0 {
			indices = m.index
		}
		if len(indices) > 0 {
			header["index"] = indices
		}
		if err := enc.Encode(header); err != nil {
			return nil, err
		}
		if err := enc.Encode(s.ToMap()); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
