// Package document maps application record types onto engine indices and
// documents: per-document metadata and an NDJSON bulk action builder.
package document

import (
	"github.com/google/uuid"
)

// Meta holds the engine-side identity of a document. Embed it in a record
// type with a `json:"-"` tag so it stays out of the document source.
type Meta struct {
	Index       string
	ID          string
	Routing     string
	Version     *int64
	SeqNo       *int64
	PrimaryTerm *int64
	Score       *float64
}

// EnsureID assigns a generated ID when none is set and returns the ID.
// Client-side IDs keep bulk retries idempotent.
func (m *Meta) EnsureID() string {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return m.ID
}

// header serializes the bulk action metadata line body.
func (m *Meta) header(defaultIndex string) map[string]any {
	out := map[string]any{}
	index := m.Index
	if index == "" {
		index = defaultIndex
	}
	if index != "" {
		out["_index"] = index
	}
	if m.ID != "" {
		out["_id"] = m.ID
	}
	if m.Routing != "" {
		out["routing"] = m.Routing
	}
	return out
}

// Document is implemented by record types persisted to the engine.
type Document interface {
	DocumentMeta() *Meta
}
