package document

import (
	"bytes"
	"encoding/json"

	"github.com/grainsearch/grain-dsl/pkg/errors"
)

// Bulk action names.
const (
	ActionIndex  = "index"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type bulkOp struct {
	action string
	meta   *Meta
	doc    Document
}

// Bulk accumulates document actions and serializes them into the engine's
// NDJSON bulk body.
type Bulk struct {
	defaultIndex string
	generateIDs  bool
	ops          []bulkOp
}

// NewBulk creates a bulk builder. defaultIndex applies to documents whose
// metadata does not name one.
func NewBulk(defaultIndex string) *Bulk {
	return &Bulk{defaultIndex: defaultIndex}
}

// WithGeneratedIDs makes the builder assign client-side IDs to index and
// create actions that lack one.
func (b *Bulk) WithGeneratedIDs() *Bulk {
	b.generateIDs = true
	return b
}

// Index appends an index action for doc.
func (b *Bulk) Index(doc Document) *Bulk {
	b.ops = append(b.ops, bulkOp{action: ActionIndex, meta: doc.DocumentMeta(), doc: doc})
	return b
}

// Create appends a create action for doc.
func (b *Bulk) Create(doc Document) *Bulk {
	b.ops = append(b.ops, bulkOp{action: ActionCreate, meta: doc.DocumentMeta(), doc: doc})
	return b
}

// Update appends a partial update action for doc.
func (b *Bulk) Update(doc Document) *Bulk {
	b.ops = append(b.ops, bulkOp{action: ActionUpdate, meta: doc.DocumentMeta(), doc: doc})
	return b
}

// Delete appends a delete action for the document identified by meta.
func (b *Bulk) Delete(meta *Meta) *Bulk {
	b.ops = append(b.ops, bulkOp{action: ActionDelete, meta: meta})
	return b
}

// Len returns the number of accumulated actions.
func (b *Bulk) Len() int { return len(b.ops) }

// Body serializes the accumulated actions as NDJSON. Update and delete
// actions require an ID; index and create actions require one unless
// WithGeneratedIDs is set.
func (b *Bulk) Body() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, op := range b.ops {
		if op.meta.ID == "" {
			switch op.action {
			case ActionIndex, ActionCreate:
				if !b.generateIDs {
					return nil, errors.ValidationError(op.action + " action requires a document ID")
				}
				op.meta.EnsureID()
			default:
				return nil, errors.ValidationError(op.action + " action requires a document ID")
			}
		}

		header := map[string]any{op.action: op.meta.header(b.defaultIndex)}
		if err := enc.Encode(header); err != nil {
			return nil, err
		}

		switch op.action {
		case ActionDelete:
			// No source line.
		case ActionUpdate:
			if err := enc.Encode(map[string]any{"doc": op.doc}); err != nil {
				return nil, err
			}
		default:
			if err := enc.Encode(op.doc); err != nil {
				return nil, err
			}
		}
	}
	return buf.Bytes(), nil
}
