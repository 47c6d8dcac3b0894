package entities

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"
)

// Keys the server owns in every listing document.
const (
	FieldID        = "_id"
	FieldCreatedAt = "createdAt"
)

var ErrNotObject = errors.New("listing body must be a JSON object")

// Collection describes one listing kind served by the collection endpoints.
type Collection struct {
	Name     string   // SQLite table
	Resource string   // singular noun used in error messages
	Editable []string // fields a PUT writes
}

var (
	Supplies = Collection{
		Name:     "supplies",
		Resource: "supply",
		Editable: []string{"image", "category", "title", "quantity", "description"},
	}
	Volunteers = Collection{
		Name:     "volunteers",
		Resource: "volunteer",
		Editable: []string{"name", "email", "phone", "location", "image"},
	}
	Comments = Collection{
		Name:     "comments",
		Resource: "comment",
		Editable: []string{"name", "email", "text"},
	}
	Testimonials = Collection{
		Name:     "testimonials",
		Resource: "testimonial",
		Editable: []string{"name", "image", "location", "quote", "rating"},
	}
)

// ListingCollections is every listing kind, in display order.
var ListingCollections = []Collection{Supplies, Volunteers, Comments, Testimonials}

// Project returns the editable fields of body. Fields the body omits are
// written as null, so a PUT always sets the complete editable set.
func (c Collection) Project(body Document) Document {
	out := make(Document, len(c.Editable))
	for _, key := range c.Editable {
		out[key] = body[key]
	}
	return out
}

// Listing is a record in one of the public collections: the object the client
// sent, plus the server-assigned _id and createdAt.
type Listing struct {
	ID        string    `gorm:"primaryKey;size:24"`
	Body      Document  `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (l Listing) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(l.Body)+2)
	maps.Copy(out, l.Body)
	out[FieldID] = l.ID
	if !l.CreatedAt.IsZero() {
		out[FieldCreatedAt] = l.CreatedAt
	}
	return json.Marshal(out)
}

// UnmarshalJSON keeps every field of the object except the server-owned keys.
func (l *Listing) UnmarshalJSON(data []byte) error {
	body, err := DecodeDocument(data)
	if err != nil {
		return err
	}
	delete(body, FieldID)
	delete(body, FieldCreatedAt)
	l.Body = body
	return nil
}

// Document is a free-form JSON object. Integral numbers decode as int64 and
// all other numbers as float64, whichever store the document came from.
type Document map[string]any

// DecodeDocument parses a JSON object.
func DecodeDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotObject, err)
	}
	if raw == nil {
		return nil, ErrNotObject
	}
	return Document(normalizeNumbers(raw).(map[string]any)), nil
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, elem := range val {
			val[k] = normalizeNumbers(elem)
		}
		return val
	case []any:
		for i, elem := range val {
			val[i] = normalizeNumbers(elem)
		}
		return val
	default:
		return v
	}
}

// Value stores the document as JSON text.
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads a document stored by Value.
func (d *Document) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*d = Document{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Document", src)
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}
