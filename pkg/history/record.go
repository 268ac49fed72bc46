package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
)

// Kind tells whether a record comes from generating or scanning a code.
type Kind string

const (
	KindGenerated Kind = "generated"
	KindScanned   Kind = "scanned"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindGenerated || k == KindScanned
}

// Metadata holds the rendering options of a generated code.
type Metadata struct {
	Size            int    `json:"size,omitempty" bson:"size,omitempty"`
	ErrorCorrection string `json:"error_correction,omitempty" bson:"error_correction,omitempty"`
	Foreground      string `json:"foreground,omitempty" bson:"foreground,omitempty"`
	Background      string `json:"background,omitempty" bson:"background,omitempty"`
	Format          string `json:"format,omitempty" bson:"format,omitempty"`
}

// Location is where a code was scanned.
type Location struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Record is one history entry.
type Record struct {
	ID          uuid.UUID             `json:"id"`
	Kind        Kind                  `json:"type"`
	ContentType qrcontent.ContentType `json:"content_type"`
	Content     string                `json:"content"`
	Timestamp   time.Time             `json:"timestamp"`
	Metadata    *Metadata             `json:"metadata,omitempty"`
	Location    *Location             `json:"location,omitempty"`
}

// NewRecord creates a record with a fresh ID and the current time at
// millisecond precision, which every backend can store without loss.
func NewRecord(kind Kind, ct qrcontent.ContentType, content string) Record {
	return Record{
		ID:          uuid.New(),
		Kind:        kind,
		ContentType: ct,
		Content:     content,
		Timestamp:   time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (r Record) validate() error {
	if r.ID == uuid.Nil || !r.Kind.Valid() || !r.ContentType.Valid() {
		return ErrInvalidRecord
	}
	return nil
}

// clone copies the optional pointer fields so stores never share them with callers.
func (r Record) clone() Record {
	if r.Metadata != nil {
		m := *r.Metadata
		r.Metadata = &m
	}
	if r.Location != nil {
		l := *r.Location
		r.Location = &l
	}
	return r
}
