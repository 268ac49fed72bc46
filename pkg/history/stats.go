package history

import "github.com/dmitrymomot/qrkit/pkg/qrcontent"

// Stats summarises a history list.
type Stats struct {
	Total         int                           `json:"total"`
	Generated     int                           `json:"generated"`
	Scanned       int                           `json:"scanned"`
	ByContentType map[qrcontent.ContentType]int `json:"by_content_type"`
	MostCommon    qrcontent.ContentType         `json:"most_common"`
}

// Summarize counts records by kind and content type. ByContentType always has
// an entry for every content type. MostCommon is the type with the highest
// count; ties go to the type declared first, so an empty history reports text.
func Summarize(records []Record) Stats {
	s := Stats{
		Total:         len(records),
		ByContentType: make(map[qrcontent.ContentType]int, len(qrcontent.ContentTypes())),
	}
	for _, ct := range qrcontent.ContentTypes() {
		s.ByContentType[ct] = 0
	}

	for _, r := range records {
		switch r.Kind {
		case KindGenerated:
			s.Generated++
		case KindScanned:
			s.Scanned++
		}
		s.ByContentType[r.ContentType]++
	}

	s.MostCommon = qrcontent.Text
	for _, ct := range qrcontent.ContentTypes() {
		if s.ByContentType[ct] > s.ByContentType[s.MostCommon] {
			s.MostCommon = ct
		}
	}
	return s
}
