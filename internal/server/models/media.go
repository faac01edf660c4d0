package models

import "time"

// Media kinds. Videos and PDFs share one schema and are partitioned by kind.
const (
	KindVideo = "video"
	KindPDF   = "pdf"
)

// MediaEntry is one published object's catalog record. URL points at the
// world-readable stored object; it is set once at creation and never
// updated. Deleting an entry does not remove the backing object.
type MediaEntry struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"filePath"`
	CreatedAt   time.Time `json:"-"`
}
