package entities

import "time"

// Run is one recorded invocation of the relocation engine against a book.
type Run struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BookTitle     string    `gorm:"index;size:512" json:"book_title"`
	EpubPath      string    `gorm:"size:1024" json:"epub_path"`
	ClippingsPath string    `gorm:"size:1024" json:"clippings_path"`
	Color         string    `gorm:"size:10" json:"color"`
	Inserted      int       `json:"inserted"`
	NotFound      int       `json:"not_found"`
	Ambiguous     int       `json:"ambiguous"`
	FailedDocs    int       `json:"failed_docs"`
	StartedAt     time.Time `json:"started_at"`

	Results []RunResult `gorm:"foreignKey:RunID" json:"results,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// RunResult is a single clipping outcome persisted with its run.
type RunResult struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	RunID    uint    `gorm:"index" json:"run_id"`
	Excerpt  string  `gorm:"type:text" json:"excerpt"`
	Note     string  `gorm:"type:text" json:"note,omitempty"`
	Outcome  Outcome `gorm:"size:20" json:"outcome"`
	Document string  `gorm:"size:512" json:"document,omitempty"`
}
