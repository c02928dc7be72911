package model

import "time"

// LogEntry is a single engineering-log record: a problem the user hit, how
// it was solved, and supporting material. Owned by exactly one user,
// referenced by username.
type LogEntry struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Problem        string    `json:"problem"`
	Solution       string    `json:"solution"`
	ReferenceLinks []string  `json:"reference_links"`
	Tags           []string  `json:"tags"`
	CodeSnippet    string    `json:"code_snippet,omitempty"`
	FileNames      []string  `json:"file_names"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LogPage is a page of log entries plus paging metadata.
type LogPage struct {
	Content       []*LogEntry `json:"content"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
	TotalElements int         `json:"total_elements"`
	TotalPages    int         `json:"total_pages"`
}

// LogFilter carries the optional criteria of the advanced filter endpoint.
// Nil time pointers mean the bound is not applied.
type LogFilter struct {
	Keyword      string
	Tag          string
	BeforeDate   *time.Time
	AfterDate    *time.Time
	BetweenStart *time.Time
	BetweenEnd   *time.Time
}
