// Package models defines core data structures for assets, transcripts, quotes, and exports.
package models

import (
	"strings"
	"time"
)

// AssetType categorizes an uploaded media asset by its content type.
type AssetType string

const (
	AssetAudio   AssetType = "audio"
	AssetVideo   AssetType = "video"
	AssetUnknown AssetType = "unknown"
)

// AssetTypeFromContentType derives the asset category from a MIME type prefix.
func AssetTypeFromContentType(contentType string) AssetType {
	switch {
	case strings.HasPrefix(contentType, "audio/"):
		return AssetAudio
	case strings.HasPrefix(contentType, "video/"):
		return AssetVideo
	default:
		return AssetUnknown
	}
}

// JobStatus is the processing status shared by transcripts and export jobs.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusCanceled   JobStatus = "canceled"
)

// ExportFormat is a supported export output format.
type ExportFormat string

const (
	FormatPlainText ExportFormat = "plain_text"
	FormatJSON      ExportFormat = "json"
	FormatTwitter   ExportFormat = "twitter"
	FormatLinkedIn  ExportFormat = "linkedin"
	FormatInstagram ExportFormat = "instagram"
	FormatSRT       ExportFormat = "srt"
	FormatVTT       ExportFormat = "vtt"
)

// Valid reports whether f is one of the supported export formats.
func (f ExportFormat) Valid() bool {
	switch f {
	case FormatPlainText, FormatJSON, FormatTwitter, FormatLinkedIn, FormatInstagram, FormatSRT, FormatVTT:
		return true
	}
	return false
}

// User is a basic user profile, synthesized on demand from a bearer token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Clone returns a copy of the user.
func (u *User) Clone() *User {
	c := *u
	return &c
}

// Asset is the metadata record for an uploaded media file (not the bytes).
type Asset struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type,omitempty"`
	AssetType   AssetType `json:"asset_type"`
	SizeBytes   *int64    `json:"size_bytes,omitempty"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	OwnerID     string    `json:"owner_id,omitempty"`
}

// Clone returns a deep copy of the asset.
func (a *Asset) Clone() *Asset {
	c := *a
	if a.SizeBytes != nil {
		n := *a.SizeBytes
		c.SizeBytes = &n
	}
	return &c
}

// TranscriptSegment is a timed span of transcript text. Immutable once appended.
type TranscriptSegment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

// Transcript is the textual representation of an asset's audio content.
type Transcript struct {
	ID        string              `json:"id"`
	AssetID   string              `json:"asset_id"`
	Language  string              `json:"language,omitempty"`
	Text      string              `json:"text,omitempty"`
	Segments  []TranscriptSegment `json:"segments"`
	Status    JobStatus           `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Clone returns a deep copy of the transcript, safe to store as a version snapshot.
// An empty Segments slice stays empty, not nil, so it serializes as [].
func (t *Transcript) Clone() *Transcript {
	c := *t
	if t.Segments != nil {
		c.Segments = append([]TranscriptSegment{}, t.Segments...)
	}
	return &c
}

// Quote is a text excerpt tied to a transcript, with optional timing and review state.
type Quote struct {
	ID           string    `json:"id"`
	TranscriptID string    `json:"transcript_id"`
	Start        *float64  `json:"start"`
	End          *float64  `json:"end"`
	Text         string    `json:"text"`
	Confidence   *float64  `json:"confidence"`
	Approved     bool      `json:"approved"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the quote. An empty Tags slice stays empty,
// not nil, so it serializes as [].
func (q *Quote) Clone() *Quote {
	c := *q
	if q.Tags != nil {
		c.Tags = append([]string{}, q.Tags...)
	}
	if q.Start != nil {
		s := *q.Start
		c.Start = &s
	}
	if q.End != nil {
		e := *q.End
		c.End = &e
	}
	if q.Confidence != nil {
		v := *q.Confidence
		c.Confidence = &v
	}
	return &c
}

// ExportJob is a request to render a set of quotes into a platform-specific blob.
type ExportJob struct {
	ID           string       `json:"id"`
	QuoteIDs     []string     `json:"quote_ids"`
	Format       ExportFormat `json:"format"`
	Status       JobStatus    `json:"status"`
	ResultURL    string       `json:"result_url,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Clone returns a deep copy of the export job.
func (j *ExportJob) Clone() *ExportJob {
	c := *j
	if j.QuoteIDs != nil {
		c.QuoteIDs = append([]string{}, j.QuoteIDs...)
	}
	return &c
}
