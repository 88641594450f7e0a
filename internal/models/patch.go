package models

// TranscriptPatch is a partial update to a transcript. Nil fields are left untouched.
type TranscriptPatch struct {
	Language *string    `json:"language,omitempty"`
	Text     *string    `json:"text,omitempty"`
	Status   *JobStatus `json:"status,omitempty"`
}

// Apply merges the patch into t field by field.
func (p *TranscriptPatch) Apply(t *Transcript) {
	if p.Language != nil {
		t.Language = *p.Language
	}
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// QuotePatch is a partial update to a quote. Nil fields are left untouched.
type QuotePatch struct {
	Text       *string   `json:"text,omitempty"`
	Start      *float64  `json:"start,omitempty"`
	End        *float64  `json:"end,omitempty"`
	Confidence *float64  `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
	Approved   *bool     `json:"approved,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
}

// Apply merges the patch into q field by field.
func (p *QuotePatch) Apply(q *Quote) {
	if p.Text != nil {
		q.Text = *p.Text
	}
	if p.Start != nil {
		s := *p.Start
		q.Start = &s
	}
	if p.End != nil {
		e := *p.End
		q.End = &e
	}
	if p.Confidence != nil {
		c := *p.Confidence
		q.Confidence = &c
	}
	if p.Approved != nil {
		q.Approved = *p.Approved
	}
	if p.Tags != nil {
		q.Tags = append([]string(nil), (*p.Tags)...)
	}
}
