package domain

import "time"

// OutcomeStatus describes what happened to a single question.
type OutcomeStatus string

// Outcome statuses.
const (
	// OutcomeAnswered means the answer was reconciled into something fillable.
	OutcomeAnswered OutcomeStatus = "answered"

	// OutcomeSkipped means the answer matched no option with enough confidence.
	// The question is left for manual review.
	OutcomeSkipped OutcomeStatus = "skipped"

	// OutcomeFailed means no answer could be obtained from the LLM.
	OutcomeFailed OutcomeStatus = "failed"

	// OutcomeUnsupported means the question could not be answered at all
	// (unknown field type or malformed options).
	OutcomeUnsupported OutcomeStatus = "unsupported"
)

// String returns the string representation.
func (s OutcomeStatus) String() string {
	return string(s)
}

// Outcome records the processing of one question.
type Outcome struct {
	QuestionID   string        `json:"question_id"`
	QuestionText string        `json:"question_text"`
	FieldType    FieldType     `json:"field_type"`
	Options      []string      `json:"options,omitempty"`
	Answer       string        `json:"answer,omitempty"`
	Match        MatchResult   `json:"match"`
	Status       OutcomeStatus `json:"status"`
	Error        string        `json:"error,omitempty"`
}

// Selected returns the option labels (or verbatim text) chosen for the question.
func (o Outcome) Selected() []string {
	return o.Match.Labels(o.Options)
}

// Run is the record of one answering pass over a form.
type Run struct {
	ID         string    `json:"id"`
	FormID     string    `json:"form_id"`
	FormTitle  string    `json:"form_title,omitempty"`
	Model      string    `json:"model,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Outcomes   []Outcome `json:"outcomes"`
}

// RunSummary counts outcomes by status.
type RunSummary struct {
	Total       int `json:"total"`
	Answered    int `json:"answered"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`
	Unsupported int `json:"unsupported"`
}

// Summary counts the run's outcomes by status.
func (r *Run) Summary() RunSummary {
	var s RunSummary
	for i := range r.Outcomes {
		s.Total++
		switch r.Outcomes[i].Status {
		case OutcomeAnswered:
			s.Answered++
		case OutcomeSkipped:
			s.Skipped++
		case OutcomeFailed:
			s.Failed++
		case OutcomeUnsupported:
			s.Unsupported++
		}
	}
	return s
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
