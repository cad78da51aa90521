package models

// Status tells whether a result holds the whole report or a truncated one.
type Status string

const (
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
)

// Result is the outcome of a generation. A partial result carries the
// truncated text and the reason it was truncated.
type Result struct {
	Status Status
	Text   string
	Report *ContextReport
	Tokens int
	Reason string
}

// IsPartial reports whether the text was truncated to fit the token budget.
func (r *Result) IsPartial() bool {
	return r != nil && r.Status == StatusPartial
}
