// Package bulk applies an operation to every selected id strictly one at a
// time and accounts for each outcome. A failing item never aborts the rest
// of the batch.
package bulk

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrNotAuthorized = errors.New("not authorized")
	ErrInvalidState  = errors.New("invalid state transition")
	ErrValidation    = errors.New("validation failed")
)

type Failure struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

type Outcome struct {
	Attempted int       `json:"attempted"`
	Updated   int       `json:"updated"`
	Failures  []Failure `json:"failures"`
}

// Run invokes apply for each id in order. Item i+1 is not started until
// item i has fully completed, so failures attribute to ids without races and
// Updated+len(Failures) always equals Attempted.
func Run(ids []int64, apply func(id int64) error) Outcome {
	outcome := Outcome{Attempted: len(ids)}
	for _, id := range ids {
		if err := apply(id); err != nil {
			outcome.Failures = append(outcome.Failures, Failure{ID: id, Reason: reason(err)})
			continue
		}
		outcome.Updated++
	}
	return outcome
}

// FullSuccess reports whether every item succeeded.
func (o Outcome) FullSuccess() bool {
	return len(o.Failures) == 0
}

// FailedIDs returns the ids of failed items in batch order, used to reseed
// the selection for retry.
func (o Outcome) FailedIDs() []int64 {
	ids := make([]int64, 0, len(o.Failures))
	for _, f := range o.Failures {
		ids = append(ids, f.ID)
	}
	return ids
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrNotAuthorized):
		return "not authorized"
	case errors.Is(err, ErrInvalidState):
		return "invalid state transition"
	case errors.Is(err, ErrValidation):
		return "validation failed"
	default:
		return err.Error()
	}
}
