// Package severity maps classifier output (and keyword signals in the
// working-language text) onto a discrete ordered risk tier.
package severity

// Tier is a discrete severity level, ordered by ascending urgency.
type Tier int

const (
	Low Tier = iota
	Mild
	High
)

func (t Tier) String() string {
	switch t {
	case High:
		return "High"
	case Mild:
		return "Mild"
	default:
		return "Low"
	}
}

// The fixed label set the zero-shot classifier is queried with.
const (
	LabelPositive = "Positive / motivated"
	LabelFatigue  = "Low mood or fatigue"
	LabelDistress = "High emotional distress"
)

// Labels is the candidate label set, in the order sent to the classifier.
var Labels = []string{LabelPositive, LabelFatigue, LabelDistress}
