package engine

// Hypothesis identifies one of the fixed opponent models. Declaration order
// is the leader tie-break order.
type Hypothesis int

const (
	Kris Hypothesis = iota
	Quincy
	Mrugesh
	Abbey
	NumHypotheses = 4
)

// Hypotheses lists every hypothesis in priority order.
var Hypotheses = [NumHypotheses]Hypothesis{Kris, Quincy, Mrugesh, Abbey}

func (h Hypothesis) String() string {
	switch h {
	case Kris:
		return "kris"
	case Quincy:
		return "quincy"
	case Mrugesh:
		return "mrugesh"
	case Abbey:
		return "abbey"
	default:
		return "unknown"
	}
}

// Score counts how often a hypothesis predicted the opponent correctly.
type Score struct {
	Hits   int `json:"hits"`
	Trials int `json:"trials"`
}

// Accuracy returns Hits/Trials, or 0 before the first trial.
func (s Score) Accuracy() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Trials)
}

func (s *Score) record(hit bool) {
	s.Trials++
	if hit {
		s.Hits++
	}
}

// leader returns the hypothesis with strictly the greatest accuracy; on ties
// the first in priority order wins.
func leader(scores [NumHypotheses]Score) (Hypothesis, float64) {
	best, bestAcc := Hypotheses[0], scores[Hypotheses[0]].Accuracy()
	for _, h := range Hypotheses[1:] {
		if acc := scores[h].Accuracy(); acc > bestAcc {
			best, bestAcc = h, acc
		}
	}
	return best, bestAcc
}
