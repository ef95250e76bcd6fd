// internal/domain/curriculum/phases.go
package curriculum

// Phase describes one of the four stages of the curriculum.
type Phase struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description"`
	FirstDay    int    `json:"first_day"`
	LastDay     int    `json:"last_day"`
}

var phaseInfo = map[int]Phase{
	1: {Number: 1, Name: "Foundations", Description: "Variables, Types, Ownership & Borrowing"},
	2: {Number: 2, Name: "Core Concepts", Description: "Collections, Error Handling & Modules"},
	3: {Number: 3, Name: "Advanced Types", Description: "Traits, Generics & Lifetimes"},
	4: {Number: 4, Name: "Systems", Description: "Concurrency, Async & Projects"},
}

// PhaseNumbers lists the phases in order.
var PhaseNumbers = []int{1, 2, 3, 4}

// PhaseInfo returns the name and description of phase, with its day range
// taken from the default roster.
func PhaseInfo(phase int) (Phase, bool) {
	p, ok := phaseInfo[phase]
	if !ok {
		return Phase{}, false
	}
	p.FirstDay, p.LastDay = DefaultRoster.PhaseRange(phase)
	return p, true
}

// Phases returns all phases in order.
func Phases() []Phase {
	out := make([]Phase, 0, len(PhaseNumbers))
	for _, n := range PhaseNumbers {
		p, _ := PhaseInfo(n)
		out = append(out, p)
	}
	return out
}

// PhaseRange returns the first and last day the roster assigns to phase, or
// zeros when no day belongs to it.
func (r *Roster) PhaseRange(phase int) (first, last int) {
	for i, e := range r {
		if e.Phase != phase {
			continue
		}
		if first == 0 {
			first = i + 1
		}
		last = i + 1
	}
	return first, last
}
