package model

import "fmt"

// ConsistencyError reports a topic assignment file that does not match
// the corpus it is meant to seed. It is raised before any sampling.
type ConsistencyError struct {
	Line   int // 1-based line of the assignment file, zero for totals
	Reason string
}

func (e *ConsistencyError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("consistency error: line %d: %s", e.Line, e.Reason)
	}
	return "consistency error: " + e.Reason
}
