package migration

import (
	"fmt"
	"sort"
	"strings"
)

// StepError reports the step that stopped a batch. The step's own
// transaction was rolled back; Committed holds the rows inserted by the
// steps that committed before it, keyed by entity.
type StepError struct {
	Step      string
	Entity    string
	State     State
	Committed map[string]int64
	// Duplicate is set when the database rejected a row as a duplicate key.
	Duplicate bool
	Err       error
}

func (e *StepError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "step %s (%s) failed after %s", e.Step, e.Entity, e.State)
	if len(e.Committed) > 0 {
		entities := make([]string, 0, len(e.Committed))
		for entity := range e.Committed {
			entities = append(entities, entity)
		}
		sort.Strings(entities)
		parts := make([]string, len(entities))
		for i, entity := range entities {
			parts[i] = fmt.Sprintf("%s=%d", entity, e.Committed[entity])
		}
		fmt.Fprintf(&b, " (committed: %s)", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *StepError) Unwrap() error {
	return e.Err
}
