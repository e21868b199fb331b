package world

import "fmt"

// NotFoundError reports a missing entity (or a missing/malformed table, which
// is indistinguishable at the operation boundary).
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
