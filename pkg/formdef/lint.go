package formdef

import "fmt"

// Violation is a problem found while linting a definition document.
type Violation struct {
	Operation string `json:"operation"`
	Location  string `json:"location"`
	Message   string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s -> %s", v.Operation, v.Location, v.Message)
}
