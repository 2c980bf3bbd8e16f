package llm

import "fmt"

// ServiceError marks a failure of the external generator service: the call
// itself failed, or its output failed schema validation. Callers map it to
// their fail-conservative policies.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
