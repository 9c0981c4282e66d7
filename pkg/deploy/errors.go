package deploy

import "fmt"

// ConfigurationError indicates a step cannot run because its inputs are
// wrong: a prerequisite record key is missing or the plan is miswired. It is
// detected before any chain call is made.
type ConfigurationError struct {
	Step   string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("deploy: step %s: %s", e.Step, e.Detail)
}
