package deploy

import (
	"context"

	"astroctl/pkg/artifacts"
	"astroctl/pkg/chain"
)

// Step is the unit of deployment work and of checkpointing. A step that
// fails partway reruns in full on the next invocation, so its Run must be
// written to tolerate that (chain-side duplicates are acceptable; record
// keys only appear once the whole step succeeds).
type Step struct {
	// Name identifies the step in plans, events and errors.
	Name string
	// Outputs are the record keys the step produces. The default
	// precondition derives from them.
	Outputs []string
	// Needed overrides the default precondition. It must be pure: no chain
	// calls, no side effects, only record lookups.
	Needed func(record artifacts.Record) bool
	// Run performs the work and returns only the new keys it produced. It
	// must not mutate the record it is given and must not retry internally;
	// retry policy belongs to the operator rerunning the plan.
	Run func(ctx context.Context, gw chain.Gateway, record artifacts.Record) (artifacts.Record, error)
}

// needed reports whether the step has outstanding work. With no override the
// step is needed iff any of its output keys is absent.
func (s Step) needed(record artifacts.Record) bool {
	if s.Needed != nil {
		return s.Needed(record)
	}
	for _, key := range s.Outputs {
		if !record.Has(key) {
			return true
		}
	}
	return false
}

// requireKeys returns a ConfigurationError naming the first prerequisite key
// absent from the record.
func requireKeys(step string, record artifacts.Record, keys ...string) error {
	for _, key := range keys {
		if !record.Has(key) {
			return &ConfigurationError{Step: step, Detail: "missing prerequisite record key " + key}
		}
	}
	return nil
}
