package deploy

import (
	"context"
	"fmt"

	"astroctl/pkg/artifacts"
	"astroctl/pkg/chain"
	"astroctl/pkg/notify"
)

// Status is a step's lifecycle state as seen by event sinks.
type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Event is emitted once per step state change.
type Event struct {
	Step   string
	Status Status
	Err    error
}

// Runner executes a plan against one network, persisting progress after
// every completed step. Execution is strictly sequential; the signing key's
// account sequence forbids anything else.
type Runner struct {
	store    *artifacts.Store
	gateway  chain.Gateway
	notifier notify.Notifier
	network  string
	events   func(Event)
}

// NewRunner wires a runner from its collaborators. events may be nil.
func NewRunner(store *artifacts.Store, gateway chain.Gateway, notifier notify.Notifier, network string, events func(Event)) *Runner {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Runner{store: store, gateway: gateway, notifier: notifier, network: network, events: events}
}

func (r *Runner) emit(event Event) {
	if r.events != nil {
		r.events(event)
	}
}

// Run executes the plan's steps in order. Steps whose outputs are already
// recorded are skipped without touching the chain. On the first failure the
// run halts: remaining steps are not attempted and the returned record
// reflects the last successful step, which has already been saved.
//
// The returned record is always the current persisted state, even on error.
func (r *Runner) Run(ctx context.Context, plan Plan) (artifacts.Record, error) {
	record, err := r.store.Load(r.network)
	if err != nil {
		return nil, r.fail(ctx, "load", err)
	}

	for _, step := range plan.Steps {
		if !step.needed(record) {
			r.emit(Event{Step: step.Name, Status: StatusSkipped})
			continue
		}

		r.emit(Event{Step: step.Name, Status: StatusRunning})

		delta, err := step.Run(ctx, r.gateway, record.Clone())
		if err != nil {
			r.emit(Event{Step: step.Name, Status: StatusFailed, Err: err})
			return record, r.fail(ctx, step.Name, err)
		}

		record.Merge(delta)
		if err := r.store.Save(r.network, record); err != nil {
			r.emit(Event{Step: step.Name, Status: StatusFailed, Err: err})
			return record, r.fail(ctx, step.Name, err)
		}

		r.emit(Event{Step: step.Name, Status: StatusCompleted})
	}

	return record, nil
}

// fail reports the failure out of band and returns the original error. A
// notification failure is deliberately dropped so it cannot mask err.
func (r *Runner) fail(ctx context.Context, step string, err error) error {
	title := "Deployment failed"
	message := fmt.Sprintf("step %s failed on network %s", step, r.network)
	_ = r.notifier.Notify(ctx, title, message, err.Error())
	return err
}
