package store

// MutationStrategy is how a store operation reconciles local state with the
// gateway.
type MutationStrategy string

const (
	// MutationOptimistic applies the change locally first and rolls back to
	// the pre-call snapshot if the gateway write fails.
	MutationOptimistic MutationStrategy = "optimistic-with-rollback"
	// MutationPessimistic issues the gateway call first and only mutates local
	// state (via a full refresh) after the gateway confirms.
	MutationPessimistic MutationStrategy = "pessimistic-confirm-then-apply"
)

// Operation names the store's mutation entry points.
type Operation string

const (
	OpCreateEvent       Operation = "create_event"
	OpUpdateEvent       Operation = "update_event"
	OpDeleteEvent       Operation = "delete_event"
	OpUpdateEventStatus Operation = "update_event_status"
	OpCreateEdition     Operation = "create_edition"
	OpUpdateEdition     Operation = "update_edition"
	OpDeleteEdition     Operation = "delete_edition"
)

// Strategy returns the reconciliation policy for an operation. Status flips
// are the only optimistic path; everything else confirms against the gateway
// before local state changes.
func (op Operation) Strategy() MutationStrategy {
	if op == OpUpdateEventStatus {
		return MutationOptimistic
	}
	return MutationPessimistic
}
