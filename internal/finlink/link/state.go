package link

// State of a session's link flow.
type State string

const (
	StateIdle             State = "idle"
	StateRequestingToken  State = "requesting_token"
	StateAwaitingWidget   State = "awaiting_widget"
	StateExchangingToken  State = "exchanging_token"
	StateFetchingAccounts State = "fetching_accounts"
	StateReady            State = "ready"
	StateFailed           State = "failed"
)

// settled states accept a new connect, refresh or disconnect.
func (s State) settled() bool {
	return s == StateIdle || s == StateReady
}

// Observer sees every state change. It runs under the controller lock and
// must not call back into the controller.
type Observer func(attemptID string, from, to State)
