package productlist

import "fmt"

type stateKind int

const (
	kindIdle stateKind = iota
	kindLoading
	kindSuccess
	kindError
)

// LoadingState is the closed set of list-loading states: Idle, Loading,
// Success and Error(message). Values are comparable; two error states are
// equal exactly when their messages are equal.
type LoadingState struct {
	kind    stateKind
	message string
}

var (
	// Idle is the initial state of a fresh machine.
	Idle = LoadingState{kind: kindIdle}
	// Loading is entered synchronously when a fetch starts.
	Loading = LoadingState{kind: kindLoading}
	// Success is entered when a fetch completed and state was replaced.
	Success = LoadingState{kind: kindSuccess}
)

// ErrorState builds the Error variant carrying a user-facing message.
func ErrorState(message string) LoadingState {
	return LoadingState{kind: kindError, message: message}
}

// IsError reports whether s is an Error state.
func (s LoadingState) IsError() bool {
	return s.kind == kindError
}

// Message returns the user-facing message of an Error state, empty otherwise.
func (s LoadingState) Message() string {
	return s.message
}

func (s LoadingState) String() string {
	switch s.kind {
	case kindIdle:
		return "idle"
	case kindLoading:
		return "loading"
	case kindSuccess:
		return "success"
	case kindError:
		return fmt.Sprintf("error(%s)", s.message)
	default:
		return "unknown"
	}
}
