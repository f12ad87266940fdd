package chat

import (
	"errors"

	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/llm"
)

var (
	// ErrEmptyTurn rejects a turn with neither text nor image. No dispatch happens.
	ErrEmptyTurn = domain.ErrEmptyTurn

	// ErrTransport means the model service could not be reached in time.
	ErrTransport = errors.New("could not connect to the AI service, please check your connection")

	// ErrService covers every other model failure.
	ErrService = errors.New("analysis failed, please try again")

	// ErrNoSession is returned by SendTurn while the manager is Empty.
	ErrNoSession = errors.New("no active chat session")

	// ErrTurnInFlight is returned when a second turn is sent before the first returns.
	ErrTurnInFlight = errors.New("a turn is already in progress")
)

// DispatchError is the only error shape a failed dispatch produces. Error and
// Unwrap expose the kind (ErrTransport or ErrService); the raw cause stays
// available to logs through Cause and never reaches errors.Is.
type DispatchError struct {
	Kind  error
	Cause error
}

func (e *DispatchError) Error() string { return e.Kind.Error() }

func (e *DispatchError) Unwrap() error { return e.Kind }

// classify normalizes a model-service failure.
func classify(err error) *DispatchError {
	kind := ErrService
	if errors.Is(err, llm.ErrTimeout) || errors.Is(err, llm.ErrUnavailable) {
		kind = ErrTransport
	}
	return &DispatchError{Kind: kind, Cause: err}
}
