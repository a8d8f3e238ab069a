package garden

import "errors"

var (
	// ErrNotRunning is returned by input and tick entry points once the
	// garden has been won or torn down, or before Start.
	ErrNotRunning = errors.New("garden is not running")
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("garden already started")
	// ErrUnknownPlant means an action referenced a plant outside the garden.
	ErrUnknownPlant = errors.New("unknown plant")
	// ErrNonMonotonic means the time source went backwards.
	ErrNonMonotonic = errors.New("tick timestamp went backwards")
	// ErrInvalidDifficulty wraps difficulty validation failures.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	// ErrUnknownName is returned when a tool, hazard, policy or preset name
	// does not resolve.
	ErrUnknownName = errors.New("unknown name")
)
