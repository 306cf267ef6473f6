// Package components defines ECS components for the simulation.
package components

// Action is a discrete robot command, an index into the kinematic action table.
type Action int

// Robot actions.
const (
	ActionForward Action = iota
	ActionForwardLeft
	ActionForwardRight
	ActionReverse

	NumActions = 4
)

// String returns a short label for the action.
func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionForwardLeft:
		return "forward-left"
	case ActionForwardRight:
		return "forward-right"
	case ActionReverse:
		return "reverse"
	}
	return "invalid"
}

// Valid reports whether a is inside the closed action space.
func (a Action) Valid() bool {
	return a >= 0 && a < NumActions
}

// Robot tags the controlled agent.
type Robot struct {
	Alive bool
}
