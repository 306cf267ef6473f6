package systems

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/seeker/components"
)

// Bearing returns the angle from the robot heading to the target, wrapped into (-Pi, Pi].
func Bearing(pose components.Pose, target components.Target) float64 {
	return WrapAngle(math.Atan2(target.Y-pose.Y, target.X-pose.X) - pose.Heading)
}

// TargetDistance returns the distance from the robot center to the target.
func TargetDistance(pose components.Pose, target components.Target) float64 {
	return Distance(pose.X, pose.Y, target.X, target.Y)
}

// BuildState assembles the network input: sensor readings, distance to target
// scaled by arena width, and bearing to target scaled into [-1, 1].
func BuildState(readings []float64, pose components.Pose, target components.Target, arenaWidth float64) []float64 {
	state := make([]float64, len(readings)+2)
	copy(state, readings)
	state[len(readings)] = TargetDistance(pose, target) / arenaWidth
	state[len(readings)+1] = Bearing(pose, target) / math.Pi

	if !finite(state...) {
		slog.Error("non-finite state vector", "state", state, "pose", pose, "target", target)
		panic(fmt.Sprintf("systems: non-finite state %v", state))
	}
	return state
}
