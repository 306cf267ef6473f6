// Package systems contains the simulation systems: geometry, sensing,
// kinematics and reward.
package systems

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/seeker/components"
)

// actionTable maps each action to its forward speed and turn rate.
var actionTable = [components.NumActions]components.Motion{
	components.ActionForward:      {Speed: 3.0, Turn: 0},
	components.ActionForwardLeft:  {Speed: 1.5, Turn: -0.1},
	components.ActionForwardRight: {Speed: 1.5, Turn: 0.1},
	components.ActionReverse:      {Speed: -2.0, Turn: 0},
}

// Kinematics returns the motion commanded by action.
// The action space is closed; an out-of-range action is a programming error.
func Kinematics(action components.Action) components.Motion {
	if !action.Valid() {
		panic(fmt.Sprintf("systems: invalid action %d", action))
	}
	return actionTable[action]
}

// Advance moves pose one tick under action and returns the applied motion.
// Position moves along the pre-turn heading, then the heading turns.
func Advance(pose *components.Pose, action components.Action) components.Motion {
	m := Kinematics(action)
	pose.X += math.Cos(pose.Heading) * m.Speed
	pose.Y += math.Sin(pose.Heading) * m.Speed
	pose.Heading += m.Turn
	return m
}

// BodyHitsWall reports whether a body of the given radius crosses the arena edge.
func BodyHitsWall(pose components.Pose, radius, w, h float64) bool {
	return pose.X < radius || pose.X > w-radius ||
		pose.Y < radius || pose.Y > h-radius
}

// PhysicsSystem applies a commanded action to the robot entity.
type PhysicsSystem struct {
	mapper *ecs.Map2[components.Pose, components.Motion]
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World) *PhysicsSystem {
	return &PhysicsSystem{
		mapper: ecs.NewMap2[components.Pose, components.Motion](w),
	}
}

// Apply advances entity e by one tick under action.
func (s *PhysicsSystem) Apply(e ecs.Entity, action components.Action) {
	pose, motion := s.mapper.Get(e)
	*motion = Advance(pose, action)
}
