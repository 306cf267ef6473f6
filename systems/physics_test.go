package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/seeker/components"
)

func TestKinematicsTable(t *testing.T) {
	tests := []struct {
		action components.Action
		speed  float64
		turn   float64
	}{
		{components.ActionForward, 3.0, 0},
		{components.ActionForwardLeft, 1.5, -0.1},
		{components.ActionForwardRight, 1.5, 0.1},
		{components.ActionReverse, -2.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			m := Kinematics(tt.action)
			if m.Speed != tt.speed || m.Turn != tt.turn {
				t.Errorf("Kinematics(%v) = %+v, want speed=%v turn=%v", tt.action, m, tt.speed, tt.turn)
			}
		})
	}
}

func TestKinematicsPanicsOnInvalidAction(t *testing.T) {
	for _, a := range []components.Action{-1, components.NumActions, 17} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Kinematics(%d) did not panic", a)
				}
			}()
			Kinematics(a)
		}()
	}
}

func TestAdvanceMovesAlongPreTurnHeading(t *testing.T) {
	pose := components.Pose{X: 100, Y: 100, Heading: 0}
	m := Advance(&pose, components.ActionForwardRight)

	if m.Speed != 1.5 {
		t.Errorf("motion speed = %v, want 1.5", m.Speed)
	}
	if math.Abs(pose.X-101.5) > 1e-12 || math.Abs(pose.Y-100) > 1e-12 {
		t.Errorf("position = (%v, %v), want (101.5, 100)", pose.X, pose.Y)
	}
	if math.Abs(pose.Heading-0.1) > 1e-12 {
		t.Errorf("heading = %v, want 0.1", pose.Heading)
	}
}

func TestAdvanceReverse(t *testing.T) {
	pose := components.Pose{X: 400, Y: 300, Heading: -math.Pi / 2}
	Advance(&pose, components.ActionReverse)

	if math.Abs(pose.X-400) > 1e-9 || math.Abs(pose.Y-302) > 1e-9 {
		t.Errorf("position = (%v, %v), want (400, 302)", pose.X, pose.Y)
	}
	if pose.Heading != -math.Pi/2 {
		t.Errorf("heading changed to %v", pose.Heading)
	}
}

func TestBodyHitsWall(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 400, 300, false},
		{"exactly radius from left", 20, 300, false},
		{"inside left margin", 19.9, 300, true},
		{"inside right margin", 780.1, 300, true},
		{"inside top margin", 400, 10, true},
		{"inside bottom margin", 400, 590, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BodyHitsWall(components.Pose{X: tt.x, Y: tt.y}, 20, 800, 600)
			if got != tt.want {
				t.Errorf("BodyHitsWall(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPhysicsSystemApply(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Pose, components.Motion](w)

	pose := components.Pose{X: 400, Y: 300, Heading: 0}
	motion := components.Motion{}
	e := mapper.NewEntity(&pose, &motion)

	sys := NewPhysicsSystem(w)
	sys.Apply(e, components.ActionForward)

	p, m := mapper.Get(e)
	if math.Abs(p.X-403) > 1e-12 {
		t.Errorf("x = %v, want 403", p.X)
	}
	if m.Speed != 3 {
		t.Errorf("stored motion speed = %v, want 3", m.Speed)
	}
}
