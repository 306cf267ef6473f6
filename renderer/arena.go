package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/seeker/game"
)

// Arena palette.
var (
	ArenaBackground = rl.Color{R: 15, G: 23, B: 42, A: 255}
	ArenaWall       = rl.Color{R: 51, G: 65, B: 85, A: 255}
	RobotFill       = rl.Color{R: 30, G: 58, B: 138, A: 255}
	RobotStroke     = rl.Color{R: 96, G: 165, B: 250, A: 255}
	HeadingColor    = rl.Color{R: 239, G: 68, B: 68, A: 255}
	TargetColor     = rl.Color{R: 34, G: 197, B: 94, A: 255}
	GuideColor      = rl.Color{R: 34, G: 197, B: 94, A: 90}
)

const (
	targetDrawRadius = 10
	dashLength       = 8
)

var _ game.RenderSink = (*Arena)(nil)

// Arena draws the robot, its sensor rays and the target into a screen
// rectangle at (OffsetX, OffsetY). It implements game.RenderSink.
type Arena struct {
	OffsetX, OffsetY float32
	ShowGoalRadius   bool
}

// NewArena creates an arena renderer drawing at the given screen offset.
func NewArena(offsetX, offsetY float32) *Arena {
	return &Arena{OffsetX: offsetX, OffsetY: offsetY, ShowGoalRadius: true}
}

// Render draws one frame. Must be called between rl.BeginDrawing and rl.EndDrawing.
func (a *Arena) Render(f game.Frame) {
	w, h := float32(f.ArenaWidth), float32(f.ArenaHeight)
	rl.DrawRectangle(int32(a.OffsetX), int32(a.OffsetY), int32(w), int32(h), ArenaBackground)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: a.OffsetX, Y: a.OffsetY, Width: w, Height: h}, 2, ArenaWall)

	a.drawRays(f)
	a.drawGuide(f)
	a.drawTarget(f)
	a.drawRobot(f)
}

// RayColor maps a reading to the ray color: red when blocked, yellow when clear.
func RayColor(reading float64) rl.Color {
	if reading < 0 {
		reading = 0
	} else if reading > 1 {
		reading = 1
	}
	return rl.Color{R: 255, G: uint8(255 * reading), B: 0, A: 128}
}

func (a *Arena) drawRays(f game.Frame) {
	for _, ray := range f.Rays {
		rl.DrawLineEx(a.point(ray.X1, ray.Y1), a.point(ray.X2, ray.Y2), 1.5, RayColor(ray.Reading))
		if ray.Reading < 1 {
			p := a.point(ray.X2, ray.Y2)
			rl.DrawCircle(int32(p.X), int32(p.Y), 3, RayColor(ray.Reading))
		}
	}
}

// drawGuide draws a dashed line from the robot to the target.
func (a *Arena) drawGuide(f game.Frame) {
	dx := f.Target.X - f.Pose.X
	dy := f.Target.Y - f.Pose.Y
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	ux, uy := dx/dist, dy/dist
	for s := 0.0; s < dist; s += 2 * dashLength {
		e := math.Min(s+dashLength, dist)
		rl.DrawLineV(
			a.point(f.Pose.X+ux*s, f.Pose.Y+uy*s),
			a.point(f.Pose.X+ux*e, f.Pose.Y+uy*e),
			GuideColor,
		)
	}
}

func (a *Arena) drawTarget(f game.Frame) {
	c := a.point(f.Target.X, f.Target.Y)
	cx, cy := int32(c.X), int32(c.Y)
	if a.ShowGoalRadius && f.GoalRadius > 0 {
		rl.DrawCircleLines(cx, cy, float32(f.GoalRadius), withAlpha(TargetColor, 76))
	}
	// Glow
	for i := 3; i >= 1; i-- {
		rl.DrawCircle(cx, cy, targetDrawRadius+float32(i)*4, withAlpha(TargetColor, 20))
	}
	rl.DrawCircle(cx, cy, targetDrawRadius, TargetColor)
}

func (a *Arena) drawRobot(f game.Frame) {
	c := a.point(f.Pose.X, f.Pose.Y)
	r := float32(f.Radius)
	rl.DrawCircle(int32(c.X), int32(c.Y), r, RobotFill)
	rl.DrawCircleLines(int32(c.X), int32(c.Y), r, RobotStroke)

	tip := a.point(
		f.Pose.X+math.Cos(f.Pose.Heading)*f.Radius,
		f.Pose.Y+math.Sin(f.Pose.Heading)*f.Radius,
	)
	rl.DrawLineEx(c, tip, 3, HeadingColor)
}

func withAlpha(c rl.Color, alpha uint8) rl.Color {
	c.A = alpha
	return c
}

func (a *Arena) point(x, y float64) rl.Vector2 {
	return rl.Vector2{X: a.OffsetX + float32(x), Y: a.OffsetY + float32(y)}
}

// ToArena converts a screen position into arena coordinates and reports
// whether it falls inside an arena of the given size.
func (a *Arena) ToArena(screen rl.Vector2, width, height float64) (x, y float64, ok bool) {
	x = float64(screen.X - a.OffsetX)
	y = float64(screen.Y - a.OffsetY)
	return x, y, x >= 0 && y >= 0 && x <= width && y <= height
}
