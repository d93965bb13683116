package camera

import (
	"math"
	"testing"

	"github.com/gonewx/rainbow/pkg/vmath"
)

func defaultCamera() Camera {
	return Camera{
		Position: vmath.V3(0, 0, -100),
		Target:   vmath.V3(0, 0, 0),
		Up:       vmath.V3(0, 1, 0),
		FOVDeg:   80,
		Aspect:   1280.0 / 720.0,
		Near:     1,
		Far:      300,
	}
}

func TestProject_TargetAtScreenCenter(t *testing.T) {
	c := defaultCamera()
	screen, depth, ok := c.Project(vmath.Vec3{}, 1280, 720)
	if !ok {
		t.Fatal("target should be visible")
	}
	if math.Abs(screen.X-640) > 1e-6 || math.Abs(screen.Y-360) > 1e-6 {
		t.Errorf("screen = %+v, want (640, 360)", screen)
	}
	if math.Abs(depth-100) > 1e-6 {
		t.Errorf("depth = %v, want 100", depth)
	}
}

func TestProject_UpIsScreenUp(t *testing.T) {
	c := defaultCamera()
	screen, _, ok := c.Project(vmath.V3(0, 10, 0), 1280, 720)
	if !ok {
		t.Fatal("point should be visible")
	}
	if screen.Y >= 360 {
		t.Errorf("world +Y should appear above center, got y=%v", screen.Y)
	}
}

func TestProject_BehindCamera(t *testing.T) {
	c := defaultCamera()
	if _, _, ok := c.Project(vmath.V3(0, 0, -150), 1280, 720); ok {
		t.Error("point behind camera should not be projected")
	}
}

func TestUnproject_RoundTrip(t *testing.T) {
	c := defaultCamera()
	c.Position = vmath.V3(30, 40, -80)

	for _, world := range []vmath.Vec3{
		vmath.V3(0, 0, 0),
		vmath.V3(10, -5, 3),
		vmath.V3(-20, 12, 40),
	} {
		clip, w := c.ViewProjection().MulPoint(world)
		ndc := clip.Scale(1 / w)
		back, ok := c.Unproject(ndc)
		if !ok {
			t.Fatalf("Unproject failed for %+v", world)
		}
		if !back.ApproxEqual(world, 1e-6) {
			t.Errorf("round trip %+v -> %+v", world, back)
		}
	}
}

func TestScreenToWorld_CenterHitsOrigin(t *testing.T) {
	c := defaultCamera()
	p, ok := ScreenToWorld(640, 360, 1280, 720, c, 0)
	if !ok {
		t.Fatal("ScreenToWorld failed")
	}
	if !p.ApproxEqual(vmath.Vec3{}, 1e-6) {
		t.Errorf("center click = %+v, want origin", p)
	}
}

func TestScreenToWorld_ProjectsBack(t *testing.T) {
	c := defaultCamera()
	for _, click := range []vmath.Vec2{{X: 100, Y: 100}, {X: 900, Y: 600}, {X: 640, Y: 20}} {
		p, ok := ScreenToWorld(click.X, click.Y, 1280, 720, c, 0)
		if !ok {
			t.Fatalf("ScreenToWorld(%+v) failed", click)
		}
		if math.Abs(p.Z) > 1e-6 {
			t.Errorf("z = %v, want on plane z=0", p.Z)
		}
		screen, _, ok := c.Project(p, 1280, 720)
		if !ok {
			t.Fatalf("projected point not visible")
		}
		if math.Abs(screen.X-click.X) > 1e-4 || math.Abs(screen.Y-click.Y) > 1e-4 {
			t.Errorf("click %+v -> world %+v -> screen %+v", click, p, screen)
		}
	}
}

func TestScreenToWorld_ParallelRay(t *testing.T) {
	// 相机在平面内看向 +X，射线与 z=0 平行
	c := defaultCamera()
	c.Position = vmath.V3(-100, 0, 0)
	if _, ok := ScreenToWorld(640, 360, 1280, 720, c, 0); ok {
		t.Error("parallel ray should not intersect")
	}
}

func TestScreenToWorld_InvalidViewport(t *testing.T) {
	if _, ok := ScreenToWorld(0, 0, 0, 720, defaultCamera(), 0); ok {
		t.Error("zero width viewport should fail")
	}
}

func TestPixelsPerUnit(t *testing.T) {
	// fov=90 时 tan(45°)=1，深度 1 处视口高度覆盖 2 个单位
	if got := PixelsPerUnit(90, 1, 720); math.Abs(got-360) > 1e-9 {
		t.Errorf("PixelsPerUnit = %v, want 360", got)
	}
	if got := PixelsPerUnit(90, 2, 720); math.Abs(got-180) > 1e-9 {
		t.Errorf("PixelsPerUnit at depth 2 = %v, want 180", got)
	}
	if got := PixelsPerUnit(90, 0, 720); got != 0 {
		t.Errorf("PixelsPerUnit at depth 0 = %v, want 0", got)
	}
}
