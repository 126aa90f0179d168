package physics

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

const tol = 1e-4

// addFloor registers a wide slab whose top face sits at y = 0.
func addFloor(w World) Collider {
	floor := game_object.NewGameObject(game_object.WithName("floor"), game_object.WithPosition(0, -0.5, 0))
	c := NewBoxCollider(floor, WithSize(100, 1, 100))
	w.AddCollider(c)
	return c
}

func addBox(w World, x, y, z, size float32, layer common.Layer) Collider {
	obj := game_object.NewGameObject(game_object.WithPosition(x, y, z), game_object.WithLayer(layer))
	c := NewBoxCollider(obj, WithSize(size, size, size))
	w.AddCollider(c)
	return c
}

func approxEqual(t *testing.T, got, want float32, field string) {
	t.Helper()
	if !mgl32.FloatEqualThreshold(got, want, tol) {
		t.Fatalf("%s = %.6f, want %.6f", field, got, want)
	}
}

func TestRaycastHitsNearest(t *testing.T) {
	w := NewWorld()
	far := addBox(w, 0, 0, -10, 1, common.LayerDefault)
	near := addBox(w, 0, 0, -5, 1, common.LayerDefault)

	hit, ok := w.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 20, common.AllLayers)
	if !ok {
		t.Fatal("Raycast() missed")
	}
	if hit.Collider != near {
		t.Errorf("Raycast() hit %v, want nearest collider", hit.Object.Position())
	}
	if hit.Collider == far {
		t.Errorf("Raycast() hit far collider")
	}
	approxEqual(t, hit.Distance, 4.5, "Distance")
	if !hit.Point.ApproxEqualThreshold(mgl32.Vec3{0, 0, -4.5}, tol) {
		t.Errorf("Point = %v, want (0,0,-4.5)", hit.Point)
	}
	if !hit.Normal.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, tol) {
		t.Errorf("Normal = %v, want +Z", hit.Normal)
	}
}

func TestRaycastFilters(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(w World)
		origin      mgl32.Vec3
		direction   mgl32.Vec3
		maxDistance float32
		mask        common.LayerMask
		wantHit     bool
	}{
		{
			name:        "beyond max distance",
			setup:       func(w World) { addBox(w, 0, 0, -5, 1, common.LayerDefault) },
			direction:   mgl32.Vec3{0, 0, -1},
			maxDistance: 3,
			mask:        common.AllLayers,
		},
		{
			name:        "within max distance",
			setup:       func(w World) { addBox(w, 0, 0, -3, 1, common.LayerDefault) },
			direction:   mgl32.Vec3{0, 0, -1},
			maxDistance: 3,
			mask:        common.AllLayers,
			wantHit:     true,
		},
		{
			name:        "layer masked out",
			setup:       func(w World) { addBox(w, 0, 0, -2, 1, common.LayerDefault) },
			direction:   mgl32.Vec3{0, 0, -1},
			maxDistance: 3,
			mask:        common.LayerMaskOf(common.LayerInspectable),
		},
		{
			name:        "layer selected",
			setup:       func(w World) { addBox(w, 0, 0, -2, 1, common.LayerInspectable) },
			direction:   mgl32.Vec3{0, 0, -1},
			maxDistance: 3,
			mask:        common.LayerMaskOf(common.LayerInspectable),
			wantHit:     true,
		},
		{
			name:        "origin inside collider",
			setup:       func(w World) { addBox(w, 0, 0, 0, 2, common.LayerDefault) },
			direction:   mgl32.Vec3{0, 0, -1},
			maxDistance: 3,
			mask:        common.AllLayers,
		},
		{
			name:        "pointing away",
			setup:       func(w World) { addBox(w, 0, 0, -2, 1, common.LayerDefault) },
			direction:   mgl32.Vec3{0, 0, 1},
			maxDistance: 3,
			mask:        common.AllLayers,
		},
		{
			name:        "zero direction",
			setup:       func(w World) { addBox(w, 0, 0, -2, 1, common.LayerDefault) },
			maxDistance: 3,
			mask:        common.AllLayers,
		},
		{
			name: "disabled object",
			setup: func(w World) {
				c := addBox(w, 0, 0, -2, 1, common.LayerDefault)
				c.Object().SetEnabled(false)
			},
			direction:   mgl32.Vec3{0, 0, -1},
			maxDistance: 3,
			mask:        common.AllLayers,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld()
			tt.setup(w)
			_, ok := w.Raycast(tt.origin, tt.direction, tt.maxDistance, tt.mask)
			if ok != tt.wantHit {
				t.Errorf("Raycast() hit = %v, want %v", ok, tt.wantHit)
			}
		})
	}
}

func TestRaycastDownToFloor(t *testing.T) {
	w := NewWorld()
	addFloor(w)

	hit, ok := w.Raycast(mgl32.Vec3{3, 1, 2}, mgl32.Vec3{0, -1, 0}, 2.1, common.AllLayers)
	if !ok {
		t.Fatal("Raycast() missed the floor")
	}
	approxEqual(t, hit.Distance, 1, "Distance")
	if !hit.Normal.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, tol) {
		t.Errorf("Normal = %v, want +Y", hit.Normal)
	}
}

func TestRemoveColliders(t *testing.T) {
	w := NewWorld()
	c := addBox(w, 0, 0, -2, 1, common.LayerDefault)
	w.AddCollider(c)
	if n := len(w.Colliders()); n != 1 {
		t.Fatalf("len(Colliders()) = %d after duplicate add, want 1", n)
	}

	w.RemoveCollider(c)
	if _, ok := w.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 5, common.AllLayers); ok {
		t.Errorf("Raycast() hit a removed collider")
	}

	d := addBox(w, 0, 0, -2, 1, common.LayerDefault)
	w.AddCollider(NewBoxCollider(d.Object(), WithSize(3, 3, 3)))
	w.RemoveObject(d.Object())
	if n := len(w.Colliders()); n != 0 {
		t.Errorf("len(Colliders()) = %d after RemoveObject, want 0", n)
	}
}

func TestCharacterBodyRestsOnFloor(t *testing.T) {
	w := NewWorld()
	addFloor(w)
	obj := game_object.NewGameObject(game_object.WithPosition(0, 1, 0))
	body := NewCharacterBody(obj, w, WithHeight(2), WithRadius(0.5))

	start := obj.Position()
	for i := 0; i < 120; i++ {
		applied := body.Move(mgl32.Vec3{0, -2.0 / 60, 0})
		if applied != (mgl32.Vec3{}) {
			t.Fatalf("frame %d: Move() applied %v, want zero", i, applied)
		}
	}
	if obj.Position() != start {
		t.Errorf("Position() = %v, want unchanged %v", obj.Position(), start)
	}
}

func TestCharacterBodyLandsFlush(t *testing.T) {
	w := NewWorld()
	addFloor(w)
	obj := game_object.NewGameObject(game_object.WithPosition(0, 1.3, 0))
	body := NewCharacterBody(obj, w, WithHeight(2))

	applied := body.Move(mgl32.Vec3{0, -1, 0})
	approxEqual(t, applied.Y(), -0.3, "applied.Y")
	approxEqual(t, obj.Position().Y(), 1, "Position.Y")
}

func TestCharacterBodyStopsAtWall(t *testing.T) {
	w := NewWorld()
	addFloor(w)
	wall := game_object.NewGameObject(game_object.WithPosition(2, 1, 0))
	w.AddCollider(NewBoxCollider(wall, WithSize(1, 4, 4)))

	obj := game_object.NewGameObject(game_object.WithPosition(0, 1, 0))
	body := NewCharacterBody(obj, w, WithRadius(0.5))

	applied := body.Move(mgl32.Vec3{5, 0, 1})
	// wall face at x = 1.5, body half width 0.5
	approxEqual(t, applied.X(), 1, "applied.X")
	approxEqual(t, applied.Z(), 1, "applied.Z")
	approxEqual(t, obj.Position().X(), 1, "Position.X")
}

func TestCharacterBodyIgnoresNonSolid(t *testing.T) {
	w := NewWorld()
	ghost := game_object.NewGameObject(game_object.WithPosition(2, 0, 0))
	w.AddCollider(NewBoxCollider(ghost, WithSize(1, 4, 4), WithSolid(false)))

	obj := game_object.NewGameObject()
	body := NewCharacterBody(obj, w)
	applied := body.Move(mgl32.Vec3{5, 0, 0})
	approxEqual(t, applied.X(), 5, "applied.X")

	if _, ok := w.Raycast(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 3, common.AllLayers); !ok {
		t.Errorf("non-solid collider should still answer raycasts")
	}
}

func TestCharacterBodyHeightFloor(t *testing.T) {
	obj := game_object.NewGameObject()
	body := NewCharacterBody(obj, NewWorld(), WithRadius(0.4))
	body.SetHeight(0.1)
	approxEqual(t, body.Height(), 0.8, "Height")
}

func TestCharacterBodyGrowsOutOfFloor(t *testing.T) {
	w := NewWorld()
	addFloor(w)
	obj := game_object.NewGameObject(game_object.WithPosition(0, 0.25, 0))
	body := NewCharacterBody(obj, w, WithHeight(0.5), WithRadius(0.2))
	approxEqual(t, obj.Position().Y(), 0.25, "Position.Y before")

	body.SetHeight(1.5)
	approxEqual(t, obj.Position().Y(), 0.75, "Position.Y after")

	if applied := body.Move(mgl32.Vec3{0, -0.1, 0}); applied != (mgl32.Vec3{}) {
		t.Errorf("Move() after growing = %v, want the floor to hold", applied)
	}
}

func TestCharacterBodyGrowthFitsUnderCeiling(t *testing.T) {
	w := NewWorld()
	addFloor(w)
	beam := game_object.NewGameObject(game_object.WithName("beam"), game_object.WithPosition(0, 1.6, 0))
	w.AddCollider(NewBoxCollider(beam, WithSize(4, 0.4, 4)))

	obj := game_object.NewGameObject(game_object.WithPosition(0, 0.25, 0))
	body := NewCharacterBody(obj, w, WithHeight(0.5), WithRadius(0.2))

	body.SetHeight(2)
	// floor top 0, beam underside 1.4
	approxEqual(t, body.Height(), 1.4, "Height")
	approxEqual(t, obj.Position().Y(), 0.7, "Position.Y")

	if applied := body.Move(mgl32.Vec3{0, -1, 0}); applied != (mgl32.Vec3{}) {
		t.Errorf("Move(down) = %v, want the floor to hold", applied)
	}
	if applied := body.Move(mgl32.Vec3{0, 1, 0}); applied != (mgl32.Vec3{}) {
		t.Errorf("Move(up) = %v, want the beam to hold", applied)
	}

	body.SetHeight(2)
	approxEqual(t, body.Height(), 1.4, "Height after a second grow")
	approxEqual(t, obj.Position().Y(), 0.7, "Position.Y after a second grow")
}

func TestCharacterBodyPenetratingMovesOutOnly(t *testing.T) {
	w := NewWorld()
	addFloor(w)
	// bottom at -0.2, inside the floor slab
	obj := game_object.NewGameObject(game_object.WithPosition(0, 0.8, 0))
	body := NewCharacterBody(obj, w, WithHeight(2), WithRadius(0.2))

	if applied := body.Move(mgl32.Vec3{0, -0.5, 0}); applied != (mgl32.Vec3{}) {
		t.Errorf("Move(down) while penetrating = %v, want zero", applied)
	}
	applied := body.Move(mgl32.Vec3{0, 0.5, 0})
	approxEqual(t, applied.Y(), 0.5, "applied.Y out of the floor")
}
