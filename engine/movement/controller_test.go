package movement

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fps/engine/input"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/go-gl/mathgl/mgl32"
)

const tol = 1e-4

// fakeGateway returns whatever the test stores in it.
type fakeGateway struct {
	move   mgl32.Vec2
	mouse  mgl32.Vec2
	crouch bool
}

var _ input.Gateway = &fakeGateway{}

func (g *fakeGateway) MoveInput() mgl32.Vec2 { return g.move }
func (g *fakeGateway) MouseInput() mgl32.Vec2 { return g.mouse }
func (g *fakeGateway) CrouchInput() bool { return false }
func (g *fakeGateway) CrouchHeld() bool { return g.crouch }
func (g *fakeGateway) InteractInput(_ int) bool { return false }
func (g *fakeGateway) ScrollInput() float32 { return 0 }
func (g *fakeGateway) Configure(...input.GatewayBuilderOption) {}

// planeWorld is an infinite floor at y = 0. Only vertical rays are answered.
type planeWorld struct{}

var _ physics.World = planeWorld{}

func (planeWorld) Raycast(origin, direction mgl32.Vec3, maxDistance float32, _ common.LayerMask) (physics.RaycastHit, bool) {
	if direction.Y() >= 0 || origin.Y() < 0 {
		return physics.RaycastHit{}, false
	}
	if origin.Y() > maxDistance {
		return physics.RaycastHit{}, false
	}
	return physics.RaycastHit{
		Point:    mgl32.Vec3{origin.X(), 0, origin.Z()},
		Normal:   common.WorldUp,
		Distance: origin.Y(),
	}, true
}
func (planeWorld) AddCollider(physics.Collider) {}
func (planeWorld) RemoveCollider(physics.Collider) {}
func (planeWorld) RemoveObject(game_object.GameObject) {}
func (planeWorld) Colliders() []physics.Collider { return nil }
func (planeWorld) SkinWidth() float32 { return 0 }

// planeBody is a character body that cannot sink below the plane at y = 0.
type planeBody struct {
	obj    game_object.GameObject
	height float32
}

var _ physics.CharacterBody = &planeBody{}

func (b *planeBody) Object() game_object.GameObject { return b.obj }
func (b *planeBody) Height() float32 { return b.height }
func (b *planeBody) SetHeight(h float32) { b.height = h }
func (b *planeBody) Radius() float32 { return 0.5 }
func (b *planeBody) Move(delta mgl32.Vec3) mgl32.Vec3 {
	pos := b.obj.Position()
	next := pos.Add(delta)
	if floor := b.height / 2; next.Y() < floor {
		next[1] = max(floor, pos.Y())
	}
	applied := next.Sub(pos)
	b.obj.Translate(applied)
	return applied
}

type rig struct {
	body   physics.CharacterBody
	camera game_object.GameObject
	input  *fakeGateway
	ctrl   Controller
}

func newPlaneRig(t *testing.T, y float32, options ...ControllerBuilderOption) *rig {
	t.Helper()
	obj := game_object.NewGameObject(game_object.WithName("player"), game_object.WithPosition(0, y, 0))
	cam := game_object.NewGameObject(game_object.WithName("camera"), game_object.WithParent(obj), game_object.WithPosition(0, 0.8, 0))
	body := &planeBody{obj: obj, height: 2}
	in := &fakeGateway{}
	ctrl, err := NewController(body, cam, in, planeWorld{}, options...)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	return &rig{body: body, camera: cam, input: in, ctrl: ctrl}
}

func newWorldRig(t *testing.T, w physics.World, x, y, z float32, options ...ControllerBuilderOption) *rig {
	t.Helper()
	obj := game_object.NewGameObject(game_object.WithName("player"), game_object.WithPosition(x, y, z))
	cam := game_object.NewGameObject(game_object.WithName("camera"), game_object.WithParent(obj), game_object.WithPosition(0, 0.8, 0))
	body := physics.NewCharacterBody(obj, w, physics.WithHeight(2), physics.WithRadius(0.2))
	in := &fakeGateway{}
	ctrl, err := NewController(body, cam, in, w, options...)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	return &rig{body: body, camera: cam, input: in, ctrl: ctrl}
}

func newFloorWorld() physics.World {
	w := physics.NewWorld()
	floor := game_object.NewGameObject(game_object.WithName("floor"), game_object.WithPosition(0, -0.5, 0))
	w.AddCollider(physics.NewBoxCollider(floor, physics.WithSize(100, 1, 100)))
	return w
}

func approxEqual(t *testing.T, got, want float32, field string) {
	t.Helper()
	if !mgl32.FloatEqualThreshold(got, want, tol) {
		t.Errorf("%s = %v, want %v", field, got, want)
	}
}

func TestNewControllerErrors(t *testing.T) {
	obj := game_object.NewGameObject()
	cam := game_object.NewGameObject(game_object.WithParent(obj))
	body := &planeBody{obj: obj, height: 2}
	in := &fakeGateway{}

	tests := []struct {
		name    string
		body    physics.CharacterBody
		camera  game_object.GameObject
		input   input.Gateway
		world   physics.World
		options []ControllerBuilderOption
		want    error
	}{
		{"nil body", nil, cam, in, planeWorld{}, nil, ErrNilBody},
		{"nil camera", body, nil, in, planeWorld{}, nil, ErrNilCamera},
		{"nil input", body, cam, nil, planeWorld{}, nil, ErrNilInput},
		{"nil world", body, cam, in, nil, nil, ErrNilWorld},
		{"crouch above standing", body, cam, in, planeWorld{}, []ControllerBuilderOption{WithCrouchHeight(2.5)}, ErrInvalidCrouchHeight},
		{"crouch zero", body, cam, in, planeWorld{}, []ControllerBuilderOption{WithCrouchHeight(0)}, ErrInvalidCrouchHeight},
		{"valid", body, cam, in, planeWorld{}, []ControllerBuilderOption{WithCrouchHeight(1)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, err := NewController(tt.body, tt.camera, tt.input, tt.world, tt.options...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewController() error = %v, want %v", err, tt.want)
			}
			if tt.want == nil && ctrl == nil {
				t.Fatalf("NewController() returned nil controller without error")
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	r := newPlaneRig(t, 1)
	if got := r.ctrl.VerticalVelocity(); got != -2 {
		t.Errorf("VerticalVelocity() = %v, want -2", got)
	}
	if got := r.ctrl.StandingHeight(); got != 2 {
		t.Errorf("StandingHeight() = %v, want 2", got)
	}
	if r.ctrl.Crouching() || r.ctrl.Restricted() || r.ctrl.Landed() {
		t.Errorf("fresh controller reports crouching/restricted/landed")
	}
}

func TestPitchStaysClamped(t *testing.T) {
	r := newPlaneRig(t, 1)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		r.input.mouse = mgl32.Vec2{rng.Float32()*20 - 10, rng.Float32()*200 - 100}
		r.ctrl.Update(1.0 / 60)

		pitch := r.ctrl.Pitch()
		if pitch < -90 || pitch > 90 {
			t.Fatalf("frame %d: Pitch() = %v, outside [-90, 90]", i, pitch)
		}
		want := mgl32.QuatRotate(mgl32.DegToRad(-pitch), common.WorldRight)
		if got := r.camera.LocalRotation(); !got.ApproxEqualThreshold(want, 1e-5) {
			t.Fatalf("frame %d: camera LocalRotation() = %v, want %v", i, got, want)
		}
	}
}

func TestRotateYawsBodyAndPitchesCamera(t *testing.T) {
	r := newPlaneRig(t, 1)

	r.input.mouse = mgl32.Vec2{1, 0}
	r.ctrl.Update(1.0 / 60)
	fwd := r.body.Object().Forward()
	approxEqual(t, fwd.X(), float32(math.Sin(3*math.Pi/180)), "body Forward.X after looking right")
	approxEqual(t, r.ctrl.Pitch(), 0, "Pitch after horizontal look")

	r.input.mouse = mgl32.Vec2{0, 10}
	r.ctrl.Update(1.0 / 60)
	approxEqual(t, r.ctrl.Pitch(), -30, "Pitch after looking up")
	approxEqual(t, r.camera.Forward().Y(), 0.5, "camera Forward.Y after looking up")

	r.input.mouse = mgl32.Vec2{}
	r.ctrl.Update(1.0 / 60)
	approxEqual(t, r.ctrl.Pitch(), -30, "Pitch with no input")
}

func TestLandingResetsVelocityOnce(t *testing.T) {
	r := newPlaneRig(t, 5)
	obj := r.body.Object()
	dt := float32(0.02)

	landings := 0
	wasLanded := false
	for i := 0; i < 200; i++ {
		r.ctrl.Update(dt)
		if r.ctrl.Landed() && !wasLanded {
			landings++
			if v := r.ctrl.VerticalVelocity(); v != -2 {
				t.Fatalf("frame %d: VerticalVelocity() at landing = %v, want exactly -2", i, v)
			}
		}
		if wasLanded && r.ctrl.VerticalVelocity() != -2 {
			t.Fatalf("frame %d: VerticalVelocity() = %v while grounded, want -2", i, r.ctrl.VerticalVelocity())
		}
		wasLanded = r.ctrl.Landed()
	}
	if landings != 1 {
		t.Fatalf("landings = %d, want 1", landings)
	}
	approxEqual(t, obj.Position().Y(), 1, "resting Position.Y")

	// knock the body airborne and let it land again
	obj.SetPosition(mgl32.Vec3{0, 10, 0})
	r.ctrl.Update(dt)
	if r.ctrl.Landed() {
		t.Errorf("Landed() = true while airborne")
	}
	approxEqual(t, r.ctrl.VerticalVelocity(), -2-9.81*dt, "VerticalVelocity after one airborne frame")

	for i := 0; i < 300 && !r.ctrl.Landed(); i++ {
		r.ctrl.Update(dt)
	}
	if !r.ctrl.Landed() || r.ctrl.VerticalVelocity() != -2 {
		t.Errorf("second landing: Landed() = %v, VerticalVelocity() = %v", r.ctrl.Landed(), r.ctrl.VerticalVelocity())
	}
}

func TestRestrictedSkipsEverything(t *testing.T) {
	r := newPlaneRig(t, 5)
	r.ctrl.RestrictMovement(true)
	r.input.move = mgl32.Vec2{0, 1}
	r.input.mouse = mgl32.Vec2{5, 5}
	r.input.crouch = true

	start := r.body.Object().Position()
	for i := 0; i < 30; i++ {
		r.ctrl.Update(1.0 / 60)
	}
	if got := r.body.Object().Position(); got != start {
		t.Errorf("Position() = %v while restricted, want %v", got, start)
	}
	if r.ctrl.Pitch() != 0 || r.ctrl.Height() != 2 || r.ctrl.VerticalVelocity() != -2 {
		t.Errorf("state changed while restricted: pitch %v, height %v, velocity %v",
			r.ctrl.Pitch(), r.ctrl.Height(), r.ctrl.VerticalVelocity())
	}

	r.ctrl.RestrictMovement(false)
	r.ctrl.Update(1.0 / 60)
	if r.body.Object().Position() == start {
		t.Errorf("Position() unchanged after lifting the restriction")
	}
}

func TestMoveFollowsBodyYaw(t *testing.T) {
	w := newFloorWorld()
	r := newWorldRig(t, w, 0, 1, 0)
	r.body.Object().Rotate(common.WorldUp, -90)
	r.input.move = mgl32.Vec2{0, 1}

	for i := 0; i < 60; i++ {
		r.ctrl.Update(1.0 / 60)
	}
	pos := r.body.Object().Position()
	approxEqual(t, pos.X(), 5, "Position.X after walking forward facing +X")
	approxEqual(t, pos.Z(), 0, "Position.Z")
	approxEqual(t, pos.Y(), 1, "Position.Y")
}

func TestCrouchIdempotentAtRest(t *testing.T) {
	w := newFloorWorld()
	r := newWorldRig(t, w, 0, 1, 0)
	r.input.crouch = true

	for i := 0; i < 300; i++ {
		r.ctrl.Update(0.05)
		if h := r.ctrl.Height(); h < 0.5 || h > 2 {
			t.Fatalf("frame %d: Height() = %v outside [0.5, 2]", i, h)
		}
	}
	if !common.Approximately(r.ctrl.Height(), 0.5) {
		t.Fatalf("Height() = %v after holding crouch, want 0.5", r.ctrl.Height())
	}
	if !r.ctrl.Crouching() {
		t.Errorf("Crouching() = false at crouch height")
	}

	height := r.ctrl.Height()
	pos := r.body.Object().Position()
	camPos := r.camera.LocalPosition()
	for i := 0; i < 60; i++ {
		r.ctrl.Update(0.05)
	}
	if r.ctrl.Height() != height || r.body.Height() != height {
		t.Errorf("Height() drifted at rest: %v -> %v", height, r.ctrl.Height())
	}
	if r.body.Object().Position() != pos {
		t.Errorf("Position() drifted at rest: %v -> %v", pos, r.body.Object().Position())
	}
	if r.camera.LocalPosition() != camPos {
		t.Errorf("camera LocalPosition() drifted at rest: %v -> %v", camPos, r.camera.LocalPosition())
	}
	approxEqual(t, camPos.Y(), 0.8-(2-height)/2, "camera LocalPosition.Y while crouched")

	r.input.crouch = false
	for i := 0; i < 300; i++ {
		r.ctrl.Update(0.05)
	}
	approxEqual(t, r.ctrl.Height(), 2, "Height after standing")
	approxEqual(t, r.body.Object().Position().Y(), 1, "Position.Y after standing")
	approxEqual(t, r.camera.LocalPosition().Y(), 0.8, "camera LocalPosition.Y after standing")
}

func TestCeilingBlocksStandUp(t *testing.T) {
	w := newFloorWorld()
	// low ceiling with its underside at y = 1 over x in [2, 4]
	slab := game_object.NewGameObject(game_object.WithName("ceiling"), game_object.WithPosition(3, 1.5, 0))
	w.AddCollider(physics.NewBoxCollider(slab, physics.WithSize(2, 1, 2)))

	r := newWorldRig(t, w, 0, 1, 0)
	r.input.crouch = true
	for i := 0; i < 200; i++ {
		r.ctrl.Update(0.02)
	}
	obj := r.body.Object()
	obj.SetPosition(mgl32.Vec3{3, obj.Position().Y(), 0})

	r.input.crouch = false
	for i := 0; i < 500; i++ {
		r.ctrl.Update(0.02)
		h := r.ctrl.Height()
		if h < 0.5 || h > 2 {
			t.Fatalf("frame %d: Height() = %v outside [0.5, 2]", i, h)
		}
		if top := obj.Position().Y() + h/2; top > 1+tol {
			t.Fatalf("frame %d: body top %v pushed into the ceiling", i, top)
		}
	}
	if h := r.ctrl.Height(); h < 0.8 || h > 1 {
		t.Errorf("Height() under the ceiling = %v, want within [0.8, 1]", h)
	}
	if !r.ctrl.Crouching() {
		t.Errorf("Crouching() = false under a low ceiling")
	}
}

func TestStandUpHitchUnderBeamKeepsFloor(t *testing.T) {
	w := newFloorWorld()
	// beam with its underside at y = 1.4 over x in [1, 5]
	beam := game_object.NewGameObject(game_object.WithName("beam"), game_object.WithPosition(3, 1.6, 0))
	w.AddCollider(physics.NewBoxCollider(beam, physics.WithSize(4, 0.4, 4)))

	r := newWorldRig(t, w, 0, 1, 0)
	r.input.crouch = true
	for i := 0; i < 200; i++ {
		r.ctrl.Update(1.0 / 60)
	}
	obj := r.body.Object()
	obj.SetPosition(mgl32.Vec3{3, obj.Position().Y(), 0})

	check := func(frame int) {
		t.Helper()
		h := r.ctrl.Height()
		bottom := obj.Position().Y() - h/2
		if h < 0.5-tol || h > 1.4+tol {
			t.Fatalf("frame %d: Height() = %v outside [0.5, 1.4]", frame, h)
		}
		if bottom < -tol {
			t.Fatalf("frame %d: body bottom %v sank into the floor", frame, bottom)
		}
		if top := bottom + h; top > 1.4+tol {
			t.Fatalf("frame %d: body top %v pushed into the beam", frame, top)
		}
	}

	r.input.crouch = false
	r.ctrl.Update(1.0 / 3)
	check(0)
	for i := 1; i <= 120; i++ {
		r.ctrl.Update(1.0 / 60)
		check(i)
	}
	if !r.ctrl.Landed() {
		t.Errorf("Landed() = false after settling under the beam")
	}
}

func TestZeroInputNoFallThrough(t *testing.T) {
	w := newFloorWorld()
	r := newWorldRig(t, w, 0, 1, 0)
	start := r.body.Object().Position()

	for i := 0; i < 600; i++ {
		r.ctrl.Update(1.0 / 60)
		if got := r.body.Object().Position(); got != start {
			t.Fatalf("frame %d: Position() = %v, want %v", i, got, start)
		}
		if v := r.ctrl.VerticalVelocity(); v != -2 {
			t.Fatalf("frame %d: VerticalVelocity() = %v, want -2", i, v)
		}
	}
	if !r.ctrl.Landed() {
		t.Errorf("Landed() = false on the floor")
	}
}

func TestConfigure(t *testing.T) {
	w := newFloorWorld()
	r := newWorldRig(t, w, 0, 1, 0)

	if err := r.ctrl.Configure(WithCrouchHeight(3)); !errors.Is(err, ErrInvalidCrouchHeight) {
		t.Fatalf("Configure(WithCrouchHeight(3)) error = %v, want ErrInvalidCrouchHeight", err)
	}
	if err := r.ctrl.Configure(WithMoveSpeed(10), WithCrouchHeight(1)); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	r.input.move = mgl32.Vec2{0, 1}
	for i := 0; i < 30; i++ {
		r.ctrl.Update(1.0 / 60)
	}
	approxEqual(t, r.body.Object().Position().Z(), -5, "Position.Z after half a second at speed 10")

	r.input.move = mgl32.Vec2{}
	r.input.crouch = true
	for i := 0; i < 300; i++ {
		r.ctrl.Update(0.05)
	}
	approxEqual(t, r.ctrl.Height(), 1, "Height with reconfigured crouch height")
}

func TestConfigureRaisesCrouchedHeight(t *testing.T) {
	w := newFloorWorld()
	r := newWorldRig(t, w, 0, 1, 0)
	r.input.crouch = true
	for i := 0; i < 300; i++ {
		r.ctrl.Update(0.05)
	}
	approxEqual(t, r.ctrl.Height(), 0.5, "crouched Height")

	if err := r.ctrl.Configure(WithCrouchHeight(1)); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	approxEqual(t, r.ctrl.Height(), 1, "Height right after Configure")
	approxEqual(t, r.body.Height(), 1, "body Height right after Configure")
	approxEqual(t, r.camera.LocalPosition().Y(), 0.3, "camera local Y")
	if bottom := r.body.Object().Position().Y() - 0.5; bottom < -tol {
		t.Errorf("body bottom %v inside the floor after growing", bottom)
	}
}
