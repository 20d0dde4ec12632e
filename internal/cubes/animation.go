package cubes

import (
	"math"

	"cubevox/internal/engine"
	"cubevox/internal/mathutil"

	"github.com/go-gl/mathgl/mgl32"
)

// AnimController poses a bone hierarchy for time t (seconds since start).
type AnimController interface {
	Update(t float64, root *Bone)
}

// AnimatedModel pairs a model with the controller that poses it.
type AnimatedModel struct {
	Model      *Model
	Controller AnimController
}

// NewAnimatedModel wraps model with controller.
func NewAnimatedModel(model *Model, controller AnimController) *AnimatedModel {
	return &AnimatedModel{Model: model, Controller: controller}
}

// Update poses the hierarchy for time t and re-bakes the model.
func (a *AnimatedModel) Update(dev engine.Device, t float64) {
	a.Controller.Update(t, a.Model.Root)
	a.Model.Update(dev)
}

// Clone copies the model. Controllers are shared; stateful controllers
// should be replaced on the copy.
func (a *AnimatedModel) Clone(dev engine.Device) *AnimatedModel {
	return &AnimatedModel{Model: a.Model.Clone(dev), Controller: a.Controller}
}

// SwingController is a walk cycle for humanoid models. The root spins at
// Spin degrees per second; bones labeled "left leg", "right leg",
// "left arm" and "right arm" swing about X with their children bending.
type SwingController struct {
	Spin  float64 // degrees per second
	Speed float64 // swing angular frequency
}

// DefaultSwing matches the walking demo: 45°/s spin, 5 rad/s swing.
var DefaultSwing = SwingController{Spin: 45, Speed: 5}

var xAxis = mgl32.Vec3{1, 0, 0}

// Update implements AnimController.
func (s SwingController) Update(t float64, root *Bone) {
	if root == nil {
		return
	}
	root.Transform.Rotation = mathutil.EulerDegrees(0, float32(t*s.Spin), 0)

	sin := float32(math.Sin(t * s.Speed))
	for _, b := range root.Children {
		var limb, joint float32
		switch b.Label {
		case "left leg":
			limb, joint = sin*30, sin*10-10
		case "right leg":
			limb, joint = -sin*30, -sin*10-10
		case "left arm":
			limb, joint = sin*30, sin*10+10
		case "right arm":
			limb, joint = -sin*30, -sin*10+10
		default:
			continue
		}
		b.Transform.Rotation = mathutil.AxisDegrees(limb, xAxis)
		for _, c := range b.Children {
			c.Transform.Rotation = mathutil.AxisDegrees(joint, xAxis)
		}
	}
}
