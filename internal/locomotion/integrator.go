package locomotion

import "github.com/go-gl/mathgl/mgl32"

// Mover resolves a requested displacement against the world.
type Mover interface {
	Move(displacement mgl32.Vec3)
}

// Integrator turns a velocity into a per-tick displacement request.
type Integrator struct {
	mover Mover
}

// NewIntegrator creates an integrator that forwards to mover.
func NewIntegrator(mover Mover) *Integrator {
	return &Integrator{mover: mover}
}

// Apply requests a move of movement*dt. Collision response is the mover's job.
func (i *Integrator) Apply(movement mgl32.Vec3, dt float32) {
	if i == nil || i.mover == nil {
		return
	}
	i.mover.Move(movement.Mul(dt))
}
