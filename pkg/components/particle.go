package components

// Kind distinguishes the two particle lifecycles.
//
// The set of implementations is closed: Ambient and *Transient. Use a type switch
// to branch on it; an Ambient particle has no lifetime at all rather than an
// "infinite" sentinel value.
type Kind interface {
	isKind()
}

// Ambient particles live until the field is reinitialized and are pulled toward
// the pointer.
type Ambient struct{}

func (Ambient) isKind() {}

// Transient particles are spawned by pointer activity. They fade out over
// InitialLife ticks, ignore the pointer, and are removed once Remaining hits 0.
type Transient struct {
	Remaining   int
	InitialLife int
}

func (*Transient) isKind() {}

// Fraction returns the share of lifetime still left, in [0, 1].
func (t *Transient) Fraction() float64 {
	if t.InitialLife <= 0 || t.Remaining <= 0 {
		return 0
	}
	if t.Remaining >= t.InitialLife {
		return 1
	}
	return float64(t.Remaining) / float64(t.InitialLife)
}

// Expired reports whether the particle is due for removal.
func (t *Transient) Expired() bool {
	return t.Remaining <= 0
}

// ParticleComponent is the runtime state of one point in the particle field.
//
// This is a pure data component; ParticleSystem owns every mutation.
type ParticleComponent struct {
	// Position (屏幕坐标, 像素)
	X, Y float64

	// Velocity (像素/帧)
	VelocityX, VelocityY float64

	// Size is the drawn radius, fixed at creation.
	Size float64

	// Opacity 0-1. Constant for Ambient, derived from remaining life for Transient.
	Opacity float64

	// Hue in degrees, fixed at creation.
	Hue float64

	Kind Kind
}

// IsAmbient reports whether the particle is an Ambient one.
func (p *ParticleComponent) IsAmbient() bool {
	_, ok := p.Kind.(Ambient)
	return ok
}

// Lifetime returns the Transient state, or nil for Ambient particles.
func (p *ParticleComponent) Lifetime() *Transient {
	t, _ := p.Kind.(*Transient)
	return t
}
