package systems

import (
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/decker502/botdash/pkg/components"
	"github.com/decker502/botdash/pkg/config"
)

// ParticleSystem owns the particle field: the ordered particle collection, the
// viewport it lives in and the last known pointer position.
//
// It is driven from the outside:
//   - Tick advances the simulation by exactly one frame
//   - PointerMove, Click and Resize inject host events between ticks
//
// All methods must be called from the same goroutine as Tick. The system holds
// no locks; the frame loop never overlaps with itself.
//
// Until Resize is called with a positive size the system is inert: it holds no
// particles and ignores ticks and events.
type ParticleSystem struct {
	cfg    config.FieldConfig
	rng    *rand.Rand
	logger *zap.Logger

	particles []*components.ParticleComponent

	width, height      float64
	pointerX, pointerY float64
	ready              bool
}

// NewParticleSystem creates an inert particle system.
// rng must not be shared with other goroutines; pass a seeded source for replayable runs.
func NewParticleSystem(cfg config.FieldConfig, rng *rand.Rand, logger *zap.Logger) *ParticleSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParticleSystem{
		cfg:    cfg,
		rng:    rng,
		logger: logger.Named("particles"),
	}
}

// TargetPopulation returns how many Ambient particles a viewport of the given
// size holds: one per AreaPerParticle pixels, capped at MaxParticles.
func TargetPopulation(cfg config.FieldConfig, width, height int) int {
	if width <= 0 || height <= 0 || cfg.AreaPerParticle <= 0 {
		return 0
	}
	n := int(math.Floor(float64(width) * float64(height) / cfg.AreaPerParticle))
	if n > cfg.MaxParticles {
		n = cfg.MaxParticles
	}
	return n
}

// Resize discards every particle and repopulates the field for the new viewport.
// A non-positive size leaves the system inert.
func (ps *ParticleSystem) Resize(width, height int) {
	ps.particles = ps.particles[:0:0]

	if width <= 0 || height <= 0 {
		ps.ready = false
		ps.width, ps.height = 0, 0
		ps.logger.Debug("no drawable surface, field stays inert",
			zap.Int("width", width), zap.Int("height", height))
		return
	}

	ps.ready = true
	ps.width, ps.height = float64(width), float64(height)

	count := TargetPopulation(ps.cfg, width, height)
	ps.particles = make([]*components.ParticleComponent, 0, count)
	for i := 0; i < count; i++ {
		ps.particles = append(ps.particles, ps.newAmbient())
	}

	ps.logger.Debug("field reset",
		zap.Int("width", width), zap.Int("height", height), zap.Int("population", count))
}

// Reconfigure swaps the tuning parameters and reseeds the field at its current size.
func (ps *ParticleSystem) Reconfigure(cfg config.FieldConfig) {
	ps.cfg = cfg
	if ps.ready {
		ps.Resize(int(ps.width), int(ps.height))
	}
}

// PointerMove records the pointer position and, with MoveSpawnChance probability,
// leaves a Transient particle behind at that position.
func (ps *ParticleSystem) PointerMove(x, y float64) {
	ps.pointerX, ps.pointerY = x, y
	if !ps.ready {
		return
	}
	if ps.rng.Float64() < ps.cfg.MoveSpawnChance {
		ps.particles = append(ps.particles, ps.newTransient(x, y, ps.cfg.DriftSpeed))
	}
}

// Click spawns a burst of BurstCount Transient particles at (x, y).
func (ps *ParticleSystem) Click(x, y float64) {
	if !ps.ready {
		return
	}
	for i := 0; i < ps.cfg.BurstCount; i++ {
		ps.particles = append(ps.particles, ps.newTransient(x, y, ps.cfg.BurstSpeed))
	}
}

// Tick advances the field by one frame.
//
// Expired Transients are dropped first, so a particle whose life reached zero on
// the previous tick is still drawn once with zero opacity before disappearing.
func (ps *ParticleSystem) Tick() {
	if !ps.ready {
		return
	}

	alive := ps.particles[:0]
	for _, p := range ps.particles {
		if life := p.Lifetime(); life != nil && life.Expired() {
			continue
		}
		alive = append(alive, p)
	}
	// 清除尾部引用，避免被删除的粒子无法回收
	for i := len(alive); i < len(ps.particles); i++ {
		ps.particles[i] = nil
	}
	ps.particles = alive

	for _, p := range ps.particles {
		ps.updateParticle(p)
	}
}

func (ps *ParticleSystem) updateParticle(p *components.ParticleComponent) {
	if p.IsAmbient() {
		ix, iy := ps.attraction(p.X, p.Y)
		p.VelocityX += ix
		p.VelocityY += iy
	}

	p.VelocityX *= ps.cfg.Damping
	p.VelocityY *= ps.cfg.Damping

	p.X += p.VelocityX
	p.Y += p.VelocityY

	// 反弹：只翻转速度，不钳制位置
	if p.X < 0 || p.X > ps.width {
		p.VelocityX = -p.VelocityX
	}
	if p.Y < 0 || p.Y > ps.height {
		p.VelocityY = -p.VelocityY
	}

	if life := p.Lifetime(); life != nil {
		life.Remaining--
		p.Opacity = life.Fraction()
	}
}

// attraction returns the velocity impulse pulling a point at (x, y) toward the pointer.
// Points at zero distance or at AttractRadius and beyond receive none.
func (ps *ParticleSystem) attraction(x, y float64) (float64, float64) {
	dx := ps.pointerX - x
	dy := ps.pointerY - y
	dist := math.Hypot(dx, dy)
	if dist <= 0 || dist >= ps.cfg.AttractRadius {
		return 0, 0
	}
	force := (ps.cfg.AttractRadius - dist) / ps.cfg.AttractRadius * ps.cfg.AttractStrength
	return dx / dist * force, dy / dist * force
}

func (ps *ParticleSystem) newAmbient() *components.ParticleComponent {
	return &components.ParticleComponent{
		X:         ps.rng.Float64() * ps.width,
		Y:         ps.rng.Float64() * ps.height,
		VelocityX: ps.spread(ps.cfg.DriftSpeed),
		VelocityY: ps.spread(ps.cfg.DriftSpeed),
		Size:      ps.between(ps.cfg.SizeMin, ps.cfg.SizeMax),
		Opacity:   ps.between(ps.cfg.OpacityMin, ps.cfg.OpacityMax),
		Hue:       ps.cfg.HueMin + ps.rng.Float64()*ps.cfg.HueSpan,
		Kind:      components.Ambient{},
	}
}

func (ps *ParticleSystem) newTransient(x, y, speed float64) *components.ParticleComponent {
	return &components.ParticleComponent{
		X:         x,
		Y:         y,
		VelocityX: ps.spread(speed),
		VelocityY: ps.spread(speed),
		Size:      ps.between(ps.cfg.SizeMin, ps.cfg.SizeMax),
		Opacity:   1,
		Hue:       ps.cfg.HueMin + ps.rng.Float64()*ps.cfg.HueSpan,
		Kind: &components.Transient{
			Remaining:   ps.cfg.TransientLife,
			InitialLife: ps.cfg.TransientLife,
		},
	}
}

// spread returns a value in [-span/2, span/2).
func (ps *ParticleSystem) spread(span float64) float64 {
	return (ps.rng.Float64() - 0.5) * span
}

func (ps *ParticleSystem) between(lo, hi float64) float64 {
	return lo + ps.rng.Float64()*(hi-lo)
}

// Particles returns the live particle collection in insertion order.
// The slice is owned by the system and is only valid until the next Tick or event.
func (ps *ParticleSystem) Particles() []*components.ParticleComponent {
	return ps.particles
}

// Pointer returns the last known pointer position.
func (ps *ParticleSystem) Pointer() (float64, float64) {
	return ps.pointerX, ps.pointerY
}

// Bounds returns the current viewport size; zero when inert.
func (ps *ParticleSystem) Bounds() (float64, float64) {
	return ps.width, ps.height
}

// Ready reports whether the field has a surface to live on.
func (ps *ParticleSystem) Ready() bool {
	return ps.ready
}

// Config returns the tuning parameters in use.
func (ps *ParticleSystem) Config() config.FieldConfig {
	return ps.cfg
}

// Counts returns the number of Ambient and Transient particles alive.
func (ps *ParticleSystem) Counts() (ambient, transient int) {
	for _, p := range ps.particles {
		if p.IsAmbient() {
			ambient++
		} else {
			transient++
		}
	}
	return ambient, transient
}
