package systems

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/botdash/pkg/components"
)

// Surface is the 2D drawing target the field renders onto.
// Coordinates are in the same pixel space as the particle field.
type Surface interface {
	// Clear wipes the whole surface to its background.
	Clear()
	// FillCircle draws a filled disc centred on (x, y).
	FillCircle(x, y, radius float64, clr color.Color)
	// StrokeLine draws a straight line segment.
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
}

const (
	// 粒子颜色固定饱和度与亮度，只有色相变化
	particleSaturation = 1.0
	particleLightness  = 0.7
)

// ConnectionColor 连线颜色 (hot pink)，透明度按距离变化
var ConnectionColor = color.NRGBA{R: 255, G: 105, B: 180, A: 255}

// RenderSystem draws a ParticleSystem: one disc per particle, then a fading line
// between every pair closer than ConnectDistance.
type RenderSystem struct {
	particles *ParticleSystem
}

// NewRenderSystem creates a renderer for the given particle field.
func NewRenderSystem(ps *ParticleSystem) *RenderSystem {
	return &RenderSystem{particles: ps}
}

// Draw clears the surface and renders the current field state onto it.
// An inert field draws nothing, not even the clear.
func (rs *RenderSystem) Draw(s Surface) {
	if !rs.particles.Ready() {
		return
	}
	s.Clear()

	for _, p := range rs.particles.Particles() {
		s.FillCircle(p.X, p.Y, p.Size, ParticleColor(p))
	}

	lineWidth := rs.particles.Config().LineWidth
	rs.particles.ForEachConnection(func(a, b *components.ParticleComponent, alpha float64) {
		s.StrokeLine(a.X, a.Y, b.X, b.Y, lineWidth, withAlpha(ConnectionColor, alpha))
	})
}

// ForEachConnection calls fn for every unordered pair of particles closer than
// ConnectDistance, with the stroke alpha for that pair.
//
// The scan is O(n²); the population cap keeps n small.
func (ps *ParticleSystem) ForEachConnection(fn func(a, b *components.ParticleComponent, alpha float64)) {
	maxDist := ps.cfg.ConnectDistance
	if maxDist <= 0 {
		return
	}
	for i := 0; i < len(ps.particles); i++ {
		a := ps.particles[i]
		for j := i + 1; j < len(ps.particles); j++ {
			b := ps.particles[j]
			dist := math.Hypot(a.X-b.X, a.Y-b.Y)
			if dist < maxDist {
				fn(a, b, (maxDist-dist)/maxDist*ps.cfg.ConnectAlpha)
			}
		}
	}
}

// ParticleColor returns hsl(hue, 100%, 70%) at the particle's opacity.
func ParticleColor(p *components.ParticleComponent) color.NRGBA {
	c := colorful.Hsl(math.Mod(p.Hue, 360), particleSaturation, particleLightness).Clamped()
	r, g, b := c.RGB255()
	return withAlpha(color.NRGBA{R: r, G: g, B: b, A: 255}, p.Opacity)
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(math.Round(alpha * 255))
	return c
}
