package systems

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/botdash/pkg/components"
)

type circleCall struct {
	x, y, r float64
	clr     color.NRGBA
}

type lineCall struct {
	x0, y0, x1, y1, width float64
	clr                   color.NRGBA
}

// recordingSurface 记录所有绘制调用
type recordingSurface struct {
	clears  int
	circles []circleCall
	lines   []lineCall
}

func (s *recordingSurface) Clear() { s.clears++ }

func (s *recordingSurface) FillCircle(x, y, r float64, clr color.Color) {
	s.circles = append(s.circles, circleCall{x, y, r, color.NRGBAModel.Convert(clr).(color.NRGBA)})
}

func (s *recordingSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	s.lines = append(s.lines, lineCall{x0, y0, x1, y1, width, color.NRGBAModel.Convert(clr).(color.NRGBA)})
}

func ambientAt(x, y float64) *components.ParticleComponent {
	return &components.ParticleComponent{X: x, Y: y, Size: 2, Opacity: 0.5, Hue: 300, Kind: components.Ambient{}}
}

func TestDrawConnectsClosePairs(t *testing.T) {
	ps := newTestSystem(transientOnly())
	ps.Resize(800, 600)
	ps.particles = []*components.ParticleComponent{
		ambientAt(100, 100),
		ambientAt(130, 100),
		ambientAt(110, 130),
	}

	s := &recordingSurface{}
	NewRenderSystem(ps).Draw(s)

	assert.Equal(t, 1, s.clears)
	assert.Len(t, s.circles, 3)
	require.Len(t, s.lines, 3)
	for _, l := range s.lines {
		assert.Equal(t, 0.5, l.width)
		assert.Equal(t, uint8(255), l.clr.R)
		assert.Equal(t, uint8(105), l.clr.G)
		assert.Equal(t, uint8(180), l.clr.B)
	}
}

func TestDrawSkipsDistantPairs(t *testing.T) {
	ps := newTestSystem(transientOnly())
	ps.Resize(800, 600)
	ps.particles = []*components.ParticleComponent{
		ambientAt(0, 0),
		ambientAt(100, 0),
		ambientAt(0, 300),
		ambientAt(400, 400),
	}

	s := &recordingSurface{}
	NewRenderSystem(ps).Draw(s)

	assert.Len(t, s.circles, 4)
	assert.Empty(t, s.lines)
}

func TestConnectionAlphaFadesWithDistance(t *testing.T) {
	ps := newTestSystem(transientOnly())
	ps.Resize(800, 600)
	ps.particles = []*components.ParticleComponent{ambientAt(0, 0), ambientAt(30, 40)}

	var got []float64
	ps.ForEachConnection(func(a, b *components.ParticleComponent, alpha float64) {
		got = append(got, alpha)
	})

	require.Len(t, got, 1)
	// d = 50 → (100-50)/100*0.3
	assert.InDelta(t, 0.15, got[0], 1e-12)
}

func TestDrawInertFieldDoesNothing(t *testing.T) {
	ps := newTestSystem(transientOnly())

	s := &recordingSurface{}
	NewRenderSystem(ps).Draw(s)

	assert.Zero(t, s.clears)
	assert.Empty(t, s.circles)
	assert.Empty(t, s.lines)
}

func TestParticleColor(t *testing.T) {
	tests := []struct {
		name    string
		hue     float64
		opacity float64
		want    color.NRGBA
	}{
		{"magenta full", 300, 1, color.NRGBA{R: 255, G: 102, B: 255, A: 255}},
		{"magenta half", 300, 0.5, color.NRGBA{R: 255, G: 102, B: 255, A: 128}},
		{"faded out", 330, 0, color.NRGBA{R: 255, G: 102, B: 178, A: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &components.ParticleComponent{Hue: tt.hue, Opacity: tt.opacity}
			got := ParticleColor(p)
			assert.Equal(t, tt.want.A, got.A)
			assert.InDelta(t, tt.want.R, got.R, 1)
			assert.InDelta(t, tt.want.G, got.G, 1)
			assert.InDelta(t, tt.want.B, got.B, 1)
		})
	}
}
