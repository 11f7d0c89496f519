package effects

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type particle struct {
	x, y    float64
	dx, dy  float64
	opacity float64
	size    float64
}

type field struct {
	width, height int
	particles     []particle
}

// Sparkles is a terminal particle backdrop. Particles drift randomly and
// bounce off the container edges.
type Sparkles struct {
	enabled bool

	mu     sync.Mutex
	rng    *rand.Rand
	fields map[string]*field
}

// NewSparkles creates the backdrop. A disabled backdrop reports itself
// unavailable.
func NewSparkles(enabled bool, seed uint64) *Sparkles {
	return &Sparkles{
		enabled: enabled,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9a0aab)),
		fields:  make(map[string]*field),
	}
}

func (s *Sparkles) Available() bool {
	return s != nil && s.enabled
}

func (s *Sparkles) Render(container string, p Params, width, height int) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	if width <= 0 || height <= 0 {
		return "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.fields[container]
	if !ok || f.width != width || f.height != height {
		f = s.seed(p, width, height)
		s.fields[container] = f
	} else {
		s.step(f)
	}
	return draw(f, p), nil
}

// ParticleCount returns how many particles a container of the given size
// holds.
func ParticleCount(p Params, width, height int) int {
	if p.DensityArea <= 0 {
		return p.Count
	}
	n := p.Count * width * height / p.DensityArea
	return max(n, 1)
}

func (s *Sparkles) seed(p Params, width, height int) *field {
	f := &field{width: width, height: height}
	for range ParticleCount(p, width, height) {
		f.particles = append(f.particles, particle{
			x:       s.rng.Float64() * float64(width),
			y:       s.rng.Float64() * float64(height),
			dx:      (s.rng.Float64()*2 - 1) * p.Speed,
			dy:      (s.rng.Float64()*2 - 1) * p.Speed / 2,
			opacity: p.MinOpacity + s.rng.Float64()*(p.Opacity-p.MinOpacity),
			size:    p.MinSize + s.rng.Float64()*(p.Size-p.MinSize),
		})
	}
	return f
}

func (s *Sparkles) step(f *field) {
	w, h := float64(f.width), float64(f.height)
	for i := range f.particles {
		pt := &f.particles[i]
		pt.x += pt.dx
		pt.y += pt.dy
		if pt.x < 0 || pt.x >= w {
			pt.dx = -pt.dx
			pt.x = clamp(pt.x, 0, w-0.01)
		}
		if pt.y < 0 || pt.y >= h {
			pt.dy = -pt.dy
			pt.y = clamp(pt.y, 0, h-0.01)
		}
	}
}

func draw(f *field, p Params) string {
	grid := make([][]rune, f.height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", f.width))
	}
	for _, pt := range f.particles {
		x, y := int(pt.x), int(pt.y)
		if x < 0 || x >= f.width || y < 0 || y >= f.height {
			continue
		}
		grid[y][x] = glyph(pt)
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color))
	lines := make([]string, f.height)
	for y, row := range grid {
		lines[y] = style.Render(string(row))
	}
	return strings.Join(lines, "\n")
}

func glyph(pt particle) rune {
	switch {
	case pt.size >= 1.5 && pt.opacity >= 0.45:
		return '✦'
	case pt.size >= 1:
		return '•'
	default:
		return '·'
	}
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
