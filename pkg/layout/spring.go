package layout

import (
	"math"
	"math/rand/v2"
	"time"
)

// Spring defaults.
const (
	DefaultSpringK          = 0.5
	DefaultSpringIterations = 50
	minDistance             = 0.01
)

// Spring is a Fruchterman-Reingold force-directed layout. Edges are treated
// as undirected and unweighted; parallel edges and self-loops add nothing.
//
// Initial positions are drawn uniformly from [0,1)² using a PCG generator
// seeded with Seed, so equal seeds give equal layouts. The temperature starts
// at a tenth of the initial extent and cools linearly to zero. The result is
// centered on the origin and scaled so the largest coordinate is 1.
type Spring struct {
	Seed       uint64
	K          float64 // optimal distance; DefaultSpringK when zero
	Iterations int     // DefaultSpringIterations when zero
}

// NewSpring returns a spring engine seeded from the current time.
func NewSpring() Spring {
	return Spring{Seed: uint64(time.Now().UnixNano())}
}

// Layout implements [Engine].
func (s Spring) Layout(ids []string, edges []Pair) Positions {
	n := len(ids)
	out := make(Positions, n)
	switch n {
	case 0:
		return out
	case 1:
		out[ids[0]] = Point{}
		return out
	}

	k := s.K
	if k <= 0 {
		k = DefaultSpringK
	}
	iterations := s.Iterations
	if iterations <= 0 {
		iterations = DefaultSpringIterations
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	for _, e := range edges {
		i, ok1 := index[e.From]
		j, ok2 := index[e.To]
		if !ok1 || !ok2 || i == j {
			continue
		}
		adj[i][j] = true
		adj[j][i] = true
	}

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	pos := make([]Point, n)
	for i := range pos {
		pos[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}

	t := 0.1 * extent(pos)
	dt := t / float64(iterations+1)
	disp := make([]Point, n)

	for range iterations {
		for i := range pos {
			var d Point
			for j := range pos {
				if i == j {
					continue
				}
				dx := pos[i].X - pos[j].X
				dy := pos[i].Y - pos[j].Y
				dist := math.Max(math.Hypot(dx, dy), minDistance)
				f := k * k / (dist * dist)
				if adj[i][j] {
					f -= dist / k
				}
				d.X += dx * f
				d.Y += dy * f
			}
			disp[i] = d
		}
		for i, d := range disp {
			length := math.Hypot(d.X, d.Y)
			if length < minDistance {
				length = 0.1
			}
			pos[i].X += d.X * t / length
			pos[i].Y += d.Y * t / length
		}
		t -= dt
	}

	rescale(pos)
	for i, id := range ids {
		out[id] = pos[i]
	}
	return out
}

// extent returns the larger of the x and y ranges of pts.
func extent(pts []Point) float64 {
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return math.Max(maxX-minX, maxY-minY)
}

// rescale centers pts on the origin and scales them into [-1, 1].
func rescale(pts []Point) {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	var lim float64
	for i := range pts {
		pts[i].X -= cx
		pts[i].Y -= cy
		lim = math.Max(lim, math.Max(math.Abs(pts[i].X), math.Abs(pts[i].Y)))
	}
	if lim == 0 {
		return
	}
	for i := range pts {
		pts[i].X /= lim
		pts[i].Y /= lim
	}
}
