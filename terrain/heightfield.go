package terrain

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"world-engine/core"
	"world-engine/scene"
)

// Height bands for vertex colouring, as fractions of the full height range.
var heightBands = []struct {
	limit float32
	color core.Color
}{
	{0.25, core.Color{R: 0.76, G: 0.70, B: 0.50, A: 1}}, // sand
	{0.55, core.Color{R: 0.33, G: 0.55, B: 0.25, A: 1}}, // grass
	{0.80, core.Color{R: 0.45, G: 0.42, B: 0.40, A: 1}}, // rock
	{1.01, core.Color{R: 0.95, G: 0.95, B: 0.98, A: 1}}, // snow
}

// HeightField is an immutable grid of terrain heights over a square region
// centred on the origin. The grid has (Segments+1) x (Segments+1) samples.
type HeightField struct {
	Size     float32 // world-space edge length
	Segments int     // cells per edge

	heights   []float32
	minHeight float32
	maxHeight float32
}

// Generate builds a height field from fractal noise. The same seed always
// produces the same terrain.
func Generate(size float32, segments int, seed int64) (*HeightField, error) {
	if size <= 0 {
		return nil, fmt.Errorf("terrain: size must be positive, got %v", size)
	}
	if segments < 1 {
		return nil, fmt.Errorf("terrain: segments must be at least 1, got %d", segments)
	}

	n := segments + 1
	hf := &HeightField{
		Size:      size,
		Segments:  segments,
		heights:   make([]float32, n*n),
		minHeight: math32.MaxFloat32,
		maxHeight: -math32.MaxFloat32,
	}

	const amplitude = 12.0
	for iz := 0; iz < n; iz++ {
		for ix := 0; ix < n; ix++ {
			nx := float32(ix) / float32(segments)
			nz := float32(iz) / float32(segments)
			h := fractalNoise(nx*8, nz*8, seed) * amplitude
			hf.heights[iz*n+ix] = h
			if h < hf.minHeight {
				hf.minHeight = h
			}
			if h > hf.maxHeight {
				hf.maxHeight = h
			}
		}
	}
	return hf, nil
}

// NewFromSamples builds a height field from an existing sample grid. The
// slice must hold (segments+1) x (segments+1) values in row-major order and
// is copied.
func NewFromSamples(size float32, segments int, samples []float32) (*HeightField, error) {
	if size <= 0 {
		return nil, fmt.Errorf("terrain: size must be positive, got %v", size)
	}
	if segments < 1 {
		return nil, fmt.Errorf("terrain: segments must be at least 1, got %d", segments)
	}
	n := segments + 1
	if len(samples) != n*n {
		return nil, fmt.Errorf("terrain: expected %d samples, got %d", n*n, len(samples))
	}

	hf := &HeightField{
		Size:      size,
		Segments:  segments,
		heights:   append([]float32(nil), samples...),
		minHeight: math32.MaxFloat32,
		maxHeight: -math32.MaxFloat32,
	}
	for _, h := range hf.heights {
		if h < hf.minHeight {
			hf.minHeight = h
		}
		if h > hf.maxHeight {
			hf.maxHeight = h
		}
	}
	return hf, nil
}

// HeightAt returns the terrain height at a world-space (x, z) position using
// nearest-cell lookup. Positions outside the terrain extent return 0.
func (hf *HeightField) HeightAt(x, z float32) float32 {
	half := hf.Size / 2
	ix := int(math32.Floor(((x + half) / hf.Size) * float32(hf.Segments)))
	iz := int(math32.Floor(((z + half) / hf.Size) * float32(hf.Segments)))
	if ix < 0 || ix >= hf.Segments || iz < 0 || iz >= hf.Segments {
		return 0
	}
	return hf.heights[iz*(hf.Segments+1)+ix]
}

// sample returns the grid sample clamped to the valid index range. Used for
// normal estimation at the edges.
func (hf *HeightField) sample(ix, iz int) float32 {
	n := hf.Segments + 1
	if ix < 0 {
		ix = 0
	} else if ix >= n {
		ix = n - 1
	}
	if iz < 0 {
		iz = 0
	} else if iz >= n {
		iz = n - 1
	}
	return hf.heights[iz*n+ix]
}

// HeightRange returns the minimum and maximum sample heights.
func (hf *HeightField) HeightRange() (min, max float32) {
	return hf.minHeight, hf.maxHeight
}

// BuildMesh converts the height field into a renderable mesh. Vertices carry
// height-band colours and central-difference normals.
func (hf *HeightField) BuildMesh() *scene.Mesh {
	n := hf.Segments + 1
	cell := hf.Size / float32(hf.Segments)
	half := hf.Size / 2
	span := hf.maxHeight - hf.minHeight
	if span <= 0 {
		span = 1
	}

	vertices := make([]core.Vertex, 0, n*n)
	for iz := 0; iz < n; iz++ {
		for ix := 0; ix < n; ix++ {
			h := hf.heights[iz*n+ix]

			// Central differences over neighbouring samples
			dx := hf.sample(ix+1, iz) - hf.sample(ix-1, iz)
			dz := hf.sample(ix, iz+1) - hf.sample(ix, iz-1)
			normal := mgl32.Vec3{-dx, 2 * cell, -dz}.Normalize()

			rel := (h - hf.minHeight) / span
			color := heightBands[len(heightBands)-1].color
			for _, band := range heightBands {
				if rel < band.limit {
					color = band.color
					break
				}
			}

			vertices = append(vertices, core.Vertex{
				Position: mgl32.Vec3{-half + float32(ix)*cell, h, -half + float32(iz)*cell},
				Normal:   normal,
				UV:       mgl32.Vec2{float32(ix) / float32(hf.Segments), float32(iz) / float32(hf.Segments)},
				Color:    color,
			})
		}
	}

	indices := make([]uint32, 0, hf.Segments*hf.Segments*6)
	for iz := 0; iz < hf.Segments; iz++ {
		for ix := 0; ix < hf.Segments; ix++ {
			topLeft := uint32(iz*n + ix)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(n)
			bottomRight := bottomLeft + 1
			indices = append(indices, topLeft, bottomLeft, topRight)
			indices = append(indices, topRight, bottomLeft, bottomRight)
		}
	}

	return scene.CreateMeshFromData("Terrain", vertices, indices)
}
