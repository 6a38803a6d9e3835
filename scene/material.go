package scene

import "world-engine/core"

// Material describes surface appearance properties for a mesh.
type Material struct {
	Name      string
	Albedo    core.Color // base diffuse color
	Specular  core.Color // specular highlight color
	Shininess float32    // shininess exponent (1..256+)
	Unlit     bool       // skip lighting, output raw albedo

	Metallic  float32
	Roughness float32

	// Optional texture maps. The detail builder strips the non-albedo maps
	// from distant representations to cut bandwidth.
	AlbedoTexture            *Texture
	NormalTexture            *Texture
	MetallicRoughnessTexture *Texture
}

// DefaultMaterial returns a plain white matte material.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "Default",
		Albedo:    core.ColorWhite,
		Specular:  core.Color{R: 0.3, G: 0.3, B: 0.3, A: 1},
		Shininess: 32,
		Roughness: 0.5,
	}
}

// NewMaterial creates a material with the given albedo color.
func NewMaterial(name string, albedo core.Color) *Material {
	return &Material{
		Name:      name,
		Albedo:    albedo,
		Specular:  core.Color{R: 0.5, G: 0.5, B: 0.5, A: 1},
		Shininess: 32,
		Roughness: 0.5,
	}
}

// Clone returns a shallow copy sharing the texture pointers.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// StripDetailMaps drops the normal and metallic-roughness maps.
// The albedo map is kept; it dominates the perceived color at distance.
func (m *Material) StripDetailMaps() {
	m.NormalTexture = nil
	m.MetallicRoughnessTexture = nil
}
