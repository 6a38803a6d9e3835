package scene

// Texture holds CPU-side RGBA pixel data. GPU upload is the renderer's job.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []uint8 // RGBA, row-major

	// GPUID is set by the renderer backend after upload (0 = not uploaded).
	GPUID uint32
}
