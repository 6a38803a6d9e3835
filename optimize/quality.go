package optimize

// Adaptation bands. The scale bands sit wider than the threshold bands so the
// two mechanisms do not flip together on every sample window.
const (
	thresholdLowFPS  = 25.0
	thresholdHighFPS = 50.0
	scaleLowFPS      = 30.0
	scaleHighFPS     = 55.0

	sampleWindowMillis = 1000.0
	scaleStep          = 0.1
	minResolutionScale = 0.5
)

// Threshold presets, ordered from most aggressive to most relaxed. The
// controller steps one preset at a time.
var thresholdPresets = [][]float32{
	{25, 75, 150},  // near: drop detail quickly
	{50, 150, 300}, // default
	{80, 240, 480}, // far: keep detail longer
}

// ResolutionTarget receives render-resolution scale changes.
type ResolutionTarget interface {
	SetResolutionScale(scale float32)
}

// ThresholdTarget receives distance-threshold changes.
type ThresholdTarget interface {
	SetThresholds(thresholds []float32)
}

// QualityController closes the loop between measured frame rate and render
// cost. It samples FPS over one-second windows and nudges the resolution
// scale and the detail-distance preset toward a sustainable frame rate.
type QualityController struct {
	resolution ResolutionTarget
	thresholds ThresholdTarget

	maxScale     float32 // device pixel ratio
	currentScale float32
	presetIndex  int

	windowMillis float64
	samples      []float64
	averageFPS   float64
}

// NewQualityController creates a controller writing to the given targets.
// maxScale is the device pixel ratio; the resolution scale stays within
// [0.5, maxScale]. Either target may be nil.
func NewQualityController(resolution ResolutionTarget, thresholds ThresholdTarget, maxScale float32) *QualityController {
	if maxScale < 1 {
		maxScale = 1
	}
	return &QualityController{
		resolution:   resolution,
		thresholds:   thresholds,
		maxScale:     maxScale,
		currentScale: 1,
		presetIndex:  1, // default preset
	}
}

// AddFrame records one frame time in milliseconds. When a full sample window
// has elapsed the controller evaluates the mean FPS and adapts. Windows that
// collected no valid samples are skipped without adapting.
func (q *QualityController) AddFrame(deltaMillis float64) {
	if deltaMillis > 0 {
		q.samples = append(q.samples, 1000.0/deltaMillis)
		q.windowMillis += deltaMillis
	}
	if q.windowMillis < sampleWindowMillis {
		return
	}

	if len(q.samples) > 0 {
		sum := 0.0
		for _, s := range q.samples {
			sum += s
		}
		q.averageFPS = sum / float64(len(q.samples))
		q.adapt(q.averageFPS)
	}

	q.samples = q.samples[:0]
	q.windowMillis = 0
}

func (q *QualityController) adapt(fps float64) {
	// Resolution scale: wide band
	switch {
	case fps < scaleLowFPS:
		q.setScale(q.currentScale - scaleStep)
	case fps > scaleHighFPS:
		q.setScale(q.currentScale + scaleStep)
	}

	// Distance thresholds: narrow band, one preset step at a time
	switch {
	case fps < thresholdLowFPS && q.presetIndex > 0:
		q.presetIndex--
		q.pushThresholds()
	case fps > thresholdHighFPS && q.presetIndex < len(thresholdPresets)-1:
		q.presetIndex++
		q.pushThresholds()
	}
}

func (q *QualityController) setScale(scale float32) {
	if scale < minResolutionScale {
		scale = minResolutionScale
	}
	if scale > q.maxScale {
		scale = q.maxScale
	}
	if scale == q.currentScale {
		return
	}
	q.currentScale = scale
	if q.resolution != nil {
		q.resolution.SetResolutionScale(scale)
	}
}

func (q *QualityController) pushThresholds() {
	if q.thresholds != nil {
		q.thresholds.SetThresholds(thresholdPresets[q.presetIndex])
	}
}

// AverageFPS returns the mean frame rate of the last completed sample window.
func (q *QualityController) AverageFPS() float64 { return q.averageFPS }

// ResolutionScale returns the current render-resolution scale.
func (q *QualityController) ResolutionScale() float32 { return q.currentScale }

// PresetIndex returns the active distance-threshold preset.
func (q *QualityController) PresetIndex() int { return q.presetIndex }
