package optimize

import (
	"fmt"

	"world-engine/scene"
)

// DrawStatsSource reports per-frame draw statistics from the renderer.
type DrawStatsSource interface {
	DrawCallCount() int
	TriangleCount() int
}

// PerformanceStats is a snapshot of the optimizer's view of the scene.
type PerformanceStats struct {
	VisibleObjects    int     `json:"visibleObjects"`
	CulledObjects     int     `json:"culledObjects"`
	AverageFPS        float64 `json:"averageFps"`
	LODObjectCount    int     `json:"lodObjectCount"`
	PooledObjectCount int     `json:"pooledObjectCount"`
	ResolutionScale   float32 `json:"resolutionScale"`
	DrawCalls         int     `json:"drawCalls"`
	Triangles         int     `json:"triangles"`
}

// Optimizer bundles the culler, the detail selector, and the quality
// controller behind one per-frame entry point.
type Optimizer struct {
	Builder  *DetailLevelBuilder
	Selector *DistanceLODSelector
	Culler   *FrustumCuller
	Quality  *QualityController

	paused         bool
	lodEnabled     bool
	cullingEnabled bool
	stats          DrawStatsSource
}

// NewOptimizer wires the optimization subsystems together. resolution is the
// renderer's scale sink (may be nil); maxScale is the device pixel ratio.
func NewOptimizer(resolution ResolutionTarget, maxScale float32) *Optimizer {
	builder := NewDetailLevelBuilder()
	selector := NewDistanceLODSelector(builder)
	return &Optimizer{
		Builder:        builder,
		Selector:       selector,
		Culler:         NewFrustumCuller(),
		Quality:        NewQualityController(resolution, selector, maxScale),
		lodEnabled:     true,
		cullingEnabled: true,
	}
}

// SetDrawStatsSource attaches a renderer for draw-call and triangle counts.
func (o *Optimizer) SetDrawStatsSource(src DrawStatsSource) {
	o.stats = src
}

// Manage registers a node (and recursively its children) for detail
// management.
func (o *Optimizer) Manage(n *scene.Node) {
	n.Traverse(func(child *scene.Node) {
		if child.Mesh != nil {
			o.Selector.CreateLevelsFor(child)
		}
	})
}

// Update runs one optimization pass: frustum culling, detail selection, and
// quality sampling. A paused optimizer only keeps sampling frame times.
func (o *Optimizer) Update(s *scene.Scene, cam *scene.Camera, deltaMillis float64) {
	o.Quality.AddFrame(deltaMillis)
	if o.paused {
		return
	}
	if o.cullingEnabled {
		o.Culler.Update(s, cam)
	}
	if o.lodEnabled {
		o.Selector.Update(cam.Position)
	}
}

// TogglePause flips the paused state and returns the new value. Resuming does
// not force an immediate pass; the next Update catches up.
func (o *Optimizer) TogglePause() bool {
	o.paused = !o.paused
	return o.paused
}

func (o *Optimizer) Paused() bool { return o.paused }

// ToggleOptimization enables or disables one subsystem by name ("lod" or
// "culling") and returns the new enabled state. Disabling restores the
// subsystem's effects immediately.
func (o *Optimizer) ToggleOptimization(name string, s *scene.Scene) (bool, error) {
	switch name {
	case "lod":
		o.lodEnabled = !o.lodEnabled
		if !o.lodEnabled {
			o.Selector.RestoreAll()
		}
		return o.lodEnabled, nil
	case "culling":
		o.cullingEnabled = !o.cullingEnabled
		if !o.cullingEnabled {
			o.Culler.Reset(s)
		}
		return o.cullingEnabled, nil
	default:
		return false, fmt.Errorf("optimize: unknown subsystem %q", name)
	}
}

// ForceLODUpdate re-evaluates detail levels immediately, ignoring pause.
func (o *Optimizer) ForceLODUpdate(cam *scene.Camera) {
	o.Selector.Update(cam.Position)
}

// Stats assembles the current performance snapshot.
func (o *Optimizer) Stats() PerformanceStats {
	st := PerformanceStats{
		VisibleObjects:    o.Culler.VisibleCount(),
		CulledObjects:     o.Culler.CulledCount(),
		AverageFPS:        o.Quality.AverageFPS(),
		LODObjectCount:    o.Selector.ManagedCount(),
		PooledObjectCount: o.Builder.PooledImpostorCount(),
		ResolutionScale:   o.Quality.ResolutionScale(),
	}
	if o.stats != nil {
		st.DrawCalls = o.stats.DrawCallCount()
		st.Triangles = o.stats.TriangleCount()
	}
	return st
}
