package view

import "github.com/Carmen-Shannon/oxy-view/common"

// PenetrationAvoidanceFeeler is one ray swept from the safe location toward the desired camera location.
type PenetrationAvoidanceFeeler struct {
	// AdjustmentRot rotates the base ray, yaw around the ray's up axis and pitch around its right axis.
	AdjustmentRot common.Rotator `yaml:"adjustment_rot"`
	// WorldWeight scales how strongly world hits pull the camera in. 0 ignores world hits.
	WorldWeight float64 `yaml:"world_weight"`
	// PawnWeight scales how strongly pawn hits pull the camera in. 0 ignores pawns.
	PawnWeight float64 `yaml:"pawn_weight"`
	// Extent is the sweep sphere radius.
	Extent float64 `yaml:"extent"`
	// TraceInterval is the number of frames to skip after a frame without a hit.
	TraceInterval int `yaml:"trace_interval"`
	// FramesUntilNextTrace counts down skipped frames. Runtime state.
	FramesUntilNextTrace int `yaml:"-"`
}

// DefaultPenetrationAvoidanceFeelers returns the stock seven-ray set: a primary ray traced every frame,
// four predictive rays fanned in yaw and two in pitch.
//
// Returns:
//   - []PenetrationAvoidanceFeeler: a fresh copy of the default feelers
func DefaultPenetrationAvoidanceFeelers() []PenetrationAvoidanceFeeler {
	return []PenetrationAvoidanceFeeler{
		{AdjustmentRot: common.Rotator{}, WorldWeight: 1, PawnWeight: 1, Extent: 14, TraceInterval: 0},
		{AdjustmentRot: common.Rotator{Yaw: 16}, WorldWeight: 0.75, PawnWeight: 0.75, TraceInterval: 3},
		{AdjustmentRot: common.Rotator{Yaw: -16}, WorldWeight: 0.75, PawnWeight: 0.75, TraceInterval: 3},
		{AdjustmentRot: common.Rotator{Yaw: 32}, WorldWeight: 0.5, PawnWeight: 0.5, TraceInterval: 5},
		{AdjustmentRot: common.Rotator{Yaw: -32}, WorldWeight: 0.5, PawnWeight: 0.5, TraceInterval: 5},
		{AdjustmentRot: common.Rotator{Pitch: 20}, WorldWeight: 1, PawnWeight: 1, TraceInterval: 4},
		{AdjustmentRot: common.Rotator{Pitch: -20}, WorldWeight: 0.5, PawnWeight: 0.5, TraceInterval: 4},
	}
}
