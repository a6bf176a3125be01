package deviation

import "swingmatch/internal/motion"

// Check names, in evaluation order.
const (
	SwingPlane    = "swing_plane"
	Head          = "head"
	FrontFoot     = "front_foot"
	BackFoot      = "back_foot"
	FollowThrough = "follow_through"
	Tempo         = "tempo"
)

// Thresholds holds the per-check limits.
type Thresholds struct {
	SwingPlane    float64 `json:"swing_plane"`
	Head          float64 `json:"head"`
	FrontFoot     float64 `json:"front_foot"`
	BackFoot      float64 `json:"back_foot"`
	FollowThrough float64 `json:"follow_through"`
	Tempo         float64 `json:"tempo"`
}

// DefaultThresholds returns the calibrated limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SwingPlane:    0.15,
		Head:          0.03,
		FrontFoot:     0.03,
		BackFoot:      0.03,
		FollowThrough: 0.05,
		Tempo:         0.02,
	}
}

// Checks returns the six feature checks in their fixed order.
func Checks(th Thresholds) []Check {
	return []Check{
		{
			Name:           SwingPlane,
			Threshold:      th.SwingPlane,
			Message:        "Bat swing plane deviates; keep alignment similar to reference.",
			FailureMessage: "Bat angle could not be analyzed.",
			Measure:        SegmentAngleDeviation(motion.LeftElbow, motion.LeftWrist),
		},
		{
			Name:           Head,
			Threshold:      th.Head,
			Message:        "Head moves too much; focus on keeping eyes on the ball.",
			FailureMessage: "Head position could not be analyzed.",
			Measure:        AxisDeviation(motion.Nose, motion.AxisY),
		},
		{
			Name:           FrontFoot,
			Threshold:      th.FrontFoot,
			Message:        "Front foot placement off; ensure solid base at impact.",
			FailureMessage: "Front foot position could not be analyzed.",
			Measure:        AxisDeviation(motion.LeftAnkle, motion.AxisY),
		},
		{
			Name:           BackFoot,
			Threshold:      th.BackFoot,
			Message:        "Back foot balance differs; distribute weight correctly.",
			FailureMessage: "Back foot position could not be analyzed.",
			Measure:        AxisDeviation(motion.RightAnkle, motion.AxisY),
		},
		{
			Name:           FollowThrough,
			Threshold:      th.FollowThrough,
			Message:        "Follow-through differs; rotate wrists smoothly after impact.",
			FailureMessage: "Follow-through could not be analyzed.",
			Measure:        FinalPositionDeviation(motion.LeftWrist),
		},
		{
			Name:           Tempo,
			Threshold:      th.Tempo,
			Message:        "Swing timing differs; try syncing shot rhythm with reference.",
			FailureMessage: "Timing could not be analyzed.",
			Measure:        VelocityDeviation(motion.LeftWrist, motion.AxisY),
		},
	}
}
