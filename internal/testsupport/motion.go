package testsupport

import (
	"math/rand"

	"swingmatch/internal/motion"
)

// ConstantMotion returns frames identical frames with every joint at p.
func ConstantMotion(frames, joints int, p motion.Point) motion.Motion {
	m := make(motion.Motion, frames)
	for t := range m {
		frame := make(motion.Frame, joints)
		for j := range frame {
			frame[j] = p
		}
		m[t] = frame
	}
	return m
}

// RampMotion returns a 33-joint motion where joint moves linearly from one
// point to another across frames and every other joint stays at the origin.
func RampMotion(frames int, joint motion.Joint, from, to motion.Point) motion.Motion {
	m := ConstantMotion(frames, motion.JointCount, motion.Point{})
	for t := range m {
		frac := 0.0
		if frames > 1 {
			frac = float64(t) / float64(frames-1)
		}
		m[t][joint] = motion.Point{
			X: from.X + (to.X-from.X)*frac,
			Y: from.Y + (to.Y-from.Y)*frac,
			Z: from.Z + (to.Z-from.Z)*frac,
		}
	}
	return m
}

// RandomMotion returns a deterministic pseudo-random 33-joint motion with
// coordinates in [0, 1).
func RandomMotion(seed int64, frames int) motion.Motion {
	rng := rand.New(rand.NewSource(seed))
	m := make(motion.Motion, frames)
	for t := range m {
		frame := make(motion.Frame, motion.JointCount)
		for j := range frame {
			frame[j] = motion.Point{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		}
		m[t] = frame
	}
	return m
}

// ShiftJoint returns a copy of m with delta added to joint in every frame.
func ShiftJoint(m motion.Motion, joint motion.Joint, delta motion.Point) motion.Motion {
	out := CloneMotion(m)
	for t := range out {
		p := out[t][joint]
		out[t][joint] = motion.Point{X: p.X + delta.X, Y: p.Y + delta.Y, Z: p.Z + delta.Z}
	}
	return out
}

// ShiftAll returns a copy of m with delta added to every joint in every frame.
func ShiftAll(m motion.Motion, delta motion.Point) motion.Motion {
	out := CloneMotion(m)
	for t := range out {
		for j, p := range out[t] {
			out[t][j] = motion.Point{X: p.X + delta.X, Y: p.Y + delta.Y, Z: p.Z + delta.Z}
		}
	}
	return out
}

// CloneMotion deep-copies m.
func CloneMotion(m motion.Motion) motion.Motion {
	out := make(motion.Motion, len(m))
	for t, frame := range m {
		out[t] = append(motion.Frame(nil), frame...)
	}
	return out
}
