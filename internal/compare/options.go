package compare

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"swingmatch/internal/alignment"
	"swingmatch/internal/deviation"
	"swingmatch/internal/resample"
)

// ErrInvalidOptions indicates an unusable comparison configuration.
var ErrInvalidOptions = errors.New("invalid comparison options")

// Options configures a comparison.
type Options struct {
	// Frames is the normalized frame count; zero selects resample.DefaultFrames.
	Frames int
	// Thresholds are the per-check limits; the zero value selects
	// deviation.DefaultThresholds.
	Thresholds deviation.Thresholds
	// Window is the DTW Sakoe-Chiba band in frames; zero leaves it unconstrained.
	Window   int
	Parallel bool
	Logger   *slog.Logger
}

// DefaultOptions returns the calibrated configuration.
func DefaultOptions() Options {
	return Options{
		Frames:     resample.DefaultFrames,
		Thresholds: deviation.DefaultThresholds(),
	}
}

func (o Options) frames() int {
	if o.Frames == 0 {
		return resample.DefaultFrames
	}
	return o.Frames
}

func (o Options) thresholds() deviation.Thresholds {
	if o.Thresholds == (deviation.Thresholds{}) {
		return deviation.DefaultThresholds()
	}
	return o.Thresholds
}

func (o Options) validate() error {
	if o.Frames < 0 {
		return fmt.Errorf("%w: frames %d", ErrInvalidOptions, o.Frames)
	}
	th := o.Thresholds
	for _, limit := range []struct {
		name  string
		value float64
	}{
		{deviation.SwingPlane, th.SwingPlane},
		{deviation.Head, th.Head},
		{deviation.FrontFoot, th.FrontFoot},
		{deviation.BackFoot, th.BackFoot},
		{deviation.FollowThrough, th.FollowThrough},
		{deviation.Tempo, th.Tempo},
	} {
		if limit.value < 0 || math.IsNaN(limit.value) {
			return fmt.Errorf("%w: %s threshold %v", ErrInvalidOptions, limit.name, limit.value)
		}
	}
	if o.Window < 0 {
		return fmt.Errorf("%w: window %d", ErrInvalidOptions, o.Window)
	}
	return nil
}

func (o Options) alignment() alignment.Options {
	opts := alignment.DefaultOptions()
	opts.Window = o.Window
	return opts
}
