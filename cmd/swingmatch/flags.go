package main

import (
	"github.com/spf13/cobra"

	"swingmatch/internal/compare"
	"swingmatch/internal/deviation"
)

// comparisonFlags holds per-invocation overrides of the configured engine
// options. Only flags the user actually set are applied.
type comparisonFlags struct {
	frames     int
	window     int
	parallel   bool
	thresholds deviation.Thresholds
}

func (f *comparisonFlags) register(cmd *cobra.Command) {
	defaults := deviation.DefaultThresholds()
	flags := cmd.Flags()
	flags.IntVar(&f.frames, "frames", 0, "Normalized frame count (default from config)")
	flags.IntVar(&f.window, "window", 0, "DTW band width in frames, 0 for unconstrained")
	flags.BoolVar(&f.parallel, "parallel", false, "Run resampling and checks concurrently")
	flags.Float64Var(&f.thresholds.SwingPlane, "swing-plane", defaults.SwingPlane, "Swing plane threshold (radians)")
	flags.Float64Var(&f.thresholds.Head, "head", defaults.Head, "Head movement threshold")
	flags.Float64Var(&f.thresholds.FrontFoot, "front-foot", defaults.FrontFoot, "Front foot threshold")
	flags.Float64Var(&f.thresholds.BackFoot, "back-foot", defaults.BackFoot, "Back foot threshold")
	flags.Float64Var(&f.thresholds.FollowThrough, "follow-through", defaults.FollowThrough, "Follow-through threshold")
	flags.Float64Var(&f.thresholds.Tempo, "tempo", defaults.Tempo, "Tempo threshold")
}

func (f *comparisonFlags) apply(cmd *cobra.Command, opts *compare.Options) {
	flags := cmd.Flags()
	if flags.Changed("frames") {
		opts.Frames = f.frames
	}
	if flags.Changed("window") {
		opts.Window = f.window
	}
	if flags.Changed("parallel") {
		opts.Parallel = f.parallel
	}
	overrides := []struct {
		name   string
		target *float64
		value  float64
	}{
		{"swing-plane", &opts.Thresholds.SwingPlane, f.thresholds.SwingPlane},
		{"head", &opts.Thresholds.Head, f.thresholds.Head},
		{"front-foot", &opts.Thresholds.FrontFoot, f.thresholds.FrontFoot},
		{"back-foot", &opts.Thresholds.BackFoot, f.thresholds.BackFoot},
		{"follow-through", &opts.Thresholds.FollowThrough, f.thresholds.FollowThrough},
		{"tempo", &opts.Thresholds.Tempo, f.thresholds.Tempo},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			*o.target = o.value
		}
	}
}
