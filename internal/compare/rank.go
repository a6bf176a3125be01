package compare

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"swingmatch/internal/motion"
	"swingmatch/internal/resample"
)

// Reference is a named motion to rank against.
type Reference struct {
	Name   string
	Motion motion.Motion
}

// Ranking is one reference's comparison against the user motion.
type Ranking struct {
	Name string `json:"name"`
	Report
}

// Rank compares user against every reference, at most GOMAXPROCS at a time,
// and returns the results by descending similarity with ties broken by name.
func Rank(ctx context.Context, user motion.Motion, references []Reference, opts Options) ([]Ranking, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if _, err := user.Validate(); err != nil {
		return nil, fmt.Errorf("user motion: %w", err)
	}
	usr, err := resample.Resample(user, opts.frames())
	if err != nil {
		return nil, err
	}

	rankings := make([]Ranking, len(references))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, ref := range references {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := motion.CheckPair(ref.Motion, user); err != nil {
				return fmt.Errorf("reference %s: %w", ref.Name, err)
			}
			tr, err := resample.Resample(ref.Motion, opts.frames())
			if err != nil {
				return fmt.Errorf("reference %s: %w", ref.Name, err)
			}
			report, err := compareTrajectories(tr, usr, opts)
			if err != nil {
				return fmt.Errorf("reference %s: %w", ref.Name, err)
			}
			report.ReferenceFrames = len(ref.Motion)
			report.UserFrames = len(user)
			rankings[i] = Ranking{Name: ref.Name, Report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(rankings, func(a, b Ranking) int {
		if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return rankings, nil
}
