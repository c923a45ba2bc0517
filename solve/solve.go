package solve

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lfgparse/lfg/debug"
	"github.com/lfgparse/lfg/equation"
	"github.com/lfgparse/lfg/fstruct"
)

// Options configures a solve run.
type Options struct {
	// Timeout bounds the whole run; zero means no timeout.
	Timeout time.Duration
	// Workers bounds how many branches solve concurrently; zero or
	// negative means unbounded (one goroutine per branch).
	Workers int
}

// Solve expands desc into its independent branches and solves each one
// to completion, returning the canonicalized f-structure of every branch
// that satisfies its defining equations, constraints, and
// coherence/completeness (spec §4.4, §5). A branch that fails any of
// these is dropped, not reported as an error, and so is the case where
// every branch is dropped: an empty, nil-error result is a legitimate
// outcome ("this description has no admissible reading"), not a solver
// failure. err is reserved for genuine infrastructure failure — a
// timeout, or a branch goroutine returning an unexpected error.
func Solve(ctx context.Context, desc *equation.Ground, root equation.AbsID, nextID equation.AbsID, opts Options) ([]*fstruct.FStructure, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	branches := expand(desc)

	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	results := make([]*fstruct.FStructure, len(branches))
	var mu sync.Mutex
	var accepted int

	for i, branch := range branches {
		i, branch := i, branch
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fs, ok, err := solveBranch(branch, root, nextID)
			if err != nil {
				return err
			}
			if ok {
				results[i] = fs
				mu.Lock()
				accepted++
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if accepted == 0 {
		if debug.Branch() {
			debug.Logf("solve: every branch rejected (%d branch(es) tried)\n", len(branches))
		}
		return []*fstruct.FStructure{}, nil
	}

	out := make([]*fstruct.FStructure, 0, accepted)
	for _, fs := range results {
		if fs != nil {
			out = append(out, fs)
		}
	}
	return out, nil
}

// solveBranch solves one independent branch in its own fstruct.Store,
// returning (nil, false, nil) if this branch is semantically rejected
// rather than erroring — a rejected branch is a normal outcome of
// ambiguity resolution, not a solver failure.
func solveBranch(branch []*equation.Ground, root, nextID equation.AbsID) (*fstruct.FStructure, bool, error) {
	s := fstruct.NewStore()
	gen := equation.NewIDGenFrom(nextID)

	var defining, constraints []*equation.Ground
	for _, eq := range branch {
		if eq == nil {
			continue
		}
		if eq.Kind.IsDefining() {
			defining = append(defining, eq)
		} else {
			constraints = append(constraints, eq)
		}
	}

	if err := applyDefining(s, defining, gen); err != nil {
		return nil, false, nil
	}
	if err := checkConstraints(s, constraints, gen); err != nil {
		if debug.Branch() {
			debug.Logf("solve: branch rejected on constraint: %v\n", err)
		}
		return nil, false, nil
	}
	if err := checkCoherence(s, root); err != nil {
		if debug.Coherence() {
			debug.Logf("solve: branch rejected on coherence: %v\n", err)
		}
		return nil, false, nil
	}

	return fstruct.Canonicalize(s, root), true, nil
}
