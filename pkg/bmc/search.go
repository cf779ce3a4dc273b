package bmc

import (
	"context"
	"fmt"
	"time"

	"github.com/go-air/gini/z"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bvmc/bvmc/pkg/metrics"
	"github.com/bvmc/bvmc/pkg/sat"
)

var tracer = otel.Tracer("github.com/bvmc/bvmc/pkg/bmc")

// Search checks every bound from min to max that has not been searched
// by an earlier call and returns the smallest bound at which a property
// was newly found reachable, or NotFound.
//
// Bounds below min are unrolled but not checked. A later call resumes
// after the last searched bound; a call whose max lies below it searches
// nothing and returns the smallest recorded bound within [min, max].
//
// With stop-at-first enabled Search returns after the first bound at
// which a property is reached. Otherwise it continues to max, or until
// every property has been reached.
//
// The current counterexample is dropped only when the call unrolls a
// frame or issues a query.
func (e *Engine) Search(ctx context.Context, min, max int) (int, error) {
	if err := e.usable("search"); err != nil {
		return NotFound, err
	}
	if min < 0 || max < min {
		return NotFound, usagef("search", "invalid bounds [%d, %d]", min, max)
	}
	if !e.frozen {
		if err := e.freeze(); err != nil {
			return NotFound, err
		}
	}
	if max < e.next {
		found := e.tracker.earliest(min, max)
		e.log.WithFields(logrus.Fields{"min": min, "max": max, "found": found}).Debug("bounds already searched")
		return found, nil
	}

	ctx, span := tracer.Start(ctx, "bmc.Search",
		trace.WithAttributes(
			attribute.Int("bmc.min", min),
			attribute.Int("bmc.max", max),
			attribute.Int("bmc.properties", len(e.bad)),
		),
	)
	defer span.End()

	start := time.Now()
	found, err := e.search(ctx, min, max)
	if err != nil {
		metrics.EmitSearch(metrics.Failed, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return NotFound, err
	}
	result := metrics.NotFound
	if found != NotFound {
		result = metrics.Found
	}
	metrics.EmitSearch(result, time.Since(start))
	span.SetAttributes(attribute.Int("bmc.found", found))
	span.SetStatus(codes.Ok, "")
	return found, nil
}

func (e *Engine) search(ctx context.Context, min, max int) (int, error) {
	found := NotFound
	k := e.next
	if k < min {
		k = min
	}
	for first := true; k <= max; k++ {
		if len(e.tracker.unreached()) == 0 {
			e.log.Debug("every property reached")
			break
		}
		// The current model only survives calls that assert nothing new.
		if first {
			e.model = nil
			first = false
		}
		if err := e.ensure(k + 1); err != nil {
			return found, err
		}
		reached, err := e.query(ctx, k)
		if len(reached) > 0 {
			metrics.EmitReached(len(reached))
			e.tracker.notify(reached, k)
			if found == NotFound {
				found = k
			}
		}
		if err != nil {
			return found, err
		}
		e.next = k + 1
		if len(reached) > 0 && e.stopAtFirst {
			break
		}
	}
	return found, nil
}

// ensure unrolls until n frames exist.
func (e *Engine) ensure(n int) error {
	for len(e.u.frames) < n {
		if err := e.u.extend(e.latches, e.inputs); err != nil {
			return err
		}
		metrics.EmitFrame()
		e.log.WithField("frame", len(e.u.frames)-1).Debug("frame unrolled")
	}
	return nil
}

// query finds every unreached property that is reachable at bound k. It
// assumes the disjunction of the candidates, records those satisfied by
// the model and repeats with the rest until the query is unsatisfiable.
func (e *Engine) query(ctx context.Context, k int) ([]int, error) {
	ctx, span := tracer.Start(ctx, "bmc.Query", trace.WithAttributes(attribute.Int("bmc.bound", k)))
	defer span.End()

	candidates := e.tracker.unreached()
	lits := make(map[int]z.Lit, len(candidates))
	for _, i := range candidates {
		lits[i] = e.u.at(e.bad[i], k)[0]
	}
	if err := e.u.errs.err(); err != nil {
		return nil, err
	}

	var reached []int
	for len(candidates) > 0 {
		ms := make([]z.Lit, len(candidates))
		for j, i := range candidates {
			ms[j] = lits[i]
		}
		root := e.u.c.Ors(ms...)
		e.u.flush(root)
		e.solver.Assume(root)
		res, err := e.solver.Solve(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			e.tracer.Trace(position{bound: k, candidates: candidates, outcome: sat.Unknown})
			return reached, &BackendFailure{Bound: k, Err: err}
		}

		pos := position{bound: k, candidates: candidates, outcome: res}
		switch res {
		case sat.Unsatisfiable:
			e.tracer.Trace(pos)
			return reached, nil
		case sat.Satisfiable:
			var hit, rest []int
			for _, i := range candidates {
				if e.solver.Value(lits[i]) {
					hit = append(hit, i)
				} else {
					rest = append(rest, i)
				}
			}
			if len(hit) == 0 {
				return reached, &BackendFailure{Bound: k, Err: fmt.Errorf("model satisfies none of the assumed properties")}
			}
			e.snapshot(k, hit)
			for _, i := range hit {
				e.tracker.record(i, k)
				e.log.WithFields(logrus.Fields{"property": i, "bound": k}).Info("property reached")
			}
			pos.reached = hit
			e.tracer.Trace(pos)
			reached = append(reached, hit...)
			candidates = rest
		default:
			e.tracer.Trace(pos)
			return reached, &BackendFailure{Bound: k, Err: sat.ErrIncomplete}
		}
	}
	return reached, nil
}
