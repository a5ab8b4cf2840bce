// Package sweep drives the Alamouti link over a range of Eb/N0 values and collects the
// simulated bit error rate curve.
package sweep

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wiless/alamouti"
)

// PointFunc receives every finalized point. It is called from the worker that produced the
// point, so implementations must be safe for concurrent use.
type PointFunc func(idx int, p alamouti.BERPoint)

// Run simulates every Eb/N0 value of s and returns the curve in grid order.
func Run(ctx context.Context, s Setting) (alamouti.Curve, error) {
	return RunWith(ctx, s, nil)
}

// RunWith is Run with a callback per finalized point. Points run concurrently on at most
// s.Workers goroutines, each with its own generator derived from s.Seed, so the curve does
// not depend on scheduling. On cancellation or error the points finalized so far are
// returned together with the error.
func RunWith(ctx context.Context, s Setting, onPoint PointFunc) (alamouti.Curve, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Seed == 0 {
		s.Seed = uint64(time.Now().UnixNano())
	}
	grid := s.EbN0dB()
	logger := log.WithFields(log.Fields{"nrx": s.NRx, "bits": s.Bits, "seed": s.Seed, "points": len(grid)})
	logger.Info("Sweep: starting")
	start := time.Now()

	curve := make(alamouti.Curve, len(grid))
	finalized := make([]bool, len(grid))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)
	for i, ebn0 := range grid {
		if gctx.Err() != nil {
			break
		}
		i, ebn0 := i, ebn0
		g.Go(func() error {
			p, err := RunPoint(gctx, s, ebn0, pointSeed(s.Seed, i))
			if err != nil {
				return err
			}
			curve[i] = p
			finalized[i] = true
			logger.WithFields(log.Fields{"ebn0": ebn0, "errors": p.Errors, "ber": p.BER}).Info("Sweep: point done")
			if onPoint != nil {
				onPoint(i, p)
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		partial := make(alamouti.Curve, 0, len(curve))
		for i, ok := range finalized {
			if ok {
				partial = append(partial, curve[i])
			}
		}
		logger.WithError(err).Warnf("Sweep: stopped after %d of %d points", len(partial), len(grid))
		return partial, err
	}
	logger.Infof("Sweep: done in %s", time.Since(start))
	return curve, nil
}
