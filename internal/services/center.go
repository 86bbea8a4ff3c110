package services

import (
	"errors"
	"fmt"
	"math"

	"meeting-point-service/internal/domain"
)

var (
	// ErrInvalidArgument reports input the solver cannot work with
	// (empty point set, non-finite values, bad options).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDegenerateInput reports an estimate that coincides with an input point
	// under CoincidentFail, or an iteration that produced a non-finite estimate.
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrNonConvergence reports that the iteration cap was reached. The
	// accompanying MedianResult still carries the best available estimate.
	ErrNonConvergence = errors.New("median did not converge")
)

const (
	DefaultMedianTolerance     = 1e-6
	DefaultMedianMaxIterations = 1000

	// Distances below this are treated as zero when weighting points.
	coincidentDistance = 1e-12
)

// SeedStrategy selects the first estimate of the iterative solver.
type SeedStrategy int

const (
	// SeedMean starts from the arithmetic center of the input.
	SeedMean SeedStrategy = iota
	// SeedOrigin starts from (0, 0).
	SeedOrigin
)

// CoincidentPolicy decides what happens when the current estimate lands
// exactly on an input point, where the 1/distance weight is undefined.
type CoincidentPolicy int

const (
	// CoincidentAdjust applies the Vardi-Zhang modified step: the estimate is
	// accepted as the median when the pull of the remaining points does not
	// exceed the multiplicity of the coincident point, otherwise it moves off it.
	CoincidentAdjust CoincidentPolicy = iota
	// CoincidentSnap returns the coincident input point as the converged answer.
	CoincidentSnap
	// CoincidentFail returns ErrDegenerateInput.
	CoincidentFail
)

// MedianOptions tunes GeometricMedian. Zero values select the defaults;
// negative or non-finite values are rejected.
type MedianOptions struct {
	Tolerance     float64
	MaxIterations int
	Seed          SeedStrategy
	// Start overrides Seed when non-nil.
	Start        *domain.Coordinates
	OnCoincident CoincidentPolicy
}

// MedianResult is the outcome of GeometricMedian. Converged is false when the
// iteration cap was hit before successive estimates agreed within tolerance.
type MedianResult struct {
	Center     domain.Coordinates
	Iterations int
	Converged  bool
}

func (o MedianOptions) normalized() (MedianOptions, error) {
	if math.IsNaN(o.Tolerance) || math.IsInf(o.Tolerance, 0) || o.Tolerance < 0 {
		return o, fmt.Errorf("geometric median: tolerance %v: %w", o.Tolerance, ErrInvalidArgument)
	}
	if o.MaxIterations < 0 {
		return o, fmt.Errorf("geometric median: max iterations %d: %w", o.MaxIterations, ErrInvalidArgument)
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultMedianTolerance
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMedianMaxIterations
	}
	if o.Start != nil && !finite(*o.Start) {
		return o, fmt.Errorf("geometric median: start %v: %w", *o.Start, ErrInvalidArgument)
	}
	return o, nil
}

// ArithmeticCenter returns the coordinate-wise mean of points.
func ArithmeticCenter(points []domain.Coordinates) (domain.Coordinates, error) {
	if len(points) == 0 {
		return domain.Coordinates{}, fmt.Errorf("arithmetic center: empty point set: %w", ErrInvalidArgument)
	}

	var sumLat, sumLon float64
	for i, p := range points {
		if !finite(p) {
			return domain.Coordinates{}, fmt.Errorf("arithmetic center: point %d is not finite: %w", i, ErrInvalidArgument)
		}
		sumLat += p.Lat
		sumLon += p.Lon
	}

	n := float64(len(points))
	return domain.Coordinates{Lat: sumLat / n, Lon: sumLon / n}, nil
}

// GeometricMedian approximates the point minimizing the summed distance to
// points using Weiszfeld's algorithm.
//
// Latitude and longitude are treated as planar coordinates, which is close
// enough at city scale but is not a geodesic median. Duplicate points are
// kept and weigh proportionally to their count. points is never modified.
func GeometricMedian(points []domain.Coordinates, opts MedianOptions) (MedianResult, error) {
	opts, err := opts.normalized()
	if err != nil {
		return MedianResult{}, err
	}

	if len(points) == 0 {
		return MedianResult{}, fmt.Errorf("geometric median: empty point set: %w", ErrInvalidArgument)
	}

	mean, err := ArithmeticCenter(points)
	if err != nil {
		return MedianResult{}, fmt.Errorf("geometric median: %w", err)
	}

	if len(points) == 1 {
		return MedianResult{Center: points[0], Converged: true}, nil
	}

	current := mean
	switch {
	case opts.Start != nil:
		current = *opts.Start
	case opts.Seed == SeedOrigin:
		current = domain.Coordinates{}
	}

	for i := 1; i <= opts.MaxIterations; i++ {
		next, done, err := weiszfeldStep(points, current, opts.OnCoincident)
		if err != nil {
			return MedianResult{Center: current, Iterations: i}, fmt.Errorf("geometric median: iteration %d: %w", i, err)
		}
		if done {
			return MedianResult{Center: next, Iterations: i, Converged: true}, nil
		}

		if !finite(next) {
			return MedianResult{Center: current, Iterations: i}, fmt.Errorf(
				"geometric median: iteration %d produced non-finite estimate: %w", i, ErrDegenerateInput,
			)
		}

		if math.Abs(next.Lat-current.Lat) <= opts.Tolerance && math.Abs(next.Lon-current.Lon) <= opts.Tolerance {
			return MedianResult{Center: next, Iterations: i, Converged: true}, nil
		}
		current = next
	}

	return MedianResult{Center: current, Iterations: opts.MaxIterations}, fmt.Errorf(
		"geometric median: no convergence within %d iterations (tolerance %g): %w",
		opts.MaxIterations, opts.Tolerance, ErrNonConvergence,
	)
}

// weiszfeldStep computes the next estimate from current. done is true when
// current is itself the answer and the loop should stop.
func weiszfeldStep(
	points []domain.Coordinates,
	current domain.Coordinates,
	policy CoincidentPolicy,
) (next domain.Coordinates, done bool, err error) {
	var (
		sumWeights     float64
		weightedLat    float64
		weightedLon    float64
		pullLat        float64
		pullLon        float64
		coincident     int
		coincidentWith domain.Coordinates
	)

	for _, p := range points {
		dLat := p.Lat - current.Lat
		dLon := p.Lon - current.Lon
		d := math.Hypot(dLat, dLon)

		if d < coincidentDistance {
			switch policy {
			case CoincidentSnap:
				return p, true, nil
			case CoincidentFail:
				return current, false, fmt.Errorf("estimate %v coincides with an input point: %w", current, ErrDegenerateInput)
			}
			coincident++
			coincidentWith = p
			continue
		}

		w := 1 / d
		sumWeights += w
		weightedLat += p.Lat * w
		weightedLon += p.Lon * w
		pullLat += dLat * w
		pullLon += dLon * w
	}

	// Every input point sits on the estimate.
	if sumWeights == 0 {
		return current, true, nil
	}

	t := domain.Coordinates{Lat: weightedLat / sumWeights, Lon: weightedLon / sumWeights}
	if coincident == 0 {
		return t, false, nil
	}

	// The estimate is an input point; it is optimal when the unit pull of the
	// other points does not exceed its multiplicity.
	eta := float64(coincident)
	r := math.Hypot(pullLat, pullLon)
	if r <= eta {
		return coincidentWith, true, nil
	}

	alpha := eta / r
	return domain.Coordinates{
		Lat: (1-alpha)*t.Lat + alpha*current.Lat,
		Lon: (1-alpha)*t.Lon + alpha*current.Lon,
	}, false, nil
}

func finite(c domain.Coordinates) bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) && !math.IsNaN(c.Lon) && !math.IsInf(c.Lon, 0)
}
