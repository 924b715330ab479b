// Package sweep evaluates an arm over a range of values for one joint.
package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/armkin/internal/kinematics"
)

var (
	ErrJointOutOfRange = errors.New("sweep: joint index out of range")
	ErrInvalidSteps    = errors.New("sweep: steps must be at least 1")
)

type Config struct {
	Lengths []float64
	Angles  []float64
	Joint   int
	From    float64
	To      float64
	Steps   int
	Dim     kinematics.Dimension
}

type Result struct {
	Values  []float64
	Poses   []kinematics.Positions
	Metrics map[string]float64
}

// Tips returns the tip position of every pose.
func (r *Result) Tips() (xs, ys []float64) {
	xs = make([]float64, len(r.Poses))
	ys = make([]float64, len(r.Poses))
	for i, p := range r.Poses {
		tip := p.Tip()
		xs[i], ys[i] = tip.X, tip.Y
	}
	return xs, ys
}

// Values returns the swept joint values, endpoints included.
func Values(from, to float64, steps int) []float64 {
	if steps < 1 {
		return nil
	}
	vals := make([]float64, steps)
	if steps == 1 {
		vals[0] = from
		return vals
	}
	step := (to - from) / float64(steps-1)
	for i := range vals {
		vals[i] = from + float64(i)*step
	}
	vals[steps-1] = to
	return vals
}

// Run solves the chain once per swept value. The base angles are copied;
// only the selected joint changes between poses.
func Run(ctx context.Context, cfg Config, metrics ...Metric) (*Result, error) {
	if err := kinematics.Validate(cfg.Lengths, cfg.Angles); err != nil {
		return nil, err
	}
	if cfg.Joint < 0 || cfg.Joint >= len(cfg.Angles) {
		return nil, fmt.Errorf("%w: %d (chain has %d joints)", ErrJointOutOfRange, cfg.Joint, len(cfg.Angles))
	}
	if cfg.Steps < 1 {
		return nil, ErrInvalidSteps
	}
	if len(metrics) == 0 {
		metrics = DefaultMetrics()
	}

	values := Values(cfg.From, cfg.To, cfg.Steps)
	sets := make([][]float64, len(values))
	for i, v := range values {
		angles := make([]float64, len(cfg.Angles))
		copy(angles, cfg.Angles)
		angles[cfg.Joint] = v
		sets[i] = angles
	}

	poses, err := kinematics.SolveBatch(ctx, cfg.Lengths, sets, cfg.Dim)
	if err != nil {
		return nil, err
	}

	for _, m := range metrics {
		m.Reset()
		for _, p := range poses {
			m.Observe(p)
		}
	}

	result := &Result{Values: values, Poses: poses, Metrics: make(map[string]float64, len(metrics))}
	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
