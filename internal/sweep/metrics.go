package sweep

import (
	"math"

	"github.com/san-kum/armkin/internal/kinematics"
)

// Metric accumulates a scalar over the poses of a sweep.
type Metric interface {
	Name() string
	Observe(p kinematics.Positions)
	Value() float64
	Reset()
}

func DefaultMetrics() []Metric {
	return []Metric{NewMaxReach(), NewMinReach(), NewTipPath()}
}

type MaxReach struct{ max float64 }

func NewMaxReach() *MaxReach { return &MaxReach{} }

func (m *MaxReach) Name() string { return "max_reach" }
func (m *MaxReach) Observe(p kinematics.Positions) {
	m.max = math.Max(m.max, p.Reach())
}
func (m *MaxReach) Value() float64 { return m.max }
func (m *MaxReach) Reset()         { m.max = 0 }

type MinReach struct {
	min     float64
	samples int
}

func NewMinReach() *MinReach { return &MinReach{} }

func (m *MinReach) Name() string { return "min_reach" }
func (m *MinReach) Observe(p kinematics.Positions) {
	r := p.Reach()
	if m.samples == 0 || r < m.min {
		m.min = r
	}
	m.samples++
}
func (m *MinReach) Value() float64 { return m.min }
func (m *MinReach) Reset()         { m.min, m.samples = 0, 0 }

// TipPath is the polyline length traced by the tip across the sweep.
type TipPath struct {
	total  float64
	last   kinematics.Positions
	primed bool
}

func NewTipPath() *TipPath { return &TipPath{} }

func (m *TipPath) Name() string { return "tip_path_length" }
func (m *TipPath) Observe(p kinematics.Positions) {
	if m.primed {
		m.total += p.Tip().Distance(m.last.Tip())
	}
	m.last, m.primed = p, true
}
func (m *TipPath) Value() float64 { return m.total }
func (m *TipPath) Reset() {
	m.total, m.primed = 0, false
	m.last = kinematics.Positions{}
}
