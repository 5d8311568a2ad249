// Package params holds the live-tunable scene parameters and hands out
// immutable per-frame snapshots of them.
package params

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/lattice/components"
)

var (
	// ErrOutOfRange is returned when a setter rejects a value.
	ErrOutOfRange = errors.New("params: value out of range")
	// ErrUnknownField is returned for an unknown color slot or scalar name.
	ErrUnknownField = errors.New("params: unknown field")
)

// Color slots.
const (
	Color0 = 0
	Color1 = 1
	Color2 = 2
)

// Scalar names accepted by SetScalar.
const (
	TimeMul  = "time_mul"
	TexScale = "tex_scale"
)

// Parameters is one consistent view of the tunable values.
// It is a value type: a snapshot never changes after it is taken.
type Parameters struct {
	Colors    [3]mgl64.Vec3
	TimeMul   float64
	TexScale  float64
	Influence components.Influence
	Version   uint64 // incremented on every accepted change
}

// BandColor returns the color assigned to a band.
func (p Parameters) BandColor(b components.Band) mgl64.Vec3 {
	switch b {
	case components.BandHigh:
		return p.Colors[Color1]
	case components.BandMid:
		return p.Colors[Color2]
	default:
		return p.Colors[Color0]
	}
}

// Range is a soft [Min, Max] bound. Values outside it are accepted but logged.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Defaults returns the reference scene parameters.
func Defaults() Parameters {
	return Parameters{
		Colors: [3]mgl64.Vec3{
			{0.1, 0.1, 0.1},
			{1, 0.843, 0},
			{1, 1, 1},
		},
		TimeMul:  0.1,
		TexScale: 0.2,
	}
}

// Change describes one accepted mutation.
type Change struct {
	Field   string
	Version uint64
}

// Store is the single owner of Parameters. Setters may be called from a UI
// goroutine while the frame loop takes snapshots from another.
type Store struct {
	mu      sync.RWMutex
	current Parameters

	timeMulRange  Range
	texScaleRange Range

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Change)
}

// NewStore creates a store seeded with initial. Initial values are validated
// with the same rules as the setters.
func NewStore(initial Parameters, timeMulRange, texScaleRange Range) (*Store, error) {
	for i, c := range initial.Colors {
		if err := checkColor(c); err != nil {
			return nil, fmt.Errorf("color%d: %w", i, err)
		}
	}
	if err := checkPositive(initial.TimeMul); err != nil {
		return nil, fmt.Errorf("%s: %w", TimeMul, err)
	}
	if err := checkPositive(initial.TexScale); err != nil {
		return nil, fmt.Errorf("%s: %w", TexScale, err)
	}
	initial.Version = 0
	return &Store{
		current:       initial,
		timeMulRange:  timeMulRange,
		texScaleRange: texScaleRange,
		subs:          make(map[int]func(Change)),
	}, nil
}

// Snapshot returns a copy of the current parameters.
func (s *Store) Snapshot() Parameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Get is an alias for Snapshot.
func (s *Store) Get() Parameters {
	return s.Snapshot()
}

// SoftRanges returns the soft ranges for TimeMul and TexScale.
func (s *Store) SoftRanges() (timeMul, texScale Range) {
	return s.timeMulRange, s.texScaleRange
}

// SetColor replaces one of the three colors.
func (s *Store) SetColor(slot int, rgb mgl64.Vec3) error {
	if slot < Color0 || slot > Color2 {
		return fmt.Errorf("%w: color slot %d", ErrUnknownField, slot)
	}
	if err := checkColor(rgb); err != nil {
		return fmt.Errorf("color%d: %w", slot, err)
	}
	s.mutate(fmt.Sprintf("color%d", slot), func(p *Parameters) {
		p.Colors[slot] = rgb
	})
	return nil
}

// SetScalar sets TimeMul or TexScale by name. Non-positive and non-finite
// values are rejected; positive values outside the soft range are kept and
// a warning is logged.
func (s *Store) SetScalar(name string, value float64) error {
	var soft Range
	var apply func(p *Parameters)
	switch name {
	case TimeMul:
		soft = s.timeMulRange
		apply = func(p *Parameters) { p.TimeMul = value }
	case TexScale:
		soft = s.texScaleRange
		apply = func(p *Parameters) { p.TexScale = value }
	default:
		return fmt.Errorf("%w: scalar %q", ErrUnknownField, name)
	}

	if err := checkPositive(value); err != nil {
		slog.Warn("param rejected", "name", name, "value", value)
		return fmt.Errorf("%s: %w", name, err)
	}
	if !soft.Contains(value) {
		slog.Warn("param out of soft range",
			"name", name,
			"value", value,
			"min", soft.Min,
			"max", soft.Max,
		)
	}

	s.mutate(name, apply)
	return nil
}

// SetInfluencePoint activates the influence at point.
func (s *Store) SetInfluencePoint(point mgl64.Vec3) error {
	for _, v := range point {
		if !finite(v) {
			return fmt.Errorf("influence: %w", ErrOutOfRange)
		}
	}
	s.mutate("influence", func(p *Parameters) {
		p.Influence = components.InfluenceAt(point)
	})
	return nil
}

// ClearInfluence deactivates the influence point.
func (s *Store) ClearInfluence() {
	s.mutate("influence", func(p *Parameters) {
		p.Influence = components.NoInfluence()
	})
}

// SetInfluence applies an influence state, active or not.
func (s *Store) SetInfluence(inf components.Influence) error {
	if !inf.Active {
		s.ClearInfluence()
		return nil
	}
	return s.SetInfluencePoint(inf.Point)
}

// Subscribe registers fn to be called after every accepted change.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) mutate(field string, apply func(p *Parameters)) {
	s.mu.Lock()
	apply(&s.current)
	s.current.Version++
	change := Change{Field: field, Version: s.current.Version}
	s.mu.Unlock()

	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

func checkPositive(v float64) error {
	if !finite(v) || v <= 0 {
		return ErrOutOfRange
	}
	return nil
}

func checkColor(c mgl64.Vec3) error {
	for _, v := range c {
		if !finite(v) || v < 0 {
			return ErrOutOfRange
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
