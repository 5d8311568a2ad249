package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/lattice/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds one frame's complete lattice state for offline inspection.
type Snapshot struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id,omitempty"`
	Seed    int64  `json:"seed"`

	Frame int64   `json:"frame"`
	Time  float64 `json:"time"`

	Grid   GridState   `json:"grid"`
	Params ParamsState `json:"params"`

	Instances []InstanceState `json:"instances"`
}

// GridState records the lattice dimensions.
type GridState struct {
	XCount  int     `json:"x_count"`
	YCount  int     `json:"y_count"`
	ZCount  int     `json:"z_count"`
	Spacing float64 `json:"spacing"`
}

// ParamsState records the parameter snapshot the frame was evaluated with.
type ParamsState struct {
	Colors          [3][3]float64 `json:"colors"`
	TimeMul         float64       `json:"time_mul"`
	TexScale        float64       `json:"tex_scale"`
	InfluenceActive bool          `json:"influence_active"`
	InfluencePoint  [3]float64    `json:"influence_point"`
	Version         uint64        `json:"version"`
}

// InstanceState holds one instance's position and published attributes.
type InstanceState struct {
	ID        int        `json:"id"`
	Position  [3]float64 `json:"position"`
	Scale     float64    `json:"scale"`
	Color     [3]float64 `json:"color"`
	Metalness float64    `json:"metalness"`
	Roughness float64    `json:"roughness"`
}

// NewInstanceState flattens an instance for serialization.
func NewInstanceState(id int, pos components.Position, a components.Attributes) InstanceState {
	return InstanceState{
		ID:        id,
		Position:  [3]float64(pos.Vec3),
		Scale:     a.ScaleFactor,
		Color:     [3]float64(a.Color),
		Metalness: a.Metalness,
		Roughness: a.Roughness,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Frame))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
