package telemetry

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/lattice/components"
	"github.com/pthm-cable/lattice/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	// A nil manager discards writes.
	if err := om.WriteFrame(FrameStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WriteRunInfo(RunInfo{Seed: 5, Started: time.Unix(0, 0).UTC(), Instances: 8}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Fatal(err)
	}
	for i := int64(0); i < 3; i++ {
		if err := om.WriteFrame(FrameStats{Frame: i, ScaleMean: 0.5}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 2); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteWindow(WindowStats{EndFrame: 2}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("frames.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "run_id,frame,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], om.RunID()+",0,") {
		t.Errorf("row not stamped with run id: %q", lines[1])
	}

	raw, err := os.ReadFile(filepath.Join(dir, "run.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var info RunInfo
	if err := yaml.Unmarshal(raw, &info); err != nil {
		t.Fatal(err)
	}
	if info.RunID != om.RunID() || info.Seed != 5 {
		t.Errorf("run.yaml = %+v", info)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}

func TestWriteLayerPNG(t *testing.T) {
	samples := []components.Attributes{
		{Color: mgl64.Vec3{1, 0, 0}},
		{Color: mgl64.Vec3{0, 1, 0}},
		{Color: mgl64.Vec3{0, 0, 1}},
		{Color: mgl64.Vec3{2, -1, 0.5}},
	}
	path := filepath.Join(t.TempDir(), "layer.png")
	if err := WriteLayerPNG(path, samples, 2, 2, 4); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("bounds = %v, want 8x8", b)
	}
	r, g, b, _ := img.At(7, 7).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 128 {
		t.Errorf("bottom-right pixel = %d,%d,%d; want clamped 255,0,128", r>>8, g>>8, b>>8)
	}
	r, _, _, _ = img.At(0, 0).RGBA()
	if r>>8 != 255 {
		t.Errorf("top-left red = %d, want 255", r>>8)
	}
}

func TestLayerImageRejectsShortInput(t *testing.T) {
	if _, err := LayerImage(make([]components.Attributes, 3), 2, 2); err == nil {
		t.Error("expected error for too few samples")
	}
}
