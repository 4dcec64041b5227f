// Package level loads arena definitions: a YAML descriptor plus the opacity
// mask image the collision surface is derived from.
package level

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/CosmicSlothOracle/HeMilch/surface"
)

//go:embed *.yaml *.png
var levelsFS embed.FS

// SpawnSpec is one fighter slot in the arena.
type SpawnSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Spec is the YAML surface of one arena definition. Mask geometry is in
// source-image space; everything else is in canvas space.
type Spec struct {
	Name string `yaml:"name"`
	Mask string `yaml:"mask"`

	CanvasW int `yaml:"canvas_w"`
	CanvasH int `yaml:"canvas_h"`

	// FallOutY below the canvas triggers stock loss / removal. Zero
	// disables it and relies on emergency recovery instead.
	FallOutY float64 `yaml:"fallout_y"`

	// Safe is the known-good platform used for emergency recovery.
	Safe SpawnSpec `yaml:"safe"`

	Spawns []SpawnSpec `yaml:"spawns"`
}

// Level is a loaded arena: the parsed Spec plus the canvas-space collision
// surface and the mask-to-canvas mapping.
type Level struct {
	Spec    Spec
	Surface *surface.Surface
	Mapping surface.Mapping
}

// Load reads the named arena definition, decodes its mask, and rescales the
// mask's alpha plane into canvas space. A disk copy under level/ shadows
// the embedded one.
func Load(name string) (*Level, error) {
	data, err := readFile(name)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", name, err)
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("level: unmarshal %s: %w", name, err)
	}
	if spec.CanvasW <= 0 || spec.CanvasH <= 0 {
		return nil, fmt.Errorf("level: %s: invalid canvas %dx%d", name, spec.CanvasW, spec.CanvasH)
	}
	if len(spec.Spawns) < 2 {
		return nil, fmt.Errorf("level: %s: need at least two spawns, have %d", name, len(spec.Spawns))
	}

	maskData, err := readFile(spec.Mask)
	if err != nil {
		return nil, fmt.Errorf("level: load mask %s: %w", spec.Mask, err)
	}
	img, _, err := image.Decode(bytes.NewReader(maskData))
	if err != nil {
		return nil, fmt.Errorf("level: decode mask %s: %w", spec.Mask, err)
	}

	b := img.Bounds()
	return &Level{
		Spec:    spec,
		Surface: surface.Rescale(img, spec.CanvasW, spec.CanvasH),
		Mapping: surface.FitMapping(b.Dx(), b.Dy(), spec.CanvasW, spec.CanvasH),
	}, nil
}

func readFile(name string) ([]byte, error) {
	clean := filepath.ToSlash(name)
	if data, err := os.ReadFile(filepath.Join("level", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return levelsFS.ReadFile(clean)
}
