// Package instance reads, validates, writes and fingerprints knapsack instance files.
//
// Files are YAML (JSON is accepted too, as a YAML subset):
//
//	name: cargo
//	capacity: 50
//	items:
//	  - {label: crate-a, value: 60, weight: 10}
//	  - {label: crate-b, value: 100, weight: 20}
package instance

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvbnb/gen"
	"github.com/katalvlaran/lvbnb/knapsack"
)

// ErrEmptyDocument is returned when a file holds no YAML document.
var ErrEmptyDocument = errors.New("instance: empty document")

// Item is one selectable entry of a file.
type Item struct {
	Label  string  `yaml:"label,omitempty"`
	Value  float64 `yaml:"value" validate:"finite,gte=0"`
	Weight float64 `yaml:"weight" validate:"finite,gt=0"`
}

// File is the on-disk instance.
type File struct {
	Name     string  `yaml:"name,omitempty"`
	Capacity float64 `yaml:"capacity" validate:"finite,gte=0"`
	Items    []Item  `yaml:"items" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("finite", validateFinite); err != nil {
		panic(fmt.Sprintf("instance: register finite validation: %v", err))
	}
}

// validateFinite rejects NaN and ±Inf.
func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate checks struct constraints (finite numbers, capacity >= 0, weight > 0, value >= 0).
func (f File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("instance %q: %w", f.Name, err)
	}

	return nil
}

// KnapsackItems converts the file into solver items, preserving order.
func (f File) KnapsackItems() []knapsack.Item {
	out := make([]knapsack.Item, len(f.Items))
	for i, it := range f.Items {
		out[i] = knapsack.Item{Value: it.Value, Weight: it.Weight}
	}

	return out
}

// Fingerprint hashes the semantic content (capacity and the ordered value/weight
// pairs) with xxhash. Names and labels do not contribute.
func (f File) Fingerprint() uint64 {
	buf := make([]byte, 0, 16+16*len(f.Items))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f.Capacity))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(f.Items)))
	for _, it := range f.Items {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(it.Value))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(it.Weight))
	}

	return xxhash.Sum64(buf)
}

// Parse decodes and validates one document. Unknown fields are rejected.
func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, ErrEmptyDocument
		}
		return File{}, fmt.Errorf("instance: decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}

	return f, nil
}

// Load reads and parses path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("instance: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = path
	}

	return f, nil
}

// Write encodes f as YAML.
func Write(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("instance: encode: %w", err)
	}

	return enc.Close()
}

// FromGenerated wraps a generated instance as a File.
func FromGenerated(name string, g gen.Instance) File {
	f := File{Name: name, Capacity: g.Capacity, Items: make([]Item, len(g.Items))}
	for i, it := range g.Items {
		f.Items[i] = Item{Label: fmt.Sprintf("%s-%d", g.Class, i), Value: it.Value, Weight: it.Weight}
	}

	return f
}
