package instance_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvbnb/gen"
	"github.com/katalvlaran/lvbnb/internal/instance"
	"github.com/katalvlaran/lvbnb/knapsack"
)

const classicYAML = `
name: classic
capacity: 50
items:
  - {label: a, value: 60, weight: 10}
  - {label: b, value: 100, weight: 20}
  - {label: c, value: 120, weight: 30}
`

func TestParse(t *testing.T) {
	f, err := instance.Parse([]byte(classicYAML))
	require.NoError(t, err)
	require.Equal(t, "classic", f.Name)
	require.Equal(t, 50.0, f.Capacity)
	require.Len(t, f.Items, 3)
	require.Equal(t, []knapsack.Item{{Value: 60, Weight: 10}, {Value: 100, Weight: 20}, {Value: 120, Weight: 30}},
		f.KnapsackItems())
}

func TestParse_JSON(t *testing.T) {
	f, err := instance.Parse([]byte(`{"capacity": 10, "items": [{"value": 5, "weight": 2}]}`))
	require.NoError(t, err)
	require.Equal(t, 10.0, f.Capacity)
	require.Len(t, f.Items, 1)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"negative capacity": "capacity: -1\nitems: []\n",
		"zero weight":       "capacity: 5\nitems:\n  - {value: 1, weight: 0}\n",
		"negative value":    "capacity: 5\nitems:\n  - {value: -1, weight: 1}\n",
		"infinite weight":   "capacity: 5\nitems:\n  - {value: 1, weight: .inf}\n",
		"nan capacity":      "capacity: .nan\nitems: []\n",
		"unknown field":     "capacity: 5\ncolour: red\nitems: []\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := instance.Parse([]byte(doc))
			require.Error(t, err)
		})
	}

	_, err := instance.Parse(nil)
	require.ErrorIs(t, err, instance.ErrEmptyDocument)
}

func TestFingerprint(t *testing.T) {
	a, err := instance.Parse([]byte(classicYAML))
	require.NoError(t, err)
	b := a
	b.Name = "renamed"
	b.Items = append([]instance.Item(nil), a.Items...)
	b.Items[0].Label = "other"
	require.Equal(t, a.Fingerprint(), b.Fingerprint(), "names and labels are not semantic")

	b.Items[0].Value = 61
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	c := a
	c.Capacity = 51
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestWriteLoadRoundTrip(t *testing.T) {
	g, err := gen.Generate(gen.WeaklyCorrelated, 12, gen.WithSeed(3))
	require.NoError(t, err)
	f := instance.FromGenerated("weak-12", g)

	var buf bytes.Buffer
	require.NoError(t, instance.Write(&buf, f))

	path := filepath.Join(t.TempDir(), "inst.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	got, err := instance.Load(path)
	require.NoError(t, err)
	require.Equal(t, f, got)
	require.Equal(t, f.Fingerprint(), got.Fingerprint())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := instance.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate_FiniteRule(t *testing.T) {
	f := instance.File{
		Name:     "nan",
		Capacity: 10,
		Items:    []instance.Item{{Value: math.NaN(), Weight: 1}},
	}
	err := f.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	require.Equal(t, "finite", verrs[0].Tag())
	require.Equal(t, "Value", verrs[0].Field())

	f.Items[0].Value = 3
	require.NoError(t, f.Validate())
}
