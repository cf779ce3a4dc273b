package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bvmc/bvmc/pkg/bmc"
)

func TestParse(t *testing.T) {
	type tc struct {
		Name     string
		Input    string
		Expected Config
		Error    string
	}
	for _, tt := range []tc{
		{
			Name:     "empty",
			Input:    "\n",
			Expected: Default(),
		},
		{
			Name: "overrides",
			Input: `
kmin: 2
kmax: 7
stopAtFirst: false
traceGen: true
outputBase: hex
parallelism: 4
`,
			Expected: Config{Kmin: 2, Kmax: 7, TraceGen: true, OutputBase: "hex", Parallelism: 4},
		},
		{
			Name:     "partial",
			Input:    "kmax: 3\ndebug: true\n",
			Expected: Config{Kmax: 3, StopAtFirst: true, OutputBase: "bin", Parallelism: 1, Debug: true},
		},
		{
			Name:  "unknown key",
			Input: "kmax: 3\nengine: ic3\n",
			Error: "decode config",
		},
		{
			Name:  "single invalid value",
			Input: "kmin: 5\nkmax: 3\n",
			Error: "invalid config: kmax 3 is below kmin 5",
		},
		{
			Name:  "several invalid values",
			Input: "kmin: -1\noutputBase: oct\nparallelism: 0\n",
			Error: "invalid config: 3 errors",
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			c, err := Parse([]byte(tt.Input))
			if tt.Error != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.Expected, c)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bvmc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kmax: 9\noutputBase: dec\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, c.Kmax)
	assert.Equal(t, bmc.Dec, c.Base())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	c := Default()
	c.StopAtFirst = false
	c.TraceGen = true
	assert.Len(t, c.Options(), 2)

	e, err := bmc.New(c.Options()...)
	require.NoError(t, err)
	defer e.Close()
	// Trace generation is already on, so dumping an empty engine works.
	assert.NoError(t, e.Dump(io.Discard))
	assert.Len(t, Default().Options(), 1)
}

