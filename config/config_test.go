package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knitnet/geometry"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxConnections, cfg.Topology.MaxConnections)
	assert.False(t, cfg.Topology.Precise)
	assert.Nil(t, cfg.Topology.StartRow)
	assert.Equal(t, 0, cfg.Log.Verbosity)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "knitnet.yaml", `
topology:
  max_connections: 6
  start_row: 2
  least_connected: true
log:
  verbosity: 3
output:
  snapshot: out.snap
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Topology.MaxConnections)
	require.NotNil(t, cfg.Topology.StartRow)
	assert.Equal(t, 2, *cfg.Topology.StartRow)
	assert.True(t, cfg.Topology.LeastConnected)
	assert.Equal(t, 3, cfg.Log.Verbosity)
	assert.Equal(t, "out.snap", cfg.Output.Snapshot)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "knitnet.yaml", "topology:\n  max_connections: 6\n")
	t.Setenv("KNITNET_MAX_CONNECTIONS", "8")
	t.Setenv("KNITNET_PRECISE", "true")
	t.Setenv("KNITNET_START_ROW", "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Topology.MaxConnections)
	assert.True(t, cfg.Topology.Precise)
	require.NotNil(t, cfg.Topology.StartRow)
	assert.Equal(t, 1, *cfg.Topology.StartRow)
}

func TestLoad_BadEnvValueKeepsCurrent(t *testing.T) {
	t.Setenv("KNITNET_MAX_CONNECTIONS", "many")
	t.Setenv("KNITNET_LEAST_CONNECTED", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxConnections, cfg.Topology.MaxConnections)
	assert.False(t, cfg.Topology.LeastConnected)
}

func TestLoad_EnvFile(t *testing.T) {
	env := writeFile(t, "test.env", "KNITNET_FORCE_CONTINUOUS_END=true\n")
	t.Cleanup(func() { os.Unsetenv("KNITNET_FORCE_CONTINUOUS_END") })

	cfg, err := Load("", env)
	require.NoError(t, err)
	assert.True(t, cfg.Topology.ForceContinuousEnd)

	_, err = Load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero connections": "topology:\n  max_connections: 0\n",
		"negative start":   "topology:\n  start_row: -1\n",
		"verbosity":        "log:\n  verbosity: 9\n",
		"not yaml":         "topology: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "knitnet.yaml", body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseCourses(t *testing.T) {
	c, err := ParseCourses([]byte(`
course_height: 0.5
rows:
  - [[0, 0, 0], [1, 0, 0], [2, 0, 0]]
  - [[0, 0.5, 0], [1, 0.5, 0]]
`))
	require.NoError(t, err)
	assert.Equal(t, 0.5, c.CourseHeight)
	require.Len(t, c.Rows, 2)
	assert.Equal(t, 3, c.Rows[0].Len())
	assert.Equal(t, 0.5, c.Rows[1].Points[1].Y)
	assert.Equal(t, 5, c.TotalPoints())

	_, err = ParseCourses([]byte("course_height: 1\nrows:\n  - [[0, 0, 0]]\n"))
	assert.ErrorIs(t, err, geometry.ErrShortRow)

	_, err = ParseCourses([]byte("rows:\n  - [[0, 0, 0], [1, 0, 0]]\n"))
	assert.ErrorIs(t, err, geometry.ErrCourseHeight)
}

func TestLoadCourses(t *testing.T) {
	path := writeFile(t, "rows.yaml", "course_height: 1\nrows:\n  - [[0, 0, 0], [1, 0, 0]]\n  - [[0, 1, 0], [1, 1, 0]]\n")
	c, err := LoadCourses(path)
	require.NoError(t, err)
	assert.Len(t, c.Rows, 2)
}
