package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stdkit/pkg/env"
)

func TestMap(t *testing.T) {
	t.Parallel()

	vars := map[string]string{"A": "1"}
	m := env.NewMap(vars)

	value, ok := m.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	require.NoError(t, m.Set("B", "2"))
	assert.Equal(t, "2", m.Get("B"))

	require.NoError(t, m.Unset("A"))
	_, ok = m.Lookup("A")
	assert.False(t, ok)

	// The source map is copied, not shared.
	assert.Equal(t, "1", vars["A"])
	assert.Equal(t, map[string]string{"B": "2"}, m.Environ())
}

func TestParse(t *testing.T) {
	t.Parallel()

	got := env.Parse([]string{"A=1", "B=x=y", "EMPTY=", "novalue", "=skip"})
	assert.Equal(t, map[string]string{"A": "1", "B": "x=y", "EMPTY": ""}, got)
}

func TestLookupFold(t *testing.T) {
	t.Parallel()

	m := env.NewMap(map[string]string{"Path": "/bin", "path": "/usr/bin", "HOME": "/root"})

	value, ok := env.LookupFold(m, "path")
	assert.True(t, ok)
	assert.Equal(t, "/usr/bin", value, "exact match wins")

	value, ok = env.LookupFold(m, "home")
	assert.True(t, ok)
	assert.Equal(t, "/root", value)

	_, ok = env.LookupFold(m, "missing")
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	t.Parallel()

	m := env.NewMap(map[string]string{"KEEP": "old"})

	require.NoError(t, env.Apply(m, map[string]string{"KEEP": "new", "ADD": "x"}, false))
	assert.Equal(t, "old", m.Get("KEEP"))
	assert.Equal(t, "x", m.Get("ADD"))

	require.NoError(t, env.Apply(m, map[string]string{"KEEP": "new"}, true))
	assert.Equal(t, "new", m.Get("KEEP"))
}

func TestOS(t *testing.T) {
	t.Setenv("STDKIT_ENV_TEST", "value")

	e := env.OS()
	assert.Equal(t, "value", e.Get("STDKIT_ENV_TEST"))
	assert.Equal(t, "value", e.Environ()["STDKIT_ENV_TEST"])
}
