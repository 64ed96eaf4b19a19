package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAsset = `{
	"Winger": {"key_metrics": {"npxg_p90": 0.3, "dribbles_completed_p90": 0.4, "crosses_p90": 0.3}},
	"Stopper": {"key_metrics": {"tackles_won_p90": 0.5, "aerials_won_pct": 0.5}},
	"Free Role": {"key_metrics": {"touches_p90": 1.0}}
}`

func TestParseRegistry(t *testing.T) {
	r, err := ParseRegistry([]byte(sampleAsset))
	require.NoError(t, err)

	assert.Equal(t, []string{"Free Role", "Stopper", "Winger"}, r.Names())

	p, err := r.Lookup("Winger")
	require.NoError(t, err)
	assert.Equal(t, "Forward", p.CategoryGroup)
	assert.Equal(t, 0.4, p.Metrics["dribbles_completed_p90"])
}

func TestLookup_UnknownProfile(t *testing.T) {
	r, err := ParseRegistry([]byte(sampleAsset))
	require.NoError(t, err)

	_, err = r.Lookup("Libero")
	assert.ErrorIs(t, err, ErrUnknownProfile)
	assert.ErrorContains(t, err, "Libero")
	assert.False(t, r.Has("Libero"))
}

func TestParseRegistry_Malformed(t *testing.T) {
	_, err := ParseRegistry([]byte("{not json"))
	assert.ErrorContains(t, err, "parsing profile asset")

	_, err = ParseRegistry([]byte(`{}`))
	assert.ErrorContains(t, err, "no profiles")

	_, err = ParseRegistry([]byte(`{"Winger": {"key_metrics": {}}}`))
	assert.ErrorContains(t, err, "no key metrics")
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadRegistry_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archetypes.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleAsset), 0o644))

	r, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.True(t, r.Has("Stopper"))
}

func TestPositionsFor(t *testing.T) {
	positions, ok := PositionsFor("Winger")
	require.True(t, ok)
	assert.Contains(t, positions, "Striker")
	assert.Contains(t, positions, "Winger")

	_, ok = PositionsFor("Free Role")
	assert.False(t, ok, "unmapped profile triggers no narrowing")
}
