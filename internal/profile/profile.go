package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrUnknownProfile is returned by Lookup for names not in the registry.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile is a named weighted recipe over statistical metrics. Immutable
// after load.
type Profile struct {
	Name          string
	CategoryGroup string
	Metrics       map[string]float64
}

// Registry holds all scoring profiles loaded at startup. Read-only after
// construction; safe to share across sessions.
type Registry struct {
	profiles map[string]Profile
	names    []string
}

// profileAsset is the on-disk JSON shape: profile name → key metrics.
type profileAsset struct {
	KeyMetrics map[string]float64 `json:"key_metrics"`
}

// LoadRegistry reads the profile recipes from a JSON asset file. Any failure
// here is a configuration error: callers abort startup, there is no safe
// degraded mode.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile asset %s: %w", path, err)
	}
	return ParseRegistry(data)
}

// ParseRegistry builds a registry from raw JSON asset bytes.
func ParseRegistry(data []byte) (*Registry, error) {
	var raw map[string]profileAsset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing profile asset: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("profile asset declares no profiles")
	}

	r := &Registry{profiles: make(map[string]Profile, len(raw))}
	for name, asset := range raw {
		if len(asset.KeyMetrics) == 0 {
			return nil, fmt.Errorf("profile %q declares no key metrics", name)
		}
		metrics := make(map[string]float64, len(asset.KeyMetrics))
		for m, w := range asset.KeyMetrics {
			metrics[m] = w
		}
		r.profiles[name] = Profile{
			Name:          name,
			CategoryGroup: categoryFor(name),
			Metrics:       metrics,
		}
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Lookup returns the profile for name, or ErrUnknownProfile.
func (r *Registry) Lookup(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q: %w", name, ErrUnknownProfile)
	}
	return p, nil
}

// Has reports whether name is a registered profile.
func (r *Registry) Has(name string) bool {
	_, ok := r.profiles[name]
	return ok
}

// Names returns all profile names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
