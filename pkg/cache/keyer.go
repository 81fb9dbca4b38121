package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// OutputKeyOpts are the inputs that determine a compiled output.
// Two option sets that compile to the same bytes must produce equal keys.
type OutputKeyOpts struct {
	Mode      string `json:"mode"`
	Query     string `json:"query,omitempty"`
	Columns   int    `json:"columns,omitempty"`
	Rows      int    `json:"rows,omitempty"`
	Layout    string `json:"layout,omitempty"`
	Container string `json:"container"`
	Spacing   bool   `json:"spacing"`
	Highlight bool   `json:"highlight"`

	// Style values and the named layout's definition. User config can
	// change both without changing the fields above.
	Padding    string `json:"padding"`
	Gap        string `json:"gap"`
	Background string `json:"background"`
	Definition string `json:"definition,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	OutputKey(opts OutputKeyOpts) string
}

// DefaultKeyer hashes the JSON form of the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// OutputKey returns "output:<sha256>".
func (DefaultKeyer) OutputKey(opts OutputKeyOpts) string {
	return hashKey("output", opts)
}

// ScopedKeyer prefixes every key of an inner keyer, so several deployments
// can share one Redis database.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer if nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// OutputKey returns the prefixed inner key.
func (k *ScopedKeyer) OutputKey(opts OutputKeyOpts) string {
	return k.prefix + k.inner.OutputKey(opts)
}

// hashKey returns prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
