package cache

// ParseKeyOpts holds every setting that changes the outcome of a parse.
type ParseKeyOpts struct {
	StrictColor      bool `json:"strict_color"`
	CheckCycles      bool `json:"check_cycles"`
	CheckCurvedLines bool `json:"check_curved_lines"`
	CheckAnchorKinds bool `json:"check_anchor_kinds"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ParseKey returns the key for the parse result of a document whose
	// content hash is contentHash.
	ParseKey(contentHash string, opts ParseKeyOpts) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ParseKey returns "parse:" followed by a hash of the content hash and options.
func (DefaultKeyer) ParseKey(contentHash string, opts ParseKeyOpts) string {
	return hashKey("parse", contentHash, opts)
}

// ScopedKeyer prefixes every key from an inner keyer, so that several
// processes can share one Redis database without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner selects
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ParseKey returns the prefixed inner key.
func (k *ScopedKeyer) ParseKey(contentHash string, opts ParseKeyOpts) string {
	return k.prefix + k.inner.ParseKey(contentHash, opts)
}
