package cache

import "fmt"

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format    string
	Type      string
	Selection string
	Title     string
	Width     float64
	Height    float64
	Palette   string // palette fingerprint
	Labels    bool
	Legend    bool
	Markers   int
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered format of an input network.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes the input hash together with every option.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts.Format, opts.Type, opts.Selection, opts.Title,
		fmt.Sprintf("%.1fx%.1f", opts.Width, opts.Height), opts.Palette, opts.Labels, opts.Legend, opts.Markers)
}
