package nesting

import (
	"github.com/harrison/nestree/internal/models"
)

// SnapshotSource hands out the current nesting configuration.
// Each call must return a value that later mutations cannot affect.
type SnapshotSource interface {
	Snapshot() Config
}

// StaticSource always returns the same configuration.
type StaticSource Config

// Snapshot implements SnapshotSource.
func (s StaticSource) Snapshot() Config {
	cfg := Config(s)
	cfg.Extensions = append([]string(nil), cfg.Extensions...)
	return cfg
}

// ViewSettings carries the host's per-view flags. The nesting core does not
// look at them.
type ViewSettings struct {
	ShowHidden   bool
	FoldersFirst bool
}

// Provider is the hook the host calls for every tree level it renders.
type Provider struct {
	source SnapshotSource
}

// NewProvider creates a provider reading settings from source.
// A nil source disables nesting.
func NewProvider(source SnapshotSource) *Provider {
	return &Provider{source: source}
}

// Modify returns children with matching file/directory pairs folded
// together. parent and view are accepted for the host's benefit and ignored.
func (p *Provider) Modify(parent models.Entry, children []models.Entry, view ViewSettings) []models.Entry {
	if p == nil || p.source == nil {
		return children
	}
	return Transform(children, p.source.Snapshot())
}
