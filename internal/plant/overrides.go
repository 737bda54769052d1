package plant

// LeafOverride holds the user's edits to one leaf. Nil fields fall back to
// the generated values.
type LeafOverride struct {
	Size  *float64 `yaml:"size,omitempty"`
	Angle *float64 `yaml:"angle,omitempty"` // degrees
	Color *string  `yaml:"color,omitempty"`
}

// OverrideLookup resolves a leaf id to its override. The plant only reads
// through it.
type OverrideLookup interface {
	LeafOverride(id string) (LeafOverride, bool)
}

// Overrides is a map-backed OverrideLookup.
type Overrides map[string]LeafOverride

// LeafOverride implements OverrideLookup.
func (o Overrides) LeafOverride(id string) (LeafOverride, bool) {
	ov, ok := o[id]
	return ov, ok
}
