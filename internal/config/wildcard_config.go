package config

// WildcardConfig controls wildcard baseline profiling and filtering.
type WildcardConfig struct {
	Enabled         bool   `json:"enabled" yaml:"enabled"`
	LabelPrefix     string `json:"label_prefix,omitempty" yaml:"label_prefix,omitempty" validate:"required,hostname_rfc1123"`
	LengthTolerance int64  `json:"length_tolerance,omitempty" yaml:"length_tolerance,omitempty" validate:"min=0"`
}

// NewDefaultWildcardConfig creates default wildcard configuration
func NewDefaultWildcardConfig() WildcardConfig {
	return WildcardConfig{
		Enabled:         true,
		LabelPrefix:     DefaultWildcardLabelPrefix,
		LengthTolerance: DefaultWildcardLengthTolerance,
	}
}
