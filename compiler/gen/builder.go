package gen

// Builder builds schema fragments and payload documents for resource
// definitions. A builder is cheap and safe to share across goroutines;
// every build call constructs its trees fresh.
type Builder struct {
	cfg *Config
}

// NewBuilder returns a builder for the given config. A nil config uses
// DefaultConfig.
func NewBuilder(cfg *Config) *Builder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Resolver == nil {
		cfg.Resolver = NewTypeResolver()
	}
	return &Builder{cfg: cfg}
}

// Config returns the builder's config.
func (b *Builder) Config() *Config {
	return b.cfg
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
