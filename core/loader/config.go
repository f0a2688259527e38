package loader

// Config holds configuration for the component loader.
type Config struct {
	// Path is the default search path appended to every caller path list.
	Path string `mapstructure:"path" default:""`
	// Target is the platform target subdirectory name. Empty means the running GOOS.
	Target string `mapstructure:"target" default:""`
	// Watch enables reloading libraries when files in the search path change.
	Watch bool `mapstructure:"watch" default:"false"`
}

// Options converts the configuration to loader options.
func (c Config) Options() []Option {
	opts := []Option{WithDefaultPath(c.Path)}
	if c.Target != "" {
		opts = append(opts, WithTarget(c.Target))
	}
	return opts
}
