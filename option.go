package connector

import "log/slog"

// Option configures a Connector via the functional options pattern.
type Option func(*connectorOptions)

// connectorOptions holds all configurable fields set via Option functions.
type connectorOptions struct {
	configPath string
	registry   *Registry
	logger     *slog.Logger

	spawnOptions  []SpawnOption
	clientOptions []ClientOption
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (o *connectorOptions) applyDefaults() {
	if o.configPath == "" {
		o.configPath = DefaultConfigPath
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
}

// resolveOptions applies all option functions and fills defaults.
func resolveOptions(opts []Option) connectorOptions {
	var o connectorOptions
	for _, fn := range opts {
		fn(&o)
	}
	o.applyDefaults()
	return o
}

// WithConfigPath sets the registry file to load. Ignored when WithRegistry
// supplies a pre-built registry.
func WithConfigPath(path string) Option {
	return func(o *connectorOptions) { o.configPath = path }
}

// WithRegistry supplies a pre-built registry instead of loading one from disk.
func WithRegistry(reg *Registry) Option {
	return func(o *connectorOptions) { o.registry = reg }
}

// WithLogger sets the structured logger for lifecycle and cleanup events.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *connectorOptions) { o.logger = logger }
}

// WithSpawnOptions forwards options to every Spawn the facade performs.
func WithSpawnOptions(opts ...SpawnOption) Option {
	return func(o *connectorOptions) { o.spawnOptions = append(o.spawnOptions, opts...) }
}

// WithClientOptions forwards options to every Client the facade creates.
func WithClientOptions(opts ...ClientOption) Option {
	return func(o *connectorOptions) { o.clientOptions = append(o.clientOptions, opts...) }
}
