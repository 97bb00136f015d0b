package config

// LoggingConfig holds logging configuration. The simulation core never
// runs long enough to need file rotation — stdout/stderr only.
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Log format: json, text
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// Output destination: stdout or stderr
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr"`
}
