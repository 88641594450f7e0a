package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Transcription.Mode == "" {
		cfg.Transcription.Mode = ModeInline
	}
	if cfg.Transcription.DelayMS == 0 {
		cfg.Transcription.DelayMS = 150
	}
}

// Default returns a config with all defaults applied, for tests and
// development without a config file.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
