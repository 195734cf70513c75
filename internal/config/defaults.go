package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/kensaku/data/messages.db"
	}
	for i := range cfg.SearchModes {
		mode := &cfg.SearchModes[i]
		if mode.Weight == 0 {
			mode.Weight = 1.0
		}
		if mode.Options.MaxPatternLength == 0 {
			mode.Options.MaxPatternLength = 1000
		}
	}
	if cfg.Search.DefaultMode == "" {
		cfg.Search.DefaultMode = "exact"
	}
	if cfg.Search.HybridWeights == nil {
		cfg.Search.HybridWeights = map[string]float64{"exact": 1.0, "regex": 1.2}
	}
}
