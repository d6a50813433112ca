// Package config provides the configuration system for rangesel.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← RANGESEL_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← rangesel.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Layers 1 to 3 are merged by Load. Flags are applied by the command after
// loading, since only the command knows which flags were set.
//
// # Basic Usage
//
//	cfg, err := config.Load(config.WithFile("rangesel.toml"))
//	if err != nil {
//	    return err
//	}
//	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
//
// # Settings
//
//	[logging]
//	level = "info"       # debug, info, warn, error
//	format = "text"      # text, json
//
//	[history]
//	maxEntries = 1000
//
//	[script]
//	stopOnError = true
//
//	[watch]
//	debounce = "100ms"
package config
