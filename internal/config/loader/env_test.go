package loader

import (
	"testing"
	"time"
)

func environ(vars ...string) func() []string {
	return func() []string { return vars }
}

func TestEnvLoader_Load(t *testing.T) {
	loader := NewEnvLoaderWithEnviron("RANGESEL_", environ(
		"RANGESEL_LOG_LEVEL=debug",
		"RANGESEL_LOG_FORMAT=json",
		"RANGESEL_HISTORY_MAX_ENTRIES=25",
		"RANGESEL_STOP_ON_ERROR=no",
		"RANGESEL_WATCH_DEBOUNCE=250ms",
		"HOME=/root",
		"PATH=/usr/bin",
	))

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"logging.format", "json"},
		{"history.maxEntries", int64(25)},
		{"script.stopOnError", false},
		{"watch.debounce", 250 * time.Millisecond},
	}
	for _, tt := range tests {
		got, ok := getByPath(config, tt.path)
		if !ok {
			t.Errorf("%s not set", tt.path)
			continue
		}
		if got != tt.want {
			t.Errorf("%s = %v (%T), want %v (%T)", tt.path, got, got, tt.want, tt.want)
		}
	}

	if _, ok := config["home"]; ok {
		t.Error("unprefixed variables should be ignored")
	}
}

func TestEnvLoader_UnmappedVariable(t *testing.T) {
	loader := NewEnvLoaderWithEnviron("RANGESEL_", environ("RANGESEL_HISTORY_KEEP_ALL=true"))
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, ok := getByPath(config, "history.keepAll")
	if !ok || got != true {
		t.Errorf("history.keepAll = %v (%v), want true", got, ok)
	}
}

func TestEnvToPath(t *testing.T) {
	loader := NewEnvLoader("RANGESEL_")
	tests := map[string]string{
		"RANGESEL_SCRIPT":               "script",
		"RANGESEL_SCRIPT_STOP":          "script.stop",
		"RANGESEL_SCRIPT_STOP_ON_ERROR": "script.stopOnError",
		"RANGESEL_HISTORY_MAX_ENTRIES":  "history.maxEntries",
	}
	for env, want := range tests {
		if got := loader.envToPath(env); got != want {
			t.Errorf("envToPath(%q) = %q, want %q", env, got, want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"ON", true},
		{"off", false},
		{"42", int64(42)},
		{"-3", int64(-3)},
		{"1s", time.Second},
		{"console", "console"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
