package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "http://api.local:9090", "-i", "10", "-d", "/tmp/s.db", "-l", "debug"}, expectPanic: false,
			expected: &Config{BaseURL: "http://api.local:9090", SessionCheckInterval: 10 * time.Second, DBPath: "/tmp/s.db", LogLevel: "debug"}},
		{name: "Test2 incorrect check interval", args: []string{"cmd", "-a", "http://api.local:9090", "-i", "abc"}, expectPanic: true, expected: &Config{}},
		{name: "Test3 foreign flags ignored", args: []string{"cmd", "-c", "x.json", "-verbose", "-i", "1"}, expectPanic: false,
			expected: &Config{SessionCheckInterval: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
