package conf

import (
	"flag"
	"strings"
	"testing"
	"time"
)

func TestLoadAppliesFileValuesOverDefaults(t *testing.T) {
	r := strings.NewReader(`
debug = true

[net]
tcp = "127.0.0.1:4000"
ws = "127.0.0.1:4001"

[game]
max_turns = 200
timeout = 60
`)
	c, err := load(r)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TCPAddr != "127.0.0.1:4000" {
		t.Errorf("got TCPAddr %q, want 127.0.0.1:4000", c.TCPAddr)
	}
	if c.WSAddr != "127.0.0.1:4001" {
		t.Errorf("got WSAddr %q, want 127.0.0.1:4001", c.WSAddr)
	}
	if c.MaxTurns != 200 {
		t.Errorf("got MaxTurns %d, want 200", c.MaxTurns)
	}
	if c.SetupTimeout != 60*time.Second {
		t.Errorf("got SetupTimeout %v, want 60s", c.SetupTimeout)
	}
}

func TestLoadLeavesDefaultsWhenFileOmitsFields(t *testing.T) {
	want := defaultConfig
	c, err := load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TCPAddr != want.TCPAddr || c.WSAddr != want.WSAddr {
		t.Errorf("got addrs %q/%q, want defaults %q/%q", c.TCPAddr, c.WSAddr, want.TCPAddr, want.WSAddr)
	}
	if c.MaxTurns != want.MaxTurns {
		t.Errorf("got MaxTurns %d, want default %d", c.MaxTurns, want.MaxTurns)
	}
	if c.SetupTimeout != want.SetupTimeout {
		t.Errorf("got SetupTimeout %v, want default %v", c.SetupTimeout, want.SetupTimeout)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	if _, err := load(strings.NewReader("not = [valid toml")); err == nil {
		t.Fatal("got nil error for malformed TOML, want an error")
	}
}

// TestLoadFlagsWinOverFile simulates a flag explicitly passed on the
// command line (via flag.Set, which flag.Visit also reports as Actual)
// alongside a conflicting TOML value, and checks the flag wins.
func TestLoadFlagsWinOverFile(t *testing.T) {
	defer func(prevTCP string) { defaultConfig.TCPAddr = prevTCP }(defaultConfig.TCPAddr)

	if err := flag.Set("tcp", "127.0.0.1:9000"); err != nil {
		t.Fatalf("flag.Set: %v", err)
	}
	defer flag.CommandLine.Lookup("tcp").Value.Set(pristineDefaults.TCPAddr)

	c, err := load(strings.NewReader(`
[net]
tcp = "127.0.0.1:4000"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TCPAddr != "127.0.0.1:9000" {
		t.Errorf("got TCPAddr %q, want the flag value 127.0.0.1:9000, not the file value", c.TCPAddr)
	}
}
