// Package conf loads process configuration (listen addresses, turn cap,
// setup timeout, verbosity) from an optional TOML file and CLI flags, and
// manages the lifecycle of the components registered against it.
package conf

import (
	"context"
	"flag"
	"io"
	"log"
	"time"
)

// fileConf is the TOML-decodable shape of an optional configuration file.
// Every field here has a CLI-flag equivalent in Conf, which always wins
// over a value loaded from file (see io.go's Load).
type fileConf struct {
	Debug bool `toml:"debug"`
	Net   struct {
		TCP string `toml:"tcp"`
		WS  string `toml:"ws"`
	} `toml:"net"`
	Game struct {
		MaxTurns int  `toml:"max_turns"`
		Timeout  uint `toml:"timeout"`
	} `toml:"game"`
}

// Conf is the resolved, public configuration shared by every component.
type Conf struct {
	Log   *log.Logger
	Debug *log.Logger
	Ctx   context.Context
	Kill  context.CancelFunc

	TCPAddr      string        // empty disables the TCP listener
	WSAddr       string        // empty disables the WebSocket listener
	MaxTurns     int           // <= 0 means unlimited
	SetupTimeout time.Duration // T_setup: handshake + both-disconnect grace

	man []Manager // registered components, started/stopped together
	run bool
}

// defaultConfig is the configuration used when no TOML file overrides it;
// CLI flags are bound directly to its fields in init() below.
var defaultConfig = Conf{
	Log:   log.New(io.Discard, "", 0), // replaced by Load with a stderr logger
	Debug: log.New(io.Discard, "[debug] ", log.Ltime|log.Lshortfile|log.Lmicroseconds),

	TCPAddr:      "",
	WSAddr:       "",
	MaxTurns:     0,
	SetupTimeout: 300 * time.Second,
}

// timeoutSeconds backs -timeout/-t as plain seconds (spec.md §6's
// "<seconds>", default 300) rather than flag.Duration's "300s" syntax;
// Load folds it into defaultConfig.SetupTimeout once flags are parsed.
var timeoutSeconds = int(defaultConfig.SetupTimeout / time.Second)

// pristineDefaults is defaultConfig exactly as declared above, snapshotted
// at the end of init() before flag.Parse ever runs. load (io.go) overlays
// the TOML file onto this pristine base rather than onto defaultConfig,
// so a file value never has to compete with whatever flag.Parse later
// writes into defaultConfig's fields; flagSet then reapplies only the
// flags actually given on the command line.
var pristineDefaults Conf

func init() {
	flag.StringVar(&defaultConfig.TCPAddr, "tcp", defaultConfig.TCPAddr,
		"Address to bind the raw length-prefixed TCP listener on")
	flag.StringVar(&defaultConfig.WSAddr, "ws", defaultConfig.WSAddr,
		"Address to bind the WebSocket listener on")
	flag.IntVar(&defaultConfig.MaxTurns, "max-turns", defaultConfig.MaxTurns,
		"Maximum total turns before the game ends (0 = unlimited)")
	flag.IntVar(&defaultConfig.MaxTurns, "n", defaultConfig.MaxTurns,
		"Shorthand for -max-turns")
	flag.IntVar(&timeoutSeconds, "timeout", timeoutSeconds,
		"Setup-phase timeout (T_setup) in seconds")
	flag.IntVar(&timeoutSeconds, "t", timeoutSeconds,
		"Shorthand for -timeout")
	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.StringVar(&cfile, "conf", cfile, "Path to a TOML configuration file")

	pristineDefaults = defaultConfig
}
