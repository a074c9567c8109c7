package conf

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	debug bool
	cfile string
)

// load decodes a fileConf from r and applies it on top of pristineDefaults
// (not defaultConfig, which flag.Parse may already have overwritten), then
// reapplies whichever flags were actually given on the command line over
// the file, so flags always take precedence (spec.md §6).
func load(r io.Reader) (*Conf, error) {
	var data fileConf
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}

	c := pristineDefaults
	if data.Net.TCP != "" {
		c.TCPAddr = data.Net.TCP
	}
	if data.Net.WS != "" {
		c.WSAddr = data.Net.WS
	}
	if data.Game.MaxTurns != 0 {
		c.MaxTurns = data.Game.MaxTurns
	}
	if data.Game.Timeout != 0 {
		c.SetupTimeout = time.Duration(data.Game.Timeout) * time.Second
	}
	if data.Debug {
		debug = true
	}

	if flagSet("tcp") {
		c.TCPAddr = defaultConfig.TCPAddr
	}
	if flagSet("ws") {
		c.WSAddr = defaultConfig.WSAddr
	}
	if flagSet("max-turns") || flagSet("n") {
		c.MaxTurns = defaultConfig.MaxTurns
	}
	if flagSet("timeout") || flagSet("t") {
		c.SetupTimeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &c, nil
}

// flagSet reports whether name was explicitly passed on the command
// line, as opposed to merely holding its zero-value default.
func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// Load resolves the final Conf: an optional TOML file from -conf, with
// whichever flags were explicitly passed always winning over it (see
// load). Call this after flag.Parse().
func Load() *Conf {
	defaultConfig.SetupTimeout = time.Duration(timeoutSeconds) * time.Second

	var c *Conf
	if cfile == "" {
		c = &defaultConfig
	} else {
		file, err := os.Open(cfile)
		switch {
		case err == nil:
			defer file.Close()
			c, err = load(file)
			if err != nil {
				log.Print(err)
				c = &defaultConfig
			}
		case os.IsNotExist(err):
			c = &defaultConfig
		default:
			log.Fatal(err)
		}
	}

	c.Log = log.New(os.Stderr, "", log.Ltime)
	if debug {
		c.Debug.SetOutput(os.Stderr)
	}
	c.Ctx, c.Kill = context.WithCancel(context.Background())
	return c
}
