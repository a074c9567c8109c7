// Command server runs one Sternhalma game: it accepts exactly two player
// connections over TCP and/or WebSocket, plays the game to completion or
// to its turn cap, and exits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eliseuv/sternhamla-server/conf"
	"github.com/eliseuv/sternhamla-server/coord"
	"github.com/eliseuv/sternhamla-server/transport"
)

func main() {
	flag.Parse()
	if flag.NArg() != 0 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Too many arguments passed to %s.\nUsage:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	config := conf.Load()
	if config.TCPAddr == "" && config.WSAddr == "" {
		fmt.Fprintln(os.Stderr, "at least one of -tcp or -ws must be given")
		os.Exit(1)
	}

	session := coord.NewSession(config.MaxTurns, config.SetupTimeout, config.Log, config.Debug)

	if config.TCPAddr != "" {
		config.Register(&transport.TCPListener{
			Addr:    config.TCPAddr,
			Session: session,
			Log:     config.Log,
			Debug:   config.Debug,
		})
	}
	if config.WSAddr != "" {
		config.Register(&transport.WSListener{
			Addr:    config.WSAddr,
			Session: session,
			Log:     config.Log,
			Debug:   config.Debug,
		})
	}

	go func() {
		session.Run()
		config.Debug.Println("session ended, shutting down")
		config.Kill()
	}()

	config.Start()
}
