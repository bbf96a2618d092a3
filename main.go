package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var (
		server    string
		name      string
		debug     bool
		debugAddr string
	)
	flag.StringVar(&server, "server", "", "game server WebSocket URL (overrides settings)")
	flag.StringVar(&name, "name", "", "display name to announce (overrides settings)")
	flag.BoolVar(&debug, "debug", false, "verbose/debug logging")
	flag.StringVar(&debugAddr, "debugaddr", "", "serve /metrics and /healthz on this address")
	flag.Parse()

	if err := initLogger("goroam.log", debug); err != nil {
		panic(err)
	}
	defer syncLogger()

	loadSettings()
	if server != "" {
		gs.ServerURL = server
	}
	if name != "" {
		gs.DisplayName = name
	}
	if gs.DisplayName == "" {
		gs.DisplayName = defaultDisplayName()
	}
	defer saveSettings()

	// Single connection attempt; a failure leaves the client in a pre-join
	// state where every send is a no-op.
	conn, err := dialServer(gs.ServerURL)
	if err != nil {
		Log.Errorf("connect %s: %v", gs.ServerURL, err)
	}

	sess := newSession(conn)
	game := newGame(sess, conn)

	if debugAddr != "" {
		startDebugServer(debugAddr, sess.metrics)
	}

	if conn != nil {
		sess.sendJoin(gs.DisplayName)
		Log.Infof("announced as %q to %s", gs.DisplayName, gs.ServerURL)
	}

	if gs.WindowWidth < 640 {
		gs.WindowWidth = gsdef.WindowWidth
	}
	if gs.WindowHeight < 480 {
		gs.WindowHeight = gsdef.WindowHeight
	}
	ebiten.SetWindowSize(gs.WindowWidth, gs.WindowHeight)
	ebiten.SetWindowTitle("goroam")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		Log.Fatalf("run: %v", err)
	}

	gs.WindowWidth, gs.WindowHeight = ebiten.WindowSize()
}
