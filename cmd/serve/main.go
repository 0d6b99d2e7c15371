// Command serve hosts the game's files for local play on port 8000.
//
// Files are served from the directory holding the serve binary, whatever
// directory it is started from. Every response allows any origin and
// disables caching so edits show up on reload.
package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"arena-server/internal/console"
	"arena-server/internal/static"
)

var controls = []string{
	"WASD: Move",
	"MOUSE: Aim",
	"SPACE: Shoot",
	"P: Admin Console",
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("serve: ")

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	root, err := static.ExecutableRoot()
	if err != nil {
		return err
	}

	ln, err := static.Listen(static.Addr)
	if err != nil {
		return err
	}
	return serve(ln, root, console.New(os.Stdout))
}

// serve hosts root on ln until the process is interrupted.
func serve(ln net.Listener, root static.Root, out *console.Console) error {
	_, port, _ := net.SplitHostPort(ln.Addr().String())
	out.Banner(console.Banner{
		Title:    "Sibling Shooting Game Server",
		URL:      "http://localhost:" + port,
		Notes:    []string{"Open this in your browser to play!"},
		Controls: controls,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := static.Serve(ctx, ln, static.Handler(root)); err != nil {
		return err
	}
	out.Farewell("Server stopped. Thanks for playing!")
	return nil
}
