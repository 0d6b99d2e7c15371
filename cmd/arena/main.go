// Command arena runs the multiplayer relay for the game and serves the game
// files alongside it.
//
// Options:
//
//	[-addr <host:port>]   listen address (default ":$PORT", PORT defaults to 3000)
//
// PORT may also come from a .env file next to the binary.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/anacrolix/tagflag"
	"github.com/joho/godotenv"

	"arena-server/internal/arena"
	"arena-server/internal/console"
	"arena-server/internal/static"
)

const defaultPort = "3000"

func main() {
	log.SetFlags(0)
	log.SetPrefix("arena: ")

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	root, err := static.ExecutableRoot()
	if err != nil {
		return err
	}

	if err := godotenv.Load(filepath.Join(root.String(), ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	flags := struct {
		Addr string `help:"listen address"`
	}{
		Addr: ":" + port,
	}
	tagflag.Parse(&flags)

	ln, err := static.Listen(flags.Addr)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	hub := arena.NewHub(logger)

	_, lport, _ := net.SplitHostPort(ln.Addr().String())
	out := console.New(os.Stdout)
	out.Banner(console.Banner{
		Title: "NEXUS ARENA MULTIPLAYER SERVER",
		URL:   "http://localhost:" + lport,
		Notes: []string{
			"WebSocket server is ready for connections.",
			"Players can create or join rooms to play together!",
		},
		Boxed: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go hub.Janitor(ctx, arena.SweepEvery, arena.RoomMaxIdle)

	if err := static.Serve(ctx, ln, arena.Handler(hub, static.Handler(root)), hub.Close); err != nil {
		return err
	}
	out.Farewell("Arena server stopped.")
	return nil
}
