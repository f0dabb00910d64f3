package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/1broseidon/stackwm/internal/config"
	"github.com/1broseidon/stackwm/internal/daemon"
	"github.com/1broseidon/stackwm/internal/hotkeys"
	"github.com/1broseidon/stackwm/internal/ipc"
	"github.com/1broseidon/stackwm/internal/platform"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runWM(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "retile":
		os.Exit(runRetile(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: stackwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Start the window manager (foreground)")
	fmt.Fprintln(w, "  status              Show managed windows and drag state")
	fmt.Fprintln(w, "  retile              Force a full tile pass")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config print        Print the effective configuration")
	fmt.Fprintln(w, "  config validate     Validate configuration flags")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'stackwm <command> --help' for command-specific options.")
}

// bindConfigFlags registers the settings shared by run and config on fs.
func bindConfigFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.Display, "display", cfg.Display, "X display (default: $DISPLAY)")
	fs.StringVar(&cfg.Modifier, "modifier", cfg.Modifier, "Modifier held for drags and the raise key")
	fs.IntVar(&cfg.MoveButton, "move-button", cfg.MoveButton, "Pointer button that moves a window")
	fs.IntVar(&cfg.ResizeButton, "resize-button", cfg.ResizeButton, "Pointer button that resizes a window")
	fs.StringVar(&cfg.RaiseKey, "raise-key", cfg.RaiseKey, "Key that raises the window under the pointer")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.IPC, "ipc", cfg.IPC, "Serve status requests on the runtime socket")
}

func runWM(args []string) int {
	cfg := config.DefaultConfig()
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	bindConfigFlags(fs, cfg)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: stackwm run [options]")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := serve(cfg, logger); err != nil {
		logger.Error("stackwm exited", "error", err)
		return 1
	}
	return 0
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		return err
	}
	defer backend.Disconnect()
	log.Printf("Connected to X server (display %q)", cfg.Display)

	conn := backend.Connection()
	conn.InstallErrorHandler(logger)
	if err := conn.SelectSubstructure(); err != nil {
		return fmt.Errorf("%w (is another window manager running?)", err)
	}

	var (
		fatalMu  sync.Mutex
		fatalErr error
	)
	onFatal := func(err error) {
		fatalMu.Lock()
		if fatalErr == nil {
			fatalErr = err
		}
		fatalMu.Unlock()
		backend.Quit()
	}

	// Bindings resolve against the live keymap, so the manager is built
	// after the handler. No event is delivered before EventLoop runs.
	var mgr *daemon.Manager
	sink := managerSink(func(ev platform.Event) error { return mgr.HandleEvent(ev) })

	input, err := hotkeys.NewHandler(backend, sink, onFatal, logger)
	if err != nil {
		return err
	}
	bindings, err := input.ResolveBindings(cfg)
	if err != nil {
		return err
	}
	mgr = daemon.NewManager(backend, bindings, logger)
	if err := input.Register(cfg, bindings); err != nil {
		return err
	}

	var srv *ipc.Server
	if cfg.IPC {
		srv, err = ipc.NewServer(cfg.Display, mgr, logger)
		if err != nil {
			return err
		}
		if err := srv.Start(); err != nil {
			logger.Warn("IPC server disabled", "error", err)
			srv = nil
		} else {
			defer srv.Stop()
		}
	}

	// xevent.Main only checks for Quit between events, so a signal exits
	// directly after releasing the socket.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Printf("Received %s, shutting down stackwm...", sig)
		if srv != nil {
			srv.Stop()
		}
		backend.Disconnect()
		os.Exit(0)
	}()

	log.Println("stackwm started successfully")
	backend.EventLoop()

	// Only onFatal quits the loop; a lost display connection exits inside
	// xgbutil, leaving the socket for the next Start to replace.
	fatalMu.Lock()
	defer fatalMu.Unlock()
	return fatalErr
}

// managerSink adapts a function to hotkeys.EventSink.
type managerSink func(ev platform.Event) error

func (f managerSink) HandleEvent(ev platform.Event) error {
	return f(ev)
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	display := fs.String("display", os.Getenv("DISPLAY"), "X display managed by the daemon")
	asJSON := fs.Bool("json", false, "Print JSON (default when stdout is not a terminal)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: stackwm status [--json] [--display D]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show window manager status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient(*display).GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	printStatus(os.Stdout, status)
	return 0
}

func printStatus(w io.Writer, status *ipc.StatusData) {
	fmt.Fprintf(w, "daemon_running: %v\n", status.DaemonRunning)
	fmt.Fprintf(w, "uptime_seconds: %d\n", status.UptimeSeconds)
	fmt.Fprintf(w, "window_count:   %d\n", status.WindowCount)
	if status.Drag != nil {
		fmt.Fprintf(w, "drag:           %s 0x%x\n", status.Drag.Gesture, status.Drag.WindowID)
	} else {
		fmt.Fprintln(w, "drag:           none")
	}
	for i, win := range status.Windows {
		role := "stack"
		if win.Master {
			role = "master"
		}
		fmt.Fprintf(w, "  %d  0x%-8x %-6s %dx%d+%d+%d\n", i, win.ID, role, win.Width, win.Height, win.X, win.Y)
	}
}

func runRetile(args []string) int {
	fs := flag.NewFlagSet("retile", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	display := fs.String("display", os.Getenv("DISPLAY"), "X display managed by the daemon")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: stackwm retile [--display D]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Force a full master-stack tile pass.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if err := ipc.NewClient(*display).Retile(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  stackwm config print [run options]")
		fmt.Fprintln(os.Stderr, "  stackwm config validate [run options]")
		return 2
	}

	cfg := config.DefaultConfig()
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	bindConfigFlags(fs, cfg)
	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	switch args[0] {
	case "validate":
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		data, err := cfg.YAML()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}
