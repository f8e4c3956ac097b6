package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	catalogapi "github.com/oweller/ipteav/internal/adapter/catalog"
	"github.com/oweller/ipteav/internal/adapter/push"
	"github.com/oweller/ipteav/internal/catalog"
	"github.com/oweller/ipteav/internal/config"
	"github.com/oweller/ipteav/internal/domain"
	"github.com/oweller/ipteav/internal/log"
	"github.com/oweller/ipteav/internal/store"
	"github.com/oweller/ipteav/internal/syncstate"
	"github.com/oweller/ipteav/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("ipteav %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting ipteav", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("ipteav requires an interactive terminal")
	}

	// Session store; a failure here degrades to memory-only state
	sessionStore, err := store.NewSessionStore(config.DataPath())
	if err != nil {
		logger.Warn("session store unavailable, state will not persist", "error", err)
		sessionStore, _ = store.NewSessionStore("")
	}
	defer sessionStore.Close()

	scheme := catalog.Scheme(cfg.Browse.Scheme)
	contentType := domain.ContentType(cfg.Browse.ContentType)
	if session, ok := sessionStore.LoadSession(); ok {
		if session.ContentType.IsValid() {
			contentType = session.ContentType
		}
		if s := catalog.Scheme(session.Scheme); s.IsValid() {
			scheme = s
		}
	}

	// Catalog client and navigation services
	client := catalogapi.NewClient(cfg.Server.URL, cfg.Server.Token, logger)
	cache := catalog.NewCache(client, scheme, cfg.Browse.PageSize, logger)
	nav := catalog.NewNavigator(cache, contentType, logger)

	// Push channel and sync tracking
	tracker := syncstate.NewTracker(logger)
	channel := push.NewChannel(pushURL(cfg.Server.URL), logger)
	coordinator := catalog.NewCoordinator(tracker, nav, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go tracker.Run(ctx, channel)
	go coordinator.Run(ctx)
	go func() {
		if err := channel.Connect(ctx); err != nil {
			logger.Warn("push channel unavailable, sync updates disabled", "error", err)
		}
	}()
	defer channel.Disconnect()

	// Run the TUI
	model := tui.NewModel(nav, cache, tracker, client, sessionStore)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI",
		"scheme", scheme,
		"contentType", contentType,
		"pageSize", cfg.Browse.PageSize,
	)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// pushURL derives the WebSocket sync endpoint from the backend base URL.
func pushURL(serverURL string) string {
	ws := strings.TrimSuffix(serverURL, "/")
	switch {
	case strings.HasPrefix(ws, "https://"):
		ws = "wss://" + strings.TrimPrefix(ws, "https://")
	case strings.HasPrefix(ws, "http://"):
		ws = "ws://" + strings.TrimPrefix(ws, "http://")
	}
	return ws + "/ws"
}

// runSetupFlow handles the initial setup when no backend is configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to ipteav!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	var serverURL string
	for {
		fmt.Print("Enter your backend URL (e.g., http://localhost:8080): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimSpace(input)
		if serverURL == "" {
			fmt.Println("Backend URL cannot be empty. Please try again.")
			continue
		}
		if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
			fmt.Println("URL must start with http:// or https://. Please try again.")
			continue
		}
		break
	}

	fmt.Print("Enter your session token (leave empty if none): ")
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	cfg.Server.URL = serverURL
	cfg.Server.Token = strings.TrimSpace(string(tokenBytes))

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run ipteav again to start the application.")

	return nil
}
