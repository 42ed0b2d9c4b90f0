package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"

	"gigboard/internal/api"
	"gigboard/internal/config"
	"gigboard/internal/domain"
	"gigboard/internal/eventbus"
	"gigboard/internal/fakeapi"
	"gigboard/internal/market"
	"gigboard/internal/plain"
	"gigboard/internal/ui"
)

// uiEvents are forwarded from the bus to the Bubble Tea program
var uiEvents = []eventbus.EventType{
	eventbus.EventBalanceUpdated,
	eventbus.EventNotificationsUpdated,
	eventbus.EventConversationsUpdated,
	eventbus.EventOrderPlaced,
	eventbus.EventOrderStatusChanged,
	eventbus.EventMessageSent,
	eventbus.EventBalanceRequestCreated,
	eventbus.EventCashoutCreated,
	eventbus.EventError,
}

type flags struct {
	url        string
	user       string
	configPath string
	category   string
	filter     string
	search     string
	plain      bool
	demo       bool
}

func main() {
	var f flags
	flag.StringVar(&f.url, "url", "", "Marketplace base URL (overrides config and $"+config.EnvURL+")")
	flag.StringVar(&f.user, "user", "", "Username to log in as; the password is read from $"+config.EnvPassword)
	flag.StringVar(&f.configPath, "config", "", "Path to the config file (default "+config.DefaultPath()+")")
	flag.StringVar(&f.category, "category", "", "Show only gigs of this category")
	flag.StringVar(&f.filter, "filter", "", "Named gig filter: all, top-rated or new")
	flag.StringVar(&f.search, "search", "", "Search term applied after the first load")
	flag.BoolVar(&f.plain, "plain", false, "Print the gig list as a table and exit")
	flag.BoolVar(&f.demo, "demo", false, "Run against a built-in demo marketplace")
	flag.Parse()

	if err := run(f); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	var configSvc config.ConfigService
	if f.configPath != "" {
		configSvc = config.NewConfigServiceAt(f.configPath, bus)
	} else {
		configSvc = config.NewConfigServiceWithBus(bus)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
		config.ApplyEnv(cfg, os.Getenv)
	}
	if f.url != "" {
		cfg.Server.BaseURL = f.url
	}
	if f.user != "" {
		cfg.Server.Username = f.user
	}

	// Set up logging; the TUI owns the terminal
	if !f.plain && cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if f.demo {
		baseURL, stop, err := startDemo()
		if err != nil {
			return err
		}
		defer stop()
		cfg.Server.BaseURL = baseURL
		cfg.Server.Username = fakeapi.DemoBuyer
		cfg.Password = fakeapi.DemoPassword
	}

	timeout := cfg.Server.Timeout.Duration
	client, err := api.New(cfg.Server.BaseURL, timeout)
	if err != nil {
		return err
	}

	if f.plain {
		return printPlain(ctx, client, cfg, f)
	}

	loggedIn := cfg.Server.Username != "" && cfg.Password != ""
	if loggedIn {
		loginCtx, loginCancel := context.WithTimeout(ctx, timeout)
		err := client.Login(loginCtx, cfg.Server.Username, cfg.Password)
		loginCancel()
		if err != nil {
			return fmt.Errorf("login as %s: %w", cfg.Server.Username, err)
		}
		log.Printf("Logged in as %s", cfg.Server.Username)
	}

	// Services subscribe to the bus on creation
	_ = market.NewService(client, bus, timeout)
	poller := market.NewPoller(client, bus, cfg.Refresh.BalanceInterval.Duration, cfg.Refresh.NotificationsInterval.Duration)
	if loggedIn {
		go poller.Run(ctx)
	}

	uiModel := ui.NewModel(bus, cfg, client, ui.Options{
		Username: cfg.Server.Username,
		Category: f.category,
		Filter:   f.filter,
		Search:   f.search,
	})

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range uiEvents {
		bus.Subscribe(t, forwardEvent)
	}

	go func() {
		for {
			select {
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("error running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// startDemo serves the demo marketplace on a loopback port
func startDemo() (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("start demo marketplace: %w", err)
	}
	srv := &http.Server{Handler: fakeapi.New().Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("Demo marketplace stopped: %v", err)
		}
	}()
	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return "http://" + ln.Addr().String(), stop, nil
}

func printPlain(ctx context.Context, client *api.Client, cfg *config.Config, f flags) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Server.Timeout.Duration)
	defer cancel()

	gigs, err := client.ListGigs(ctx, domain.GigQuery{Category: f.category, Filter: f.filter})
	if err != nil {
		return fmt.Errorf("failed to load gigs: %w", err)
	}
	return plain.Print(os.Stdout, gigs, plain.Options{
		Search:      f.search,
		Limit:       cfg.UI.PageSize,
		Currency:    cfg.UI.Currency,
		ShowRatings: cfg.UI.ShowRatings,
	})
}
