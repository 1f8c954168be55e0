package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/strikecore/server/internal/config"
	"github.com/strikecore/server/internal/core/ecs"
	"github.com/strikecore/server/internal/core/event"
	coresys "github.com/strikecore/server/internal/core/system"
	"github.com/strikecore/server/internal/data"
	"github.com/strikecore/server/internal/gateway"
	"github.com/strikecore/server/internal/handler"
	"github.com/strikecore/server/internal/persist"
	"github.com/strikecore/server/internal/scripting"
	"github.com/strikecore/server/internal/system"
	"github.com/strikecore/server/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            strikecore  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m    authoritative tactical round server    \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s \033[90m(id: %d)\033[0m\n\n", serverName, serverID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("STRIKECORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	// 3. Match history database (optional: empty DSN runs memory-only)
	var matchRepo *persist.MatchRepo
	if cfg.Database.DSN != "" {
		printSection("database")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		cancel()
		printOK("migrations applied")
		fmt.Println()

		matchRepo = persist.NewMatchRepo(db)
	}

	// 4. Load data catalogs
	printSection("data")

	weapons, err := data.LoadWeaponTable(cfg.Data.WeaponsPath)
	if err != nil {
		return fmt.Errorf("load weapon table: %w", err)
	}
	printStat("weapon templates", weapons.Count())

	maps, err := data.LoadMapTable(cfg.Data.MapsPath)
	if err != nil {
		return fmt.Errorf("load map table: %w", err)
	}
	printStat("maps", maps.Count())

	mapInfo := maps.Default()
	if mapInfo == nil {
		return fmt.Errorf("map table is empty")
	}

	// 5. Scripting engine (economy formulas)
	scriptEngine, err := scripting.NewEngine(cfg.Data.ScriptsPath, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer scriptEngine.Close()
	printOK("scripting engine ready")
	fmt.Println()

	// 6. World, bus, dependencies
	ecsWorld := ecs.NewWorld()
	worldState := world.NewState(ecsWorld)
	bus := event.NewBus()

	deps := &handler.Deps{
		Config:    cfg,
		Log:       log,
		World:     worldState,
		Weapons:   weapons,
		Map:       mapInfo,
		Scripting: scriptEngine,
		Bus:       bus,
		Caster:    worldState,
	}

	economy := system.NewEconomy(cfg.Economy, worldState, scriptEngine, bus, log)
	deps.Economy = economy

	// 7. Gateway
	gw := gateway.New(cfg.Network, cfg.Server.Name, mapInfo.Name, cfg.Server.PasswordHash, log)
	wireNotifications(bus, gw)
	gwErr := gw.Start()

	// 8. Register systems in phase order
	seed := time.Now().UnixNano()
	runner := coresys.NewRunner()
	runner.Register(system.NewEventSystem(bus))
	runner.Register(system.NewInputSystem(deps, gw))
	runner.Register(system.NewMovementSystem(deps))
	runner.Register(system.NewCombatSystem(deps, system.NewAccuracyModel(cfg.Combat, seed)))
	runner.Register(system.NewWeaponTickSystem(deps))
	runner.Register(system.NewBombSystem(deps))
	runner.Register(system.NewRoundSystem(deps, economy, seed))
	runner.Register(system.NewOutputSystem(deps, gw))
	if matchRepo != nil {
		runner.Register(system.NewMatchReportSystem(deps, matchRepo))
	}
	runner.Register(system.NewCleanupSystem(ecsWorld))

	// 9. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Network.TickRate)
	defer ticker.Stop()

	printSection("server ready")
	printReady(fmt.Sprintf("listening on %s", cfg.Network.BindAddress))
	printReady(fmt.Sprintf("game loop running (tick: %s)", cfg.Network.TickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Network.TickRate)
		case err := <-gwErr:
			if err != nil {
				return fmt.Errorf("gateway: %w", err)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			gw.Shutdown(ctx)
			cancel()
			log.Info("server stopped")
			return nil
		}
	}
}

// wireNotifications forwards simulation events to connected clients. The
// simulation never waits on any of these.
func wireNotifications(bus *event.Bus, gw *gateway.Gateway) {
	event.Subscribe(bus, func(e event.Kill) {
		gw.BroadcastEvent(gateway.EventMsg{
			Kind: "kill", ActorID: e.KillerID, TargetID: e.VictimID,
			WeaponID: e.WeaponID, Headshot: e.Headshot,
		})
	})
	event.Subscribe(bus, func(e event.BombPlanted) {
		gw.BroadcastEvent(gateway.EventMsg{Kind: "bomb_planted", ActorID: e.PlanterID, Site: e.Site})
	})
	event.Subscribe(bus, func(e event.BombDefused) {
		gw.BroadcastEvent(gateway.EventMsg{Kind: "bomb_defused", ActorID: e.DefuserID, Site: e.Site})
	})
	event.Subscribe(bus, func(e event.BombExploded) {
		gw.BroadcastEvent(gateway.EventMsg{Kind: "bomb_exploded", Site: e.Site})
	})
	event.Subscribe(bus, func(e event.PhaseChanged) {
		gw.BroadcastEvent(gateway.EventMsg{Kind: "phase", Round: e.Round, Phase: e.Phase})
	})
	event.Subscribe(bus, func(e event.RoundEnded) {
		gw.BroadcastEvent(gateway.EventMsg{
			Kind: "round_end", Round: e.Round, Winner: e.Winner, Reason: e.Reason,
			ScoreT: e.ScoreT, ScoreCT: e.ScoreCT,
		})
	})
	event.Subscribe(bus, func(e event.MatchEnded) {
		gw.BroadcastEvent(gateway.EventMsg{
			Kind: "match_end", Winner: e.Winner, ScoreT: e.ScoreT, ScoreCT: e.ScoreCT, Round: e.Rounds,
		})
	})
	event.Subscribe(bus, func(e event.Notice) {
		gw.Notice(e.CombatantID, e.Text)
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
