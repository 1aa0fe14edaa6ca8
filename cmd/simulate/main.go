// Package main provides the simulate binary: it loads a combat scenario,
// resolves both sides into simulator-ready combatants, runs the deterministic
// round simulator, and prints the requested trace form.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kobayashi-sim/kobayashi/internal/config"
	"github.com/kobayashi-sim/kobayashi/internal/game/rng"
	"github.com/kobayashi-sim/kobayashi/internal/game/scenario"
	"github.com/kobayashi-sim/kobayashi/internal/game/sim"
	"github.com/kobayashi-sim/kobayashi/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	scenarioPath := flag.String("scenario", "content/scenarios/baseline.yaml", "path to scenario YAML file")
	format := flag.String("format", "", "trace output format: off, human, or json (default from config)")
	rounds := flag.Int("rounds", 0, "override the configured round count")
	seed := flag.Uint64("seed", 0, "override the configured seed (0 = use config)")
	logDraws := flag.Bool("log-draws", false, "log every random draw at debug level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	simCfg, outputFormat, err := resolveRun(cfg.Simulation, *format, *rounds, *seed)
	if err != nil {
		logger.Fatal("resolving run parameters", zap.Error(err))
	}

	s, err := scenario.LoadFromFile(*scenarioPath)
	if err != nil {
		logger.Fatal("loading scenario", zap.Error(err))
	}
	attacker, defender := s.Resolve()

	logger.Info("starting simulation",
		zap.String("scenario", s.Name),
		zap.String("attacker", attacker.ID),
		zap.String("defender", defender.ID),
		zap.Int("rounds", simCfg.Rounds),
		zap.Uint64("seed", simCfg.Seed),
		zap.Stringer("trace_mode", simCfg.TraceMode),
	)

	var result sim.Result
	if *logDraws {
		src := rng.NewLoggedSource(rng.NewSplitMix64(simCfg.Seed), logger)
		result, err = sim.SimulateCombatWithSource(attacker, defender, simCfg, src)
	} else {
		result, err = sim.SimulateCombat(attacker, defender, simCfg)
	}
	if err != nil {
		logger.Fatal("running simulation", zap.Error(err))
	}

	switch outputFormat {
	case "human":
		fmt.Println(sim.FormatEventsHuman(result.Events))
	case "json":
		payload, err := sim.SerializeEventsJSON(result.Events)
		if err != nil {
			logger.Fatal("serializing trace", zap.Error(err))
		}
		fmt.Println(payload)
	}

	logger.Info("simulation complete",
		zap.Float64("total_damage", result.TotalDamage),
		zap.Int("events", len(result.Events)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// resolveRun merges config defaults with CLI overrides into a simulator
// config plus the trace output format for stdout.
func resolveRun(defaults config.SimulationConfig, format string, rounds int, seed uint64) (sim.Config, string, error) {
	simCfg := sim.Config{Rounds: defaults.Rounds, Seed: defaults.Seed}
	if rounds > 0 {
		simCfg.Rounds = rounds
	}
	if seed != 0 {
		simCfg.Seed = seed
	}

	if format == "" {
		format = defaults.TraceMode
		if format == "events" {
			format = "human"
		}
	}
	switch format {
	case "off":
		simCfg.TraceMode = sim.TraceOff
	case "human", "json":
		simCfg.TraceMode = sim.TraceEvents
	default:
		return sim.Config{}, "", fmt.Errorf("unknown trace format %q (want off, human, or json)", format)
	}

	if err := simCfg.Validate(); err != nil {
		return sim.Config{}, "", err
	}
	return simCfg, format, nil
}

// usage is wired up for -h output clarity; flag handles the rest.
func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: simulate [flags]\n\nRuns a deterministic fleet-combat simulation from a scenario file.\n\n")
		flag.PrintDefaults()
	}
}
