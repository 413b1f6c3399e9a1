package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/scenekit/ecs"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML scenario config.")
	duration := flag.Duration("duration", 0, "Override the scenario duration.")
	entityCount := flag.Int("entities", 0, "Override the initial number of entities.")
	seed := flag.Int64("seed", 1, "Seed for the scenario RNG.")
	verbose := flag.Bool("verbose", false, "Enable debug logging of membership transitions.")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	if *duration > 0 {
		cfg.Duration = *duration
	}
	if *entityCount > 0 {
		cfg.Entities = *entityCount
	}

	logger.Info("starting scene stress test",
		zap.Duration("duration", cfg.Duration),
		zap.Int("entities", cfg.Entities),
		zap.Int("components", cfg.Components),
		zap.Int("systems", cfg.Systems))

	rng := rand.New(rand.NewSource(*seed))
	pool := componentPool(cfg.Components)

	// 1. Set up the scene and generated systems
	sceneOpts := []ecs.SceneOption{}
	if *verbose {
		sceneOpts = append(sceneOpts, ecs.WithLogger(logger))
	}
	scene := ecs.NewScene(sceneOpts...)

	for i := 0; i < cfg.Systems; i++ {
		if err := scene.AddSystem(newStressSystem(rng, pool)); err != nil {
			logger.Fatal("add system", zap.Error(err))
		}
	}

	// 2. Populate: a share of the population gets explicit UUID ids, the
	//    rest rides the scene's id counter.
	logger.Info("populating scene", zap.Int("entities", cfg.Entities))
	var collisions int
	for i := 0; i < cfg.Entities; i++ {
		e := ecs.NewEntity(randomComponents(rng, pool, cfg.MaxPerEntity)...)
		if rng.Float64() < cfg.ExplicitIDShare {
			if _, err := scene.AddEntity(e, uuid.NewString()); err != nil {
				if errors.Is(err, ecs.ErrIDCollision) {
					collisions++
					continue
				}
				logger.Fatal("add entity", zap.Error(err))
			}
		} else if _, err := scene.AddEntity(e); err != nil {
			logger.Fatal("add entity", zap.Error(err))
		}
	}
	logger.Info("population complete",
		zap.Int("entities", scene.Len()),
		zap.Int("id_collisions", collisions))

	// 3. Run the simulation loop
	report := &Report{
		Config:     cfg,
		UpdateTime: Stats{Samples: make([]time.Duration, 0)},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	runner := ecs.NewRunner(scene, "update")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			runner.Once(deltaTime.Seconds())
			churn(scene, rng, pool, cfg)
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.RunnerStats = runner.Stats()
	report.FinalEntities = scene.Len()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished", zap.Int64("ticks", report.RunnerStats.TickCount))

	// 4. Generate report to console
	fmt.Println("\n\n--- Scene Stress Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// churn removes a handful of entities and re-adds them, exercising the
// exit/init transition paths and id regeneration under load.
func churn(scene *ecs.Scene, rng *rand.Rand, pool []string, cfg Config) {
	if cfg.Churn <= 0 {
		return
	}

	all := scene.Query()
	for i := 0; i < cfg.Churn && len(all) > 0; i++ {
		victim := all[rng.Intn(len(all))]
		if err := scene.RemoveEntity(victim); err != nil {
			continue // already churned this tick
		}
		if rng.Float64() < 0.5 {
			// Re-add with one extra component so membership can grow.
			victim.Add(randomComponents(rng, pool, 1)[0])
		}
		_, _ = scene.AddEntity(victim)
	}
}
