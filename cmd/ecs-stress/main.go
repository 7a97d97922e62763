package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/maskecs/ecs"
	"github.com/rs/zerolog"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 5000, "The initial number of entities to create.")
	churn := flag.Int("churn", 50, "Entities removed and respawned every tick.")
	seed := flag.Uint64("seed", 1, "Random seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	verbose := flag.Bool("v", false, "Log scheduler and world debug output.")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	logger.Info().Msg("starting ECS stress test")

	// 1. Setup World and Scheduler
	capacity := *entityCount + *churn*2 + 1
	world := ecs.NewWorld(ecs.WithLogger(logger), ecs.WithEntityCapacity(capacity))
	scheduler := ecs.NewScheduler(world, ecs.WithLogger(logger))
	systemCount := RegisterSystems(scheduler)
	rng := rand.New(rand.NewPCG(*seed, *seed))

	// 2. Populate the world with initial entities
	logger.Info().Int("entities", *entityCount).Msg("populating world")
	live := make([]ecs.EntityId, 0, capacity)
	for i := 0; i < *entityCount; i++ {
		// Spawn an entity with 1 to 5 random components
		live = append(live, SpawnRandomEntity(world, rng, rng.IntN(5)+1))
	}
	world.Update()
	logger.Info().Msg("population complete")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Churn:          *churn,
		Components:     componentCount,
		Systems:        systemCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", *duration).Msg("running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			// Removals are deferred, so the replacements reuse slots only after this tick's flush.
			for i := 0; i < *churn && len(live) > 0; i++ {
				j := rng.IntN(len(live))
				world.RemoveEntity(live[j])
				live[j] = live[len(live)-1]
				live = live[:len(live)-1]
			}
			for i := 0; i < *churn; i++ {
				live = append(live, SpawnRandomEntity(world, rng, rng.IntN(5)+1))
			}

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.World = world.CollectStats()
	report.Scheduler = scheduler.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info().Int64("updates", totalUpdates).Msg("simulation finished")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")

	logger.Info().Msg("stress test complete")
}
