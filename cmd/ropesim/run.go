package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/prefabs"
	"github.com/milk9111/ropeclimb/sim"
)

var (
	flagFPS       int
	flagTicks     int
	flagWatch     bool
	flagRealtime  bool
	flagAutopilot bool
	flagAnchorZ   float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation",
	Long: `Steps a rope and a climber at a fixed frame rate and logs rope events.

With --watch the prefab directory is watched and ropes are rebuilt when
their prefab or a force script changes. --ticks 0 runs until interrupted.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	runCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Frames to run (0 = until interrupted)")
	runCmd.Flags().BoolVar(&flagWatch, "watch", false, "Hot reload prefabs from the prefab directory")
	runCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace frames in wall-clock time")
	runCmd.Flags().BoolVar(&flagAutopilot, "autopilot", true, "Drive the climber through a grab and climb routine")
	runCmd.Flags().Float64Var(&flagAnchorZ, "anchor-z", 1024, "Height of the rope anchor")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg := sim.DefaultConfig()
	cfg.FPS = flagFPS
	cfg.RopePrefab = flagRopePrefab
	cfg.Anchor = mgl64.Vec3{0, 0, flagAnchorZ}
	cfg.Autopilot = flagAutopilot
	cfg.Logger = log.Default()

	s, err := sim.New(cfg)
	if err != nil {
		return err
	}

	if flagWatch {
		w, err := prefabs.NewWatcher(flagPrefabDir)
		if err != nil {
			return fmt.Errorf("watch %s: %w", flagPrefabDir, err)
		}
		defer w.Close()
		s.Watch(w.Changes)
		go func() {
			for err := range w.Errors {
				log.Warn("prefab watcher", "err", err)
			}
		}()
		log.Info("watching prefabs", "dir", flagPrefabDir)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var pace <-chan time.Time
	if flagRealtime || flagWatch {
		ticker := time.NewTicker(time.Second / time.Duration(flagFPS))
		defer ticker.Stop()
		pace = ticker.C
	}

	for flagTicks == 0 || s.Frame() < flagTicks {
		if pace != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-pace:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		for _, ev := range s.Tick() {
			logEvent(s, ev)
		}
	}

	p := s.ClimberPosition()
	log.Info("done", "frames", s.Frame(), "climber", fmt.Sprintf("(%.1f, %.1f, %.1f)", p.X(), p.Y(), p.Z()))
	return nil
}

func logEvent(s *sim.Sim, ev ecs.Event) {
	re, _ := ev.Data.(ecs.RopeEvent)
	log.Info(ev.Type, "frame", s.Frame(), "rope", re.Rope, "climber", re.Climber)
}

