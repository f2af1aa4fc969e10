package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/ecs/component"
	"github.com/milk9111/ropeclimb/ecs/entity"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a warmed-up rope",
	Long:  `Builds the rope prefab at the origin and prints its nodes after warm-up.`,
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, _ []string) error {
	w := ecs.NewWorld()
	e, err := entity.NewRopeAt(w, flagRopePrefab, mgl64.Vec3{})
	if err != nil {
		return err
	}
	rc, _ := ecs.Get(w, e, component.RopeComponent.Kind())
	r := rc.Rope
	cfg := r.Config()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "prefab:   %s\n", rc.Prefab)
	fmt.Fprintf(out, "material: %s\n", cfg.Material)
	fmt.Fprintf(out, "length:   %.1f\n", r.RopeLength())
	fmt.Fprintf(out, "rest:     %.2f\n", cfg.RestLength())
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-4s  %10s  %10s  %10s  %8s\n", "node", "x", "y", "z", "link")

	var prev mgl64.Vec3
	for i, p := range r.Nodes() {
		link := 0.0
		if i > 0 {
			link = p.Sub(prev).Len()
		}
		fmt.Fprintf(out, "  %-4d  %10.2f  %10.2f  %10.2f  %8.2f\n", i, p.X(), p.Y(), p.Z(), link)
		prev = p
	}
	return nil
}
