package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samdwyer/tiled/internal/fov"
)

var raysCmd = &cobra.Command{
	Use:   "rays",
	Short: "Print what the player sees from the spawn point",
	RunE:  runRays,
}

func runRays(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.close()

	session, err := loadSession(ctx, e)
	if err != nil {
		return err
	}
	defer session.Close()

	samples := session.VisibleTiles()
	x, y := session.Player()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s at (%d, %d): %d rays, range %d, %d samples\n",
		session.CurrentRoom().Name, x, y, e.cfg.Rays, e.cfg.VisibleRange, len(samples))
	writeView(out, session.Viewport(), samples)
	return nil
}

// writeView draws the samples as text: tile glyphs, ' ' for unseen cells,
// ',' for seen cells outside the room and '@' for the player.
func writeView(w io.Writer, view fov.Viewport, samples []fov.Sample) {
	grid := make([][]rune, view.Height+1)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", view.Width+1))
	}
	for _, s := range samples {
		if s.X < 0 || s.Y < 0 || s.X > view.Width || s.Y > view.Height {
			continue
		}
		if s.Slot == nil {
			grid[s.Y][s.X] = ','
			continue
		}
		grid[s.Y][s.X] = s.Slot.Tile().Glyph
	}
	cx, cy := view.Center()
	grid[cy][cx] = '@'

	for _, row := range grid {
		fmt.Fprintln(w, strings.TrimRight(string(row), " "))
	}
}
