package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate a game without opening the terminal",
	Long: `check loads the manifest, every room and every script of a game, then
reports tiles that have no entry in the asset manifest or whose asset is
not a terminal colour.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	tiles := make(map[string][]string)
	for _, name := range session.RoomNames() {
		room, _ := session.Room(name)
		tiles[name] = room.TileNames()
		fmt.Fprintf(out, "room %s: %dx%d, %d tiles\n", name, room.Width(), room.Height(), len(tiles[name]))
	}

	provider, err := loadAssets()
	if err != nil {
		return err
	}
	missing := provider.Check(tiles)
	images := provider.NonColors(tiles)
	for _, name := range session.RoomNames() {
		if names := missing[name]; len(names) > 0 {
			fmt.Fprintf(out, "warning: room %s has no assets for %s\n", name, strings.Join(names, ", "))
		}
		if names := images[name]; len(names) > 0 {
			fmt.Fprintf(out, "warning: room %s has non-colour assets for %s\n", name, strings.Join(names, ", "))
		}
	}

	fmt.Fprintf(out, "%s: ok\n", session.Title())
	return nil
}
