package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/anshos/internal/ipc"
	"github.com/1broseidon/anshos/internal/palette"
)

func newPaletteCmd(opts *rootOptions) *cobra.Command {
	var backendName string
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Open the start menu in rofi, fuzzel, wofi or dmenu",
		Long: `Show the applications and open windows of the running daemon in an
external launcher and apply the selection.

Backends: rofi, fuzzel, wofi, dmenu (configured via palette.backend, default: auto).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if backendName == "" {
				res, err := opts.load()
				if err != nil {
					return err
				}
				backendName = res.Config.Palette.Backend
			}
			backend, err := palette.NewBackend(backendName)
			if err != nil {
				return err
			}
			return runPalette(ipc.NewClient(), backend)
		},
	}
	cmd.Flags().StringVar(&backendName, "backend", "", "launcher to use (overrides palette.backend)")
	return cmd
}

func runPalette(client *ipc.Client, backend palette.Backend) error {
	registered, err := client.ListApps()
	if err != nil {
		return err
	}
	windows, err := client.ListWindows()
	if err != nil {
		return err
	}

	selected, err := palette.NewMenu(backend, palette.Build(registered.Apps, windows.Windows)).Show()
	if err != nil {
		if errors.Is(err, palette.ErrCancelled) {
			return nil
		}
		return err
	}
	action, err := palette.ParseAction(selected)
	if err != nil {
		return fmt.Errorf("palette returned %q: %w", selected, err)
	}
	return palette.Dispatch(client, action)
}
