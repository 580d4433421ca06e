package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/ipc"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printWindow(w io.Writer, info *ipc.WindowInfo) {
	if info == nil {
		fmt.Fprintln(w, "window closed")
		return
	}
	fmt.Fprintf(w, "id:       %s\n", info.ID)
	fmt.Fprintf(w, "app:      %s\n", info.AppID)
	fmt.Fprintf(w, "state:    %s\n", info.State)
	fmt.Fprintf(w, "focused:  %v\n", info.Focused)
	fmt.Fprintf(w, "z_index:  %d\n", info.ZIndex)
	fmt.Fprintf(w, "position: %d,%d\n", info.Position.X, info.Position.Y)
	fmt.Fprintf(w, "size:     %dx%d\n", info.Size.Width, info.Size.Height)
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := ipc.NewClient().GetStatus()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "daemon_running:  %v\n", status.DaemonRunning)
			fmt.Fprintf(out, "viewport_source: %s\n", status.ViewportSource)
			fmt.Fprintf(out, "work_area:       %dx%d+%d+%d\n", status.WorkArea.Width, status.WorkArea.Height, status.WorkArea.X, status.WorkArea.Y)
			fmt.Fprintf(out, "window_count:    %d\n", status.WindowCount)
			fmt.Fprintf(out, "focused_window:  %s\n", status.FocusedWindow)
			fmt.Fprintf(out, "uptime_seconds:  %d\n", status.UptimeSeconds)
			return nil
		},
	}
}

func newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask the daemon to reload its configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ipc.NewClient().Reload()
		},
	}
}

func newLaunchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launch <app>",
		Short: "Open an application, or focus its existing window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := apps.ParseID(args[0])
			if err != nil {
				return err
			}
			info, err := ipc.NewClient().Launch(appID)
			if err != nil {
				return err
			}
			printWindow(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

type windowOp func(c *ipc.Client, id string) (*ipc.WindowInfo, error)

func closeWindow(c *ipc.Client, id string) (*ipc.WindowInfo, error) {
	return nil, c.Close(id)
}

func focusWindow(c *ipc.Client, id string) (*ipc.WindowInfo, error) {
	return c.Focus(id)
}

func minimizeWindow(c *ipc.Client, id string) (*ipc.WindowInfo, error) {
	return c.ToggleMinimize(id)
}

func maximizeWindow(c *ipc.Client, id string) (*ipc.WindowInfo, error) {
	return c.ToggleMaximize(id)
}

func newWindowCmd(name, short string, op windowOp) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <window-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := op(ipc.NewClient(), args[0])
			if err != nil {
				return err
			}
			printWindow(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <window-id> <x> <y>",
		Short: "Move a window's top-left corner",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[1], err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[2], err)
			}
			info, err := ipc.NewClient().Move(args[0], x, y)
			if err != nil {
				return err
			}
			printWindow(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ipc.NewClient().ListWindows()
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd.OutOrStdout(), data)
			}
			fmt.Fprintln(cmd.OutOrStdout(), windowsTable(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func windowsTable(data *ipc.WindowsData) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "APP", "STATE", "Z", "POSITION", "SIZE", "")
	for _, w := range data.Windows {
		mark := ""
		if w.Focused {
			mark = "*"
		}
		t.Row(
			w.ID,
			string(w.AppID),
			w.State,
			strconv.Itoa(w.ZIndex),
			fmt.Sprintf("%d,%d", w.Position.X, w.Position.Y),
			fmt.Sprintf("%dx%d", w.Size.Width, w.Size.Height),
			mark,
		)
	}
	return t.String()
}

func newAppsCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List applications",
		Long:  "List the applications that can be launched. Works without a daemon; open state is shown when one is running.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ipc.NewClient().ListApps()
			if err != nil {
				offline := ipc.BuildAppsData(apps.Default(), nil)
				data = &offline
			}
			if jsonOut {
				return printJSON(cmd.OutOrStdout(), data)
			}
			fmt.Fprintln(cmd.OutOrStdout(), appsTable(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func appsTable(data *ipc.AppsData) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "NAME", "ICON", "SIZE", "OPEN")
	for _, a := range data.Apps {
		open := ""
		if a.Open {
			open = "yes"
		}
		t.Row(
			string(a.ID),
			a.Name,
			a.Icon,
			fmt.Sprintf("%dx%d", a.DefaultSize.Width, a.DefaultSize.Height),
			open,
		)
	}
	return t.String()
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close every window and reset the stacking order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ipc.NewClient().Logout()
		},
	}
}
