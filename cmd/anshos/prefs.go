package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/anshos/internal/prefs"
	"github.com/1broseidon/anshos/internal/runtimepath"
)

func openPrefsFile() (*prefs.File, error) {
	path, err := runtimepath.PrefsPath()
	if err != nil {
		return nil, err
	}
	return prefs.Open(path)
}

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Read and write stored preferences",
	}

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefsFile()
			if err != nil {
				return err
			}
			value, ok, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no value stored for %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefsFile()
			if err != nil {
				return err
			}
			return store.Set(args[0], args[1])
		},
	}

	del := &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove a stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefsFile()
			if err != nil {
				return err
			}
			return store.Delete(args[0])
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored keys and values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefsFile()
			if err != nil {
				return err
			}
			keys, err := store.Keys()
			if err != nil {
				return err
			}
			for _, k := range keys {
				v, _, err := store.Get(k)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, v)
			}
			return nil
		},
	}

	cmd.AddCommand(get, set, del, list)
	return cmd
}
