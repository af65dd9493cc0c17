// Command menulint resolves menu panel files and reports what they contain.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	menu "github.com/goliatone/go-menu"
	"github.com/goliatone/go-menu/pkg/activity"
	"github.com/goliatone/go-menu/pkg/yamlsection"
	"github.com/spf13/cobra"
)

type checkOptions struct {
	path    string
	size    int
	legacy  bool
	verbose bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "menulint",
		Short: "Validate menu panel configuration",
		Long: `menulint loads panel files (YAML, JSON or JSONC) and resolves every button
the same way the menu engine does at runtime.

Environment Variables:
  MENU_INVENTORY_SIZE     Slots per page (default: 54)
  MENU_LEGACY_MATERIALS   Use SKULL_ITEM:3 for player heads (true/false)`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newCheckCommand(), newTypesCommand())
	return rootCmd
}

func newCheckCommand() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Resolve every button of the given panel files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.path, "path", "items", "Section holding the buttons")
	cmd.Flags().IntVar(&opts.size, "size", 0, "Slots per page, overrides MENU_INVENTORY_SIZE")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "Use legacy player head materials")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every soft failure")
	return cmd
}

func newTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the built-in button and action types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "buttons: %s\n", strings.Join(menu.DefaultTypeRegistry().Names(), ", "))
			fmt.Fprintf(out, "actions: %s\n", strings.Join(menu.DefaultActionRegistry().Names(), ", "))
		},
	}
}

func runCheck(ctx context.Context, out, errOut io.Writer, opts *checkOptions, files []string) error {
	settings, err := menu.LoadSettings()
	if err != nil {
		return err
	}
	if opts.size > 0 {
		settings.InventorySize = opts.size
	}
	if opts.legacy {
		settings.LegacyMaterials = true
	}

	level := slog.LevelError
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	capture := &activity.CaptureHook{}
	engine := menu.NewEngine(
		menu.WithSettings(settings),
		menu.WithLogger(logger),
		menu.WithActivity(activity.NewEmitter(activity.Hooks{capture}, activity.Config{Enabled: true})),
	)

	var failed int
	for _, file := range files {
		doc, err := yamlsection.Load(file)
		if err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", file, err)
			failed++
			continue
		}
		buttons, err := engine.ResolvePanel(ctx, menu.Request{
			Root:     doc,
			File:     file,
			Path:     opts.path,
			Defaults: menu.NewDefaultButtonValue(),
		})
		if err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", file, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "ok   %s: %d buttons\n", file, len(buttons))
		for _, button := range buttons {
			describe(out, button, "  ")
		}
	}
	logger.Debug("activity recorded", slog.Int("events", len(capture.Events)))
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func describe(out io.Writer, button *menu.Button, indent string) {
	for current := button; current != nil; current = current.Else() {
		fmt.Fprintf(out, "%s%-20s %-9s slot=%d page=%d actions=%d placeholders=%d\n",
			indent, current.Name, current.Type, current.Slot, current.Page,
			len(current.Actions), len(current.Placeholders))
		indent += "  "
	}
}
