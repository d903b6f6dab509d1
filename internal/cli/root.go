// Package cli provides the Cobra command structure for segtok.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seglabco/segtok/internal/logging"
	"github.com/seglabco/segtok/pkg/language"
	"github.com/seglabco/segtok/pkg/resource"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root segtok command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var resourceDir string
	var color string

	rootCmd := &cobra.Command{
		Use:   "segtok",
		Short: "A rule-driven tokenizer and sentence segmenter",
		Long: `segtok segments natural-language text into paragraphs, text units
and classified tokens.

Punctuation splitting, clitic handling, abbreviation recognition and
sentence boundary detection are all driven by per-language resource
packs, so behavior can be tuned for a language without touching code.
A default pack is embedded in the binary; --resources points at an
external pack directory instead.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&resourceDir, "resources", "",
		"path to a resource pack directory (defaults to the embedded pack)")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// openRegistry builds the language registry from the --resources flag,
// using the embedded default pack when the flag is unset.
func openRegistry(cmd *cobra.Command) (*language.Registry, error) {
	dir, err := cmd.Flags().GetString("resources")
	if err != nil {
		return nil, fmt.Errorf("get resources flag: %w", err)
	}
	if dir == "" {
		return resource.DefaultRegistry()
	}
	logging.Default().Debug("using external resource pack", logging.FieldResources, dir)
	return resource.NewRegistry(resource.DirLoader{Root: dir})
}
