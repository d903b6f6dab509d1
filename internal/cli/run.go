package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/seglabco/segtok/internal/inputcheck"
	"github.com/seglabco/segtok/internal/logging"
	"github.com/seglabco/segtok/internal/ui/pretty"
	"github.com/seglabco/segtok/pkg/fsutil"
	"github.com/seglabco/segtok/pkg/render"
	"github.com/seglabco/segtok/pkg/tokenize"
)

// Output format names.
const (
	formatText   = "text"
	formatJSON   = "json"
	formatPretty = "pretty"
)

type runFlags struct {
	language string
	format   string
	output   string
}

func newRunCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Tokenize text from a file or stdin",
		Long:  runLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.language, "language", "l", "",
		"language tag to segment with (defaults to the pack default)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText,
		"output format: text, json, pretty")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"write output to a file instead of stdout")

	return cmd
}

const runLongDescription = `Tokenize natural-language text into paragraphs, text units and
classified tokens.

Reads from the given file, or from stdin when no file (or "-") is
given. Binary input is rejected; input that looks like source code is
segmented anyway but logged as a warning.

Examples:
  segtok run report.txt              # Segment a file
  cat report.txt | segtok run        # Segment stdin
  segtok run -l de report.txt        # Use the "de" resource pack
  segtok run -f json report.txt      # JSON output for pipelines
  segtok run -f pretty report.txt    # Styled token table
  segtok run -o tokens.txt report.txt`

func runTokenize(cmd *cobra.Command, args []string, flags *runFlags) error {
	logger := logging.Default()

	switch flags.format {
	case formatText, formatJSON, formatPretty:
	default:
		return fmt.Errorf("%w: unknown format %q (want text, json or pretty)", ErrUsage, flags.format)
	}

	name, content, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	warn, err := inputcheck.Verify(name, content)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if warn != "" {
		logger.Warn(warn, logging.FieldInput, name)
	}

	registry, err := openRegistry(cmd)
	if err != nil {
		return err
	}

	// Resolve first so the output carries the tag actually used, not
	// the one asked for.
	res, err := registry.Resolve(flags.language)
	if err != nil {
		return err
	}

	annotated, err := tokenize.New(registry).Tokenize(string(content), res.Tag)
	if err != nil {
		return err
	}
	doc := render.Build(annotated, res.Tag)

	logger.Debug("segmented input",
		logging.FieldInput, name,
		logging.FieldLanguage, doc.Language,
		logging.FieldParagraphs, len(doc.Paragraphs),
		logging.FieldTextUnits, doc.TextUnitCount(),
		logging.FieldTokens, doc.TokenCount(),
	)

	var buf bytes.Buffer
	if err := writeDocument(cmd, &buf, doc, flags); err != nil {
		return err
	}

	if flags.output == "" {
		_, err := io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := fsutil.WriteAtomic(ctx, flags.output, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("wrote output",
		logging.FieldOutput, flags.output,
		logging.FieldFormat, flags.format,
	)
	return nil
}

// readInput reads the positional file argument, or stdin for "-"/none.
func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	name := "-"
	if len(args) == 1 {
		name = args[0]
	}
	if name == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return name, content, nil
	}
	content, err := os.ReadFile(name)
	if err != nil {
		return "", nil, fmt.Errorf("read input: %w", err)
	}
	return name, content, nil
}

func writeDocument(cmd *cobra.Command, buf *bytes.Buffer, doc render.Document, flags *runFlags) error {
	switch flags.format {
	case formatJSON:
		return render.WriteJSON(buf, doc)
	case formatPretty:
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return fmt.Errorf("get color flag: %w", err)
		}
		colorEnabled := flags.output == "" && pretty.IsColorEnabled(color, os.Stdout)
		styles := pretty.NewStyles(colorEnabled)

		width := 0
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}

		buf.WriteString(pretty.NewTokenTable(styles, width).Format(doc))
		buf.WriteString(styles.FormatSummaryOneLine(doc))
		return nil
	default:
		return render.WriteText(buf, doc)
	}
}
