package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/llmsmd/internal/logger"
	"github.com/jmylchreest/llmsmd/pkg/llms"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file|-]",
	Short: "Convert one HTML fragment or page to Markdown",
	Long: `Convert reads HTML from a file (or stdin when the argument is "-" or
missing) and writes the Markdown to stdout.

Examples:
  llmsmd convert page.html
  llmsmd convert page.html --ignore ".no-llms" --ignore aside -o page.md
  llmsmd convert - --only-structure < page.html
  llmsmd convert page.html --stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.StringArray("ignore", nil, "selector to remove before conversion (repeatable)")
	flags.Bool("only-structure", false, "keep only the heading/list skeleton")
	flags.Bool("stats", false, "print conversion stats and warnings to stderr")
	flags.StringP("output", "o", "", "output file (default: stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	ignore, _ := flags.GetStringArray("ignore")
	onlyStructure, _ := flags.GetBool("only-structure")
	showStats, _ := flags.GetBool("stats")
	outPath, _ := flags.GetString("output")

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}
	html, err := readInput(cmd.InOrStdin(), source)
	if err != nil {
		return err
	}
	logger.Debug("converting", "source", source, "size", humanize.Bytes(uint64(len(html))))

	result := llms.New().ConvertWithStats(html, llms.Options{
		IgnoreSelectors: ignore,
		OnlyStructure:   onlyStructure,
	})
	if result.Error != nil {
		return result.Error
	}

	if showStats {
		fmt.Fprint(cmd.ErrOrStderr(), result.Stats.String())
		for _, w := range result.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w.String())
		}
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if _, err := fmt.Fprintln(out, result.Content); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func readInput(stdin io.Reader, source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", source, err)
	}
	return string(data), nil
}
