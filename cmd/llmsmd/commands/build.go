package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/llmsmd/internal/build"
	"github.com/jmylchreest/llmsmd/internal/config"
	"github.com/jmylchreest/llmsmd/internal/logger"
	"github.com/jmylchreest/llmsmd/internal/output"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build llms.txt, llms-full.txt and llms-small.txt for a site",
	Long: `Build walks a statically built site, converts the content region of
every page and writes the llms.txt family of files.

Settings come from flags, LLMSMD_* environment variables and .llmsmd.yaml.

Examples:
  llmsmd build --site-url https://docs.example.com
  llmsmd build --input site/dist --output site/dist --title "Widgets"
  llmsmd build --report json > report.json`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	flags := buildCmd.Flags()
	flags.String("input", "dist", "built site directory")
	flags.String("output", "dist", "directory for the generated files")
	flags.String("site-url", "", "public site URL used for links")
	flags.String("title", "", "site title (default: title of index.html)")
	flags.String("description", "", "site description (default: description of index.html)")
	flags.String("content-selector", "main", "selector of the content region of each page")
	flags.IntP("concurrency", "c", 4, "pages converted in parallel")
	flags.String("report", "", "write a build report to stdout: json, jsonl, yaml")

	_ = viper.BindPFlag("input", flags.Lookup("input"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("site_url", flags.Lookup("site-url"))
	_ = viper.BindPFlag("title", flags.Lookup("title"))
	_ = viper.BindPFlag("description", flags.Lookup("description"))
	_ = viper.BindPFlag("content_selector", flags.Lookup("content-selector"))
	_ = viper.BindPFlag("concurrency", flags.Lookup("concurrency"))
}

func runBuild(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	var format output.Format
	if s, _ := cmd.Flags().GetString("report"); s != "" {
		if format, err = output.ParseFormat(s); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Debug("build starting", "input", cfg.Input, "output", cfg.Output, "concurrency", cfg.Concurrency)
	report, err := build.New(afero.NewOsFs(), cfg.BuildOptions()).Build(ctx)
	if err != nil {
		return err
	}
	logInfo("%s", report.Summary())

	if format == "" {
		return nil
	}
	return writeReport(cmd, format, report)
}

// writeReport encodes the report; streaming formats get one line per page.
func writeReport(cmd *cobra.Command, format output.Format, report *build.Report) error {
	enc, err := output.NewEncoder(cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}
	if format.Streaming() {
		for _, p := range report.Pages {
			if err := enc.Encode(p); err != nil {
				return err
			}
		}
	} else if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
