// Package commands implements the CLI commands for llmsmd.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/llmsmd/internal/config"
	"github.com/jmylchreest/llmsmd/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "llmsmd",
	Short: "Convert documentation HTML into Markdown for language models",
	Long: `llmsmd converts rendered documentation pages into a compact Markdown
dialect and builds llms.txt, llms-full.txt and llms-small.txt for a site.

Examples:
  # Convert one page
  llmsmd convert dist/guide/index.html

  # Convert from stdin, dropping site chrome
  curl -s https://example.com/docs/ | llmsmd convert - --ignore nav --ignore footer

  # Build the llms.txt family for an Astro/Starlight site
  llmsmd build --input dist --site-url https://docs.example.com`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log_json"),
		})
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default ./.llmsmd.yaml or $HOME/.llmsmd.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

var configErr error

func initConfig() {
	cfgFile := viper.GetString("config")
	home, _ := os.UserHomeDir()

	config.Setup(viper.GetViper(), cfgFile, home)
	// Reported by the commands that need the file.
	configErr = config.ReadFile(viper.GetViper(), cfgFile != "")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
