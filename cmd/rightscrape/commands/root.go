// Package commands implements the CLI commands for rightscrape.
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "rightscrape",
	Short: "Extract property listings from a stream of URLs",
	Long: `Rightscrape reads property-page URLs from stdin, one per line, and
extracts the listing summary, price, title, floorplan and location map
from each page.

Exactly one emit mode must be chosen: --json writes one JSON object per
listing, --urls writes the URL of each accepted listing.

Examples:
  # Emit JSON lines for every listing
  cat urls.txt | rightscrape --json

  # Only listings that have a floorplan, as URLs
  cat urls.txt | rightscrape --urls --floorplan

  # Keep going past broken pages, legacy markup only
  cat urls.txt | rightscrape --json --continue-on-error --strategy domonly`,
	RunE:          runScrape,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.rightscrape.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	// A missing .env is not an error.
	_ = godotenv.Load()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".rightscrape")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. RIGHTSCRAPE_DUMP_PATH
	viper.SetEnvPrefix("RIGHTSCRAPE")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command, printing any error to stderr.
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
