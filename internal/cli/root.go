// Package cli implements the opbop command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/opbop/opbop/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "opbop",
	Short: "OpBop - condensed, simplified news articles with content-safety controls",
	Long: `OpBop asks the remote OpBop service for a condensed (tl;dr) and
simplified version of a news article, along with similar-article
suggestions.

What gets shown is governed locally by your preferences: a source
blacklist, an explicit-content filtering level, date-range filtering of
similar articles, image censorship, and source-reliability warnings.
Hidden text can always be revealed explicitly.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("opbop v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.opbop/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.opbop")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match OPBOP_*
	viper.SetEnvPrefix("OPBOP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults overlaid with any
// values the config file or environment provide.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	set := func(key string, apply func()) {
		if viper.IsSet(key) {
			apply()
		}
	}

	set("service.endpoint", func() { cfg.Service.Endpoint = viper.GetString("service.endpoint") })
	set("service.requests_per_second", func() { cfg.Service.RequestsPerSecond = viper.GetFloat64("service.requests_per_second") })
	set("service.burst", func() { cfg.Service.Burst = viper.GetInt("service.burst") })
	set("http.timeout", func() { cfg.HTTP.Timeout = viper.GetDuration("http.timeout") })
	set("http.user_agent", func() { cfg.HTTP.UserAgent = viper.GetString("http.user_agent") })
	set("http.max_body_bytes", func() { cfg.HTTP.MaxBodyBytes = viper.GetInt64("http.max_body_bytes") })
	set("http.http_proxy", func() { cfg.HTTP.HTTPProxy = viper.GetString("http.http_proxy") })
	set("http.https_proxy", func() { cfg.HTTP.HTTPSProxy = viper.GetString("http.https_proxy") })
	set("cache.enabled", func() { cfg.Cache.Enabled = viper.GetBool("cache.enabled") })
	set("cache.dir", func() { cfg.Cache.Dir = viper.GetString("cache.dir") })
	set("cache.memory_ttl", func() { cfg.Cache.MemoryTTL = viper.GetDuration("cache.memory_ttl") })
	set("cache.disk_ttl", func() { cfg.Cache.DiskTTL = viper.GetDuration("cache.disk_ttl") })
	set("prefs.path", func() { cfg.Prefs.Path = viper.GetString("prefs.path") })
	set("logging.level", func() { cfg.Logging.Level = viper.GetString("logging.level") })

	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg
}
