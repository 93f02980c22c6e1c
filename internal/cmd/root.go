package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	outputFmt string
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "rustyloot-scraper",
	Short: "Rustyloot WebSocket inventory sniffer",
	Long: `rustyloot-scraper automates a browser session against rustyloot.gg,
listens to the Socket.IO traffic on the site's WebSocket, aggregates any
inventory payloads it sees and persists the tally as JSON.

Credentials are taken from the RL_USERNAME and RL_PASSWORD environment
variables.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.rustyloot-scraper.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "event echo format: text, json")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".rustyloot-scraper")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("auth_url", "https://rustyloot.gg/?auth=true")
	viper.SetDefault("withdraw_url", "https://rustyloot.gg/?withdraw=true&rust=true")
	viper.SetDefault("log_file", "rustyloot_sniffer.log")
	viper.SetDefault("inventory_file", "inventory.json")
	viper.SetDefault("report_file", "rustyloot_market.json")
	viper.SetDefault("poll_interval_ms", 200)
	viper.SetDefault("dedup_capacity", 2000)

	// Secrets come from the environment only.
	_ = viper.BindEnv("username", "RL_USERNAME")
	_ = viper.BindEnv("password", "RL_PASSWORD")

	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
