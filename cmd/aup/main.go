package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	envFile     string
	logLevelInt int
	logLevel    zerolog.Level = 1
	// The root command of our program
	rootCmd = &cobra.Command{
		Use:   "vatiris-aup",
		Short: "VatIRIS airspace use plan backend.",
		Long: `Fetches and parses the LFV Daily Use Plan, merges it with the vLARA feed
	under operator overrides, and serves the result as a TopSky area activation feed.`,
	}
)

// Go, go, go
func main() {
	rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Bind our args to the command
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "The env file to read.")
	rootCmd.PersistentFlags().IntVar(&logLevelInt, "log", 1, "The logging level to use.")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(localCmd)
}

func initConfig() {
	logLevel = zerolog.Level(logLevelInt)

	err := godotenv.Load(envFile)
	if err != nil {
		slog.Info("failed to load env file", "error", err.Error())
	}
}
