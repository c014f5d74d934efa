package main

import (
	internal "github.com/minsulander/vatiris/internal/aup"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the merged TopSky feed and the AUP API",
	Run: func(cmd *cobra.Command, args []string) {
		internal.Server(logLevel)
	},
}
