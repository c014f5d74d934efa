package main

import (
	internal "github.com/minsulander/vatiris/internal/aup"
	"github.com/spf13/cobra"
)

var path string

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Parse a local use plan text extract",
	Run: func(cmd *cobra.Command, args []string) {
		internal.Local(path, logLevel)
	},
}

func init() {
	localCmd.Flags().StringVarP(&path, "path", "p", "useplan.txt", "The use plan text file to parse.")
}
