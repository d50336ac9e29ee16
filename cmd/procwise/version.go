package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/procwise/procwise"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of procwise",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("procwise version %s\n", strings.TrimSpace(procwise.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
