package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "procwise",
	Short: "Procwise turns plain-language descriptions into BPMN process models",
	Long:  `Procwise is a conversational assistant: describe a business process in natural language and it builds (and iteratively refines) a structured BPMN process model.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "procwise.yaml", "Path to the configuration file")
}
