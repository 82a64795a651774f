/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the FlowWing version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("flowwing %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
