package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kfarnes/mast/core/model"
	_ "github.com/kfarnes/mast/models" // register builtin model types
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the registered model types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range model.Known() {
			cmd.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
