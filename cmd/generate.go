package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/phpmodelgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	var excludeByTagStrings = make([]string, 0)

	// generateCmd represents the phpmodelgen generate command
	var generateCmd = &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "generate PHP classes",
		Long:    "Generate one PHP class per Go struct and string enum of the scanned module",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			options, err := loadOptions(c.Flags(), excludeByTagStrings)
			if err != nil {
				return err
			}
			files, err := generate.Generate(options)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(c.OutOrStdout(), f)
			}
			return nil
		},
	}
	addOptionFlags(generateCmd.Flags(), &excludeByTagStrings)

	return generateCmd
}
