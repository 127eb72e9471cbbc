package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/phpmodelgen/pkg/action/snapshot"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand(), NewDiffCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var (
		excludeByTagStrings = make([]string, 0)
		manifestPath, name  string
	)

	var snapshotCmd = &cobra.Command{
		Use:   "snapshot <version>",
		Short: "generate a versioned snapshot",
		Long:  "Generate PHP classes into <output-directory>/<version> and record them in the manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			options, err := loadOptions(c.Flags(), excludeByTagStrings)
			if err != nil {
				return err
			}
			s, err := snapshot.Generate(options, manifestPath, name, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "snapshot %s: %d classes in %s\n", s.Version, len(s.Files), s.Dir)
			return nil
		},
	}
	addOptionFlags(snapshotCmd.Flags(), &excludeByTagStrings)
	snapshotCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "phpmodelgen.manifest.yaml", "manifest file")
	snapshotCmd.Flags().StringVar(&name, "name", "php", "snapshot name")

	return snapshotCmd
}

func NewDiffCommand() *cobra.Command {
	var manifestPath string

	var diffCmd = &cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot against the previous one",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			diff, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				return err
			}
			fmt.Fprint(c.OutOrStdout(), diff)
			return nil
		},
	}
	diffCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "phpmodelgen.manifest.yaml", "manifest file")

	return diffCmd
}
