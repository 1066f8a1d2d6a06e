package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/zeitdreher-backend/internal/app/seeder"
)

var (
	seedFile   string
	seedDryRun bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import a category tree from a YAML or JSON file",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "tree file")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "report what would be created without writing")
	_ = seedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	tree, err := seeder.LoadTree(seedFile)
	if err != nil {
		return err
	}

	ctx, err := userContext(cmd.Context())
	if err != nil {
		return err
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := seeder.NewPipeline(e.log, e.categories, seedDryRun).Run(ctx, *tree)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "areas=%d fields=%d activities=%d existing=%d\n",
		res.Areas, res.Fields, res.Activities, res.Existing)
	return nil
}
