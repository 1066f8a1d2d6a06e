package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the user's active category tree",
	RunE:  runTree,
}

func runTree(cmd *cobra.Command, _ []string) error {
	ctx, err := userContext(cmd.Context())
	if err != nil {
		return err
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	tree, err := e.categories.Tree(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, an := range tree.Areas {
		fmt.Fprintf(out, "%s  %s\n", an.Area.Name, an.Area.Color)
		for _, fn := range an.Fields {
			fmt.Fprintf(out, "  %s\n", fn.Field.Name)
			for _, a := range fn.Activities {
				fmt.Fprintf(out, "    %s  (%s)\n", a.Name, a.ID)
			}
		}
	}
	return nil
}
