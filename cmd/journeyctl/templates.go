package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"journeybuilder/application/templates"
	"journeybuilder/domain/core/valueobjects"
	pkgerrors "journeybuilder/pkg/errors"
)

func (c *cli) templatesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the node palette",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			catalog := templates.NewCatalog()
			list := catalog.All()
			if category != "" {
				cat := valueobjects.NodeCategory(category)
				if !cat.IsValid() {
					return pkgerrors.NewValidationError(fmt.Sprintf("unknown category %q", category))
				}
				list = catalog.ByCategory(cat)
			}

			if c.jsonMode {
				return c.printJSON(list)
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tCATEGORY\tLABEL")
			for _, t := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Type, t.Category, t.Label)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "trigger, action, condition or flow")
	return cmd
}
