package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"journeybuilder/domain/core/aggregates"
	"journeybuilder/infrastructure/di"
)

func (c *cli) segmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "segments",
		Aliases: []string{"segment", "s"},
		Short:   "Manage audience segments",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withContainer(cmd, func(ct *di.Container) error {
				return c.printSegments(ct.Segments.Segments())
			})
		},
	}

	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a segment with an empty AND group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withContainer(cmd, func(ct *di.Container) error {
				seg := ct.Segments.CreateSegment(args[0], description)
				return c.printSegments([]aggregates.Segment{seg})
			})
		},
	}
	create.Flags().StringVar(&description, "description", "", "segment description")

	cmd.AddCommand(list, create)
	return cmd
}

func (c *cli) printSegments(segments []aggregates.Segment) error {
	if segments == nil {
		segments = []aggregates.Segment{}
	}
	if c.jsonMode {
		return c.printJSON(segments)
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tOPERATOR\tCONDITIONS\tDEPTH\tCOUNT")
	for _, s := range segments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			s.ID, s.Name, s.Conditions.Operator, len(s.Conditions.Conditions), s.Conditions.Depth(), s.Count)
	}
	return tw.Flush()
}
