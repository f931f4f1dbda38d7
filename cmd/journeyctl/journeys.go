package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"journeybuilder/domain/core/aggregates"
	"journeybuilder/domain/core/valueobjects"
	"journeybuilder/infrastructure/di"
	pkgerrors "journeybuilder/pkg/errors"
)

func (c *cli) journeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "journeys",
		Aliases: []string{"journey", "j"},
		Short:   "Manage the journey catalog",
	}

	var status, description string

	list := &cobra.Command{
		Use:   "list",
		Short: "List journeys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if status != "" && !aggregates.JourneyStatus(status).IsValid() {
				return pkgerrors.NewValidationError(fmt.Sprintf("unknown status %q", status))
			}
			return c.withContainer(cmd, func(ct *di.Container) error {
				var out []aggregates.Journey
				for _, j := range ct.Journeys.Journeys() {
					if status == "" || string(j.Status) == status {
						out = append(out, j)
					}
				}
				return c.printJourneys(out)
			})
		},
	}
	list.Flags().StringVar(&status, "status", "", "only show journeys with this status")

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a draft journey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withContainer(cmd, func(ct *di.Container) error {
				limit := ct.Domain.MaxJourneyNameLength
				if limit > 0 && len([]rune(args[0])) > limit {
					return pkgerrors.NewLimitError(pkgerrors.CodeNameTooLong, limit,
						fmt.Sprintf("name must be at most %d characters", limit))
				}
				j := ct.Journeys.CreateJourney(args[0], description)
				return c.printJourneys([]aggregates.Journey{j})
			})
		},
	}
	create.Flags().StringVar(&description, "description", "", "journey description")

	cmd.AddCommand(
		list,
		create,
		c.journeyAction("publish", "Publish a journey", func(ct *di.Container, id valueobjects.JourneyID) {
			ct.Journeys.PublishJourney(id)
		}),
		c.journeyAction("pause", "Pause a journey", func(ct *di.Container, id valueobjects.JourneyID) {
			ct.Journeys.PauseJourney(id)
		}),
		c.journeyAction("archive", "Archive a journey", func(ct *di.Container, id valueobjects.JourneyID) {
			ct.Journeys.ArchiveJourney(id)
		}),
		c.journeyAction("delete", "Delete a journey", func(ct *di.Container, id valueobjects.JourneyID) {
			ct.Journeys.DeleteJourney(id)
		}),
	)
	return cmd
}

// journeyAction builds a "<verb> <id>" subcommand that fails on unknown ids
func (c *cli) journeyAction(use, short string, fn func(*di.Container, valueobjects.JourneyID)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <journey-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := valueobjects.JourneyID(args[0])
			return c.withContainer(cmd, func(ct *di.Container) error {
				if _, ok := ct.Journeys.Journey(id); !ok {
					return pkgerrors.NewNotFoundError("journey " + args[0])
				}
				fn(ct, id)

				j, ok := ct.Journeys.Journey(id)
				if !ok {
					fmt.Fprintf(c.out, "deleted %s\n", id)
					return nil
				}
				return c.printJourneys([]aggregates.Journey{j})
			})
		},
	}
}

func (c *cli) printJourneys(journeys []aggregates.Journey) error {
	if journeys == nil {
		journeys = []aggregates.Journey{}
	}
	if c.jsonMode {
		return c.printJSON(journeys)
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tVERSION\tNODES\tEDGES")
	for _, j := range journeys {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n", j.ID, j.Name, j.Status, j.Version, len(j.Nodes), len(j.Edges))
	}
	return tw.Flush()
}
