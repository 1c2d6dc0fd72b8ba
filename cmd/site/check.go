package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fourcetech/site/internal/cms"
	"github.com/fourcetech/site/internal/platform/logger"
)

var errSectionsFailed = errors.New("one or more sections failed to load")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that every content section loads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.build(logger.New(cmd.ErrOrStderr(), a.cfg.LogLevel))
			if err != nil {
				return err
			}

			results := c.service.Check(cmd.Context())

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SECTION\tSTATUS\tDETAIL")
			for _, r := range results {
				if r.OK {
					fmt.Fprintf(tw, "%s\tok\t\n", r.Section)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Section, r.Kind, r.Error)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if !cms.AllOK(results) {
				return errSectionsFailed
			}
			return nil
		},
	}
}
