package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fourcetech/site/internal/cms"
	"github.com/fourcetech/site/internal/platform/logger"
	"github.com/fourcetech/site/internal/site"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "resolve <view>",
		Short:     "Print the resolved view model of a page as JSON",
		Long:      "resolve fetches the view's section once and prints what the page would render. When the fetch fails the defaults are printed instead.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: site.Views,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := args[0]
			section, ok := site.SectionOf(view)
			if !ok {
				return fmt.Errorf("unknown view %q, want one of %s", view, strings.Join(site.Views, ", "))
			}

			c, err := a.build(logger.New(cmd.ErrOrStderr(), a.cfg.LogLevel))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.CMSTimeout)
			defer cancel()

			doc, err := c.loader.Retrieve(ctx, section)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v; showing defaults\n", section, err)
				doc = cms.Document{}
			}

			m, _ := c.service.Resolve(view, doc)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		},
	}
}
