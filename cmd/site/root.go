package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fourcetech/site/internal/cms"
	"github.com/fourcetech/site/internal/content"
	"github.com/fourcetech/site/internal/platform/config"
	"github.com/fourcetech/site/internal/site"
)

// app carries the configuration loaded before any subcommand runs.
type app struct {
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	a := &app{}

	root := &cobra.Command{
		Use:   "site",
		Short: "Fource Technologies company website",
		Long: `site renders the company website from a headless CMS. Every page
falls back to built-in copy for anything the CMS leaves out.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	root.AddCommand(newServeCmd(a), newResolveCmd(a), newCheckCmd(a))
	return root
}

// components is the object graph shared by the subcommands.
type components struct {
	loader  *cms.Loader
	store   *content.Store
	service *site.Service
}

func (a *app) build(logger *slog.Logger) (*components, error) {
	store, err := content.NewStore(a.cfg.DefaultsFile, logger)
	if err != nil {
		return nil, err
	}

	client := cms.NewHTTPClient(cms.ClientOptions{
		BaseURL:  a.cfg.CMSBaseURL,
		APIToken: a.cfg.CMSAPIToken,
		Populate: a.cfg.CMSPopulate,
		Timeout:  a.cfg.CMSTimeout,
	})
	loader := cms.NewLoader(client, a.cfg.CMSTimeout, logger)

	svc := site.NewService(site.ServiceOptions{
		Loader:       loader,
		Prober:       cms.NewProber(loader, a.cfg.ProbeConcurrency),
		Defaults:     store,
		Resolver:     content.Resolver{Images: cms.ImageResolver{MediaURL: a.cfg.CMSMediaURL}},
		RenderWait:   a.cfg.RenderWait,
		FetchTimeout: a.cfg.CMSTimeout,
		Logger:       logger,
	})

	return &components{loader: loader, store: store, service: svc}, nil
}
