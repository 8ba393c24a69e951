package main

import (
	"os"

	"github.com/spf13/cobra"

	"rhiza/internal/proxy"
)

var proxyFlags struct {
	addr      string
	apiPrefix string
	apiTarget string
	uiTarget  string
}

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run the development reverse proxy in front of the API and UI servers",
	RunE:  runProxy,
}

func init() {
	f := proxyCmd.Flags()
	f.StringVar(&proxyFlags.addr, "addr", "", "listen address (overrides proxy.addr)")
	f.StringVar(&proxyFlags.apiPrefix, "api-prefix", "", "path prefix routed to the API (overrides proxy.api_prefix)")
	f.StringVar(&proxyFlags.apiTarget, "api-target", "", "API backend URL (overrides proxy.api_target)")
	f.StringVar(&proxyFlags.uiTarget, "ui-target", "", "UI dev server URL (overrides proxy.ui_target)")
}

func runProxy(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pc := proxy.Config{
		Addr:      cfg.Proxy.Addr,
		APIPrefix: cfg.Proxy.APIPrefix,
		APITarget: cfg.Proxy.APITarget,
		UITarget:  cfg.Proxy.UITarget,
	}
	override(&pc.Addr, proxyFlags.addr)
	override(&pc.APIPrefix, proxyFlags.apiPrefix)
	override(&pc.APITarget, proxyFlags.apiTarget)
	override(&pc.UITarget, proxyFlags.uiTarget)

	srv, err := proxy.New(pc, logger.Named("proxy"))
	if err != nil {
		return err
	}
	srv.PrintBanner(os.Stderr)
	return srv.ListenAndServe()
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
