package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qbank-ai/qbank/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web form and JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, true)
		if err != nil {
			return err
		}
		defer d.Close()

		addr := d.cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := web.New(d.gen, web.Options{
			Mode:          d.cfg.Server.Mode,
			RatePerMinute: d.cfg.Server.RatePerMinute,
			Logger:        d.logger,
		})
		d.logger.Info("serving",
			zap.String("addr", addr),
			zap.String("model", d.gen.ModelID()),
		)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
