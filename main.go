package main

import (
	"context"
	"os"
	"time"

	"github.com/shandysiswandi/otpgate/internal/app"
	"github.com/spf13/cobra"
)

// @title           OTPGate API
// @version         1.0
// @description     OTPGate provides email OTP registration, login and password recovery APIs.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT, or send the access-token cookie.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	serve := newServeCmd(&opts)

	cmd := &cobra.Command{
		Use:           "otpgate",
		Short:         "Email OTP authentication service",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          serve.RunE,
	}
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file path (default: $CONFIG_PATH)")

	cmd.AddCommand(serve)
	cmd.AddCommand(newMigrateCmd(&opts))

	return cmd
}

func newServeCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server and the event consumers",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			application := app.New(*opts)
			wait := application.Start()
			<-wait

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			application.Stop(ctx)

			return nil
		},
	}
}

func newMigrateCmd(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	for _, sub := range []struct{ use, short string }{
		{app.MigrateUp, "Apply all pending migrations"},
		{app.MigrateDown, "Roll back every migration"},
		{app.MigrateVersion, "Print the applied schema version"},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				return app.Migrate(*opts, sub.use, c.OutOrStdout())
			},
		})
	}

	return cmd
}
