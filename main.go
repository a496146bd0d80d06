package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"

	"github.com/velantec/streamfolio/internal/config"
	"github.com/velantec/streamfolio/internal/contact"
	"github.com/velantec/streamfolio/internal/content"
	"github.com/velantec/streamfolio/internal/ctxlog"
	"github.com/velantec/streamfolio/internal/preload"
	"github.com/velantec/streamfolio/internal/server"
	"github.com/velantec/streamfolio/internal/store"
	"github.com/velantec/streamfolio/internal/telemetry"
)

const version = "v0.3.0"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E50914"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func printBanner(mode string) {
	fmt.Println(titleStyle.Render("STREAMFOLIO") + " " + infoStyle.Render(version+"  |  "+mode))
	fmt.Println()
}

func main() {
	root := &cobra.Command{
		Use:          "streamfolio",
		Short:        "Streaming-style personal portfolio server",
		SilenceUsage: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the portfolio web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			showQR, _ := cmd.Flags().GetBool("qr")
			return serve(cmd.Context(), cfg, showQR)
		},
	}
	serveCmd.Flags().Bool("qr", false, "Print a QR code of the site URL on startup")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("streamfolio %s\n", version)
		},
	}

	root.AddCommand(serveCmd, checkAssetsCmd(), revealCmd(), hashPasswordCmd(), versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config, showQR bool) error {
	logger := ctxlog.New(os.Stderr, cfg.Mode, cfg.LogLevel)
	slog.SetDefault(logger)
	printBanner("SERVER")

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("error flushing traces", "error", err)
		}
	}()

	catalog, err := content.Load()
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	// A nil *SMTPMailer must not reach the interface.
	var mailer contact.Mailer
	if cfg.MailConfigured() {
		mailer = &contact.SMTPMailer{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			To:   cfg.ContactTo,
		}
	} else {
		logger.Warn("SMTP credentials not set; contact messages are stored but not mailed")
	}

	cache := preload.New(
		server.AssetFetcher(cfg.PreloadBaseURL, &http.Client{Timeout: cfg.PreloadTimeout}),
		preload.WithTimeout(cfg.PreloadTimeout),
		preload.WithLogger(logger),
	)

	srv, err := server.New(server.Deps{
		Config:  cfg,
		Catalog: catalog,
		Preload: cache,
		Store:   st,
		Contact: contact.NewService(st, mailer, cfg.ContactDelay, logger),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	go srv.RunMaintenance(ctx)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Println(okStyle.Render("  ✓ Listening on http://" + cfg.Addr()))
	fmt.Println(okStyle.Render("  ✓ Public URL   " + cfg.SiteURL))
	if showQR {
		qrterminal.GenerateHalfBlock(cfg.SiteURL, qrterminal.L, os.Stdout)
	}
	fmt.Println()

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down gracefully")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		wctx, wcancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer wcancel()
		_ = cache.Wait(wctx)
		return nil
	}
}
