package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/velantec/streamfolio/internal/config"
	"github.com/velantec/streamfolio/internal/content"
	"github.com/velantec/streamfolio/internal/ctxlog"
	"github.com/velantec/streamfolio/internal/preload"
	"github.com/velantec/streamfolio/internal/reveal"
	"github.com/velantec/streamfolio/internal/server"
)

// checkAssetsCmd preloads every image the catalog and the critical lists
// reference and fails if any is missing.
func checkAssetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-assets",
		Short: "Verify every referenced image can be loaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			baseURL, _ := cmd.Flags().GetString("base-url")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			catalog, err := content.Load()
			if err != nil {
				return err
			}
			urls := catalog.Images()
			for _, list := range preload.CriticalImages {
				urls = append(urls, list...)
			}

			cache := preload.New(
				server.AssetFetcher(baseURL, &http.Client{Timeout: timeout}),
				preload.WithTimeout(timeout),
				preload.WithLogger(ctxlog.New(os.Stderr, cfg.Mode, "error")),
			)
			cache.Preload(cmd.Context(), urls)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout+5*time.Second)
			defer cancel()
			if err := cache.Wait(ctx); err != nil {
				return fmt.Errorf("waiting for preloads: %w", err)
			}

			snap := cache.Snapshot()
			keys := make([]string, 0, len(snap))
			for u := range snap {
				keys = append(keys, u)
			}
			slices.Sort(keys)

			failed := 0
			for _, u := range keys {
				if snap[u] == preload.Loaded {
					fmt.Println(okStyle.Render("  ✓ ") + u)
					continue
				}
				failed++
				fmt.Println(errStyle.Render("  ✗ ") + u + infoStyle.Render(" ("+string(snap[u])+")"))
			}
			fmt.Printf("\n%d assets, %d failed\n", len(keys), failed)
			if failed > 0 {
				return fmt.Errorf("%d assets failed to load", failed)
			}
			return nil
		},
	}
	cmd.Flags().String("base-url", "", "Check against a running site instead of the embedded assets")
	cmd.Flags().Duration("timeout", 5*time.Second, "Per-asset timeout")
	return cmd
}

// revealCmd plays the intro reveal in the terminal.
func revealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal [name]",
		Short: "Play the name reveal in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := config.Default().RevealName
			if len(args) == 1 {
				name = args[0]
			}
			interval, _ := cmd.Flags().GetDuration("interval")

			timing := reveal.DefaultTiming
			timing.Interval = interval
			timing.Emphasis = time.Second

			seq := reveal.New(name, timing)
			err := seq.Run(cmd.Context(), reveal.Hooks{
				OnTick: func(_ int, prefix []reveal.Glyph) {
					fmt.Print("\r" + titleStyle.Render(strings.ToUpper(reveal.Text(prefix))))
				},
				OnEmphasis: func() {
					fmt.Print("\r" + titleStyle.Underline(true).Render(strings.ToUpper(name)))
				},
				OnDone: func() { fmt.Println() },
			})
			if errors.Is(err, context.Canceled) {
				fmt.Println()
				return nil
			}
			return err
		},
	}
	cmd.Flags().Duration("interval", reveal.DefaultTiming.Interval, "Delay between letters")
	return cmd
}

// hashPasswordCmd prints a bcrypt hash for STREAMFOLIO_ADMIN_PASS_HASH.
func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for the admin password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pw string
			if len(args) == 1 {
				pw = args[0]
			} else {
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading password: %w", err)
				}
				pw = strings.TrimRight(line, "\r\n")
			}
			if pw == "" {
				return errors.New("empty password")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}
