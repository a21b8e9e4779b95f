// Command cachectl inspects and exercises the device-local cache from the
// command line: listing guest analyses, running migration, checking the
// offer banner window, and reading or setting the stored app language.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/clauseguard/clauseguard/internal/app"
	"github.com/clauseguard/clauseguard/internal/config"
	"github.com/clauseguard/clauseguard/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	a, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	if err := run(context.Background(), a, commandArgs(os.Args[1:])); err != nil {
		log.Fatalf("%v", err)
	}
}

// commandArgs strips flags (and their values) so only the subcommand and
// its positional arguments remain; flags are handled by config.LoadConfig.
func commandArgs(args []string) []string {
	out := make([]string, 0, len(args))
	skipNext := false
	for _, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(arg, "-") {
			if !strings.Contains(arg, "=") && arg != "-mem" {
				skipNext = true
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

func run(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: cachectl [flags] guest-list | guest-migrate <userID> | offer-status | lang [code]")
	}

	switch args[0] {
	case "guest-list":
		list, err := a.Guest.List(ctx)
		if err != nil {
			return err
		}
		for _, s := range list {
			fmt.Printf("%s\t%s\tscore=%d\tflags=%d\t%s\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Score, s.RedFlagCount, s.Summary)
		}
		fmt.Printf("%d guest analyses\n", len(list))
		return nil

	case "guest-migrate":
		if len(args) < 2 {
			return errors.New("guest-migrate requires a user id")
		}
		report, err := a.MigrateGuest(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("migrated=%d failed=%d skipped=%d\n", report.Migrated, report.Failed, report.Skipped)
		return nil

	case "offer-status":
		start, err := a.Offers.EnsureCycleStart(ctx)
		if err != nil {
			return err
		}
		show, err := a.Offers.ShouldShow(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("cycle start: %s\nvisible: %v\n", start.Format("2006-01-02 15:04"), show)
		if exp, ok, err := a.Offers.WindowExpiresAt(ctx); err == nil && ok {
			fmt.Printf("window closes: %s\n", exp.Format("2006-01-02 15:04"))
		}
		return nil

	case "lang":
		if len(args) >= 2 {
			return a.Prefs.SetLanguage(ctx, args[1])
		}
		lang, err := a.Prefs.Language(ctx)
		if err != nil {
			return err
		}
		if lang == "" {
			lang = "(unset)"
		}
		fmt.Println(lang)
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
