// OttoCake is a terminal cake game: gather the ingredients, mix to the
// beat, bake, then decorate and show off the cake.
//
// Usage:
//
//	ottocake [-verbose] [-quiet] [-no-sound] [-seed N]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hammamikhairi/ottocake/internal/config"
	"github.com/hammamikhairi/ottocake/internal/conversation"
	"github.com/hammamikhairi/ottocake/internal/display"
	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/engine"
	"github.com/hammamikhairi/ottocake/internal/logger"
	"github.com/hammamikhairi/ottocake/internal/loop"
	"github.com/hammamikhairi/ottocake/internal/sound"
	"github.com/hammamikhairi/ottocake/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", cfg.LogFile, "file to write logs to (use \"stderr\" to log to console)")
	noSound := flag.Bool("no-sound", !cfg.Sound, "disable sound cues")
	seed := flag.Int64("seed", cfg.Seed, "random seed for the rhythm sequence (0 picks one from the clock)")
	flag.Parse()

	logLevel := logger.ParseLevel(cfg.LogLevel)
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Logs go to a file by default so the scene stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not create log dir %s: %v\n", dir, err)
			}
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// The audio backend logs through the standard log package.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies. The UI reads frames from the loop, which is built
	// last, so it gets a forwarding source.
	store := storage.NewMemoryStore(log.Named("store"))
	frames := &frameSource{}
	ui := display.NewUI(frames)
	textNotifier := conversation.NewCLINotifier(log.Named("notify"), ui.Printf)
	parser := conversation.NewKeywordParser(log.Named("parser"))

	var cues sound.CuePlayer = sound.NewNoOp(log.Named("sound"))
	if !*noSound {
		player, err := sound.NewPlayer(log.Named("sound"))
		if err != nil {
			log.Error("audio player init failed, sound disabled: %v", err)
		} else {
			cues = player
			log.Info("sound cues enabled")
		}
	}
	defer cues.Close()
	notifier := sound.NewCueNotifier(textNotifier, cues, log.Named("cues"))

	engOpts := []engine.Option{
		engine.WithNotifier(notifier),
		engine.WithRhythm(cfg.RhythmLength, cfg.RhythmDuration),
		engine.WithBakeDuration(cfg.BakeDuration),
	}
	if *seed != 0 {
		engOpts = append(engOpts, engine.WithSeed(*seed))
	}
	eng := engine.New(store, log.Named("engine"), engOpts...)

	game := loop.New(eng, log.Named("loop"),
		loop.WithTickInterval(cfg.TickInterval),
		loop.WithWatcher(notifier, loop.WithIdleAfter(cfg.IdleAfter)),
	)
	frames.set(game)
	game.Start(ctx)
	defer game.Stop()

	app := &cliApp{
		game:   game,
		parser: parser,
		log:    log,
		ui:     ui,
	}

	fmt.Println(display.RenderBanner("bake it, decorate it, balance it"))
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()

	printBest(store)
}

// frameSource lets the UI be built before the loop it draws.
type frameSource struct {
	game *loop.Loop
}

func (f *frameSource) set(g *loop.Loop) { f.game = g }

func (f *frameSource) Latest() domain.Snapshot {
	if f.game == nil {
		return domain.Snapshot{ThemeIndex: domain.ThemeCustom}
	}
	return f.game.Latest()
}

type cliApp struct {
	game   *loop.Loop
	parser *conversation.KeywordParser
	log    *logger.Logger
	ui     *display.UI
}

func (a *cliApp) run(ctx context.Context) {
	lines := a.ui.InputChan()
	keys := a.ui.Events()

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-keys:
			a.send(ctx, ev)

		case input, ok := <-lines:
			if !ok {
				return
			}
			switch strings.ToLower(strings.TrimSpace(input)) {
			case "quit", "exit", "q":
				return
			case "help", "?":
				a.showHelp()
				continue
			}

			events, err := a.parser.Parse(input)
			if err != nil {
				a.log.Debug("parse: %v", err)
				a.ui.PrintUrgent(fmt.Sprintf("Didn't catch %q. Type 'help' for commands.", strings.TrimSpace(input)))
				continue
			}
			for _, ev := range events {
				a.send(ctx, ev)
			}
		}
	}
}

func (a *cliApp) send(ctx context.Context, ev domain.Event) {
	if err := a.game.Send(ctx, ev); err != nil && !errors.Is(err, context.Canceled) {
		a.log.Error("send %s: %v", ev.Type, err)
	}
}

func (a *cliApp) showHelp() {
	a.ui.PrintChat("Commands:")
	for _, line := range []string{
		"space / enter       start, continue, spin in viewing",
		"flour sugar egg milk  add an ingredient (or: add flour)",
		"arrow keys / up     mix to the beat",
		"bowl  pan  door     bake: pour, pan in, close and open the door",
		"select cherry       pick a topping (cream strawberry sprinkle cherry drizzle piping)",
		"cream pink          pick a cream colour, then click the cake",
		"place 0.3 -0.2      click the cake top at x z (or: place cherry 0 0)",
		"pipe 0 0 0.2 0 0.4 0  pipe a stroke through x z points",
		"done                finish decorating",
		"k l c / theme light candle   viewing toggles",
		"redecorate  restart  quit",
	} {
		a.ui.PrintHint(line)
	}
}

func printBest(store domain.RunStore) {
	ctx := context.Background()
	best, err := store.Best(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	runs, _ := store.List(ctx)
	fmt.Println(display.BannerStyle.Render(fmt.Sprintf(
		"  Best cake this session: %d points (balance %+d) from %d finished cake(s).",
		best.Score, best.Balance, len(runs))))
}
