// Package main is the entry point for nowplaying.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/llehouerou/nowplaying/internal/app"
	"github.com/llehouerou/nowplaying/internal/config"
	"github.com/llehouerou/nowplaying/internal/errmsg"
	"github.com/llehouerou/nowplaying/internal/logging"
	"github.com/llehouerou/nowplaying/internal/notify"
	"github.com/llehouerou/nowplaying/internal/playlist"
	"github.com/llehouerou/nowplaying/internal/state"
	"github.com/llehouerou/nowplaying/internal/stderr"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "nowplaying [files or folders...]",
	Short: "Play audio files and publish them to the desktop media controls",
	Long: `nowplaying plays the given files in order and exposes them to the
desktop media controls (MPRIS on Linux). Type commands on stdin:
play, pause, toggle, next, prev, stop, seek <0..1>, lock, unlock <code>,
status and quit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Load this config file after the default locations")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "Override log.level (debug, info, warn, error)")
}

func run(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return errmsg.Wrap(errmsg.OpConfigLoad, "", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logFile, err := logging.Setup(cfg.GetLogConfig())
	if err != nil {
		return errmsg.Wrap(errmsg.OpLogSetup, "", err)
	}
	defer logFile.Close()

	log := logging.For("main")
	if err := stderr.Start(logging.For("stderr")); err != nil {
		log.WithError(err).Warn("stderr capture unavailable")
	}
	defer stderr.Stop()

	files, err := playlist.CollectPaths(args)
	if err != nil {
		return errmsg.Wrap(errmsg.OpFileCollect, "", err)
	}

	var opts []app.Option
	if cfg.Notify.TrackChange {
		ctl := cfg.GetControlsConfig()
		n, err := notify.New(ctl.Identity, ctl.DesktopEntry)
		if err != nil {
			log.WithError(err).Warn("desktop notifications unavailable")
		} else {
			opts = append(opts, app.WithNotifier(n))
		}
	}

	if cfg.ResumeEnabled() {
		st, err := state.Open()
		if err != nil {
			log.WithError(err).Warn("session store unavailable")
		} else {
			defer st.Close()
			opts = append(opts, app.WithStore(st))
		}
	}

	a, err := app.New(cfg, opts...)
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, "", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithField("files", len(files)).Info("starting")
	return a.Run(ctx, files)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		stderr.WriteOriginal(err.Error() + "\n")
		os.Exit(1)
	}
}
