package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wagoodman/go-partybus"

	"github.com/mvh/mvh-sync/internal"
	"github.com/mvh/mvh-sync/internal/bus"
	"github.com/mvh/mvh-sync/internal/config"
	"github.com/mvh/mvh-sync/internal/log"
	"github.com/mvh/mvh-sync/internal/stringutil"
	"github.com/mvh/mvh-sync/internal/ui"
	"github.com/mvh/mvh-sync/mvhsync"
	"github.com/mvh/mvh-sync/mvhsync/client"
	"github.com/mvh/mvh-sync/mvhsync/event"
	"github.com/mvh/mvh-sync/mvhsync/presenter"
	"github.com/mvh/mvh-sync/mvhsync/store"
	"github.com/mvh/mvh-sync/mvhsync/syncerr"
)

var persistentOpts = config.CliOnlyOptions{}

var rootCmd = &cobra.Command{
	Use:   internal.ApplicationName,
	Short: "Sync the app catalog from the WordPress API into static JSON files",
	Long: stringutil.Tprintf(`Fetches the app list and every app's details from the WordPress API and writes them as
static JSON documents:

    <output-dir>/index.json        the list of all apps
    <output-dir>/apps/<id>.json    one normalized document per app

An app that fails to sync is reported and skipped; only a failure to fetch the list or to write the
index aborts the run. Use --fail-on-error to exit non-zero when any app failed.

Examples:
    {{.appName}}
    {{.appName}} --api-url https://example.com/wp-json/viethoa/v1 --output-dir ./api
    {{.appName}} -o json --file sync-report.json
`, map[string]interface{}{
		"appName": internal.ApplicationName,
	}),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.Dev.ProfileCPU {
			defer profile.Start(profile.CPUProfile).Stop()
		} else if appConfig.Dev.ProfileMem {
			defer profile.Start(profile.MemProfile).Stop()
		}

		return runSync()
	},
}

func init() {
	setPersistentFlags(rootCmd.PersistentFlags())
	setRootFlags(rootCmd.Flags())
}

func setPersistentFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&persistentOpts.ConfigPath, "config", "c", "", "application config file")
	flags.CountVarP(&persistentOpts.Verbosity, "verbose", "v", "increase verbosity (-v = debug, -vv = trace)")
	flags.BoolP("quiet", "q", false, "suppress all logging output")
}

func setRootFlags(flags *pflag.FlagSet) {
	flags.StringP(
		"output", "o", presenter.TablePresenter.String(),
		fmt.Sprintf("report output format, options=%v", presenter.Options),
	)

	flags.StringP(
		"file", "", "",
		"file to write the report output to (default is STDOUT)",
	)

	flags.StringP(
		"api-url", "", internal.DefaultAPIURL,
		"base URL of the app API",
	)

	flags.StringP(
		"api-key", "", internal.DefaultAPIKey,
		"bearer token sent to the app API",
	)

	flags.StringP(
		"output-dir", "", "",
		"directory to write index.json and apps/ into (default is ../api next to the executable)",
	)

	flags.DurationP(
		"delay", "", mvhsync.DefaultDelay,
		"pause before each app detail request",
	)

	flags.BoolP(
		"fail-on-error", "", false,
		"exit with a non-zero status when at least one app failed to sync",
	)
}

// flag names mapped to the config keys they override
var rootConfigFlags = map[string]string{
	"output":        "output",
	"file":          "file",
	"api-url":       "api.url",
	"api-key":       "api.key",
	"output-dir":    "store.dir",
	"delay":         "sync.delay",
	"fail-on-error": "fail-on-error",
	"quiet":         "quiet",
}

func bindRootConfigOptions(flags *pflag.FlagSet) error {
	for name, key := range rootConfigFlags {
		flag := flags.Lookup(name)
		if flag == nil {
			flag = rootCmd.PersistentFlags().Lookup(name)
		}
		if flag == nil {
			return fmt.Errorf("unable to find flag '%s'", name)
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

func runSync() error {
	fs := afero.NewOsFs()

	reporter, closer, err := reportWriter(fs)
	defer func() {
		if err := closer(); err != nil {
			log.Warnf("unable to write to report destination: %+v", err)
		}
	}()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	return eventLoop(
		startWorker(ctx, fs),
		interruptible(setupSignals(), cancel),
		eventSubscription,
		func() {},
		ui.Select(reporter)...,
	)
}

func startWorker(ctx context.Context, fs afero.Fs) <-chan error {
	errs := make(chan error)
	go func() {
		defer close(errs)

		apiClient, err := client.NewClient(fs, appConfig.API.ToClientConfig())
		if err != nil {
			errs <- fmt.Errorf("failed to create API client: %w", err)
			return
		}

		syncer := mvhsync.NewSyncer(apiClient, store.New(fs, appConfig.Store.Dir), appConfig.ToSyncConfig())

		summary, err := syncer.Run(ctx)
		if err != nil {
			errs <- fmt.Errorf("sync failed: %w", err)
			return
		}

		bus.Publish(partybus.Event{
			Type:  event.SyncFinished,
			Value: presenter.GetPresenter(appConfig.PresenterOpt, *summary),
		})

		if appConfig.FailOnError && len(summary.Failed()) > 0 {
			log.Debugf("failed apps: %+v", summary.Err())
			errs <- syncerr.ErrAppsFailed
		}
	}()
	return errs
}

func setupSignals() <-chan os.Signal {
	c := make(chan os.Signal, 1) // Note: A buffered channel is recommended for this; see https://golang.org/pkg/os/signal/#Notify
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	return c
}

// interruptible cancels the run on the first signal so the worker stops before its next request. Any further
// signal is passed on to force the event loop to exit.
func interruptible(signals <-chan os.Signal, cancel context.CancelFunc) <-chan os.Signal {
	forced := make(chan os.Signal, 1)
	go func() {
		sig, ok := <-signals
		if !ok {
			return
		}
		log.Warnf("received %s, stopping the sync (repeat to force)", sig)
		cancel()

		if sig, ok = <-signals; ok {
			forced <- sig
		}
	}()
	return forced
}
