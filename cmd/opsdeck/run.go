package main

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"opsdeck"
	"opsdeck/dto"
	"opsdeck/store/duck"
	"opsdeck/store/memo"
	"opsdeck/util"
)

// deck is what both commands run against
type deck struct {
	ctx    context.Context
	logger *sabot.Sabot
	store  opsdeck.Store
	layout *opsdeck.Layout
	close  func()
}

func runView(cmd *cobra.Command, args []string) (err error) {

	dk, err := setup(cmd.Context(), args)
	if err != nil {
		return
	}
	defer dk.close()

	model, err := opsdeck.NewModel(dk.ctx, dk.store, dk.layout, opts.Search, dk.logger)
	if err != nil {
		return
	}

	_, err = tea.NewProgram(model).Run()
	if err != nil {
		dk.logger.Error(dk.ctx, "program failed", err)
		err = errors.Wrapf(err, "failed to run dashboard")
		return
	}

	dk.logger.Info(dk.ctx, "stopped")
	return
}

func runSummary(cmd *cobra.Command, args []string) (err error) {

	dk, err := setup(cmd.Context(), args)
	if err != nil {
		return
	}
	defer dk.close()

	out, err := opsdeck.Summary(dk.ctx, dk.store, dk.layout, opts.Search, dk.logger)
	if err != nil {
		dk.logger.Error(dk.ctx, "summary failed", err)
		return
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return
}

// setup loads config, opens the log and loads the source into a store
func setup(ctx context.Context, args []string) (dk deck, err error) {

	if ctx == nil {
		ctx = context.Background()
	}

	created, err := util.SampleConfig(sampleConfig, cfgPath, 0o644)
	if err != nil {
		return
	}
	if created {
		fmt.Fprintf(os.Stderr, "wrote sample config to %s\n", cfgPath)
	}

	cfg := &opsdeck.Config{}
	err = util.LoadConfig(cfg, cfgPath)
	if err != nil {
		return
	}

	if len(args) > 0 {
		source = args[0]
	}
	if source == "" {
		source = cfg.Source
	}
	if kind == "" {
		kind = cfg.Kind
	}
	if source == "" {
		err = errors.New("no source, give a file or set source in config")
		return
	}

	logFile := util.OpenLog(cfg.LogPath, 0o644)
	lgr := &sabot.Sabot{Writer: logFile, MaxLen: cfg.MaxLen}
	ctx = lgr.WithFields(ctx, "app_id", "opsdeck", "run_id", runId(), "kind", kind)
	lgr.Info(ctx, "starting", "version", version, "config", cfgPath, "source", source)

	store, closeStore, err := newStore(lgr)
	if err != nil {
		util.CloseLog(logFile)
		return
	}

	dk = deck{
		ctx:    ctx,
		logger: lgr,
		store:  store,
		close: func() {
			closeStore()
			util.CloseLog(logFile)
		},
	}

	err = store.Load(ctx, source)
	if err != nil {
		lgr.Error(ctx, "failed to load source", err)
		dk.close()
		return
	}

	dk.layout, err = opts.Apply(cfg.Layout(kind))
	if err != nil {
		dk.close()
	}
	return
}

// newStore picks the typed store for a known kind, duckdb for ad-hoc files
func newStore(lgr *sabot.Sabot) (store opsdeck.Store, closeStore func(), err error) {

	if kind != "" {
		store, err = memo.New(dto.Kind(kind), lgr)
		closeStore = func() {}
		return
	}

	dk, err := duck.New(lgr)
	if err != nil {
		return
	}
	store = dk
	closeStore = dk.Close
	return
}

// runId tags every log line of one run
func runId() string {
	return uuid.NewString()
}
