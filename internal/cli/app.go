package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/config"
	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/logsource"
	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/scan"
)

type appKey struct{}

type App struct {
	Config     config.Config
	RepoConfig config.RepoConfig
	Source     logsource.Source
	Detectors  []scan.Detector
}

func withApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func getApp(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("internal error: app not initialized")
	}
	return app, nil
}

func initApp(configPath string) (*App, error) {
	cfg, repoCfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var runner logsource.ExecRunner = logsource.RealExecRunner{}
	if os.Getenv("CISCAN_MOCK") == "1" {
		exitCode, _ := strconv.Atoi(os.Getenv("CISCAN_MOCK_EXIT"))
		runner = logsource.FixtureExecRunner{
			Path:     os.Getenv("CISCAN_MOCK_LOG"),
			ExitCode: exitCode,
		}
	}
	if dir := os.Getenv("CISCAN_OUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}
	if dir := os.Getenv("CISCAN_PATCH_DIR"); dir != "" {
		repoCfg.Patches.Dir = dir
	}

	return &App{
		Config:     cfg,
		RepoConfig: repoCfg,
		Source:     logsource.NewSource(runner, repoCfg.Runner.Command, repoCfg.Runner.Args),
		Detectors:  scan.DefaultDetectors(),
	}, nil
}
