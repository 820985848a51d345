package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/launchpad-ops/tfscaffold/cmd/create_asset"
	"github.com/launchpad-ops/tfscaffold/cmd/create_project"
	"github.com/launchpad-ops/tfscaffold/cmd/invoice"
	"github.com/launchpad-ops/tfscaffold/cmd/providers"
	"github.com/launchpad-ops/tfscaffold/cmd/update"
	"github.com/launchpad-ops/tfscaffold/cmd/version"
	"github.com/launchpad-ops/tfscaffold/internal/build_info"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	verbose  bool
	logLevel = new(slog.LevelVar)
)

var RootCmd = &cobra.Command{
	Use:   "tfscaffold",
	Short: "Scaffold ready-to-apply Terraform projects for any hosting provider",
	Long:  "Generate a complete Terraform project (resources, variables, state backend, outputs and a deploy script) from a provider catalog, plus optional reverse proxy, repository handover and billing kits.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logLevel.Set(slog.LevelDebug)
		}

		if build_info.IsDevBuild() {
			fmt.Printf("\n%s\n%s\n%s\n\n",
				color.RedString("┌──────────────────────────────────────────────┐"),
				color.RedString("│ ⚠️  WARNING: This is a development build     │"),
				color.RedString("└──────────────────────────────────────────────┘"))
		}

		fmt.Printf("%s %s %s %s\n",
			color.CyanString("Executing tfscaffold with build"),
			color.GreenString("version=%s", build_info.Version),
			color.YellowString("commit=%s", build_info.Commit),
			color.BlueString("date=%s", build_info.Date))

		if err := checkWritePermissions(); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", color.RedString("Error: %v", err))
			os.Exit(1)
		}
	},
}

func init() {
	cobra.EnableTraverseRunHooks = true

	lumberjackLogger := &lumberjack.Logger{
		Filename: "tfscaffold.log",
		MaxSize:  25,
		Compress: true,
	}
	logLevel.Set(slog.LevelInfo)
	opts := PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: logLevel,
		},
	}
	handler := NewPrettyHandler(io.MultiWriter(lumberjackLogger, os.Stdout), opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)

	RootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	RootCmd.AddCommand(
		create_project.NewCreateProjectCmd(),
		create_asset.NewCreateAssetCmd(),
		invoice.NewInvoiceCmd(),
		providers.NewProvidersCmd(),
		version.NewVersionCmd(),
		update.NewUpdateCmd(),
	)
}

type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

type PrettyHandler struct {
	slog.Handler
	l *log.Logger
}

func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	time := r.Time.Format("2006/01/02 15:04:05")
	level := r.Level.String()
	message := r.Message

	values := []string{}
	r.Attrs(func(a slog.Attr) bool {
		values = append(values, fmt.Sprintf("%s=%v", a.Key, a.Value.Any()))
		return true
	})

	h.l.Printf("%s %s %s %s", time, level, message, strings.Join(values, " "))

	return nil
}

func NewPrettyHandler(
	out io.Writer,
	opts PrettyHandlerOptions,
) *PrettyHandler {
	h := &PrettyHandler{
		Handler: slog.NewTextHandler(out, &opts.SlogOpts),
		l:       log.New(out, "", 0),
	}

	return h
}

// the log file and generated projects are written relative to the working directory
func checkWritePermissions() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	testFile, err := os.CreateTemp(cwd, ".tfscaffold-write-test-*")
	if err != nil {
		return fmt.Errorf("current working directory '%s' does not have write permissions for the current user", cwd)
	}

	defer os.Remove(testFile.Name())
	defer testFile.Close()

	return nil
}
