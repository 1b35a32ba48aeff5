package cmd

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/Abraxas-365/filex/configx"
	"github.com/Abraxas-365/filex/errx"
	"github.com/Abraxas-365/filex/fsx"
	"github.com/Abraxas-365/filex/logx"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	// files is built in PersistentPreRunE from the loaded configuration.
	files *fsx.FS

	// backend is swapped for an in-memory filesystem in tests.
	backend afero.Fs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "filex",
	Short: "Inspect and modify single files",
	Long: `filex reads, decodes, writes, moves and deletes single files.

Structured content (JSON, XML, YAML, TOML) is decoded by extension.
Settings come from defaults, FILEX_* keys in a .env file, FILEX_*
environment variables, an optional --config file and --log-level, in
increasing priority. The log defaults follow LOG_LEVEL and LOG_FORMAT.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. Errors that are not already an
// *errx.Error are wrapped as internal errors.
func Execute() error {
	err := rootCmd.Execute()
	var xerr *errx.Error
	if err != nil && !errors.As(err, &xerr) {
		return errx.Wrap(err, "command failed", errx.TypeInternal)
	}
	return err
}

// usage tags positional argument failures as validation errors
func usage(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return errx.Wrap(err, "invalid arguments", errx.TypeValidation)
		}
		return nil
	}
}

func setup(cmd *cobra.Command, args []string) error {
	logger := logx.GetLogger()
	b := configx.NewBuilder().
		WithDefaults(map[string]any{
			"log":  map[string]any{"level": logger.Level().String(), "format": string(logger.Format())},
			"file": map[string]any{"perm": int(fsx.DefaultPerm)},
		}).
		FromDotEnv(".env", "FILEX_").
		FromEnv("FILEX_")
	if configPath != "" {
		b = b.FromFile(configPath)
	}
	if logLevel != "" {
		b = b.FromMap(map[string]any{"log": map[string]any{"level": logLevel}}, "flags")
	}

	cfg, err := b.Build()
	if err != nil {
		return errx.Wrap(err, "load configuration", errx.TypeValidation)
	}

	level, err := logx.ParseLevel(cfg.Get("log.level").AsString())
	if err != nil {
		return errx.Wrap(err, "load configuration", errx.TypeValidation).WithDetail("log.level", cfg.Get("log.level").AsString())
	}
	logx.SetLevel(level)
	if strings.EqualFold(cfg.Get("log.format").AsString(), string(logx.FormatJSON)) {
		logx.SetFormat(logx.FormatJSON)
	} else {
		logx.SetFormat(logx.FormatConsole)
	}
	logx.SetOutput(cmd.ErrOrStderr())

	files = fsx.New(
		fsx.WithFs(backend),
		fsx.WithPerm(fs.FileMode(cfg.Get("file.perm").AsIntDefault(int(fsx.DefaultPerm)))),
	)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (json, yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (TRACE, DEBUG, INFO, WARN, ERROR, OFF)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errx.Wrap(err, "invalid flags", errx.TypeValidation)
	})
	rootCmd.AddCommand(catCmd, jsonCmd, xmlCmd, infoCmd, writeCmd, mvCmd, rmCmd)
}
