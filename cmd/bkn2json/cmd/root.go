package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/bkn"
	"github.com/arloliu/bkn/compress"
	"github.com/arloliu/bkn/config"
	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/extract"
	"github.com/arloliu/bkn/format"
	"github.com/arloliu/bkn/regression"
	"github.com/arloliu/bkn/render"
)

const (
	flagConfig           = "config"
	flagMetadata         = "metadata"
	flagPointOrder       = "point-order"
	flagWorkers          = "workers"
	flagCompress         = "compress"
	flagInputCompression = "input-compression"
	flagChecksum         = "checksum"
	flagIndent           = "indent"
	flagLogLevel         = "log-level"
	flagOutput           = "output"
	flagFit              = "fit"
	flagFitStart         = "fit-start"
	flagFitEnd           = "fit-end"
	flagFitModels        = "fit-models"
)

// newRootCmd builds the bkn2json command. Errors are returned to Execute
// instead of being printed by cobra.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bkn2json <file.bkn>",
		Short: "Convert BKN kinetics files to JSON",
		Long: `bkn2json extracts every kinetics method stored in a BKN instrument file
and prints the points and run metadata as a JSON array.

Files ending in .zst, .s2 or .lz4 are decompressed first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return convert(cmd, cfg, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringP(flagConfig, "c", "", "YAML profile with layout, output and logging settings")
	flags.StringP(flagMetadata, "m", "typed", "metadata rendering: typed or plain")
	flags.String(flagPointOrder, "time-absorbance", "storage order of the two floats of a point")
	flags.IntP(flagWorkers, "w", 1, "number of goroutines decoding records")
	flags.String(flagCompress, "", "compress the output: none, zstd, s2 or lz4 (default: by output extension)")
	flags.String(flagInputCompression, config.AutoCompression, "input compression: auto, none, zstd, s2 or lz4")
	flags.Bool(flagChecksum, false, "add the xxHash64 checksum of each record")
	flags.Bool(flagIndent, false, "pretty-print the JSON output")
	flags.String(flagLogLevel, "warn", "log level written to stderr")
	flags.StringP(flagOutput, "o", "", "output file (default: stdout)")
	flags.Bool(flagFit, false, "fit absorbance curves and add the best model and linear rate")
	flags.Float64(flagFitStart, 0, "start of the fitted time window")
	flags.Float64(flagFitEnd, 0, "end of the fitted time window")
	flags.StringSlice(flagFitModels, nil, "candidate models: linear, polynomial, exponential, logarithmic, power")

	return rootCmd
}

// Execute runs the command and exits with status 1 on any error.
// This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bkn2json: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the optional profile and applies the flags the user set on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.DefaultConfig()
	if path, _ := flags.GetString(flagConfig); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.Changed(flagMetadata) {
		v, _ := flags.GetString(flagMetadata)
		mode, err := format.ParseMetadataMode(v)
		if err != nil {
			return nil, err
		}
		cfg.Output.Metadata = mode
	}
	if flags.Changed(flagPointOrder) {
		v, _ := flags.GetString(flagPointOrder)
		order, err := format.ParsePointOrder(v)
		if err != nil {
			return nil, err
		}
		cfg.Layout.PointOrder = order
	}
	if flags.Changed(flagWorkers) {
		cfg.Workers, _ = flags.GetInt(flagWorkers)
	}
	if flags.Changed(flagCompress) {
		v, _ := flags.GetString(flagCompress)
		ct, err := format.ParseCompression(v)
		if err != nil {
			return nil, err
		}
		cfg.Output.Compression = ct
	} else if out, _ := flags.GetString(flagOutput); out != "" && cfg.Output.Compression == format.CompressionNone {
		cfg.Output.Compression = format.CompressionFromExtension(out)
	}
	if flags.Changed(flagInputCompression) {
		cfg.Input.Compression, _ = flags.GetString(flagInputCompression)
	}
	if flags.Changed(flagChecksum) {
		cfg.Output.Checksum, _ = flags.GetBool(flagChecksum)
	}
	if flags.Changed(flagIndent) {
		cfg.Output.Indent, _ = flags.GetBool(flagIndent)
	}
	if flags.Changed(flagFit) {
		cfg.Analysis.Enabled, _ = flags.GetBool(flagFit)
	}
	if flags.Changed(flagFitStart) {
		v, _ := flags.GetFloat64(flagFitStart)
		cfg.Analysis.Start = &v
	}
	if flags.Changed(flagFitEnd) {
		v, _ := flags.GetFloat64(flagFitEnd)
		cfg.Analysis.End = &v
	}
	if flags.Changed(flagFitModels) {
		names, _ := flags.GetStringSlice(flagFitModels)
		models := make([]regression.ModelType, 0, len(names))
		for _, name := range names {
			mt, err := regression.ParseModelType(name)
			if err != nil {
				return nil, err
			}
			models = append(models, mt)
		}
		cfg.Analysis.Models = models
	}
	if flags.Changed(flagLogLevel) {
		cfg.Logging.Level, _ = flags.GetString(flagLogLevel)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newLogger builds a JSON logger on w tagged with a per-run id.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)

	return zap.New(core).With(zap.String("run_id", uuid.NewString()))
}

func convert(cmd *cobra.Command, cfg *config.Config, path string) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), level)
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	l, err := cfg.BuildLayout()
	if err != nil {
		return err
	}
	inputCompression, err := cfg.InputCompression(path)
	if err != nil {
		return err
	}

	ex, err := extract.NewExtractor(
		extract.WithLayout(l),
		extract.WithWorkers(cfg.Workers),
		extract.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	data, err := bkn.ReadFile(path, inputCompression)
	if err != nil {
		return err
	}
	sugar.Debugw("input loaded", "path", path, "bytes", len(data), "compression", inputCompression.String())

	set, err := ex.ExtractAll(data)
	if err != nil {
		return err
	}

	renderOpts := []render.Option{
		render.WithMetadataMode(cfg.Output.Metadata),
		render.WithPointOrder(l.PointOrder),
		render.WithChecksum(cfg.Output.Checksum),
		render.WithIndent(cfg.Output.Indent),
	}
	if cfg.Analysis.Enabled {
		fitOpts, err := cfg.FitOptions()
		if err != nil {
			return err
		}
		renderOpts = append(renderOpts, render.WithFit(fitOpts...))
	}

	out, err := render.Marshal(set, renderOpts...)
	if err != nil {
		return err
	}

	if cfg.Output.Compression != format.CompressionNone {
		packed, stats, err := compress.Compress(out, cfg.Output.Compression)
		if err != nil {
			return err
		}
		sugar.Infow("output compressed",
			"algorithm", stats.Algorithm.String(),
			"original", stats.OriginalSize,
			"compressed", stats.CompressedSize,
			"savings_pct", stats.SpaceSavings(),
		)
		out = packed
	}

	return writeOutput(cmd, out)
}

func writeOutput(cmd *cobra.Command, data []byte) error {
	path, _ := cmd.Flags().GetString(flagOutput)
	if path == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("%w: write output: %w", errs.ErrIO, err)
		}

		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("%w: write output file: %w", errs.ErrIO, err)
	}

	return nil
}
