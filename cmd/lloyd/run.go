package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/internal/config"
	"github.com/hupe1980/lloyd/internal/resource"
	"github.com/hupe1980/lloyd/pointio"
)

var errWrongArgs = errors.New("wrong number of args")

type runFlags struct {
	configPath       string
	membership       string
	format           string
	compression      string
	kernel           string
	codec            string
	ioLimit          string
	memoryLimit      string
	logLevel         string
	logFormat        string
	maxRounds        int
	pointsPerCluster bool
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run <input-file> <output-file> <#dimensions> <#points> <#clusters>",
		Short: "Cluster points and write the centroids",
		Long: `Cluster the points of <input-file> and write the final centroids to
<output-file>, one centroid per line.

All five arguments may instead come from a YAML file given with --config;
flags override values from the file.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args, &f)
			if err != nil {
				return err
			}
			return runCluster(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "YAML run configuration")
	cmd.Flags().StringVar(&f.membership, "membership", "", "Write cluster memberships to this location")
	cmd.Flags().StringVar(&f.format, "format", "auto", "Point format: auto, csv, json")
	cmd.Flags().StringVar(&f.compression, "compression", "auto", "Compression: auto, none, zstd, lz4")
	cmd.Flags().StringVar(&f.kernel, "kernel", "scalar", "Distance kernel: scalar, vek")
	cmd.Flags().StringVar(&f.codec, "codec", "go-json", "JSON codec: "+strings.Join(codec.Names(), ", "))
	cmd.Flags().StringVar(&f.ioLimit, "io-limit", "unlimited", "Blob IO limit per second (e.g., 8MB)")
	cmd.Flags().StringVar(&f.memoryLimit, "memory-limit", "unlimited", "Reject runs whose working set exceeds this size (e.g., 2GB)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "text", "Log format: text, json")
	cmd.Flags().IntVar(&f.maxRounds, "max-rounds", 0, "Stop after this many rounds (0 = until converged)")
	cmd.Flags().BoolVar(&f.pointsPerCluster, "points-per-cluster", false, "Treat #points as a per-cluster count (reads #points * #clusters points)")

	return cmd
}

// resolveConfig merges the config file, positional arguments and flags and
// validates the result. Shape errors carry the plain messages of the
// positional interface.
func resolveConfig(cmd *cobra.Command, args []string, f *runFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}

	switch {
	case len(args) == 5:
		cfg.Input, cfg.Output = args[0], args[1]
		if _, err := os.Stat(cfg.Input); err != nil && !strings.Contains(cfg.Input, "://") {
			return nil, errWrongArgs
		}
		var ok bool
		if cfg.Dimensions, ok = positive(args[2]); !ok {
			return nil, lloyd.ErrInvalidDimension
		}
		if cfg.Points, ok = positive(args[3]); !ok {
			return nil, lloyd.ErrInvalidPointCount
		}
		if cfg.Clusters, ok = positive(args[4]); !ok {
			return nil, lloyd.ErrInvalidK
		}
	case len(args) == 0 && f.configPath != "":
	default:
		return nil, errWrongArgs
	}

	flags := cmd.Flags()
	if flags.Changed("membership") {
		cfg.Membership = f.membership
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("compression") {
		cfg.Compression = f.compression
	}
	if flags.Changed("kernel") {
		cfg.Kernel = f.kernel
	}
	if flags.Changed("codec") {
		cfg.Codec = f.codec
	}
	if flags.Changed("io-limit") {
		cfg.Limits.IOPerSecond = f.ioLimit
	}
	if flags.Changed("memory-limit") {
		cfg.Limits.Memory = f.memoryLimit
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if flags.Changed("max-rounds") {
		cfg.MaxRounds = f.maxRounds
	}
	if flags.Changed("points-per-cluster") {
		cfg.PointsPerCluster = f.pointsPerCluster
	}

	if err := cfg.Validate(); err != nil {
		for _, sentinel := range []error{lloyd.ErrInvalidDimension, lloyd.ErrInvalidPointCount, lloyd.ErrInvalidK} {
			if errors.Is(err, sentinel) {
				return nil, sentinel
			}
		}
		if cfg.Input == "" || cfg.Output == "" {
			return nil, errWrongArgs
		}
		return nil, err
	}
	return cfg, nil
}

// positive parses s like atoi and reports whether it is a positive count.
func positive(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil && n > 0
}

func newLogger(w io.Writer, cfg *config.Config) *lloyd.Logger {
	level, _ := cfg.LogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Log.Format, "json") {
		return lloyd.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return lloyd.NewLogger(slog.NewTextHandler(w, opts))
}

func runCluster(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	// Validate has accepted every name and size below.
	kernel, _ := distance.ParseKernel(cfg.Kernel)
	format, _ := pointio.ParseFormat(cfg.Format)
	compression, _ := pointio.ParseCompression(cfg.Compression)
	jsonCodec, _ := codec.ByName(cfg.Codec)
	ioLimit, _ := config.ParseSize(cfg.Limits.IOPerSecond)
	memoryLimit, _ := config.ParseSize(cfg.Limits.Memory)

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: ioLimit})
	ioOpts := []pointio.Option{
		pointio.WithFormat(format),
		pointio.WithCompression(compression),
		pointio.WithCodec(jsonCodec),
		pointio.WithResourceController(rc),
	}

	inStore, inName, err := openStore(ctx, cfg, cfg.Input)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	outStore, outName, err := openStore(ctx, cfg, cfg.Output)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := checkWritable(ctx, outStore, outName); err != nil {
		return err
	}

	shape := cfg.Shape()
	opts := []lloyd.Option{
		lloyd.WithLogger(logger),
		lloyd.WithMaxRounds(cfg.MaxRounds),
		lloyd.WithKernel(kernel),
		lloyd.WithMemoryLimit(memoryLimit),
	}
	if cfg.Membership != "" {
		memStore, memName, err := openStore(ctx, cfg, cfg.Membership)
		if err != nil {
			return fmt.Errorf("membership: %w", err)
		}
		if err := checkWritable(ctx, memStore, memName); err != nil {
			return err
		}
		opts = append(opts, lloyd.WithMembershipSink(pointio.NewMembershipSink(memStore, memName,
			pointio.WithCompression(compression),
			pointio.WithResourceController(rc),
		)))
	}

	logger.Info("kmeans start", "config", cfg.String())

	res, err := lloyd.Cluster(ctx, shape,
		pointio.NewSource(inStore, inName, shape.Dimensions, shape.Points, ioOpts...),
		pointio.NewSink(outStore, outName, ioOpts...),
		opts...,
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "kmeans finished: %d rounds, change %g, converged %v, %s\n",
		res.Rounds, res.Change, res.Converged, res.Duration)
	return nil
}
