package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/internal/config"
	"github.com/hupe1980/lloyd/pointio"
	"github.com/hupe1980/lloyd/testutil"
)

type generateFlags struct {
	clusters         int
	pointsPerCluster int
	dimensions       int
	scale            float64
	spread           float64
	seed             int64
	shuffle          bool
	format           string
	compression      string
	codec            string
}

func newGenerateCmd() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate <output-file>",
		Short: "Write synthetic clustered points",
		Long: `Write points drawn from Gaussian blobs around random centers.

The same seed always produces the same points. The output can be fed to
"lloyd run" with #points = clusters * points-per-cluster.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], &f)
		},
	}

	cmd.Flags().IntVarP(&f.clusters, "clusters", "k", 4, "Number of blobs")
	cmd.Flags().IntVarP(&f.pointsPerCluster, "points-per-cluster", "n", 1000, "Points per blob")
	cmd.Flags().IntVarP(&f.dimensions, "dimensions", "d", 2, "Coordinates per point")
	cmd.Flags().Float64Var(&f.scale, "scale", 100, "Blob centers are drawn from [0, scale)")
	cmd.Flags().Float64Var(&f.spread, "spread", 1, "Standard deviation of each blob")
	cmd.Flags().Int64Var(&f.seed, "seed", 1, "Random seed")
	cmd.Flags().BoolVar(&f.shuffle, "shuffle", true, "Shuffle points so the first K points span several blobs")
	cmd.Flags().StringVar(&f.format, "format", "auto", "Point format: auto, csv, json")
	cmd.Flags().StringVar(&f.compression, "compression", "auto", "Compression: auto, none, zstd, lz4")
	cmd.Flags().StringVar(&f.codec, "codec", "go-json", "JSON codec")

	return cmd
}

func runGenerate(cmd *cobra.Command, output string, f *generateFlags) error {
	if f.clusters < 1 || f.pointsPerCluster < 1 || f.dimensions < 1 {
		return fmt.Errorf("clusters, points-per-cluster and dimensions must be positive")
	}

	format, err := pointio.ParseFormat(f.format)
	if err != nil {
		return err
	}
	compression, err := pointio.ParseCompression(f.compression)
	if err != nil {
		return err
	}
	jsonCodec, err := codec.ByName(f.codec)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, name, err := openStore(ctx, config.Default(), output)
	if err != nil {
		return err
	}

	rng := testutil.NewRNG(f.seed)
	points := rng.ClusteredPoints(f.clusters, f.pointsPerCluster, f.dimensions, f.scale, f.spread)
	if f.shuffle {
		rng.Shuffle(points)
	}

	if err := pointio.WritePoints(ctx, store, name, points,
		pointio.WithFormat(format),
		pointio.WithCompression(compression),
		pointio.WithCodec(jsonCodec),
	); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d points (%d dimensions) to %s\n", len(points), f.dimensions, output)
	return nil
}
