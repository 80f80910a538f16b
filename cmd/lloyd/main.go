// Package main provides the lloyd CLI entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version   = "0.1.0"
	commit    = "dev"
	buildTime = "unknown" // Set via ldflags: -X main.buildTime=$(date +%Y%m%d-%H%M%S)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the CLI and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lloyd",
		Short: "lloyd - sequential k-means clustering",
		Long: `lloyd clusters points with Lloyd's k-means algorithm.

The first K points seed the centroids. Rounds of assignment and update run
until the summed centroid movement of a round is at most 0.1.

Points and results may live in local files, S3 (s3://bucket/key) or
MinIO (minio://bucket/key), as CSV or JSON, optionally zstd/lz4 compressed.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lloyd v%s (%s) built %s\n", version, commit, buildTime)
		},
	})
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newGenerateCmd())

	return rootCmd
}
