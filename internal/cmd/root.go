package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/laops/shipsync"
)

type CommandFactory struct {
	RunBatch  func(ctx context.Context, params *shipsync.RunBatchInput) (*shipsync.BatchResult, error)
	NewLogger func(verbose bool) (*zap.Logger, error)
	Stdin     io.Reader
	Stdout    io.Writer
}

var defaultCommandFactory = CommandFactory{
	RunBatch:  shipsync.RunBatch,
	NewLogger: newLogger,
}

var root = defaultCommandFactory.CreateRootCommand(flgs)

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (f CommandFactory) stdout() io.Writer {
	if f.Stdout != nil {
		return f.Stdout
	}
	return os.Stdout
}

func (f CommandFactory) stdin() io.Reader {
	if f.Stdin != nil {
		return f.Stdin
	}
	return os.Stdin
}

func setDefaultFlags(c *cobra.Command, flgs *Flags) {
	c.Flags().StringVar(&flgs.Config, flagMap.Config.Name, flagMap.Config.Value, flagMap.Config.Usage)
	c.Flags().BoolVar(&flgs.Verbose, flagMap.Verbose.Name, flagMap.Verbose.Value, flagMap.Verbose.Usage)
}

func (f CommandFactory) CreateRootCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:          "shipsync",
		Short:        "shipsync bulk-creates and updates shipment appointments through the shipment API",
		Long:         `shipsync processes a CSV of shipment records, synchronizes each record with the remote shipment API using SigV4-signed requests, and writes a per-record outcome report.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			operation, err := shipsync.ParseOperationType(flgs.Operation)
			if err != nil {
				return err
			}
			logger, err := f.NewLogger(flgs.Verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			result, err := f.RunBatch(context.Background(), &shipsync.RunBatchInput{
				SourcePath: flgs.Source,
				Operation:  operation,
				OutputDir:  flgs.Output,
				ConfigPath: flgs.Config,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			printBatchResult(f.stdout(), result)
			return nil
		},
	}
}

// errCapabilityFailed signals a non-zero exit after an error reply has
// already been printed as the structured response.
var errCapabilityFailed = errors.New("capability request failed")

func Execute() {
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errCapabilityFailed) {
			printError(err)
		}
		os.Exit(1)
	}
}

func init() {
	setDefaultFlags(root, flgs)
	root.Flags().StringVar(&flgs.Source, flagMap.Source.Name, flagMap.Source.Value, flagMap.Source.Usage)
	root.Flags().StringVar(&flgs.Operation, flagMap.Operation.Name, flagMap.Operation.Value, flagMap.Operation.Usage)
	root.Flags().StringVar(&flgs.Output, flagMap.Output.Name, flagMap.Output.Value, flagMap.Output.Usage)
	_ = root.MarkFlagRequired(flagMap.Source.Name)
	_ = root.MarkFlagRequired(flagMap.Operation.Name)
	_ = root.MarkFlagRequired(flagMap.Output.Name)
}
