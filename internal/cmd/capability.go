package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laops/shipsync"
)

// CreateCapabilityCommand builds the structured invocation surface: one
// JSON capability request is read from stdin and exactly one structured
// reply is printed, for fatal failures as well as successes.
func (f CommandFactory) CreateCapabilityCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:           "capability",
		Short:         "Handle one structured capability request read from stdin",
		Long:          `Handle one structured capability request read from stdin. The request is a single JSON document {"capability", "args": {"csv_path", "type_operation", "output_path", "config_path"?}}; the reply is a single JSON document either way.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp *shipsync.CapabilityResponse
			var req shipsync.CapabilityRequest
			if err := json.NewDecoder(f.stdin()).Decode(&req); err != nil {
				resp = &shipsync.CapabilityResponse{
					Status:     shipsync.CapabilityStatusError,
					Message:    fmt.Sprintf("invalid JSON input: %v", err),
					Capability: "unknown",
				}
			} else {
				logger, err := f.NewLogger(flgs.Verbose)
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
				handler := shipsync.NewCapabilityHandler(
					shipsync.WithCapabilityRunBatch(f.RunBatch),
					shipsync.WithCapabilityLogger(logger),
				)
				resp = handler.Handle(context.Background(), &req)
			}
			if err := printJSON(f.stdout(), resp); err != nil {
				return err
			}
			if resp.Status == shipsync.CapabilityStatusError {
				return errCapabilityFailed
			}
			return nil
		},
	}
}

func init() {
	c := defaultCommandFactory.CreateCapabilityCommand(flgs)
	setDefaultFlags(c, flgs)
	root.AddCommand(c)
}
