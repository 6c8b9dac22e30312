package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// Contract is the entry point surface the commands drive.
type Contract interface {
	Instantiate(ctx context.Context, sender string, msg types.InstantiateMsg) (*types.Response, error)
	Execute(ctx context.Context, sender string, msg types.ExecuteMsg) (*types.Response, error)
	ExecuteJSON(ctx context.Context, sender string, bz []byte) (*types.Response, error)
	Query(ctx context.Context, msg types.QueryMsg) (any, error)
	QueryJSON(ctx context.Context, bz []byte) ([]byte, error)
}

// ContractOpener returns the contract for a command along with a func that
// releases it once the command is done.
type ContractOpener func(cmd *cobra.Command) (Contract, func() error, error)

// withContract opens the contract, runs fn and closes the contract again
func withContract(cmd *cobra.Command, open ContractOpener, fn func(ctx context.Context, c Contract) error) (err error) {
	c, closeFn, err := open(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, c)
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

// printRawJSON re-indents an already encoded JSON document
func printRawJSON(cmd *cobra.Command, bz []byte) error {
	var v json.RawMessage = bz
	return printJSON(cmd, v)
}

func senderFlag(cmd *cobra.Command) (string, error) {
	from, err := cmd.Flags().GetString(FlagFrom)
	if err != nil {
		return "", err
	}
	if from == "" {
		return "", fmt.Errorf("--%s is required", FlagFrom)
	}
	return from, nil
}

// FlagSetFrom returns the flag set holding the sender flag
func FlagSetFrom() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.String(FlagFrom, "", "Address the call is made as")
	return fs
}

func addSenderFlag(cmd *cobra.Command) {
	cmd.Flags().AddFlagSet(FlagSetFrom())
}
