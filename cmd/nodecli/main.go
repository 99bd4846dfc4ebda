// nodecli queries a node and exercises the submission path by hand.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/solflood/client"
	"github.com/spacemeshos/solflood/epoch"
	"github.com/spacemeshos/solflood/puzzle"
	"github.com/spacemeshos/solflood/types"
)

var (
	nodeURL        string
	timeout        time.Duration
	blocksPerEpoch uint32

	synthetic   bool
	recipient   string
	searchBound uint64
)

var rootCmd = &cobra.Command{
	Use:          "nodecli",
	Short:        "Inspect a node and submit single solutions",
	SilenceUsage: true,
}

var blockCmd = &cobra.Command{
	Use:   "block [height|latest]",
	Short: "Print a block",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBlock,
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the current network state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveState(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(s)
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Prove and submit one solution",
	Long: `Resolve the network state, produce one solution for the current epoch
and broadcast it. Genuine solutions are proved until one meets the epoch's
proof target, --synthetic skips proving altogether.`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&nodeURL, "node", "http://localhost:3030/testnet", "node API base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "request timeout")
	rootCmd.PersistentFlags().Uint32Var(&blocksPerEpoch, "blocks-per-epoch", epoch.DefaultBlocksPerEpoch, "epoch length")

	submitCmd.Flags().BoolVar(&synthetic, "synthetic", false, "submit a solution without proof")
	submitCmd.Flags().StringVar(&recipient, "recipient", "", "hex encoded recipient address")
	submitCmd.Flags().Uint64Var(&searchBound, "search-bound", puzzle.DefaultSearchBound, "nonces tried per attempt")

	rootCmd.AddCommand(blockCmd, stateCmd, submitCmd)
}

func newClient() (*client.Client, error) {
	return client.New(nodeURL, client.WithTimeout(timeout))
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runBlock(cmd *cobra.Command, args []string) error {
	cl, err := newClient()
	if err != nil {
		return err
	}
	var b *types.Block
	if len(args) == 0 || args[0] == "latest" {
		b, err = cl.LatestBlock(cmd.Context())
	} else {
		height, perr := strconv.ParseUint(args[0], 10, 32)
		if perr != nil {
			return fmt.Errorf("parsing height: %w", perr)
		}
		b, err = cl.Block(cmd.Context(), uint32(height))
	}
	if err != nil {
		return fmt.Errorf("fetching block: %w", err)
	}
	return printJSON(b)
}

func resolveState(ctx context.Context) (epoch.NetworkState, error) {
	cl, err := newClient()
	if err != nil {
		return epoch.NetworkState{}, err
	}
	resolver, err := epoch.NewResolver(blocksPerEpoch)
	if err != nil {
		return epoch.NetworkState{}, err
	}
	return resolver.Resolve(ctx, cl)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	cl, err := newClient()
	if err != nil {
		return err
	}
	state, err := resolveState(cmd.Context())
	if err != nil {
		return fmt.Errorf("resolving network state: %w", err)
	}
	var address types.Address
	if recipient != "" {
		if err := address.UnmarshalText([]byte(recipient)); err != nil {
			return fmt.Errorf("parsing recipient: %w", err)
		}
	}
	producer := puzzle.NewProducer(puzzle.NewHashProver(searchBound), address)
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	var solution *types.Solution
	if synthetic {
		solution = producer.Synthetic(state, rng)
	} else {
		start := time.Now()
		for attempt := 1; solution == nil; attempt++ {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			solution, err = producer.Genuine(state, rng)
			if err != nil && attempt%100 == 0 {
				fmt.Printf("still proving after %d attempts (%s)\n", attempt, time.Since(start))
			}
		}
		fmt.Printf("proved target %d in %s\n", solution.Target, time.Since(start))
	}

	if err := cl.SubmitSolution(cmd.Context(), solution); err != nil {
		return fmt.Errorf("broadcasting solution %s: %w", solution.ID(), err)
	}
	fmt.Printf("solution %s accepted\n", solution.ID())
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
