package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

const erc20BalanceOfABIJSON = `[
  {"inputs": [{"internalType": "address", "name": "account", "type": "address"}], "name": "balanceOf", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"}
]`

var (
	balanceOfABI    abi.ABI
	balanceOfOnce   sync.Once
	balanceOfABIErr error
)

func getBalanceOfABI() (abi.ABI, error) {
	balanceOfOnce.Do(func() {
		balanceOfABI, balanceOfABIErr = abi.JSON(strings.NewReader(erc20BalanceOfABIJSON))
	})
	return balanceOfABI, balanceOfABIErr
}

// BalanceCall identifies a single ERC20 balanceOf read.
type BalanceCall struct {
	Token string
	Owner string
}

// BalanceResult carries the outcome of one call. Err is set per call so a
// failing token never fails the batch.
type BalanceResult struct {
	Call    BalanceCall
	Balance *big.Int
	Err     error
}

// BalanceReader batches balanceOf calls over a chain client.
type BalanceReader struct {
	client *Client
	limit  int
}

func NewBalanceReader(client *Client, limit int) *BalanceReader {
	if limit <= 0 {
		limit = 8
	}
	return &BalanceReader{client: client, limit: limit}
}

// Balances executes the batch with bounded concurrency. Individual failures
// are recorded in the results, never raised.
func (r *BalanceReader) Balances(ctx context.Context, calls []BalanceCall) []BalanceResult {
	results := make([]BalanceResult, len(calls))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.limit)
	for i, call := range calls {
		i, call := i, call
		group.Go(func() error {
			balance, err := r.balanceOf(groupCtx, call)
			results[i] = BalanceResult{Call: call, Balance: balance, Err: err}
			return nil
		})
	}
	group.Wait()

	return results
}

func (r *BalanceReader) balanceOf(ctx context.Context, call BalanceCall) (*big.Int, error) {
	if !common.IsHexAddress(call.Token) || !common.IsHexAddress(call.Owner) {
		return nil, fmt.Errorf("invalid address %s/%s", call.Token, call.Owner)
	}
	if r.client == nil {
		return nil, fmt.Errorf("chain client is nil")
	}

	balanceABI, err := getBalanceOfABI()
	if err != nil {
		return nil, err
	}

	data, err := balanceABI.Pack("balanceOf", common.HexToAddress(call.Owner))
	if err != nil {
		return nil, fmt.Errorf("pack balanceOf: %w", err)
	}

	token := common.HexToAddress(call.Token)
	msg := ethereum.CallMsg{To: &token, Data: data}
	resp, err := r.client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call balanceOf: %w", err)
	}

	values, err := balanceABI.Unpack("balanceOf", resp)
	if err != nil {
		return nil, fmt.Errorf("unpack balanceOf: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("balanceOf return size %d", len(values))
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("balanceOf unexpected type %T", values[0])
	}
	return balance, nil
}
