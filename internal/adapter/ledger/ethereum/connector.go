// Package ethereum talks to the marketplace contract over JSON-RPC.
package ethereum

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-sync/internal/core/ports"
	"marketplace-sync/pkg/apperror"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
)

// Backend is what the gateway needs from a node connection.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// SignerSource hands out transaction signers for wallet accounts.
type SignerSource interface {
	Transactor(account common.Address) (*bind.TransactOpts, error)
}

// Connector binds the contract to a wallet account.
type Connector struct {
	backend        Backend
	address        common.Address
	signers        SignerSource
	confirmTimeout time.Duration
	log            zerolog.Logger
}

// Dial opens a JSON-RPC connection to the node at rpcURL.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	return client, nil
}

// NewConnector creates a Connector. A zero confirmTimeout waits without bound.
func NewConnector(backend Backend, contract common.Address, signers SignerSource, confirmTimeout time.Duration, log zerolog.Logger) *Connector {
	return &Connector{
		backend:        backend,
		address:        contract,
		signers:        signers,
		confirmTimeout: confirmTimeout,
		log:            log,
	}
}

// Connect checks the contract is deployed and builds a gateway signing
// for account.
func (c *Connector) Connect(ctx context.Context, account common.Address) (ports.LedgerGateway, error) {
	code, err := c.backend.CodeAt(ctx, c.address, nil)
	if err != nil {
		return nil, apperror.ErrConnection(fmt.Errorf("ledger unreachable: %w", err))
	}
	if len(code) == 0 {
		return nil, apperror.ErrConnection(fmt.Errorf("no contract at %s", c.address.Hex()))
	}

	opts, err := c.signers.Transactor(account)
	if err != nil {
		return nil, apperror.ErrConnection(fmt.Errorf("signer for %s: %w", account.Hex(), err))
	}
	if opts.From != account {
		return nil, apperror.ErrConnection(errors.New("signer is bound to a different account"))
	}

	return &Gateway{
		contract:       bind.NewBoundContract(c.address, ParsedABI, c.backend, c.backend, c.backend),
		backend:        c.backend,
		account:        account,
		opts:           opts,
		confirmTimeout: c.confirmTimeout,
		log:            c.log.With().Str("account", account.Hex()).Logger(),
	}, nil
}

// Ping implements ports.HealthChecker.
func (c *Connector) Ping(ctx context.Context) error {
	_, err := c.backend.HeaderByNumber(ctx, nil)
	return err
}

// Name implements ports.HealthChecker.
func (c *Connector) Name() string { return "ledger" }
