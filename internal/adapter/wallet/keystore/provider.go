// Package keystore is a wallet provider over a go-ethereum key directory.
package keystore

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"

	"marketplace-sync/pkg/apperror"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// Provider exposes keystore accounts and signs for them. Keys stay in the
// keystore; only locked or unlocked state is managed here.
type Provider struct {
	ks      *keystore.KeyStore
	chainID *big.Int
	log     zerolog.Logger
}

// New opens the keystore in dir. When passphrase is set every account is
// unlocked with it; accounts it does not open stay locked.
func New(dir, passphrase string, chainID int64, log zerolog.Logger) *Provider {
	return open(dir, passphrase, chainID, keystore.StandardScryptN, keystore.StandardScryptP, log)
}

func open(dir, passphrase string, chainID int64, scryptN, scryptP int, log zerolog.Logger) *Provider {
	p := &Provider{
		ks:      keystore.NewKeyStore(dir, scryptN, scryptP),
		chainID: big.NewInt(chainID),
		log:     log,
	}
	if passphrase != "" {
		p.unlockAll(passphrase)
	}
	return p
}

func (p *Provider) unlockAll(passphrase string) {
	for _, acct := range p.ks.Accounts() {
		if err := p.ks.Unlock(acct, passphrase); err != nil {
			p.log.Warn().Err(err).Str("account", acct.Address.Hex()).Msg("keystore: account left locked")
			continue
		}
		p.log.Info().Str("account", acct.Address.Hex()).Msg("keystore: account unlocked")
	}
}

// RequestAccounts lists keystore accounts in keystore order.
func (p *Provider) RequestAccounts(_ context.Context) ([]common.Address, error) {
	addrs := p.addresses()
	if len(addrs) == 0 {
		return nil, apperror.ErrConnection(errors.New("keystore has no accounts"))
	}
	return addrs, nil
}

// Watch emits the account list whenever a key file arrives or departs.
// Events that leave the list unchanged are dropped.
func (p *Provider) Watch(ctx context.Context) (<-chan []common.Address, error) {
	events := make(chan accounts.WalletEvent, 16)
	sub := p.ks.Subscribe(events)
	out := make(chan []common.Address, 1)

	go func() {
		defer close(out)
		defer sub.Unsubscribe()

		last := p.addresses()
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-sub.Err():
				if err != nil {
					p.log.Error().Err(err).Msg("keystore: subscription failed")
				}
				return
			case ev := <-events:
				if ev.Kind == accounts.WalletOpened {
					continue
				}
				current := p.addresses()
				if slices.Equal(current, last) {
					continue
				}
				last = current
				select {
				case out <- current:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Transactor returns signing options for account. Signing with a locked
// key fails at signing time.
func (p *Provider) Transactor(account common.Address) (*bind.TransactOpts, error) {
	acct, err := p.ks.Find(accounts.Account{Address: account})
	if err != nil {
		return nil, fmt.Errorf("keystore: %s: %w", account.Hex(), err)
	}
	return bind.NewKeyStoreTransactorWithChainID(p.ks, acct, p.chainID)
}

func (p *Provider) addresses() []common.Address {
	accts := p.ks.Accounts()
	out := make([]common.Address, 0, len(accts))
	for _, a := range accts {
		out = append(out, a.Address)
	}
	return out
}
