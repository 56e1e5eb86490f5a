package service

import (
	"context"
	"fmt"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// SessionReestablisher rebuilds the session for a new account set.
type SessionReestablisher interface {
	Reestablish(ctx context.Context, accounts []common.Address) error
	Session() domain.SessionInfo
}

// SessionWatcher feeds wallet account changes into the orchestrator.
type SessionWatcher struct {
	wallet ports.WalletProvider
	target SessionReestablisher
	log    zerolog.Logger
}

// NewSessionWatcher creates a SessionWatcher.
func NewSessionWatcher(wallet ports.WalletProvider, target SessionReestablisher, log zerolog.Logger) *SessionWatcher {
	return &SessionWatcher{wallet: wallet, target: target, log: log}
}

// Run blocks until ctx ends or the wallet closes its change stream.
// A failed re-establishment is logged and the watcher keeps going.
func (w *SessionWatcher) Run(ctx context.Context) error {
	changes, err := w.wallet.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch accounts: %w", err)
	}

	w.log.Info().Msg("session watcher started")
	w.reconcile(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("session watcher stopped")
			return nil
		case accounts, ok := <-changes:
			if !ok {
				w.log.Info().Msg("account stream closed")
				return nil
			}
			w.log.Info().Int("accounts", len(accounts)).Msg("account set changed")
			if err := w.target.Reestablish(ctx, accounts); err != nil {
				w.log.Error().Err(err).Msg("failed to re-establish session")
			}
		}
	}
}

// reconcile catches up with account changes made before the subscription
// existed, such as during bootstrap hydration.
func (w *SessionWatcher) reconcile(ctx context.Context) {
	accounts, err := w.wallet.RequestAccounts(ctx)
	if err != nil && !apperror.HasCode(err, apperror.CodeConnection) {
		w.log.Warn().Err(err).Msg("could not read accounts at watcher start")
		return
	}

	current := w.target.Session()
	switch {
	case len(accounts) == 0 && !current.Connected:
		return
	case len(accounts) > 0 && current.Connected && accounts[0] == current.Account:
		return
	}

	w.log.Info().Int("accounts", len(accounts)).Msg("account set changed before watch started")
	if err := w.target.Reestablish(ctx, accounts); err != nil {
		w.log.Error().Err(err).Msg("failed to re-establish session")
	}
}
