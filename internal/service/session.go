package service

import (
	"time"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// Session pairs the active account with a gateway bound to it.
// It is never modified; a new account produces a new Session.
type Session struct {
	ID            uuid.UUID
	Account       common.Address
	Gateway       ports.LedgerGateway
	EstablishedAt time.Time
}

// Info returns the presentation view of s. A nil Session is disconnected.
func (s *Session) Info() domain.SessionInfo {
	if s == nil {
		return domain.Disconnected()
	}
	return domain.SessionInfo{
		ID:            s.ID,
		Account:       s.Account,
		Connected:     true,
		EstablishedAt: s.EstablishedAt,
	}
}
