package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// SessionInfo is the presentation view of the active session.
type SessionInfo struct {
	ID            uuid.UUID      `json:"id"`
	Account       common.Address `json:"account"`
	Connected     bool           `json:"connected"`
	EstablishedAt time.Time      `json:"established_at"`
}

// Disconnected is the SessionInfo reported when no account is active.
func Disconnected() SessionInfo {
	return SessionInfo{}
}
