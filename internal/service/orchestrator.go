package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Orchestrator implements ports.MarketplaceService.
//
// The session and catalog slots are swapped wholesale, never edited.
// sessionMu serializes re-establishment; opMu serializes ledger writes.
// A write keeps the session it started with even if the slot changes
// while it waits for confirmation.
type Orchestrator struct {
	wallet    ports.WalletProvider
	connector ports.LedgerConnector
	uploader  ports.ImageUploader
	journal   ports.OperationRepository // nil = no journal
	catalogs  *CatalogStore
	metrics   *Metrics
	log       zerolog.Logger

	sessionMu sync.Mutex
	opMu      sync.Mutex

	slotMu  sync.Mutex // pairs session and catalog swaps
	session atomic.Pointer[Session]
	catalog atomic.Pointer[domain.Catalog]

	statusMu   sync.RWMutex
	state      domain.OperationState
	lastStatus string

	targetsMu sync.Mutex
	targets   map[uint64]common.Address

	now func() time.Time
}

// NewOrchestrator creates an Orchestrator. journal and metrics may be nil.
func NewOrchestrator(
	wallet ports.WalletProvider,
	connector ports.LedgerConnector,
	uploader ports.ImageUploader,
	journal ports.OperationRepository,
	metrics *Metrics,
	log zerolog.Logger,
) *Orchestrator {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	o := &Orchestrator{
		wallet:    wallet,
		connector: connector,
		uploader:  uploader,
		journal:   journal,
		catalogs:  NewCatalogStore(metrics, log),
		metrics:   metrics,
		log:       log,
		state:     domain.OperationStateIdle,
		targets:   make(map[uint64]common.Address),
		now:       time.Now,
	}
	o.catalog.Store(domain.EmptyCatalog(common.Address{}))
	return o
}

// ==================== Session ====================

// Bootstrap asks the wallet for accounts and establishes the first session.
func (o *Orchestrator) Bootstrap(ctx context.Context) error {
	accounts, err := o.wallet.RequestAccounts(ctx)
	if err != nil {
		if _, ok := apperror.As(err); ok {
			return err
		}
		return apperror.ErrConnection(err).WithPhase("connect")
	}
	if len(accounts) == 0 {
		return apperror.ErrConnection(errors.New("wallet returned no accounts")).WithPhase("connect")
	}
	return o.Reestablish(ctx, accounts)
}

// Reestablish replaces the session for a new account set. The first account
// becomes active; an empty set disconnects. Bootstrap and account changes
// both end up here.
func (o *Orchestrator) Reestablish(ctx context.Context, accounts []common.Address) error {
	o.sessionMu.Lock()
	defer o.sessionMu.Unlock()

	o.metrics.SessionChanges.Inc()

	if len(accounts) == 0 {
		o.installSession(nil)
		o.setStatus(domain.OperationStateIdle, "disconnected")
		o.log.Info().Msg("account set empty, session cleared")
		return nil
	}

	account := accounts[0]
	gw, err := o.connector.Connect(ctx, account)
	if err != nil {
		o.installSession(nil)
		o.setStatus(domain.OperationStateIdle, "connect failed")
		if appErr, ok := apperror.As(err); ok {
			return appErr.WithPhase("connect")
		}
		return apperror.ErrConnection(err).WithPhase("connect")
	}

	sess := &Session{
		ID:            uuid.New(),
		Account:       account,
		Gateway:       gw,
		EstablishedAt: o.now().UTC(),
	}
	o.installSession(sess)
	o.log.Info().Str("account", account.Hex()).Str("session_id", sess.ID.String()).Msg("session established")

	return o.hydrate(ctx, sess)
}

// Refresh rebuilds the catalog for the current session.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	sess := o.session.Load()
	if sess == nil {
		return apperror.ErrDisconnected()
	}
	return o.hydrate(ctx, sess)
}

func (o *Orchestrator) Session() domain.SessionInfo {
	return o.session.Load().Info()
}

func (o *Orchestrator) Catalog() *domain.Catalog {
	return o.catalog.Load()
}

func (o *Orchestrator) State() domain.OperationState {
	o.statusMu.RLock()
	defer o.statusMu.RUnlock()
	return o.state
}

func (o *Orchestrator) LastStatus() string {
	o.statusMu.RLock()
	defer o.statusMu.RUnlock()
	return o.lastStatus
}

// installSession swaps the session slot and resets everything tied to the
// previous account.
func (o *Orchestrator) installSession(sess *Session) {
	account := common.Address{}
	if sess != nil {
		account = sess.Account
	}

	o.slotMu.Lock()
	o.session.Store(sess)
	o.catalog.Store(domain.EmptyCatalog(account))
	o.slotMu.Unlock()

	o.targetsMu.Lock()
	clear(o.targets)
	o.targetsMu.Unlock()
}

// hydrate rebuilds the catalog for sess and installs it only if sess is
// still the active session.
func (o *Orchestrator) hydrate(ctx context.Context, sess *Session) error {
	cat, err := o.catalogs.Hydrate(ctx, sess.Gateway, sess.Account)
	if err != nil {
		o.log.Warn().Err(err).Str("session_id", sess.ID.String()).Msg("hydration failed, keeping previous catalog")
		return err
	}

	o.slotMu.Lock()
	defer o.slotMu.Unlock()
	if o.session.Load() != sess {
		o.log.Debug().Str("session_id", sess.ID.String()).Msg("session replaced during hydration, discarding catalog")
		return nil
	}
	o.catalog.Store(cat)
	return nil
}

// ==================== Operations ====================

// UploadImage stores image and returns its locator in the result.
// It needs no session.
func (o *Orchestrator) UploadImage(ctx context.Context, image domain.Image) (*domain.OperationResult, error) {
	if image.Empty() {
		return o.reject(domain.OperationUpload, 0, apperror.Validation("image payload is required"))
	}

	res := &domain.OperationResult{ID: uuid.New(), Kind: domain.OperationUpload, State: domain.OperationStateSubmitting}
	o.setStatus(domain.OperationStateSubmitting, "upload: uploading image")
	rec := o.journalStart(ctx, o.session.Load(), res)

	locator, err := o.uploader.Upload(ctx, image)
	if err != nil {
		if appErr, ok := apperror.As(err); ok {
			err = appErr.WithPhase(string(domain.OperationUpload))
		} else {
			err = apperror.ErrUpload(err)
		}
		o.fail(res, err)
		o.journalFinish(ctx, rec, res, err)
		return res, err
	}

	res.Locator = locator
	o.succeed(res, fmt.Sprintf("upload succeeded: %s", locator))
	o.journalFinish(ctx, rec, res, nil)
	return res, nil
}

// ListItem lists a new item. The locator must come from a prior upload.
func (o *Orchestrator) ListItem(ctx context.Context, req ports.ListItemRequest) (*domain.OperationResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return o.reject(domain.OperationList, 0, apperror.Validation("item name is required"))
	}
	locator := strings.TrimSpace(req.Locator)
	if locator == "" {
		return o.reject(domain.OperationList, 0, apperror.Validation("image locator is required; upload the image first"))
	}
	price, err := domain.ParsePrice(req.Price)
	if err != nil {
		return o.reject(domain.OperationList, 0, apperror.Validation(fmt.Sprintf("invalid price: %v", err)))
	}

	return o.execute(ctx, domain.NewListOperation(name, locator, price))
}

// PurchaseItem buys an item. With no explicit price the catalog price is
// sent; whether the item is still for sale is left to the ledger.
func (o *Orchestrator) PurchaseItem(ctx context.Context, req ports.PurchaseRequest) (*domain.OperationResult, error) {
	if o.session.Load() == nil {
		return o.reject(domain.OperationPurchase, req.ItemID, apperror.ErrDisconnected())
	}

	price := req.Price
	if price == nil {
		it, ok := o.catalog.Load().Lookup(req.ItemID)
		if !ok {
			return o.reject(domain.OperationPurchase, req.ItemID, apperror.ErrNotFound("Item"))
		}
		price = it.Price
	}
	if price == nil || price.Sign() < 0 {
		return o.reject(domain.OperationPurchase, req.ItemID, apperror.Validation("price must not be negative"))
	}

	return o.execute(ctx, domain.NewPurchaseOperation(req.ItemID, new(big.Int).Set(price)))
}

// TransferItem hands an item to another account. An empty To uses the
// pending transfer target for the item. Ownership is checked by the ledger.
func (o *Orchestrator) TransferItem(ctx context.Context, req ports.TransferRequest) (*domain.OperationResult, error) {
	to := strings.TrimSpace(req.To)
	if to == "" {
		if pending, ok := o.TransferTarget(req.ItemID); ok {
			to = pending
		}
	}
	if to == "" {
		return o.reject(domain.OperationTransfer, req.ItemID, apperror.Validation("recipient account is required"))
	}
	if !common.IsHexAddress(to) {
		return o.reject(domain.OperationTransfer, req.ItemID, apperror.Validation("recipient is not a valid account"))
	}

	res, err := o.execute(ctx, domain.NewTransferOperation(req.ItemID, common.HexToAddress(to)))
	if err == nil {
		o.targetsMu.Lock()
		delete(o.targets, req.ItemID)
		o.targetsMu.Unlock()
	}
	return res, err
}

// SetTransferTarget remembers a recipient for an item until it is used or
// the session changes. An empty to clears it.
func (o *Orchestrator) SetTransferTarget(itemID uint64, to string) error {
	to = strings.TrimSpace(to)

	o.targetsMu.Lock()
	defer o.targetsMu.Unlock()

	if to == "" {
		delete(o.targets, itemID)
		return nil
	}
	if !common.IsHexAddress(to) {
		return apperror.Validation("recipient is not a valid account")
	}
	o.targets[itemID] = common.HexToAddress(to)
	return nil
}

func (o *Orchestrator) TransferTarget(itemID uint64) (string, bool) {
	o.targetsMu.Lock()
	defer o.targetsMu.Unlock()
	to, ok := o.targets[itemID]
	if !ok {
		return "", false
	}
	return to.Hex(), true
}

// execute drives one ledger write through submit, confirmation and the
// follow-up hydration. Once submitted nothing is cancellable.
func (o *Orchestrator) execute(ctx context.Context, op domain.LedgerOperation) (*domain.OperationResult, error) {
	o.opMu.Lock()
	defer o.opMu.Unlock()

	sess := o.session.Load()
	if sess == nil {
		return o.reject(op.Kind, op.ItemID, apperror.ErrDisconnected())
	}

	ctx = context.WithoutCancel(ctx)
	phase := string(op.Kind)

	res := &domain.OperationResult{ID: uuid.New(), Kind: op.Kind, ItemID: op.ItemID, State: domain.OperationStateSubmitting}
	o.setStatus(domain.OperationStateSubmitting, phase+": waiting for signature")
	rec := o.journalStart(ctx, sess, res)

	log := o.log.With().
		Str("op_id", res.ID.String()).
		Str("session_id", sess.ID.String()).
		Str("op", op.String()).
		Logger()

	tx, err := sess.Gateway.Submit(ctx, op)
	if err != nil {
		err = tagLedgerError(err, phase, apperror.ErrSubmission)
		log.Warn().Err(err).Msg("submission failed")
		o.fail(res, err)
		o.journalFinish(ctx, rec, res, err)
		o.rehydrateAfter(ctx, res)
		return res, err
	}

	hash := tx.Hash()
	res.TxHash = &hash
	res.State = domain.OperationStateAwaitingConfirmation
	o.setStatus(domain.OperationStateAwaitingConfirmation, fmt.Sprintf("%s: awaiting confirmation of %s", phase, hash.Hex()))
	log.Info().Str("tx", hash.Hex()).Msg("transaction submitted")

	conf, err := tx.Await(ctx)
	if err != nil {
		err = tagLedgerError(err, phase, apperror.ErrExecution)
		log.Warn().Err(err).Str("tx", hash.Hex()).Msg("transaction failed")
		o.fail(res, err)
		o.journalFinish(ctx, rec, res, err)
		o.rehydrateAfter(ctx, res)
		return res, err
	}

	log.Info().Str("tx", hash.Hex()).Uint64("block", conf.BlockNumber).Msg("transaction confirmed")
	o.succeed(res, fmt.Sprintf("%s succeeded in block %d", phase, conf.BlockNumber))
	o.journalFinish(ctx, rec, res, nil)
	o.rehydrateAfter(ctx, res)
	return res, nil
}

// rehydrateAfter rebuilds the catalog against whatever session is current
// once an operation has reached the ledger, whatever its outcome.
func (o *Orchestrator) rehydrateAfter(ctx context.Context, res *domain.OperationResult) {
	sess := o.session.Load()
	if sess == nil {
		return
	}
	if err := o.hydrate(ctx, sess); err != nil {
		res.HydrationErr = err
	}
}

// reject reports a precondition failure. Nothing reaches the ledger.
func (o *Orchestrator) reject(kind domain.OperationKind, itemID uint64, appErr *apperror.AppError) (*domain.OperationResult, error) {
	appErr = appErr.WithPhase(string(kind))
	res := &domain.OperationResult{ID: uuid.New(), Kind: kind, ItemID: itemID}
	o.fail(res, appErr)
	return res, appErr
}

func (o *Orchestrator) fail(res *domain.OperationResult, err error) {
	res.State = domain.OperationStateFailed
	res.Status = failureStatus(res.Kind, err)
	o.metrics.Operations.WithLabelValues(string(res.Kind), apperror.CodeOf(err)).Inc()
	o.setStatus(domain.OperationStateIdle, res.Status)
}

func (o *Orchestrator) succeed(res *domain.OperationResult, status string) {
	res.State = domain.OperationStateSucceeded
	res.Status = status
	o.metrics.Operations.WithLabelValues(string(res.Kind), "ok").Inc()
	o.setStatus(domain.OperationStateIdle, status)
}

func (o *Orchestrator) setStatus(state domain.OperationState, status string) {
	o.statusMu.Lock()
	o.state = state
	o.lastStatus = status
	o.statusMu.Unlock()
}

func failureStatus(kind domain.OperationKind, err error) string {
	appErr, ok := apperror.As(err)
	if !ok {
		return fmt.Sprintf("%s failed: %v", kind, err)
	}
	if appErr.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", kind, appErr.Message, appErr.Err)
	}
	return fmt.Sprintf("%s failed: %s", kind, appErr.Message)
}

// tagLedgerError tags err with phase; foreign errors are wrapped with fallback.
func tagLedgerError(err error, phase string, fallback func(error) *apperror.AppError) error {
	if appErr, ok := apperror.As(err); ok {
		return appErr.WithPhase(phase)
	}
	return fallback(err).WithPhase(phase)
}

// ==================== Journal ====================

func (o *Orchestrator) journalStart(ctx context.Context, sess *Session, res *domain.OperationResult) *domain.OperationRecord {
	if o.journal == nil {
		return nil
	}

	rec := &domain.OperationRecord{
		ID:        res.ID,
		Kind:      res.Kind,
		State:     res.State,
		CreatedAt: o.now().UTC(),
	}
	if sess != nil {
		rec.SessionID = sess.ID
		rec.Account = sess.Account.Hex()
	}
	if res.ItemID != 0 {
		id := res.ItemID
		rec.ItemID = &id
	}

	if err := o.journal.Create(context.WithoutCancel(ctx), rec); err != nil {
		o.log.Warn().Err(err).Str("op_id", res.ID.String()).Msg("failed to journal operation start")
		return nil
	}
	return rec
}

func (o *Orchestrator) journalFinish(ctx context.Context, rec *domain.OperationRecord, res *domain.OperationResult, opErr error) {
	if rec == nil {
		return
	}

	now := o.now().UTC()
	rec.State = res.State
	rec.Status = res.Status
	rec.FinishedAt = &now
	if res.TxHash != nil {
		h := res.TxHash.Hex()
		rec.TxHash = &h
	}
	if opErr != nil {
		code := apperror.CodeOf(opErr)
		rec.ErrorCode = &code
	}

	if err := o.journal.Finish(context.WithoutCancel(ctx), rec); err != nil {
		o.log.Warn().Err(err).Str("op_id", rec.ID.String()).Msg("failed to journal operation outcome")
	}
}
