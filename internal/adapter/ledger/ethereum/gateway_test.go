package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/pkg/apperror"

	goeth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	contractAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	seller       = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	chainID      = big.NewInt(31337)
)

type fakeItem struct {
	name, image string
	price       *big.Int
	owner       common.Address
	sold        bool
}

// fakeBackend answers contract calls from an in-memory item list and
// records what the gateway sends.
type fakeBackend struct {
	mu        sync.Mutex
	code      []byte
	items     []fakeItem
	owned     map[common.Address][]uint64
	callErr   error
	estErr    error
	sendErr   error
	receipt   *types.Receipt
	noReceipt bool
	// wideID, when set, replaces every id the contract reports.
	wideID *big.Int
	sent      []*types.Transaction
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		code:  []byte{0x60, 0x80},
		owned: make(map[common.Address][]uint64),
	}
}

func (b *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return b.code, nil
}

func (b *fakeBackend) CallContract(_ context.Context, call goeth.CallMsg, _ *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.callErr != nil {
		return nil, b.callErr
	}

	method, err := ParsedABI.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case methodItemCount:
		return method.Outputs.Pack(big.NewInt(int64(len(b.items))))
	case methodItems:
		id := args[0].(*big.Int).Uint64()
		if id == 0 || id > uint64(len(b.items)) {
			return method.Outputs.Pack(new(big.Int), "", "", new(big.Int), common.Address{}, common.Address{}, false)
		}
		it := b.items[id-1]
		if b.wideID != nil {
			return method.Outputs.Pack(b.wideID, it.name, it.image, it.price, seller, it.owner, it.sold)
		}
		return method.Outputs.Pack(new(big.Int).SetUint64(id), it.name, it.image, it.price, seller, it.owner, it.sold)
	case methodItemsByOwner:
		owner := args[0].(common.Address)
		ids := make([]*big.Int, 0)
		for _, id := range b.owned[owner] {
			ids = append(ids, new(big.Int).SetUint64(id))
		}
		if b.wideID != nil && len(ids) > 0 {
			ids[0] = b.wideID
		}
		return method.Outputs.Pack(ids)
	}
	return nil, errors.New("unexpected call " + method.Name)
}

func (b *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(100)}, nil
}

func (b *fakeBackend) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return b.code, nil
}

func (b *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint64(len(b.sent)), nil
}

func (b *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (b *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (b *fakeBackend) EstimateGas(context.Context, goeth.CallMsg) (uint64, error) {
	if b.estErr != nil {
		return 0, b.estErr
	}
	return 120_000, nil
}

func (b *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sendErr != nil {
		return b.sendErr
	}
	b.sent = append(b.sent, tx)
	return nil
}

func (b *fakeBackend) FilterLogs(context.Context, goeth.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

func (b *fakeBackend) SubscribeFilterLogs(context.Context, goeth.FilterQuery, chan<- types.Log) (goeth.Subscription, error) {
	return nil, errors.New("not supported")
}

func (b *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	if b.noReceipt {
		return nil, goeth.NotFound
	}
	r := *b.receipt
	r.TxHash = hash
	return &r, nil
}

// keySigners signs with a single in-memory key.
type keySigners struct {
	key     *ecdsa.PrivateKey
	decline bool
	err     error
}

func (s *keySigners) Transactor(common.Address) (*bind.TransactOpts, error) {
	if s.err != nil {
		return nil, s.err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, chainID)
	if err != nil {
		return nil, err
	}
	if s.decline {
		opts.Signer = func(common.Address, *types.Transaction) (*types.Transaction, error) {
			return nil, errors.New("user denied transaction signature")
		}
	}
	return opts, nil
}

func setupGateway(t *testing.T) (*Gateway, *fakeBackend, *keySigners) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	backend := newFakeBackend()
	backend.receipt = &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(101), GasUsed: 90_000}
	signers := &keySigners{key: key}

	account := crypto.PubkeyToAddress(key.PublicKey)
	gw, err := NewConnector(backend, contractAddr, signers, time.Second, zerolog.Nop()).Connect(context.Background(), account)
	require.NoError(t, err)
	return gw.(*Gateway), backend, signers
}

func ether() *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
}

// ==================== Reads ====================

func TestGateway_Reads(t *testing.T) {
	gw, backend, _ := setupGateway(t)
	buyer := gw.Account()
	backend.items = []fakeItem{
		{name: "Chair", image: "https://gw/ipfs/a", price: ether(), owner: seller},
		{name: "Lamp", image: "https://gw/ipfs/b", price: big.NewInt(5), owner: buyer, sold: true},
	}
	backend.owned[buyer] = []uint64{2}
	ctx := context.Background()

	count, err := gw.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	it, err := gw.Item(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), it.ID)
	assert.Equal(t, "Lamp", it.Name)
	assert.Equal(t, "https://gw/ipfs/b", it.ImageLocator)
	assert.Equal(t, int64(5), it.Price.Int64())
	assert.Equal(t, seller, it.Seller)
	assert.Equal(t, buyer, it.Owner)
	assert.True(t, it.IsSold)

	ids, err := gw.OwnedItemIDs(ctx, buyer)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, ids)

	ids, err = gw.OwnedItemIDs(ctx, seller)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGateway_ReadFailure(t *testing.T) {
	gw, backend, _ := setupGateway(t)
	backend.callErr = errors.New("connection refused")

	_, err := gw.ItemCount(context.Background())
	assert.True(t, apperror.HasCode(err, apperror.CodeLedgerRead))

	_, err = gw.Item(context.Background(), 1)
	assert.True(t, apperror.HasCode(err, apperror.CodeLedgerRead))
}

func TestGateway_RejectsIDsBeyondUint64(t *testing.T) {
	gw, backend, _ := setupGateway(t)
	backend.items = []fakeItem{{name: "Chair", image: "https://gw/ipfs/a", price: ether(), owner: seller}}
	backend.owned[seller] = []uint64{1}
	// 2^64 + 1 would truncate onto item 1.
	backend.wideID = new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
	ctx := context.Background()

	_, err := gw.Item(ctx, 1)
	assert.True(t, apperror.HasCode(err, apperror.CodeLedgerRead))

	_, err = gw.OwnedItemIDs(ctx, seller)
	assert.True(t, apperror.HasCode(err, apperror.CodeLedgerRead))
}

// ==================== Writes ====================

func TestGateway_Submit_PurchaseCarriesValue(t *testing.T) {
	gw, backend, _ := setupGateway(t)

	tx, err := gw.Submit(context.Background(), domain.NewPurchaseOperation(1, ether()))
	require.NoError(t, err)

	require.Len(t, backend.sent, 1)
	sent := backend.sent[0]
	assert.Equal(t, tx.Hash(), sent.Hash())
	assert.Equal(t, 0, sent.Value().Cmp(ether()))
	assert.Equal(t, contractAddr, *sent.To())

	method, err := ParsedABI.MethodById(sent.Data()[:4])
	require.NoError(t, err)
	assert.Equal(t, methodPurchaseItem, method.Name)

	conf, err := tx.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(101), conf.BlockNumber)
	assert.Equal(t, uint64(90_000), conf.GasUsed)
	assert.Equal(t, tx.Hash(), conf.TxHash)
}

func TestGateway_Submit_ListAndTransferEncodeArgs(t *testing.T) {
	gw, backend, _ := setupGateway(t)
	to := common.HexToAddress("0x00000000000000000000000000000000000ca401")

	_, err := gw.Submit(context.Background(), domain.NewListOperation("Chair", "https://gw/ipfs/a", ether()))
	require.NoError(t, err)
	_, err = gw.Submit(context.Background(), domain.NewTransferOperation(3, to))
	require.NoError(t, err)
	require.Len(t, backend.sent, 2)

	list := backend.sent[0]
	assert.Equal(t, 0, list.Value().Sign())
	method, _ := ParsedABI.MethodById(list.Data()[:4])
	args, err := method.Inputs.Unpack(list.Data()[4:])
	require.NoError(t, err)
	assert.Equal(t, "Chair", args[0])
	assert.Equal(t, "https://gw/ipfs/a", args[1])
	assert.Equal(t, 0, args[2].(*big.Int).Cmp(ether()))

	transfer := backend.sent[1]
	method, _ = ParsedABI.MethodById(transfer.Data()[:4])
	args, err = method.Inputs.Unpack(transfer.Data()[4:])
	require.NoError(t, err)
	assert.Equal(t, methodTransferItem, method.Name)
	assert.Equal(t, uint64(3), args[0].(*big.Int).Uint64())
	assert.Equal(t, to, args[1])
}

func TestGateway_Submit_ErrorClassification(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *fakeBackend, s *keySigners)
		code  string
	}{
		{"signer declined", func(_ *fakeBackend, s *keySigners) { s.decline = true }, apperror.CodeRejection},
		{"estimate reverted", func(b *fakeBackend, _ *keySigners) {
			b.estErr = errors.New("execution reverted: Item already sold")
		}, apperror.CodeExecution},
		{"broadcast failed", func(b *fakeBackend, _ *keySigners) {
			b.sendErr = errors.New("Post \"http://127.0.0.1:8545\": EOF")
		}, apperror.CodeSubmission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := crypto.GenerateKey()
			require.NoError(t, err)
			backend := newFakeBackend()
			signers := &keySigners{key: key}
			tt.setup(backend, signers)

			gw, err := NewConnector(backend, contractAddr, signers, time.Second, zerolog.Nop()).
				Connect(context.Background(), crypto.PubkeyToAddress(key.PublicKey))
			require.NoError(t, err)

			tx, err := gw.Submit(context.Background(), domain.NewPurchaseOperation(1, ether()))
			assert.Nil(t, tx)
			assert.True(t, apperror.HasCode(err, tt.code), "got %v", err)
			assert.Empty(t, backend.sent)
		})
	}
}

func TestGateway_Await_Reverted(t *testing.T) {
	gw, backend, _ := setupGateway(t)
	backend.receipt = &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(7)}

	tx, err := gw.Submit(context.Background(), domain.NewTransferOperation(1, seller))
	require.NoError(t, err)

	_, err = tx.Await(context.Background())
	assert.True(t, apperror.HasCode(err, apperror.CodeExecution))
}

func TestGateway_Await_TimesOut(t *testing.T) {
	gw, backend, _ := setupGateway(t)
	backend.noReceipt = true
	gw.confirmTimeout = 50 * time.Millisecond

	tx, err := gw.Submit(context.Background(), domain.NewTransferOperation(1, seller))
	require.NoError(t, err)

	_, err = tx.Await(context.Background())
	assert.True(t, apperror.HasCode(err, apperror.CodeExecution))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ==================== Connector ====================

func TestConnector_Connect_Failures(t *testing.T) {
	key, _ := crypto.GenerateKey()
	account := crypto.PubkeyToAddress(key.PublicKey)

	noCode := newFakeBackend()
	noCode.code = nil
	_, err := NewConnector(noCode, contractAddr, &keySigners{key: key}, 0, zerolog.Nop()).Connect(context.Background(), account)
	assert.True(t, apperror.HasCode(err, apperror.CodeConnection))

	locked := &keySigners{key: key, err: errors.New("authentication needed: password or unlock")}
	_, err = NewConnector(newFakeBackend(), contractAddr, locked, 0, zerolog.Nop()).Connect(context.Background(), account)
	assert.True(t, apperror.HasCode(err, apperror.CodeConnection))

	other := common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	_, err = NewConnector(newFakeBackend(), contractAddr, &keySigners{key: key}, 0, zerolog.Nop()).Connect(context.Background(), other)
	assert.True(t, apperror.HasCode(err, apperror.CodeConnection))
}

func TestConnector_Health(t *testing.T) {
	c := NewConnector(newFakeBackend(), contractAddr, &keySigners{}, 0, zerolog.Nop())
	assert.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "ledger", c.Name())
}
