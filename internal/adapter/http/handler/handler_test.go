package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marketplace-sync/internal/adapter/http/middleware"
	redisStore "marketplace-sync/internal/adapter/storage/redis"
	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/internal/core/ports/mocks"
	"marketplace-sync/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000b0")
)

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func testCatalog() *domain.Catalog {
	c := domain.EmptyCatalog(alice)
	c.HydratedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.Items = []domain.Item{
		{ID: 1, Name: "Chair", ImageLocator: "ipfs://a", Price: ether(1), Seller: alice, Owner: alice},
		{ID: 2, Name: "Lamp", ImageLocator: "ipfs://b", Price: ether(2), Seller: bob, Owner: alice, IsSold: true},
	}
	c.Owned = []domain.Item{c.Items[0], c.Items[1]}
	return c
}

func newRouter(svc ports.MarketplaceService, opts ...func(*RouterDeps)) *gin.Engine {
	deps := RouterDeps{Marketplace: svc, MaxImageSize: 1024, Logger: zerolog.Nop()}
	for _, o := range opts {
		o(&deps)
	}
	return SetupRouter(deps)
}

func do(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Session ---

func TestSessionGet_Connected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	id := uuid.New()
	svc.EXPECT().Session().Return(domain.SessionInfo{ID: id, Account: alice, Connected: true, EstablishedAt: time.Now()})
	svc.EXPECT().State().Return(domain.OperationStateIdle)
	svc.EXPECT().LastStatus().Return("purchase succeeded in block 4")
	svc.EXPECT().Catalog().Return(testCatalog())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)

	NewSessionHandler(svc).Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, id.String(), data["id"])
	assert.Equal(t, alice.Hex(), data["account"])
	assert.Equal(t, true, data["connected"])
	assert.Equal(t, "IDLE", data["state"])
	assert.Equal(t, "purchase succeeded in block 4", data["status"])
	assert.Equal(t, float64(2), data["catalog_size"])
}

func TestSessionGet_Disconnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	svc.EXPECT().Session().Return(domain.Disconnected())
	svc.EXPECT().State().Return(domain.OperationStateIdle)
	svc.EXPECT().LastStatus().Return("disconnected")
	svc.EXPECT().Catalog().Return(domain.EmptyCatalog(common.Address{}))

	w := do(newRouter(svc), http.MethodGet, "/api/v1/session", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["connected"])
	assert.NotContains(t, data, "account")
}

func TestSessionRefresh_Disconnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().Refresh(gomock.Any()).Return(apperror.ErrDisconnected().WithPhase("refresh"))

	w := do(newRouter(svc), http.MethodPost, "/api/v1/session/refresh", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decode(t, w)
	assert.Equal(t, apperror.CodeDisconnected, resp["error_code"])
	assert.Equal(t, "refresh", resp["phase"])
}

func TestSessionRefresh_LedgerReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().Refresh(gomock.Any()).Return(apperror.ErrLedgerRead(errors.New("node down")).WithPhase("hydrate"))

	w := do(newRouter(svc), http.MethodPost, "/api/v1/session/refresh", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, apperror.CodeLedgerRead, decode(t, w)["error_code"])
}

// --- Catalog views ---

func TestItems_Views(t *testing.T) {
	tests := []struct {
		path string
		ids  []float64
	}{
		{"/api/v1/items", []float64{1, 2}},
		{"/api/v1/items/for-sale", []float64{1}},
		{"/api/v1/items/owned", []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockMarketplaceService(ctrl)
			svc.EXPECT().Catalog().Return(testCatalog())
			svc.EXPECT().TransferTarget(gomock.Any()).Return("", false).AnyTimes()

			w := do(newRouter(svc), http.MethodGet, tt.path, nil)

			require.Equal(t, http.StatusOK, w.Code)
			data := decode(t, w)["data"].(map[string]interface{})
			assert.Equal(t, alice.Hex(), data["account"])
			assert.Equal(t, "2026-03-01T12:00:00Z", data["hydrated_at"])
			items := data["items"].([]interface{})
			require.Len(t, items, len(tt.ids))
			for i, id := range tt.ids {
				assert.Equal(t, id, items[i].(map[string]interface{})["id"])
			}
		})
	}
}

func TestItemGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().Catalog().Return(testCatalog())
	svc.EXPECT().TransferTarget(uint64(2)).Return(bob.Hex(), true)

	w := do(newRouter(svc), http.MethodGet, "/api/v1/items/2", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Lamp", data["name"])
	assert.Equal(t, "2000000000000000000", data["price_wei"])
	assert.Equal(t, "2", data["price"])
	assert.Equal(t, true, data["is_sold"])
	assert.Equal(t, bob.Hex(), data["transfer_target"])
}

func TestItemGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().Catalog().Return(testCatalog())

	w := do(newRouter(svc), http.MethodGet, "/api/v1/items/9", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, decode(t, w)["error_code"])
}

func TestItemGet_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	for _, path := range []string{"/api/v1/items/0", "/api/v1/items/-1", "/api/v1/items/abc"} {
		w := do(newRouter(svc), http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

// --- List ---

func TestCreateItem_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	hash := common.HexToHash("0xfeed")
	svc.EXPECT().ListItem(gomock.Any(), ports.ListItemRequest{Name: "Chair", Locator: "ipfs://a", Price: "1.5"}).
		Return(&domain.OperationResult{
			ID:     uuid.New(),
			Kind:   domain.OperationList,
			State:  domain.OperationStateSucceeded,
			TxHash: &hash,
			Status: "list succeeded in block 3",
		}, nil)

	body, _ := json.Marshal(map[string]string{"name": "Chair", "image": "ipfs://a", "price": "1.5"})
	w := do(newRouter(svc), http.MethodPost, "/api/v1/items", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "SUCCEEDED", data["state"])
	assert.Equal(t, hash.Hex(), data["tx_hash"])
	assert.Equal(t, "list succeeded in block 3", data["status"])
}

func TestCreateItem_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().ListItem(gomock.Any(), gomock.Any()).Times(0)

	bodies := []string{
		`{}`,
		`{"name":"Chair","image":"","price":"1"}`,
		`{"name":"Chair","image":"ipfs://a","price":"-1"}`,
		`not json`,
	}
	for _, b := range bodies {
		w := do(newRouter(svc), http.MethodPost, "/api/v1/items", []byte(b))
		assert.Equal(t, http.StatusBadRequest, w.Code, b)
		assert.Equal(t, apperror.CodeValidation, decode(t, w)["error_code"], b)
	}
}

func TestCreateItem_BodyTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	name := strings.Repeat("x", jsonBodyLimit+10)
	body, _ := json.Marshal(map[string]string{"name": name, "image": "ipfs://a", "price": "1"})
	w := do(newRouter(svc), http.MethodPost, "/api/v1/items", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, apperror.CodeTooLarge, decode(t, w)["error_code"])
}

func TestCreateItem_ExecutionFailureCarriesStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	err := apperror.ErrExecution(errors.New("execution reverted: price must be positive")).WithPhase("list")
	svc.EXPECT().ListItem(gomock.Any(), gomock.Any()).Return(&domain.OperationResult{
		ID:     uuid.New(),
		Kind:   domain.OperationList,
		State:  domain.OperationStateFailed,
		Status: "list failed: Transaction reverted by ledger",
	}, err)

	body, _ := json.Marshal(map[string]string{"name": "Chair", "image": "ipfs://a", "price": "0"})
	w := do(newRouter(svc), http.MethodPost, "/api/v1/items", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode(t, w)
	assert.Equal(t, apperror.CodeExecution, resp["error_code"])
	assert.Equal(t, "list", resp["phase"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "FAILED", data["state"])
	assert.Equal(t, "list failed: Transaction reverted by ledger", data["status"])
}

// --- Purchase ---

func TestPurchase_UsesCatalogPriceWithoutBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().PurchaseItem(gomock.Any(), ports.PurchaseRequest{ItemID: 1}).
		Return(&domain.OperationResult{Kind: domain.OperationPurchase, State: domain.OperationStateSucceeded, ItemID: 1}, nil)

	w := do(newRouter(svc), http.MethodPost, "/api/v1/items/1/purchase", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["item_id"])
}

func TestPurchase_ExplicitPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	want, _ := new(big.Int).SetString("1500000000000000000", 10)
	svc.EXPECT().PurchaseItem(gomock.Any(), gomock.Cond(func(x any) bool {
		req := x.(ports.PurchaseRequest)
		return req.ItemID == 1 && req.Price != nil && req.Price.Cmp(want) == 0
	})).Return(&domain.OperationResult{Kind: domain.OperationPurchase, State: domain.OperationStateSucceeded, ItemID: 1}, nil)

	w := do(newRouter(svc), http.MethodPost, "/api/v1/items/1/purchase", []byte(`{"price":"1.5"}`))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPurchase_SignerRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().PurchaseItem(gomock.Any(), gomock.Any()).Return(
		&domain.OperationResult{Kind: domain.OperationPurchase, State: domain.OperationStateFailed, Status: "purchase failed: Transaction rejected by signer"},
		apperror.ErrRejection(errors.New("user denied")).WithPhase("purchase"),
	)

	w := do(newRouter(svc), http.MethodPost, "/api/v1/items/1/purchase", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperror.CodeRejection, decode(t, w)["error_code"])
}

// --- Transfer ---

func TestSetTransferTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().SetTransferTarget(uint64(3), bob.Hex()).Return(nil)
	svc.EXPECT().TransferTarget(uint64(3)).Return(bob.Hex(), true)

	body, _ := json.Marshal(map[string]string{"to": bob.Hex()})
	w := do(newRouter(svc), http.MethodPut, "/api/v1/items/3/transfer-target", body)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, bob.Hex(), data["transfer_target"])
}

func TestSetTransferTarget_InvalidAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	w := do(newRouter(svc), http.MethodPut, "/api/v1/items/3/transfer-target", []byte(`{"to":"carol"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransfer_FallsBackToPendingTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().TransferItem(gomock.Any(), ports.TransferRequest{ItemID: 3}).
		Return(&domain.OperationResult{Kind: domain.OperationTransfer, State: domain.OperationStateSucceeded, ItemID: 3}, nil)

	w := do(newRouter(svc), http.MethodPost, "/api/v1/items/3/transfer", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTransfer_MissingRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().TransferItem(gomock.Any(), ports.TransferRequest{ItemID: 3}).
		Return(&domain.OperationResult{Kind: domain.OperationTransfer, State: domain.OperationStateFailed, ItemID: 3},
			apperror.Validation("recipient account is required").WithPhase("transfer"))

	w := do(newRouter(svc), http.MethodPost, "/api/v1/items/3/transfer", []byte(`{}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "transfer", decode(t, w)["phase"])
}

func chunkedEmpty(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(""))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPurchase_ChunkedEmptyBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().PurchaseItem(gomock.Any(), ports.PurchaseRequest{ItemID: 1}).
		Return(&domain.OperationResult{Kind: domain.OperationPurchase, State: domain.OperationStateSucceeded, ItemID: 1}, nil)

	w := chunkedEmpty(newRouter(svc), "/api/v1/items/1/purchase")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTransfer_ChunkedEmptyBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().TransferItem(gomock.Any(), ports.TransferRequest{ItemID: 3}).
		Return(&domain.OperationResult{Kind: domain.OperationTransfer, State: domain.OperationStateSucceeded, ItemID: 3}, nil)

	w := chunkedEmpty(newRouter(svc), "/api/v1/items/3/transfer")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPurchase_MalformedBodyStillRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	w := do(newRouter(svc), http.MethodPost, "/api/v1/items/1/purchase", []byte(`{"price":`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Images ---

func multipartImage(t *testing.T, field string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "chair.png")
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().UploadImage(gomock.Any(), gomock.Cond(func(x any) bool {
		img := x.(domain.Image)
		return img.Filename == "chair.png" && string(img.Data) == "png-bytes"
	})).Return(&domain.OperationResult{
		Kind:    domain.OperationUpload,
		State:   domain.OperationStateSucceeded,
		Locator: "https://gateway.example/ipfs/bafkqaaa",
	}, nil)

	body, ct := multipartImage(t, "file", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "https://gateway.example/ipfs/bafkqaaa", data["locator"])
}

func TestUploadImage_TooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	body, ct := multipartImage(t, "file", bytes.Repeat([]byte("x"), 2048))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestUploadImage_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	body, ct := multipartImage(t, "picture", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImage_UploadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().UploadImage(gomock.Any(), gomock.Any()).Return(
		&domain.OperationResult{Kind: domain.OperationUpload, State: domain.OperationStateFailed, Status: "upload failed: Image upload failed"},
		apperror.ErrUpload(errors.New("pinata: 401")),
	)

	body, ct := multipartImage(t, "file", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decode(t, w)
	assert.Equal(t, apperror.CodeUpload, resp["error_code"])
	assert.Equal(t, "upload", resp["phase"])
}

// --- Operations journal ---

func TestOperations_DisabledWithoutJournal(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	w := do(newRouter(svc), http.MethodGet, "/api/v1/operations", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOperations_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	repo := mocks.NewMockOperationRepository(ctrl)

	kind := domain.OperationPurchase
	account := alice.Hex()
	code := apperror.CodeExecution
	repo.EXPECT().ListRecent(gomock.Any(), ports.OperationListParams{Account: &account, Kind: &kind, Limit: 5}).
		Return([]domain.OperationRecord{{
			ID:        uuid.New(),
			SessionID: uuid.New(),
			Kind:      domain.OperationPurchase,
			Account:   account,
			State:     domain.OperationStateFailed,
			Status:    "purchase failed",
			ErrorCode: &code,
			CreatedAt: time.Now(),
		}}, nil)

	router := newRouter(svc, func(d *RouterDeps) { d.Journal = repo })
	w := do(router, http.MethodGet, "/api/v1/operations?account="+strings.ToLower(alice.Hex())+"&kind=purchase&limit=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, apperror.CodeExecution, items[0].(map[string]interface{})["error_code"])
}

func TestOperations_ListValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	repo := mocks.NewMockOperationRepository(ctrl)
	router := newRouter(svc, func(d *RouterDeps) { d.Journal = repo })

	for _, q := range []string{"?kind=refund", "?limit=0", "?limit=500", "?account=bob"} {
		w := do(router, http.MethodGet, "/api/v1/operations"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestOperations_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	repo := mocks.NewMockOperationRepository(ctrl)
	router := newRouter(svc, func(d *RouterDeps) { d.Journal = repo })

	id := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)
	w := do(router, http.MethodGet, "/api/v1/operations/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, errors.New("db down"))
	w = do(router, http.MethodGet, "/api/v1/operations/"+id.String(), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(router, http.MethodGet, "/api/v1/operations/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Rate limiting ---

type refusingLimiter struct{}

func (refusingLimiter) Allow(_ context.Context, _ string, limit int64, window time.Duration) (*redisStore.RateLimitResult, error) {
	return &redisStore.RateLimitResult{Limit: limit, ResetAt: time.Now().Add(window)}, nil
}

func TestRouter_RateLimitsWritesOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)
	svc.EXPECT().Catalog().Return(testCatalog())
	svc.EXPECT().TransferTarget(gomock.Any()).Return("", false).AnyTimes()

	router := newRouter(svc, func(d *RouterDeps) {
		d.RateLimitStore = refusingLimiter{}
		d.RateLimit = middleware.RateLimitRule{Limit: 1, Window: time.Minute}
	})

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/v1/items", nil).Code)
	w := do(router, http.MethodPost, "/api/v1/items/1/purchase", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

// --- Health & metrics ---

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockHealthChecker(ctrl)
	ledger.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	ledger.EXPECT().Name().Return("ledger").AnyTimes()
	pinata := mocks.NewMockHealthChecker(ctrl)
	pinata.EXPECT().Ping(gomock.Any()).Return(nil)
	pinata.EXPECT().Name().Return("pinata").AnyTimes()

	svc := mocks.NewMockMarketplaceService(ctrl)
	router := newRouter(svc, func(d *RouterDeps) { d.HealthCheckers = []ports.HealthChecker{ledger, pinata} })
	w := do(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Equal(t, "unhealthy", deps["ledger"].(map[string]interface{})["status"])
	assert.Equal(t, "healthy", deps["pinata"].(map[string]interface{})["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMarketplaceService(ctrl)

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "marketplace_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	w := do(newRouter(svc, func(d *RouterDeps) { d.Gatherer = reg }), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "marketplace_test_total 1")

	w = do(newRouter(svc), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
