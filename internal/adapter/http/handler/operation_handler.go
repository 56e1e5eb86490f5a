package handler

import (
	"strconv"

	"marketplace-sync/internal/adapter/http/dto"
	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/pkg/apperror"
	"marketplace-sync/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxOperationPage = 200

// OperationHandler reads the operation journal.
type OperationHandler struct {
	repo ports.OperationRepository
}

// NewOperationHandler creates a new OperationHandler.
func NewOperationHandler(repo ports.OperationRepository) *OperationHandler {
	return &OperationHandler{repo: repo}
}

// List handles GET /api/v1/operations?account=&kind=&limit=.
func (h *OperationHandler) List(c *gin.Context) {
	var params ports.OperationListParams

	if account := c.Query("account"); account != "" {
		if !common.IsHexAddress(account) {
			response.Error(c, apperror.Validation("account must be a hex address"))
			return
		}
		hex := common.HexToAddress(account).Hex()
		params.Account = &hex
	}
	if kind := c.Query("kind"); kind != "" {
		k := domain.OperationKind(kind)
		switch k {
		case domain.OperationUpload, domain.OperationList, domain.OperationPurchase, domain.OperationTransfer:
			params.Kind = &k
		default:
			response.Error(c, apperror.Validation("kind must be one of upload, list, purchase, transfer"))
			return
		}
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > maxOperationPage {
			response.Error(c, apperror.Validation("limit must be between 1 and 200"))
			return
		}
		params.Limit = n
	}

	recs, err := h.repo.ListRecent(c.Request.Context(), params)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	items := make([]dto.OperationRecordResponse, 0, len(recs))
	for _, rec := range recs {
		items = append(items, dto.NewOperationRecordResponse(rec))
	}
	response.OK(c, items)
}

// Get handles GET /api/v1/operations/:id.
func (h *OperationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("operation id must be a UUID"))
		return
	}

	rec, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if rec == nil {
		response.Error(c, apperror.ErrNotFound("Operation"))
		return
	}
	response.OK(c, dto.NewOperationRecordResponse(*rec))
}
