package handler

import (
	"errors"
	"io"
	"strconv"

	"marketplace-sync/internal/adapter/http/dto"
	"marketplace-sync/internal/adapter/http/middleware"
	"marketplace-sync/internal/core/domain"
	"marketplace-sync/pkg/apperror"
	"marketplace-sync/pkg/response"

	"github.com/gin-gonic/gin"
)

// bindError maps a request decoding failure onto the error taxonomy.
func bindError(err error) error {
	if limit, ok := middleware.BodyTooLarge(err); ok {
		return apperror.ErrPayloadTooLarge(limit)
	}
	return apperror.Validation(err.Error())
}

// bindOptionalJSON decodes a JSON body that may be absent. An empty body,
// chunked or not, leaves obj at its zero value.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return bindError(err)
	}
	return nil
}

func parseItemID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("item id must be a positive integer")
	}
	return id, nil
}

// operationOutcome writes the result of a mutating operation. A failed
// operation still carries its status string in the error envelope.
func operationOutcome(c *gin.Context, res *domain.OperationResult, err error, created bool) {
	if err != nil {
		if res != nil {
			response.ErrorWithData(c, err, dto.NewOperationResponse(res))
			return
		}
		response.Error(c, err)
		return
	}
	if created {
		response.Created(c, dto.NewOperationResponse(res))
		return
	}
	response.OK(c, dto.NewOperationResponse(res))
}
