package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huangang/collabhub/internal/services"
	"github.com/huangang/collabhub/pkg/logger"
	"github.com/huangang/collabhub/pkg/response"
)

// Application codes for the 409 responses. Clients branch on these.
const (
	CodeAlreadyApplied    = 40901
	CodeProjectNotOpen    = 40902
	CodeProjectFull       = 40903
	CodeCapacityExceeded  = 40904
	CodeNotPending        = 40905
	CodeTransientConflict = 40906
)

// toAppError maps a service error onto its HTTP representation.
func toAppError(err error) *response.AppError {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.NewBadRequest(verr.Error())
	case errors.Is(err, services.ErrValidation):
		return response.NewBadRequest(err.Error())
	case errors.Is(err, services.ErrForbidden):
		return response.NewForbidden("forbidden")
	case errors.Is(err, services.ErrNotFound):
		return response.NewNotFound(err.Error())
	case errors.Is(err, services.ErrAlreadyApplied):
		return response.NewConflictCode(CodeAlreadyApplied, services.ErrAlreadyApplied.Error())
	case errors.Is(err, services.ErrProjectNotOpen):
		return response.NewConflictCode(CodeProjectNotOpen, services.ErrProjectNotOpen.Error())
	case errors.Is(err, services.ErrProjectFull):
		return response.NewConflictCode(CodeProjectFull, services.ErrProjectFull.Error())
	case errors.Is(err, services.ErrCapacityExceeded):
		return response.NewConflictCode(CodeCapacityExceeded, services.ErrCapacityExceeded.Error())
	case errors.Is(err, services.ErrNotPending):
		return response.NewConflictCode(CodeNotPending, services.ErrNotPending.Error())
	case errors.Is(err, services.ErrTransientConflict):
		return response.NewConflictCode(CodeTransientConflict, services.ErrTransientConflict.Error())
	case errors.Is(err, services.ErrStoreUnavailable):
		return response.NewUnavailable("service temporarily unavailable")
	default:
		return response.NewServerError("internal server error")
	}
}

// respondError writes err as a unified error response. Server-side failures
// are logged with the full cause since the client only sees a generic message.
func respondError(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.HTTPStatus >= 500 {
		logger.Errorf("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	response.Error(c, appErr)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
