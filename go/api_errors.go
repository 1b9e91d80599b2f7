package inventoryserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/adapters/facade"
	apierrors "github.com/Apurer/go-gin-inventory-api/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("", facadeProblem)

// facadeProblem turns a façade error into a problem document carrying its code.
func facadeProblem(err error) (apierrors.ProblemDetail, bool) {
	var failure facade.Error
	if !errors.As(err, &failure) {
		return apierrors.ProblemDetail{}, false
	}
	var problem apierrors.ProblemDetail
	switch failure.Code {
	case facade.CodeNotFound:
		resource, _ := failure.Extensions["resourceType"].(string)
		problem = apierrors.NewNotFoundProblem(resource, failure.Extensions["identifier"])
	case facade.CodeInsufficientStock:
		problem = apierrors.ErrInsufficientStock
	case facade.CodeValidation:
		problem = apierrors.ErrValidation
	case facade.CodeUnknownOperation:
		problem = apierrors.ErrBadRequest
	default:
		problem = apierrors.ErrInternal
	}
	if problem.Detail == "" {
		problem = problem.WithDetail(failure.Message)
	}
	problem = problem.WithExtension("code", failure.Code)
	for key, value := range failure.Extensions {
		problem = problem.WithExtension(key, value)
	}
	return problem, true
}

// respondResult writes data on success and the first error as a problem otherwise.
func respondResult[T any](c *gin.Context, status int, result facade.Result[T]) {
	if len(result.Errors) > 0 {
		responder.RespondError(c, result.Errors[0])
		return
	}
	c.JSON(status, result.Data)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}
