package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/things/:id", handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/things/7", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestRespond_SetsContentTypeAndInstance(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) {
		NewResponder("").Respond(c, NewNotFoundProblem("thing", "7"))
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, "/v1/things/7", problem.Instance)
	assert.Equal(t, "thing", problem.Extensions["resourceType"])
	assert.Equal(t, "7", problem.Extensions["identifier"])
	assert.Equal(t, "thing with identifier '7' not found", problem.Detail)
}

func TestRespond_PrefixesBaseURI(t *testing.T) {
	_, problem := serve(t, func(c *gin.Context) {
		NewResponder("https://errors.example").BadRequest(c, "bad id")
	})

	assert.Equal(t, "https://errors.example"+TypeBadRequest, problem.Type)
	assert.Equal(t, "bad id", problem.Detail)
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	sentinel := errors.New("out of widgets")
	responder := NewChainedResponder("", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, sentinel) {
			return ErrInsufficientStock.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	})

	rec, problem := serve(t, func(c *gin.Context) {
		responder.RespondError(c, sentinel)
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "out of widgets", problem.Detail)

	rec, problem = serve(t, func(c *gin.Context) {
		responder.RespondError(c, errors.New("boom"))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, TypeInternal, problem.Type)
}

func TestWithExtension_DoesNotMutateTemplate(t *testing.T) {
	_ = ErrValidation.WithExtension("field", "name")
	assert.Nil(t, ErrValidation.Extensions)
}
