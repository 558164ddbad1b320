package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errGone = errors.New("gone")

func serve(t *testing.T, responder *ChainedResponder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/things/1", nil)
	responder.RespondError(c, err)

	var body ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	responder := NewChainedResponder("",
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, errGone) {
				return NewNotFoundProblem("thing", "1"), true
			}
			return ProblemDetail{}, false
		},
	)

	w, body := serve(t, responder, errGone)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	assert.Equal(t, "/v1/things/1", body.Instance)
	assert.Equal(t, "thing", body.Extensions["resourceType"])
}

func TestChainedResponder_FallsBackToInternal(t *testing.T) {
	var logs bytes.Buffer
	responder := NewChainedResponder("https://errors.example.com/").
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	w, body := serve(t, responder, errors.New("dial tcp 10.0.0.1: refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "https://errors.example.com"+TypeInternal, body.Type)
	assert.NotContains(t, body.Detail, "10.0.0.1")
	assert.Contains(t, logs.String(), "10.0.0.1")
	assert.Equal(t, http.StatusInternalServerError, responder.StatusOf(errors.New("x")))
}

func TestRespondError_PassesProblemThrough(t *testing.T) {
	w, body := serve(t, NewChainedResponder(""), ErrInsufficientStock.WithExtension("productId", "p-1"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "p-1", body.Extensions["productId"])
	assert.Equal(t, http.StatusConflict, NewChainedResponder("").StatusOf(ErrInsufficientStock))
}
