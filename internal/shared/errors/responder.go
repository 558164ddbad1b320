package errors

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Respond writes problem as application/problem+json. Instance defaults to the
// request path.
func Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// ErrorMapper translates a use case error into a problem. It reports false for
// errors it does not recognise.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder asks each mapper in turn and answers 500 for anything
// unmapped. Unmapped errors are logged, never echoed to the client.
type ChainedResponder struct {
	baseURI string
	mappers []ErrorMapper
	logger  *slog.Logger
}

// NewChainedResponder builds a responder. A non-empty baseURI is prefixed to
// relative problem types.
func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{baseURI: strings.TrimRight(baseURI, "/"), mappers: mappers}
}

// WithLogger sets the logger for unmapped errors; slog.Default is used otherwise.
func (r *ChainedResponder) WithLogger(logger *slog.Logger) *ChainedResponder {
	r.logger = logger
	return r
}

// RespondError writes the problem for err.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	problem, ok := r.resolve(err)
	if !ok {
		r.log(c, err)
		problem = ErrInternal.WithDetail("an unexpected error occurred")
	}
	if r.baseURI != "" && strings.HasPrefix(problem.Type, "/") {
		problem.Type = r.baseURI + problem.Type
	}
	Respond(c, problem)
}

// StatusOf reports the HTTP status RespondError would answer with.
func (r *ChainedResponder) StatusOf(err error) int {
	if problem, ok := r.resolve(err); ok {
		return problem.Status
	}
	return ErrInternal.Status
}

func (r *ChainedResponder) resolve(err error) (ProblemDetail, bool) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem, true
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem, true
	}
	return ProblemDetail{}, false
}

func (r *ChainedResponder) log(c *gin.Context, err error) {
	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx := context.Background()
	attrs := []slog.Attr{slog.String("error", err.Error())}
	if c.Request != nil {
		ctx = c.Request.Context()
		attrs = append(attrs, slog.String("method", c.Request.Method), slog.String("path", c.Request.URL.Path))
	}
	logger.LogAttrs(ctx, slog.LevelError, "unmapped error answered with 500", attrs...)
}
