package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markamcfadden/be-nc-news-project/internal/errs"
	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"github.com/rs/zerolog"
)

// errorTranslator turns an error into a client response, reporting false
// when it does not recognise the error
type errorTranslator func(err error) (*errs.Error, bool)

// translators are tried in order; the first match wins
var translators = []errorTranslator{
	explicitError,
	repository.ClassifyError,
}

func explicitError(err error) (*errs.Error, bool) {
	var e *errs.Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// translateError maps err to the status and body written to the client
func translateError(err error) (*errs.Error, bool) {
	for _, translate := range translators {
		if e, ok := translate(err); ok {
			return e, true
		}
	}
	return errs.ErrInternal, false
}

// errorMiddleware writes the response for the last error a handler recorded
// with c.Error. Unrecognised errors are logged and answered with a 500.
func errorMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		e, known := translateError(err)
		if !known {
			log.Error().
				Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString(requestIDKey)).
				Msg("Unhandled error")
		}

		status := e.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, e)
	}
}
