package analysis

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"agrisight/pkg/ai"
	"agrisight/pkg/analysis/types"
)

// Status maps an orchestrator error to the HTTP status both analysis
// operations answer with. Bad input is 400; the rest follows ai.HTTPStatus.
func Status(err error) int {
	if invalid(err) {
		return http.StatusBadRequest
	}
	return ai.HTTPStatus(err)
}

// Message is the text placed in the {"error": ...} body.
func Message(err error) string {
	if invalid(err) {
		return err.Error()
	}
	return ai.Message(err)
}

func invalid(err error) bool {
	return errors.Is(err, types.ErrInvalidRequest) || errors.Is(err, ai.ErrBadImage)
}

// Fail writes the operation's failure shape.
func Fail(c echo.Context, err error) error {
	return c.JSON(Status(err), map[string]string{"error": Message(err)})
}
