package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
)

// ErrorHandler translates failures into the JSON error envelope. Domain
// errors map per the storage contract: validation and duplicate-code
// failures are client errors, missing entities are 404, anything else is a
// generic server error.
func ErrorHandler(log Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		resp := &ResponseError{
			Status:  http.StatusInternalServerError,
			Success: false,
			Err:     err,
		}

		var validationErr *models.ValidationError
		var duplicateErr *models.DuplicateCodeError
		var httpErr *echo.HTTPError
		var respErr *ResponseError

		switch {
		case errors.Is(err, models.ErrNotFound):
			resp.Status = http.StatusNotFound
			resp.ErrorCode = "not_found"
			resp.ErrorMessage = "not found"
		case errors.As(err, &validationErr):
			resp.Status = http.StatusBadRequest
			resp.ErrorCode = "validation_error"
			resp.ErrorMessage = validationErr.Message
		case errors.As(err, &duplicateErr):
			resp.Status = http.StatusBadRequest
			resp.ErrorCode = "duplicate_code"
			resp.ErrorMessage = duplicateErr.Error()
		case errors.As(err, &httpErr):
			resp.Status = httpErr.Code
			resp.ErrorMessage = fmt.Sprint(httpErr.Message)
		case errors.As(err, &respErr):
			resp = respErr
		default:
			if errors.Is(err, context.Canceled) && c.Request().Context().Err() == context.Canceled {
				resp.Status = 499
			} else {
				resp.ErrorCode = "internal_error"
				resp.ErrorMessage = "internal server error"
			}
		}

		if resp.Status == http.StatusNotFound && isNotFoundHandler(c.Handler()) {
			resp.ErrorMessage = "no route matched"
		}

		if err := c.JSON(resp.Status, resp); err != nil {
			log.Errorw("could not response", "code", resp.Status, "response_body", resp)
		}
	}
}
