package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dialogueworks/dialogue-facilitator/errors"
	ucerrors "github.com/dialogueworks/dialogue-facilitator/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}
		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}
	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError maps usecase sentinels onto the HTTP error taxonomy.
// Unknown errors fall through to ErrInternal.
func toAppError(err error, dialogueID, roomID string) errors.AppError {
	switch {
	case stdErrors.Is(err, ucerrors.ErrDialogueNotFound):
		return errors.ErrDialogueNotFound(dialogueID)
	case stdErrors.Is(err, ucerrors.ErrDialogueAlreadyExists):
		return errors.ErrDialogueAlreadyExists(dialogueID)
	case stdErrors.Is(err, ucerrors.ErrDialogueEnded):
		return errors.ErrDialogueEnded(dialogueID)
	case stdErrors.Is(err, ucerrors.ErrRoomNotFound):
		return errors.ErrRoomNotFound(roomID)
	case stdErrors.Is(err, ucerrors.ErrRoomAlreadyExists):
		return errors.ErrRoomAlreadyExists(roomID)
	case stdErrors.Is(err, ucerrors.ErrMaxRoomsReached):
		return errors.ErrMaxRoomsReached(dialogueID)
	default:
		return errors.ErrInternal(err)
	}
}
