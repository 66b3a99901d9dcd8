package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"project-records/internal/services"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func fail(c *gin.Context, status int, err error, message string) {
	resp := APIResponse{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(status, resp)
}

// serviceError переводит ошибки сервисов в HTTP-коды
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		fail(c, http.StatusNotFound, err, "project not found")
	case errors.Is(err, services.ErrEmployeeInUse):
		fail(c, http.StatusConflict, err, "employee is in use")
	case services.IsRuleError(err):
		fail(c, http.StatusBadRequest, err, "request rejected")
	default:
		fail(c, http.StatusInternalServerError, nil, "internal error")
	}
}

func notFound(c *gin.Context, what string) {
	fail(c, http.StatusNotFound, nil, what+" not found")
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, nil, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
