package handlers

import (
	"net/http"

	"project-records/internal/services"

	"github.com/gin-gonic/gin"
)

//
// СОТРУДНИКИ
//

func (h *Handlers) ListEmployees(c *gin.Context) {
	list, err := h.Employees.ListEmployees(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, http.StatusOK, list, "")
}

func (h *Handlers) GetEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	emp, err := h.Employees.GetEmployee(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if emp == nil {
		notFound(c, "employee")
		return
	}
	success(c, http.StatusOK, emp, "")
}

func (h *Handlers) CreateEmployee(c *gin.Context) {
	var form services.EmployeeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, http.StatusBadRequest, err, "invalid employee form")
		return
	}

	emp, err := h.Employees.CreateEmployee(c.Request.Context(), form)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, http.StatusCreated, emp, "employee created")
}

func (h *Handlers) UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var form services.EmployeeUpdateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, http.StatusBadRequest, err, "invalid employee form")
		return
	}

	emp, err := h.Employees.UpdateEmployee(c.Request.Context(), id, form)
	if err != nil {
		serviceError(c, err)
		return
	}
	if emp == nil {
		notFound(c, "employee")
		return
	}
	success(c, http.StatusOK, emp, "employee updated")
}

func (h *Handlers) DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.Employees.DeleteEmployee(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !deleted {
		notFound(c, "employee")
		return
	}
	c.Status(http.StatusNoContent)
}
