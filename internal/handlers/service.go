package handlers

import (
	"net/http"

	"project-records/internal/services"

	"github.com/gin-gonic/gin"
)

//
// УСЛУГИ ПРОЕКТА
//

func (h *Handlers) ListProjectServices(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	list, err := h.Items.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, http.StatusOK, list, "")
}

// CreateProjectService: несуществующий проект отклоняется базой, отдаём 400
func (h *Handlers) CreateProjectService(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var form services.ServiceForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, http.StatusBadRequest, err, "invalid service form")
		return
	}

	svc, err := h.Items.CreateService(c.Request.Context(), projectID, form)
	if err != nil {
		fail(c, http.StatusBadRequest, nil, "service could not be created")
		return
	}
	success(c, http.StatusCreated, svc, "service created")
}

//
// ВСЕ УСЛУГИ
//

func (h *Handlers) ListServices(c *gin.Context) {
	list, err := h.Items.ListServices(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, http.StatusOK, list, "")
}

func (h *Handlers) GetService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	svc, err := h.Items.GetService(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if svc == nil {
		notFound(c, "service")
		return
	}
	success(c, http.StatusOK, svc, "")
}

func (h *Handlers) UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var form services.ServiceUpdateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, http.StatusBadRequest, err, "invalid service form")
		return
	}

	svc, err := h.Items.UpdateService(c.Request.Context(), id, form)
	if err != nil {
		serviceError(c, err)
		return
	}
	if svc == nil {
		notFound(c, "service")
		return
	}
	success(c, http.StatusOK, svc, "service updated")
}

func (h *Handlers) DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.Items.DeleteService(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !deleted {
		notFound(c, "service")
		return
	}
	c.Status(http.StatusNoContent)
}
