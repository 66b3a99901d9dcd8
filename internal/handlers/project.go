package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"project-records/internal/models"
	"project-records/internal/services"

	"github.com/gin-gonic/gin"
)

//
// СПИСОК ПРОЕКТОВ
//

// ListProjects поддерживает фильтры ?status= и ?customer_id=
func (h *Handlers) ListProjects(c *gin.Context) {
	var filter services.ProjectFilter

	if s := c.Query("status"); s != "" {
		status := models.ProjectStatus(s)
		if !status.Valid() {
			fail(c, http.StatusBadRequest, nil, "invalid status")
			return
		}
		filter.Status = status
	}
	if s := c.Query("customer_id"); s != "" {
		cid, err := strconv.ParseUint(s, 10, 64)
		if err != nil || cid == 0 {
			fail(c, http.StatusBadRequest, nil, "invalid customer_id")
			return
		}
		filter.CustomerID = uint(cid)
	}

	projects, err := h.Projects.ListProjects(c.Request.Context(), filter)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, http.StatusOK, projects, "")
}

func (h *Handlers) GetProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := h.Projects.GetProject(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if project == nil {
		notFound(c, "project")
		return
	}
	success(c, http.StatusOK, project, "")
}

//
// СОЗДАНИЕ ПРОЕКТА
//

func (h *Handlers) CreateProject(c *gin.Context) {
	var form services.ProjectForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, http.StatusBadRequest, err, "invalid project form")
		return
	}
	if strings.TrimSpace(form.CustomerName) == "" {
		fail(c, http.StatusBadRequest, nil, "customer_name is required")
		return
	}

	project, err := h.Projects.CreateProject(c.Request.Context(), form)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.Header("Location", "/api/projects/"+strconv.FormatUint(uint64(project.ID), 10))
	success(c, http.StatusCreated, project, "project created")
}

//
// РЕДАКТИРОВАНИЕ ПРОЕКТА
//

func (h *Handlers) UpdateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var form services.ProjectForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, http.StatusBadRequest, err, "invalid project form")
		return
	}

	project, err := h.Projects.UpdateProject(c.Request.Context(), id, form)
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, http.StatusOK, project, "project updated")
}

//
// УДАЛЕНИЕ ПРОЕКТА
//

func (h *Handlers) DeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.Projects.DeleteProject(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !deleted {
		notFound(c, "project")
		return
	}
	c.Status(http.StatusNoContent)
}
