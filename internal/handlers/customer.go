package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// ЗАКАЗЧИКИ (только чтение)
//

func (h *Handlers) ListCustomers(c *gin.Context) {
	list, err := h.Customers.ListCustomers(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	success(c, http.StatusOK, list, "")
}

func (h *Handlers) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := h.Customers.GetCustomer(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if customer == nil {
		notFound(c, "customer")
		return
	}
	success(c, http.StatusOK, customer, "")
}

func (h *Handlers) ListCustomerContacts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	contacts, err := h.Customers.ListContacts(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if contacts == nil {
		notFound(c, "customer")
		return
	}
	success(c, http.StatusOK, contacts, "")
}
