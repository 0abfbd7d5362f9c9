package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/restobooks/backoffice_backend/middlewares"
	"github.com/restobooks/backoffice_backend/utils"
)

func registerRoutes(r *gin.Engine) {
	r.POST("/auth/login", loginHandler())

	api := r.Group("/", middlewares.AuthMiddleware())

	api.POST("/auth/logout", logoutHandler())
	api.POST("/auth/change-password", changePasswordHandler())
	api.GET("/users", listUsersHandler())
	api.POST("/users", createUserHandler())

	api.GET("/business", getBusinessHandler())
	api.PUT("/business", updateBusinessHandler())

	api.GET("/suppliers", listSuppliersHandler())
	api.POST("/suppliers", createSupplierHandler())
	api.GET("/suppliers/:id", getSupplierHandler())
	api.PUT("/suppliers/:id", updateSupplierHandler())
	api.DELETE("/suppliers/:id", deleteSupplierHandler())

	api.GET("/inventory-items", listInventoryItemsHandler())
	api.POST("/inventory-items", createInventoryItemHandler())
	api.GET("/inventory-items/:id", getInventoryItemHandler())
	api.PUT("/inventory-items/:id", updateInventoryItemHandler())
	api.DELETE("/inventory-items/:id", deleteInventoryItemHandler())

	api.GET("/recipes", listRecipesHandler())
	api.POST("/recipes", createRecipeHandler())
	api.GET("/recipes/:id", getRecipeHandler())
	api.PUT("/recipes/:id", updateRecipeHandler())
	api.DELETE("/recipes/:id", deleteRecipeHandler())

	api.GET("/invoices", listInvoicesHandler())
	api.GET("/invoices/due-soon", dueSoonInvoicesHandler())
	api.POST("/invoices", createInvoiceHandler())
	api.GET("/invoices/:id", getInvoiceHandler())
	api.PUT("/invoices/:id", updateInvoiceHandler())
	api.PUT("/invoices/:id/paid", markInvoicePaidHandler())
	api.DELETE("/invoices/:id", deleteInvoiceHandler())

	api.GET("/stock-takes", listStockTakesHandler())
	api.POST("/stock-takes", createStockTakeHandler())
	api.GET("/stock-takes/:id", getStockTakeHandler())
	api.GET("/stock-takes/:id/export", exportStockTakeHandler())
	api.DELETE("/stock-takes/:id", deleteStockTakeHandler())

	api.GET("/sales", listSalesHandler())
	api.POST("/sales", createSaleHandler())
	api.GET("/sales/:id", getSaleHandler())
	api.PUT("/sales/:id", updateSaleHandler())
	api.DELETE("/sales/:id", deleteSaleHandler())
	api.POST("/pos/checkout", posCheckoutHandler())

	api.GET("/family-expenses", listFamilyExpensesHandler())
	api.POST("/family-expenses", createFamilyExpenseHandler())
	api.GET("/family-expenses/:id", getFamilyExpenseHandler())
	api.PUT("/family-expenses/:id", updateFamilyExpenseHandler())
	api.DELETE("/family-expenses/:id", deleteFamilyExpenseHandler())
	api.POST("/family-expenses/project", projectRecurringExpensesHandler())

	api.GET("/agenda-events", listAgendaEventsHandler())
	api.POST("/agenda-events", createAgendaEventHandler())
	api.GET("/agenda-events/:id", getAgendaEventHandler())
	api.PUT("/agenda-events/:id", updateAgendaEventHandler())
	api.DELETE("/agenda-events/:id", deleteAgendaEventHandler())
	api.GET("/agenda-events/upcoming-count", upcomingAgendaCountHandler())

	api.GET("/dashboard/summary", dashboardSummaryHandler())

	api.GET("/documents", listDocumentsHandler())
	api.GET("/documents/:id", getDocumentHandler())
	api.POST("/documents/attach", attachDocumentsHandler())
	api.DELETE("/documents/:id", deleteDocumentHandler())
	api.POST("/uploads/sign", signUploadHandler())
	api.POST("/uploads/complete", completeUploadHandler())
	api.GET("/uploads/object", uploadObjectHandler())
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// respondError maps model errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrorRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
}
