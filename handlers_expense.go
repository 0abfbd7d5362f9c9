package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/restobooks/backoffice_backend/models"
	"github.com/restobooks/backoffice_backend/workflow"
)

func listFamilyExpensesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		expenses, err := models.GetFamilyExpenses(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": expenses})
	}
}

func createFamilyExpenseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewFamilyExpense
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		expense, err := models.CreateFamilyExpense(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": expense})
	}
}

func getFamilyExpenseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		expense, err := models.GetFamilyExpense(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": expense})
	}
}

func updateFamilyExpenseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewFamilyExpense
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		expense, err := models.UpdateFamilyExpense(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": expense})
	}
}

func deleteFamilyExpenseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		expense, err := models.DeleteFamilyExpense(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": expense})
	}
}

func projectRecurringExpensesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := workflow.ProjectRecurringExpenses(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

func listAgendaEventsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := models.GetAgendaEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": events})
	}
}

func createAgendaEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewAgendaEvent
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		event, err := models.CreateAgendaEvent(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": event})
	}
}

func getAgendaEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		event, err := models.GetAgendaEvent(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": event})
	}
}

func updateAgendaEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewAgendaEvent
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		event, err := models.UpdateAgendaEvent(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": event})
	}
}

func deleteAgendaEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		event, err := models.DeleteAgendaEvent(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": event})
	}
}

func upcomingAgendaCountHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		horizon, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
		count, err := models.CountUpcomingAgendaEvents(c.Request.Context(), horizon)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"count": count}})
	}
}

func dashboardSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "dashboard.summary")
		defer span.End()

		horizon, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
		summary, err := models.GetDashboardSummary(ctx, horizon)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": summary})
	}
}
