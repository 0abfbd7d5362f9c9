package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/restobooks/backoffice_backend/models"
)

type attachDocumentsRequest struct {
	ReferenceType string                `json:"reference_type" binding:"required"`
	ReferenceID   int                   `json:"reference_id" binding:"required"`
	Documents     []*models.NewDocument `json:"documents" binding:"required"`
}

func attachDocumentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req attachDocumentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		if !documentReferenceTypes[req.ReferenceType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reference type"})
			return
		}
		docs, err := models.AttachDocuments(c.Request.Context(), req.ReferenceType, req.ReferenceID, req.Documents)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": docs})
	}
}

func listDocumentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		referenceType := c.Query("reference_type")
		if !documentReferenceTypes[referenceType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reference type"})
			return
		}
		referenceId, err := strconv.Atoi(c.Query("reference_id"))
		if err != nil || referenceId <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reference id"})
			return
		}
		docs, err := models.GetDocumentsFor(c.Request.Context(), referenceType, referenceId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": docs})
	}
}

func getDocumentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		document, err := models.GetDocument(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": document})
	}
}

func deleteDocumentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		document, err := models.DeleteDocument(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": document})
	}
}
