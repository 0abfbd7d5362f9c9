package main

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/restobooks/backoffice_backend/models"
	"github.com/restobooks/backoffice_backend/utils"
)

func listSalesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sales, err := models.GetSales(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": sales})
	}
}

func createSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSale
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		sale, err := models.CreateSale(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": sale})
	}
}

func getSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		sale, err := models.GetSale(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": sale})
	}
}

func updateSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewSale
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		sale, err := models.UpdateSale(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": sale})
	}
}

func deleteSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		sale, err := models.DeleteSale(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": sale})
	}
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Receipt</title></head>
<body style="font-family:monospace;width:280px">
<h3 style="text-align:center">{{.BusinessName}}</h3>
<p style="text-align:center">{{.IssuedAt}}</p>
<hr>
<table style="width:100%">
{{range .Lines}}<tr>
<td>{{.ItemName}} x{{.Quantity}}</td>
<td style="text-align:right">{{.LineTotal}}</td>
</tr>{{end}}
</table>
<hr>
{{if .HasDiscount}}<p>Full price: {{.FullPriceTotal}}<br>Discount: -{{.DiscountTotal}} ({{.DiscountPct}}%)</p>{{end}}
<p style="font-weight:bold">TOTAL: {{.Total}}</p>
{{if .ServedBy}}<p>Servi par {{.ServedBy}}</p>{{end}}
<p style="text-align:center">Merci de votre visite</p>
</body>
</html>`))

type receiptLine struct {
	ItemName  string
	Quantity  string
	LineTotal string
}

type receiptData struct {
	BusinessName   string
	ServedBy       string
	IssuedAt       string
	Lines          []receiptLine
	HasDiscount    bool
	FullPriceTotal string
	DiscountTotal  string
	DiscountPct    string
	Total          string
}

func renderReceipt(businessName, servedBy string, sales []*models.Sale, totals *models.PosTotals) (string, error) {
	data := receiptData{
		BusinessName:   businessName,
		ServedBy:       servedBy,
		IssuedAt:       time.Now().Format("02/01/2006 15:04"),
		HasDiscount:    totals.DiscountTotal.IsPositive(),
		FullPriceTotal: totals.FullPriceTotal.StringFixed(2),
		DiscountTotal:  totals.DiscountTotal.StringFixed(2),
		DiscountPct:    totals.DiscountPct.StringFixed(2),
		Total:          totals.Total.StringFixed(2),
	}
	for _, s := range sales {
		data.Lines = append(data.Lines, receiptLine{
			ItemName:  s.ItemName,
			Quantity:  s.QuantitySold.String(),
			LineTotal: s.TotalValueItem.StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func posCheckoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.PosCheckout
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		sales, totals, err := models.CheckoutPosOrder(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}

		businessName := ""
		if businessId, ok := utils.GetBusinessIdFromContext(c.Request.Context()); ok {
			if business, err := models.GetBusinessById(c.Request.Context(), businessId); err == nil {
				businessName = business.Name
			}
		}
		servedBy, _ := utils.GetUserNameFromContext(c.Request.Context())
		receipt, err := renderReceipt(businessName, servedBy, sales, totals)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"data": gin.H{
			"sales":        sales,
			"totals":       totals,
			"receipt_html": receipt,
		}})
	}
}
