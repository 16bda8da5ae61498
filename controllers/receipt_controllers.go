package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-foh/kds"
	"github.com/yeremiapane/restaurant-foh/models"
	"github.com/yeremiapane/restaurant-foh/services"
	"github.com/yeremiapane/restaurant-foh/utils"
	"gorm.io/gorm"
)

// Pembulatan kas ke kelipatan Rp100 untuk rounded total di struk
const cashRoundingUnit = 100

type ReceiptController struct {
	DB *gorm.DB
}

func NewReceiptController(db *gorm.DB) *ReceiptController {
	return &ReceiptController{DB: db}
}

// GenerateReceipt membuat struk untuk order yang sudah served. Satu order
// satu struk; panggilan kedua mengembalikan struk yang sudah ada.
func (rc *ReceiptController) GenerateReceipt(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := rc.DB.Preload("OrderItems").
		Preload("OrderItems.Menu").
		First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status != models.StatusServed {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("order belum served"))
		return
	}

	// Idempotent: struk sudah ada -> kembalikan yang lama
	var existing models.Receipt
	if err := rc.DB.Preload("ReceiptItems").
		Where("order_id = ?", order.ID).First(&existing).Error; err == nil {
		utils.RespondJSON(c, http.StatusOK, "Receipt already generated", existing)
		return
	}

	var cashReceived int64
	if order.CashReceived != nil {
		cashReceived = *order.CashReceived
	}

	receipt := models.Receipt{
		OrderID:       order.ID,
		Total:         order.TotalAmount,
		RoundedTotal:  services.RoundToCashUnit(order.TotalAmount, cashRoundingUnit),
		AmountPaid:    cashReceived,
		Change:        order.Change(),
		CashierID:     order.CashierID,
		ReceiptNumber: fmt.Sprintf("RCP/%s/%s", time.Now().Format("20060102"), uuid.NewString()[:8]),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	for _, item := range order.OrderItems {
		receipt.ReceiptItems = append(receipt.ReceiptItems, models.ReceiptItem{
			MenuID:    item.MenuID,
			MenuName:  item.Menu.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
			Notes:     item.Notes,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
	}

	if err := rc.DB.Create(&receipt).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastReceipt(receipt)

	utils.InfoLogger.Printf("Receipt %s generated for order #%d", receipt.ReceiptNumber, order.ID)
	utils.RespondJSON(c, http.StatusCreated, "Receipt generated", receipt)
}

// GetReceiptByID -> detail 1 struk
func (rc *ReceiptController) GetReceiptByID(c *gin.Context) {
	receiptID := c.Param("receipt_id")

	var receipt models.Receipt
	if err := rc.DB.Preload("ReceiptItems").
		Preload("Order").
		First(&receipt, receiptID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt detail", receipt)
}

// DownloadReceiptPDF -> render struk sebagai PDF
func (rc *ReceiptController) DownloadReceiptPDF(c *gin.Context) {
	receiptID := c.Param("receipt_id")

	var receipt models.Receipt
	if err := rc.DB.Preload("ReceiptItems").
		Preload("Order").
		First(&receipt, receiptID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Restaurant FOH", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, receipt.ReceiptNumber, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, receipt.CreatedAt.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Meja %d", receipt.Order.TableNumber), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, "Harga", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range receipt.ReceiptItems {
		pdf.CellFormat(90, 6, item.MenuName, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, utils.FormatCurrencyIDR(item.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, utils.FormatCurrencyIDR(item.Subtotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(150, 6, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, utils.FormatCurrencyIDR(receipt.Total), "T", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(150, 6, "Dibayar (tunai)", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, utils.FormatCurrencyIDR(receipt.AmountPaid), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 6, "Kembalian", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, utils.FormatCurrencyIDR(receipt.Change), "", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.CellFormat(0, 6, "Terima kasih atas kunjungan Anda", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", receiptID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
