package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-foh/kds"
	"github.com/yeremiapane/restaurant-foh/models"
	"github.com/yeremiapane/restaurant-foh/services"
	"github.com/yeremiapane/restaurant-foh/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB       *gorm.DB
	Registry *services.AssignmentRegistry
}

func NewTableController(db *gorm.DB, registry *services.AssignmentRegistry) *TableController {
	return &TableController{DB: db, Registry: registry}
}

// CreateTable -> menambahkan satu meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber int     `json:"table_number" binding:"required"`
		DisplayName *string `json:"display_name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.TableNumber <= 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("nomor meja harus positif"))
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Status:      models.TableFree,
		DisplayName: req.DisplayName,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTableCreate(table)

	utils.InfoLogger.Printf("New table created: %d (status=%s)", table.TableNumber, table.Status)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// BatchTables -> tambah/hapus meja sekaligus dari pilihan single/range/list.
// Hasil kosong bukan error: tidak ada yang perlu dikerjakan.
func (tc *TableController) BatchTables(c *gin.Context) {
	var req struct {
		Mode      string `json:"mode" binding:"required"`      // single | range | list
		Selection string `json:"selection" binding:"required"` // "7", "1-10", "2,5,9"
		Op        string `json:"op" binding:"required"`        // add | remove
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var tables []models.Table
	if err := tc.DB.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	existing := make(map[int]bool, len(tables))
	for _, t := range tables {
		existing[t.TableNumber] = true
	}

	numbers, err := utils.ResolveTableSelection(req.Mode, req.Selection, existing, req.Op)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if len(numbers) == 0 {
		utils.RespondJSON(c, http.StatusOK, "Nothing to do", gin.H{
			"table_numbers": []int{},
		})
		return
	}

	switch req.Op {
	case utils.TableOpAdd:
		for _, n := range numbers {
			table := models.Table{TableNumber: n, Status: models.TableFree}
			if err := tc.DB.Create(&table).Error; err != nil {
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
			kds.BroadcastTableCreate(table)
		}
		utils.InfoLogger.Printf("Batch added %d tables: %v", len(numbers), numbers)
		utils.RespondJSON(c, http.StatusCreated, "Tables created", gin.H{
			"table_numbers": numbers,
		})

	case utils.TableOpRemove:
		for _, n := range numbers {
			var table models.Table
			if err := tc.DB.Where("table_number = ?", n).First(&table).Error; err != nil {
				continue
			}
			if err := tc.DB.Delete(&table).Error; err != nil {
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
			kds.BroadcastTableDelete(table)
		}
		utils.InfoLogger.Printf("Batch removed %d tables: %v", len(numbers), numbers)
		utils.RespondJSON(c, http.StatusOK, "Tables removed", gin.H{
			"table_numbers": numbers,
		})
	}
}

// GetAllTables -> menampilkan seluruh meja beserta waiter pemiliknya
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Preload("Waiter").Order("table_number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByNumber -> detail satu meja
func (tc *TableController) GetTableByNumber(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("table_number"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("nomor meja tidak valid"))
		return
	}

	var table models.Table
	if err := tc.DB.Preload("Waiter").Where("table_number = ?", number).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// DeleteTable -> menghapus meja
func (tc *TableController) DeleteTable(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("table_number"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("nomor meja tidak valid"))
		return
	}

	var table models.Table
	if err := tc.DB.Where("table_number = ?", number).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTableDelete(table)

	utils.InfoLogger.Printf("Table %d deleted", table.TableNumber)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"table_number": table.TableNumber,
	})
}

// AssignWaiter -> menetapkan waiter pemilik meja (aturan single-owner)
func (tc *TableController) AssignWaiter(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("table_number"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("nomor meja tidak valid"))
		return
	}

	var req struct {
		WaiterID uint `json:"waiter_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Registry.Assign(number, req.WaiterID)
	if err != nil {
		if services.ErrorKind(err) != "" {
			respondDomainError(c, err)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	kds.BroadcastTableUpdate(*table)

	utils.InfoLogger.Printf("Table %d assigned to waiter %d", number, req.WaiterID)
	utils.RespondJSON(c, http.StatusOK, "Table assigned", table)
}

// UnassignWaiter -> melepaskan pemilik meja
func (tc *TableController) UnassignWaiter(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("table_number"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("nomor meja tidak valid"))
		return
	}

	if err := tc.Registry.Unassign(number); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.InfoLogger.Printf("Table %d unassigned", number)
	utils.RespondJSON(c, http.StatusOK, "Table unassigned", gin.H{
		"table_number": number,
	})
}
