package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-foh/controllers"
	"github.com/yeremiapane/restaurant-foh/models"
	"github.com/yeremiapane/restaurant-foh/services"
	"github.com/yeremiapane/restaurant-foh/utils"
)

func setupTestDBForTables(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Table{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db, services.NewAssignmentRegistry(db))

	router.POST("/tables", tableCtrl.CreateTable)
	router.POST("/tables/batch", tableCtrl.BatchTables)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/:table_number", tableCtrl.GetTableByNumber)
	router.DELETE("/tables/:table_number", tableCtrl.DeleteTable)
	router.POST("/tables/:table_number/assign", tableCtrl.AssignWaiter)
	router.POST("/tables/:table_number/unassign", tableCtrl.UnassignWaiter)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		assert.NoError(t, err)
	}
	req, err := http.NewRequest(method, url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func tableNumbersFrom(t *testing.T, w *httptest.ResponseRecorder) []float64 {
	t.Helper()
	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	raw := data["table_numbers"].([]interface{})
	numbers := make([]float64, 0, len(raw))
	for _, n := range raw {
		numbers = append(numbers, n.(float64))
	}
	return numbers
}

func TestCreateAndGetTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "tc_create")
	router := setupTableRouter(db)

	w := doJSON(t, router, "POST", "/tables", map[string]interface{}{"table_number": 7})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", "/tables/7", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(7), data["table_number"])
	assert.Equal(t, models.TableFree, data["status"])
}

func TestBatchAddRangeSkipsExisting(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "tc_batchadd")
	router := setupTableRouter(db)

	for _, n := range []int{1, 2, 3} {
		db.Create(&models.Table{TableNumber: n, Status: models.TableFree})
	}

	w := doJSON(t, router, "POST", "/tables/batch", map[string]interface{}{
		"mode": "range", "selection": "1-5", "op": "add",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []float64{4, 5}, tableNumbersFrom(t, w))

	var count int64
	db.Model(&models.Table{}).Count(&count)
	assert.Equal(t, int64(5), count)
}

func TestBatchRemoveListOnlyExisting(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "tc_batchremove")
	router := setupTableRouter(db)

	for _, n := range []int{1, 2, 3} {
		db.Create(&models.Table{TableNumber: n, Status: models.TableFree})
	}

	w := doJSON(t, router, "POST", "/tables/batch", map[string]interface{}{
		"mode": "list", "selection": "2,5,9", "op": "remove",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []float64{2}, tableNumbersFrom(t, w))

	var count int64
	db.Model(&models.Table{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestBatchEmptyResultIsNotAnError(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "tc_batchempty")
	router := setupTableRouter(db)

	db.Create(&models.Table{TableNumber: 1, Status: models.TableFree})

	// Semua target sudah ada -> tidak ada yang dikerjakan
	w := doJSON(t, router, "POST", "/tables/batch", map[string]interface{}{
		"mode": "single", "selection": "1", "op": "add",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Nothing to do", resp.Message)
}

func TestBatchInvalidSelectionRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "tc_batchinvalid")
	router := setupTableRouter(db)

	for _, payload := range []map[string]interface{}{
		{"mode": "grid", "selection": "1-5", "op": "add"},
		{"mode": "range", "selection": "a-5", "op": "add"},
		{"mode": "single", "selection": "   ", "op": "add"},
	} {
		w := doJSON(t, router, "POST", "/tables/batch", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestAssignWaiterSingleOwnerRule(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "tc_assign")
	router := setupTableRouter(db)

	waiter := models.User{Name: "Andi", Email: "andi@tables.test", Password: "x", Role: models.RoleWaiter}
	other := models.User{Name: "Budi", Email: "budi@tables.test", Password: "x", Role: models.RoleWaiter}
	db.Create(&waiter)
	db.Create(&other)
	db.Create(&models.Table{TableNumber: 3, Status: models.TableFree})

	w := doJSON(t, router, "POST", "/tables/3/assign", map[string]interface{}{"waiter_id": waiter.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	// Idempotent untuk waiter yang sama
	w = doJSON(t, router, "POST", "/tables/3/assign", map[string]interface{}{"waiter_id": waiter.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	// Waiter lain ditolak dengan kind
	w = doJSON(t, router, "POST", "/tables/3/assign", map[string]interface{}{"waiter_id": other.ID})
	assert.Equal(t, http.StatusConflict, w.Code)
	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "table_already_assigned", resp.Kind)

	// Setelah unassign, waiter lain boleh masuk
	w = doJSON(t, router, "POST", "/tables/3/unassign", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "POST", "/tables/3/assign", map[string]interface{}{"waiter_id": other.ID})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "tc_delete")
	router := setupTableRouter(db)

	db.Create(&models.Table{TableNumber: 4, Status: models.TableFree})

	w := doJSON(t, router, "DELETE", "/tables/4", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/tables/4", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignWaiterUnknownTableReturns404(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "tc_assignnotable")
	router := setupTableRouter(db)

	waiter := models.User{Name: "Andi", Email: "andi@unknown.test", Password: "x", Role: models.RoleWaiter}
	db.Create(&waiter)

	w := doJSON(t, router, "POST", "/tables/42/assign", map[string]interface{}{"waiter_id": waiter.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "table_not_found", resp.Kind)
}
