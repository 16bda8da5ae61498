package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-foh/models"
)

func seedStaffAndTable(t *testing.T, db *gorm.DB) (waiter, other, manager models.User) {
	t.Helper()
	waiter = models.User{Name: "Andi", Email: "andi@example.com", Password: "x", Role: models.RoleWaiter}
	other = models.User{Name: "Budi", Email: "budi@example.com", Password: "x", Role: models.RoleWaiter}
	manager = models.User{Name: "Citra", Email: "citra@example.com", Password: "x", Role: models.RoleManager}
	for _, u := range []*models.User{&waiter, &other, &manager} {
		if err := db.Create(u).Error; err != nil {
			t.Fatal(err)
		}
	}
	if err := db.Create(&models.Table{TableNumber: 3, Status: models.TableFree}).Error; err != nil {
		t.Fatal(err)
	}
	return waiter, other, manager
}

func TestAssignAndOwnerOf(t *testing.T) {
	db := setupServiceDB(t, "ar_assign")
	waiter, _, _ := seedStaffAndTable(t, db)
	reg := NewAssignmentRegistry(db)

	table, err := reg.Assign(3, waiter.ID)
	assert.NoError(t, err)
	assert.NotNil(t, table.WaiterID)
	assert.Equal(t, waiter.ID, *table.WaiterID)

	owner, err := reg.OwnerOf(3)
	assert.NoError(t, err)
	assert.NotNil(t, owner)
	assert.Equal(t, waiter.ID, *owner)
}

func TestAssignIdempotentForSameWaiter(t *testing.T) {
	db := setupServiceDB(t, "ar_idempotent")
	waiter, _, _ := seedStaffAndTable(t, db)
	reg := NewAssignmentRegistry(db)

	_, err := reg.Assign(3, waiter.ID)
	assert.NoError(t, err)
	_, err = reg.Assign(3, waiter.ID)
	assert.NoError(t, err)
}

func TestAssignRejectsSecondWaiter(t *testing.T) {
	db := setupServiceDB(t, "ar_conflict")
	waiter, other, _ := seedStaffAndTable(t, db)
	reg := NewAssignmentRegistry(db)

	_, err := reg.Assign(3, waiter.ID)
	assert.NoError(t, err)

	_, err = reg.Assign(3, other.ID)
	assert.Error(t, err)
	assert.Equal(t, KindTableAlreadyAssigned, ErrorKind(err))

	// Pemilik tidak berubah
	owner, _ := reg.OwnerOf(3)
	assert.Equal(t, waiter.ID, *owner)
}

func TestAssignRejectsManager(t *testing.T) {
	db := setupServiceDB(t, "ar_manager")
	_, _, manager := seedStaffAndTable(t, db)
	reg := NewAssignmentRegistry(db)

	_, err := reg.Assign(3, manager.ID)
	assert.Error(t, err)

	owner, _ := reg.OwnerOf(3)
	assert.Nil(t, owner)
}

func TestUnassignFreesTableForNewOwner(t *testing.T) {
	db := setupServiceDB(t, "ar_unassign")
	waiter, other, _ := seedStaffAndTable(t, db)
	reg := NewAssignmentRegistry(db)

	_, err := reg.Assign(3, waiter.ID)
	assert.NoError(t, err)

	assert.NoError(t, reg.Unassign(3))
	owner, _ := reg.OwnerOf(3)
	assert.Nil(t, owner)

	// Unassign meja kosong tidak error
	assert.NoError(t, reg.Unassign(3))

	_, err = reg.Assign(3, other.ID)
	assert.NoError(t, err)
}

func TestIsForeignTable(t *testing.T) {
	db := setupServiceDB(t, "ar_foreign")
	waiter, other, _ := seedStaffAndTable(t, db)
	reg := NewAssignmentRegistry(db)

	// Meja tanpa pemilik bukan meja asing
	assert.False(t, reg.IsForeignTable(3, other.ID))

	_, err := reg.Assign(3, waiter.ID)
	assert.NoError(t, err)

	assert.True(t, reg.IsForeignTable(3, other.ID))
	assert.False(t, reg.IsForeignTable(3, waiter.ID))

	// Meja yang tidak ada juga bukan meja asing
	assert.False(t, reg.IsForeignTable(99, other.ID))
}

func TestOwnerOfUnknownTable(t *testing.T) {
	db := setupServiceDB(t, "ar_unknowntable")
	seedStaffAndTable(t, db)
	reg := NewAssignmentRegistry(db)

	owner, err := reg.OwnerOf(42)
	assert.NoError(t, err)
	assert.Nil(t, owner)
}

func TestAssignUnknownTableKind(t *testing.T) {
	db := setupServiceDB(t, "ar_notable")
	waiter, _, _ := seedStaffAndTable(t, db)
	reg := NewAssignmentRegistry(db)

	_, err := reg.Assign(42, waiter.ID)
	assert.Error(t, err)
	assert.Equal(t, KindTableNotFound, ErrorKind(err))

	err = reg.Unassign(42)
	assert.Error(t, err)
	assert.Equal(t, KindTableNotFound, ErrorKind(err))
}
