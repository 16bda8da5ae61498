package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/restaurant-foh/models"
)

func TestComputeTotal(t *testing.T) {
	items := []models.OrderItem{
		{MenuID: 1, Quantity: 2, UnitPrice: 15000},
		{MenuID: 2, Quantity: 1, UnitPrice: 8000},
	}

	total, err := ComputeTotal(items)
	assert.NoError(t, err)
	assert.Equal(t, int64(38000), total)
}

func TestComputeTotalRejectsBadQuantity(t *testing.T) {
	items := []models.OrderItem{
		{MenuID: 1, Quantity: 0, UnitPrice: 15000},
	}

	_, err := ComputeTotal(items)
	assert.Error(t, err)
	assert.Equal(t, KindInvalidLineItem, ErrorKind(err))
}

func TestComputeTotalRejectsNegativePrice(t *testing.T) {
	items := []models.OrderItem{
		{MenuID: 1, Quantity: 1, UnitPrice: -500},
	}

	_, err := ComputeTotal(items)
	assert.Error(t, err)
	assert.Equal(t, KindInvalidLineItem, ErrorKind(err))
}

func TestValidateSettlement(t *testing.T) {
	s, err := ValidateSettlement(38000, 50000)
	assert.NoError(t, err)
	assert.True(t, s.Accepted)
	assert.Equal(t, int64(12000), s.Change)
}

func TestValidateSettlementExactAmount(t *testing.T) {
	// Uang pas diterima, kembalian nol
	s, err := ValidateSettlement(38000, 38000)
	assert.NoError(t, err)
	assert.True(t, s.Accepted)
	assert.Equal(t, int64(0), s.Change)
}

func TestValidateSettlementInsufficient(t *testing.T) {
	_, err := ValidateSettlement(38000, 30000)
	assert.Error(t, err)
	assert.Equal(t, KindInsufficientPayment, ErrorKind(err))
}

func TestRoundToCashUnit(t *testing.T) {
	assert.Equal(t, int64(38000), RoundToCashUnit(38000, 100))
	assert.Equal(t, int64(38000), RoundToCashUnit(38049, 100))
	// Setengah dibulatkan ke atas
	assert.Equal(t, int64(38100), RoundToCashUnit(38050, 100))
	assert.Equal(t, int64(38100), RoundToCashUnit(38051, 100))
	// Unit 1 tidak mengubah apa pun
	assert.Equal(t, int64(38051), RoundToCashUnit(38051, 1))
}
