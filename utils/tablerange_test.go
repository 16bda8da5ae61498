package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRangeAddSkipsExisting(t *testing.T) {
	existing := map[int]bool{1: true, 2: true, 3: true}

	result, err := ResolveTableSelection(SelectRange, "1-5", existing, TableOpAdd)
	assert.NoError(t, err)
	assert.Equal(t, []int{4, 5}, result)
}

func TestResolveListRemoveKeepsOnlyExisting(t *testing.T) {
	existing := map[int]bool{1: true, 2: true, 3: true}

	result, err := ResolveTableSelection(SelectList, "2,5,9", existing, TableOpRemove)
	assert.NoError(t, err)
	assert.Equal(t, []int{2}, result)
}

func TestResolveSwappedRange(t *testing.T) {
	// Range terbalik ditukar, bukan ditolak
	result, err := ResolveTableSelection(SelectRange, "5-1", map[int]bool{}, TableOpAdd)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, result)
}

func TestResolveSingle(t *testing.T) {
	result, err := ResolveTableSelection(SelectSingle, " 7 ", map[int]bool{}, TableOpAdd)
	assert.NoError(t, err)
	assert.Equal(t, []int{7}, result)
}

func TestResolveListDropsGarbageTokens(t *testing.T) {
	// Token non-angka dan non-positif dibuang diam-diam
	result, err := ResolveTableSelection(SelectList, "3,abc,-2,0,3,4", map[int]bool{}, TableOpAdd)
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 4}, result)
}

func TestResolveEmptyResultIsNotAnError(t *testing.T) {
	existing := map[int]bool{1: true}

	result, err := ResolveTableSelection(SelectSingle, "1", existing, TableOpAdd)
	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestResolveInvalidSelection(t *testing.T) {
	_, err := ResolveTableSelection("bogus", "1-5", map[int]bool{}, TableOpAdd)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = ResolveTableSelection(SelectRange, "abc-5", map[int]bool{}, TableOpAdd)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = ResolveTableSelection(SelectRange, "", map[int]bool{}, TableOpAdd)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = ResolveTableSelection(SelectList, "1,2", map[int]bool{}, "merge")
	assert.ErrorIs(t, err, ErrInvalidSelection)
}
