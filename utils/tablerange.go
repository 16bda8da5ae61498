package utils

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// Mode pemilihan nomor meja pada operasi batch
const (
	SelectSingle = "single"
	SelectRange  = "range"
	SelectList   = "list"
)

// Operasi batch terhadap meja
const (
	TableOpAdd    = "add"
	TableOpRemove = "remove"
)

// ErrInvalidSelection -> input tidak bisa diparse sama sekali (mode tidak
// dikenal, teks kosong, atau range yang ujungnya bukan angka). Berbeda dari
// hasil kosong, yang valid dan berarti "tidak ada yang perlu dikerjakan".
var ErrInvalidSelection = errors.New("pilihan meja tidak valid")

// ResolveTableSelection menerjemahkan teks pilihan meja menjadi himpunan nomor
// yang sudah divalidasi, dedup, dan terurut naik. Token non-angka atau
// non-positif dibuang diam-diam; range terbalik (5-1) ditukar, bukan ditolak.
// Mode add menyisakan nomor yang belum ada, mode remove menyisakan yang ada.
func ResolveTableSelection(mode, raw string, existing map[int]bool, op string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidSelection
	}
	if op != TableOpAdd && op != TableOpRemove {
		return nil, ErrInvalidSelection
	}

	candidates := make(map[int]bool)

	switch mode {
	case SelectSingle:
		if n, ok := parseTableNumber(raw); ok {
			candidates[n] = true
		}

	case SelectRange:
		parts := strings.SplitN(raw, "-", 2)
		if len(parts) != 2 {
			return nil, ErrInvalidSelection
		}
		start, okStart := parseTableNumber(parts[0])
		end, okEnd := parseTableNumber(parts[1])
		if !okStart || !okEnd {
			return nil, ErrInvalidSelection
		}
		// Terima start > end dengan menukar, bukan menolak
		if start > end {
			start, end = end, start
		}
		for n := start; n <= end; n++ {
			candidates[n] = true
		}

	case SelectList:
		for _, token := range strings.Split(raw, ",") {
			if n, ok := parseTableNumber(token); ok {
				candidates[n] = true
			}
		}

	default:
		return nil, ErrInvalidSelection
	}

	result := make([]int, 0, len(candidates))
	for n := range candidates {
		exists := existing[n]
		if op == TableOpAdd && exists {
			continue
		}
		if op == TableOpRemove && !exists {
			continue
		}
		result = append(result, n)
	}

	sort.Ints(result)
	return result, nil
}

func parseTableNumber(token string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
