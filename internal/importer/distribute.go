package importer

import (
	"fmt"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
)

// Distribute splits total across n work orders in half-hour shares.
//
// Every share but the last gets the equal share rounded down to a half-hour
// (never below one half-hour); the last takes the exact remainder. When the
// remainder is under half an hour, half-hours are moved to it from the
// largest earlier share, earliest first among equals. Shares always sum to
// total exactly. total must itself be a multiple of 0.5.
func Distribute(total domain.Hours, n int) ([]domain.Hours, error) {
	if n < 1 {
		return nil, fmt.Errorf("distributing across %d work orders", n)
	}
	if !total.IsHalfMultiple() {
		return nil, fmt.Errorf("total %s is not a multiple of 0.5", total)
	}
	units := total.HalfUnits()
	if units < int64(n) {
		return nil, fmt.Errorf("%w: %sh across %d work orders", ErrUndistributable, total, n)
	}

	share := units / int64(n)
	if share < 1 {
		share = 1
	}
	halves := make([]int64, n)
	for i := 0; i < n-1; i++ {
		halves[i] = share
	}
	halves[n-1] = units - share*int64(n-1)

	for halves[n-1] < 1 {
		donor := largest(halves[:n-1])
		if donor < 0 || halves[donor] <= 1 {
			return nil, fmt.Errorf("%w: %sh across %d work orders", ErrUndistributable, total, n)
		}
		halves[donor]--
		halves[n-1]++
	}

	shares := make([]domain.Hours, n)
	var sum domain.Hours
	for i, h := range halves {
		shares[i] = domain.HoursFromHalfUnits(h)
		sum += shares[i]
	}
	if sum != total {
		return nil, fmt.Errorf("distribution of %sh summed to %sh", total, sum)
	}
	return shares, nil
}

// largest returns the index of the first maximal element, or -1 when empty.
func largest(xs []int64) int {
	idx := -1
	for i, x := range xs {
		if idx < 0 || x > xs[idx] {
			idx = i
		}
	}
	return idx
}
