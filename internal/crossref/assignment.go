package crossref

import "math"

// assignOptimal resolves candidates with a maximum total score assignment and
// returns accepted pairs in candidate order.
func assignOptimal(sorted []candidate, nativeCount, foreignCount int) []candidate {
	if len(sorted) == 0 {
		return nil
	}
	size := max(nativeCount, foreignCount)

	// cost = maxScore - score; pairs without a candidate score 0.
	cost := make([][]float64, size)
	index := make([][]int, size)
	for i := range size {
		cost[i] = make([]float64, size)
		index[i] = make([]int, size)
		for j := range size {
			cost[i][j] = maxScore
			index[i][j] = -1
		}
	}
	for k, c := range sorted {
		cost[c.native][c.foreign] = maxScore - c.result.Score
		index[c.native][c.foreign] = k
	}

	assign := hungarian(cost)

	picked := make([]bool, len(sorted))
	for i, j := range assign {
		if i >= nativeCount || j < 0 || j >= foreignCount {
			continue
		}
		if k := index[i][j]; k >= 0 {
			picked[k] = true
		}
	}
	accepted := make([]candidate, 0, min(nativeCount, foreignCount))
	for k, c := range sorted {
		if picked[k] {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

// hungarian solves the assignment problem for a square cost matrix (minimization).
// Returns a slice assignment[i] = column index chosen for row i, or -1 if unassigned.
func hungarian(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	if len(cost[0]) != n {
		return nil
	}

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
			if j0 == 0 {
				break
			}
		}
	}

	assign := make([]int, n)
	for i := range assign {
		assign[i] = -1
	}
	for j := 1; j <= n; j++ {
		if p[j] > 0 {
			assign[p[j]-1] = j - 1
		}
	}
	return assign
}
