package ml

import (
	"math"
	"math/rand"
)

// KMeansResult asignaciones de cluster por fila y centroides finales.
type KMeansResult struct {
	K           int
	Assignments []int
	Centroids   [][]float64
}

// KMeans agrupa x en k clusters con semilla fija para reproducibilidad.
// k se recorta a len(x) para seguir bien definido en poblaciones diminutas;
// n=0 devuelve un resultado vacío y n=1 un único cluster degenerado. Nunca
// entra en pánico para n>=0.
func KMeans(x [][]float64, k int, seed int64, maxIterations int) KMeansResult {
	n := len(x)
	if n == 0 || k < 1 {
		return KMeansResult{K: 0, Assignments: []int{}}
	}
	if k > n {
		k = n
	}

	rng := rand.New(rand.NewSource(seed))
	cols := len(x[0])

	// Inicialización: k puntos distintos elegidos por permutación determinista.
	perm := rng.Perm(n)
	centroids := make([][]float64, k)
	for c := 0; c < k; c++ {
		centroids[c] = append([]float64(nil), x[perm[c]]...)
	}

	assignments := make([]int, n)
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i := range x {
			best, bestDist := 0, math.Inf(1)
			for c := range centroids {
				d := sqDist(x[i], centroids[c])
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// Recalcular centroides; un cluster que quedó vacío conserva el suyo.
		counts := make([]int, k)
		sums := make([][]float64, k)
		for c := range sums {
			sums[c] = make([]float64, cols)
		}
		for i, c := range assignments {
			counts[c]++
			for j := 0; j < cols; j++ {
				sums[c][j] += x[i][j]
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for j := 0; j < cols; j++ {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}

	return KMeansResult{K: k, Assignments: assignments, Centroids: centroids}
}

func sqDist(a, b []float64) float64 {
	var s float64
	for j := range a {
		d := a[j] - b[j]
		s += d * d
	}
	return s
}
