// Package ml primitivas numéricas del motor analítico: estandarización,
// regresión logística, k-means y minado de reglas de asociación. Todo es
// determinista (semillas fijas) y puro: sin estado entre llamadas.
package ml

import "math"

// Scaler estandarización z-score por columna. Se ajusta una sola vez con los
// datos de entrenamiento y se reutiliza tal cual en predicción.
type Scaler struct {
	Mean []float64
	Std  []float64
}

// FitScaler calcula media y desviación estándar por columna. Columnas de
// varianza cero quedan con std 1 para que Transform sea siempre finita.
func FitScaler(x [][]float64) *Scaler {
	if len(x) == 0 {
		return &Scaler{}
	}
	cols := len(x[0])
	s := &Scaler{
		Mean: make([]float64, cols),
		Std:  make([]float64, cols),
	}
	n := float64(len(x))

	for j := 0; j < cols; j++ {
		var sum float64
		for i := range x {
			sum += x[i][j]
		}
		s.Mean[j] = sum / n
	}
	for j := 0; j < cols; j++ {
		var sq float64
		for i := range x {
			d := x[i][j] - s.Mean[j]
			sq += d * d
		}
		std := math.Sqrt(sq / n)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.Std[j] = std
	}
	return s
}

// Transform estandariza una fila.
func (s *Scaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out
}

// TransformAll estandariza una matriz completa.
func (s *Scaler) TransformAll(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i := range x {
		out[i] = s.Transform(x[i])
	}
	return out
}
