package ml

import "math"

// Classifier estrategia de clasificación binaria. Dos variantes: el modelo
// logístico entrenado y el de clase mayoritaria para etiquetas degeneradas.
// FitClassifier es el único punto de decisión entre ambas.
type Classifier interface {
	// PredictProba probabilidad de la clase positiva, siempre finita en [0,1].
	PredictProba(row []float64) float64
	// Coefficients pesos por característica; ok=false cuando el modelo no los
	// expone (el fallback mayoritario no tiene drivers).
	Coefficients() (weights []float64, ok bool)
}

// Logistic regresión logística entrenada por descenso de gradiente batch sobre
// características estandarizadas. Inicialización en cero: determinista.
type Logistic struct {
	Weights []float64
	Bias    float64
}

// LogisticOptions hiperparámetros del entrenamiento.
type LogisticOptions struct {
	Iterations   int
	LearningRate float64
}

// DefaultLogisticOptions valores que convergen bien sobre features z-score.
func DefaultLogisticOptions() LogisticOptions {
	return LogisticOptions{Iterations: 1000, LearningRate: 0.1}
}

// Majority clasificador constante: devuelve siempre la probabilidad de la
// única clase observada. Sin coeficientes, sin drivers.
type Majority struct {
	Proba float64
}

// PredictProba implementa Classifier.
func (m Majority) PredictProba([]float64) float64 { return clampProba(m.Proba) }

// Coefficients implementa Classifier: el modelo constante no expone pesos.
func (m Majority) Coefficients() ([]float64, bool) { return nil, false }

// FitClassifier entrena el clasificador sobre x/y. Si las etiquetas contienen
// una sola clase, la logística no está definida y se cae al modelo de clase
// mayoritaria; fallback=true lo reporta para que el caller lo exponga en vez
// de fallar.
func FitClassifier(x [][]float64, y []int, opts LogisticOptions) (c Classifier, fallback bool) {
	if len(x) == 0 {
		return Majority{Proba: 0}, true
	}

	positives := 0
	for _, label := range y {
		if label == 1 {
			positives++
		}
	}
	if positives == 0 {
		return Majority{Proba: 0}, true
	}
	if positives == len(y) {
		return Majority{Proba: 1}, true
	}

	return trainLogistic(x, y, opts), false
}

func trainLogistic(x [][]float64, y []int, opts LogisticOptions) *Logistic {
	n := len(x)
	cols := len(x[0])
	m := &Logistic{Weights: make([]float64, cols)}

	gradW := make([]float64, cols)
	for iter := 0; iter < opts.Iterations; iter++ {
		for j := range gradW {
			gradW[j] = 0
		}
		var gradB float64

		for i := 0; i < n; i++ {
			err := m.PredictProba(x[i]) - float64(y[i])
			for j := 0; j < cols; j++ {
				gradW[j] += err * x[i][j]
			}
			gradB += err
		}

		scale := opts.LearningRate / float64(n)
		for j := 0; j < cols; j++ {
			m.Weights[j] -= scale * gradW[j]
		}
		m.Bias -= scale * gradB
	}
	return m
}

// PredictProba implementa Classifier.
func (m *Logistic) PredictProba(row []float64) float64 {
	z := m.Bias
	for j, w := range m.Weights {
		z += w * row[j]
	}
	return clampProba(sigmoid(z))
}

// Coefficients implementa Classifier.
func (m *Logistic) Coefficients() ([]float64, bool) { return m.Weights, true }

func sigmoid(z float64) float64 {
	// Corte para evitar overflow de exp; la probabilidad ya saturó.
	if z > 35 {
		return 1
	}
	if z < -35 {
		return 0
	}
	return 1 / (1 + math.Exp(-z))
}

// clampProba garantiza resultado finito en [0,1]; los no finitos caen a 0.
func clampProba(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
