package ml

import "math/rand"

// TrainTestSplit índices de entrenamiento y prueba con semilla fija.
// testFraction se recorta a (0,1); con n pequeño garantiza al menos una fila
// en cada partición cuando n >= 2.
func TrainTestSplit(n int, testFraction float64, seed int64) (train, test []int) {
	if n == 0 {
		return nil, nil
	}
	if testFraction <= 0 {
		testFraction = 0.3
	}
	if testFraction >= 1 {
		testFraction = 0.3
	}

	testSize := int(float64(n) * testFraction)
	if testSize == 0 && n >= 2 {
		testSize = 1
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	test = append(test, perm[:testSize]...)
	train = append(train, perm[testSize:]...)
	return train, test
}

// BinaryMetrics métricas de clasificación binaria. Divisiones con denominador
// cero devuelven 0, nunca NaN.
type BinaryMetrics struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
}

// EvaluateBinary compara etiquetas verdaderas contra predichas.
func EvaluateBinary(yTrue, yPred []int) BinaryMetrics {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return BinaryMetrics{}
	}

	var tp, tn, fp, fn float64
	for i := range yTrue {
		switch {
		case yTrue[i] == 1 && yPred[i] == 1:
			tp++
		case yTrue[i] == 0 && yPred[i] == 0:
			tn++
		case yTrue[i] == 0 && yPred[i] == 1:
			fp++
		default:
			fn++
		}
	}

	m := BinaryMetrics{
		Accuracy: (tp + tn) / float64(len(yTrue)),
	}
	if tp+fp > 0 {
		m.Precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		m.Recall = tp / (tp + fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
