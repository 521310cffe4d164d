package ml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddzzzz/Software-Monitization/internal/domain/ml"
)

func TestTrainTestSplit_ParticionDisjunta(t *testing.T) {
	train, test := ml.TrainTestSplit(10, 0.3, 42)

	assert.Len(t, test, 3)
	assert.Len(t, train, 7)

	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, train...), test...) {
		assert.False(t, seen[i], "índice repetido entre particiones")
		seen[i] = true
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 10)
	}
	assert.Len(t, seen, 10)
}

func TestTrainTestSplit_Determinista(t *testing.T) {
	trainA, testA := ml.TrainTestSplit(20, 0.3, 42)
	trainB, testB := ml.TrainTestSplit(20, 0.3, 42)
	assert.Equal(t, trainA, trainB)
	assert.Equal(t, testA, testB)
}

func TestTrainTestSplit_PoblacionMinima(t *testing.T) {
	train, test := ml.TrainTestSplit(2, 0.3, 42)
	assert.Len(t, test, 1, "con n>=2 la prueba recibe al menos una fila")
	assert.Len(t, train, 1)

	train, test = ml.TrainTestSplit(0, 0.3, 42)
	assert.Empty(t, train)
	assert.Empty(t, test)
}

func TestEvaluateBinary_MatrizConocida(t *testing.T) {
	// tp=1, fn=1, tn=2, fp=0
	m := ml.EvaluateBinary([]int{1, 1, 0, 0}, []int{1, 0, 0, 0})

	assert.InDelta(t, 0.75, m.Accuracy, 1e-9)
	assert.InDelta(t, 1.0, m.Precision, 1e-9)
	assert.InDelta(t, 0.5, m.Recall, 1e-9)
	assert.InDelta(t, 2.0/3.0, m.F1, 1e-9)
}

// Sin positivos predichos ni reales: las divisiones quedan en 0, nunca NaN.
func TestEvaluateBinary_DenominadoresCero(t *testing.T) {
	m := ml.EvaluateBinary([]int{0, 0}, []int{0, 0})

	assert.Equal(t, 1.0, m.Accuracy)
	assert.Equal(t, 0.0, m.Precision)
	assert.Equal(t, 0.0, m.Recall)
	assert.Equal(t, 0.0, m.F1)
}

func TestEvaluateBinary_EntradasInvalidas(t *testing.T) {
	require.Equal(t, ml.BinaryMetrics{}, ml.EvaluateBinary(nil, nil))
	require.Equal(t, ml.BinaryMetrics{}, ml.EvaluateBinary([]int{1}, []int{1, 0}))
}
