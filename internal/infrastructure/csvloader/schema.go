package csvloader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/siddzzzz/Software-Monitization/internal/domain"
)

// Resolución de esquema: las columnas se localizan UNA vez por archivo, al
// leer el encabezado, y el resto de la carga indexa por posición. Los nombres
// se normalizan (minúsculas, espacios como guiones bajos) para aceptar las
// variantes de nombrado que traen los exports reales.

// header índice de columnas normalizadas a posición.
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[normalizeColumn(name)] = i
	}
	return h
}

func normalizeColumn(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return strings.TrimPrefix(s, "\uFEFF") // BOM de exports de Excel
}

// col primera candidata presente, o -1.
func (h header) col(candidates ...string) int {
	for _, c := range candidates {
		if i, ok := h[c]; ok {
			return i
		}
	}
	return -1
}

// require como col pero falla si ninguna candidata existe.
func (h header) require(candidates ...string) (int, error) {
	if i := h.col(candidates...); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("%w: falta la columna %q", domain.ErrInvalidInput, candidates[0])
}

// ── Parsers de celdas ─────────────────────────────────────────────────────────

// cell valor de la columna i, o vacío si la fila es corta o i es -1.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseInt(s string) int64 {
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	// Exports de hoja de cálculo serializan enteros como "12.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
