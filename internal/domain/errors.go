package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Taxonomía del motor analítico:
//   - ErrNotFound: el cliente/proveedor pedido no existe en las tablas canónicas.
//   - ErrInsufficientData: menos muestras que el mínimo viable del componente
//     (entrenamiento con <10 filas, canastas de un solo producto, etc.).
//   - ErrDegenerateInput: entrada matemáticamente degenerada (etiquetas de una
//     sola clase, varianza cero); los componentes caen a un default bien definido
//     en vez de propagar este error hacia afuera.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrCustomerNotFound = errors.New("cliente no encontrado")
	ErrVendorNotFound   = errors.New("proveedor no encontrado")
	ErrInsufficientData = errors.New("datos insuficientes para el análisis")
	ErrDegenerateInput  = errors.New("entrada degenerada")
	ErrInvalidInput     = errors.New("entrada inválida")
)
