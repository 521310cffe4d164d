package dataset

import "sync/atomic"

// Store contenedor del snapshot vigente, reemplazado atómicamente al recargar
// el dataset. Los lectores concurrentes siempre ven un snapshot completo:
// nunca un modelo a medio actualizar.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore crea el store con el snapshot inicial.
func NewStore(s *Snapshot) *Store {
	st := &Store{}
	st.current.Store(s)
	return st
}

// Current snapshot vigente. Tratarlo como de solo lectura.
func (st *Store) Current() *Snapshot {
	return st.current.Load()
}

// Replace publica un snapshot nuevo. Los requests en curso terminan con el
// snapshot que tomaron; los siguientes ven el nuevo.
func (st *Store) Replace(s *Snapshot) {
	st.current.Store(s)
}
