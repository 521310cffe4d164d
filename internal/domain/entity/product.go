package entity

// Product representa un producto de software licenciado.
type Product struct {
	ID       string
	Name     string
	Category string
	VendorID string
}

// Vendor representa el proveedor dueño de uno o más productos.
type Vendor struct {
	ID   string
	Name string
}
