package entity

// Supplier proveedor de productos. La relación con productos es muchos-a-muchos
// (tabla supplier_products); se vincula automáticamente al crear o recibir una OC.
type Supplier struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	RUC             string
	ContactName     string
	ContactPosition string
	IsActive        bool
	ProductIDs      []string
	ProductNames    []string // denormalizado en listados
}
