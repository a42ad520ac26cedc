// SPDX-License-Identifier: MPL-2.0

package catalog

// Baseline is the module every demeter build includes.
const Baseline Name = "common"

// defaultModules is the demeter-backend module set. Requires edges follow the
// cross-module imports of each module's sources.
var defaultModules = []Module{
	{Name: "common", Description: "Tenancy, auth, error handling and cloud task plumbing shared by every module"},
	{Name: "productos", Description: "Products, categories and families"},
	{Name: "inventario", Description: "Stock batches, movements and estimations", Requires: []Name{"empaquetado", "fotos", "productos", "ubicaciones", "usuarios"}},
	{Name: "ventas", Description: "Sales and sale lines", Requires: []Name{"inventario"}},
	{Name: "costos", Description: "Product cost tracking", Requires: []Name{"productos"}},
	{Name: "usuarios", Description: "Users and roles"},
	{Name: "ubicaciones", Description: "Warehouses, storage areas, locations and bins", Requires: []Name{"empaquetado", "productos"}},
	{Name: "empaquetado", Description: "Packaging catalog: types, materials and colors"},
	{Name: "precios", Description: "Price lists and entries"},
	{Name: "analytics", Description: "Reporting over stock, sales and costs", Requires: []Name{"costos", "inventario", "productos", "ubicaciones", "ventas"}},
	{Name: "fotos", Description: "Photo uploads and ML processing sessions", Requires: []Name{"empaquetado", "productos"}},
	{Name: "chatbot", Description: "Conversational assistant"},
}

// Default returns the demeter-backend catalog with baseline "common".
func Default() *Catalog {
	c, err := New(Baseline, defaultModules)
	if err != nil {
		panic("catalog: invalid default catalog: " + err.Error())
	}
	return c
}
