package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
)

// CantidadMinimaIngrediente is the floor for fractional ingredient quantities
// (ingredients are measured in continuous units — kg, L).
var CantidadMinimaIngrediente = decimal.NewFromFloat(0.1)

// LineaIngrediente is a raw-material line in a quotation cart. Ingredient
// quantities are fractional and each line carries free-text notes.
type LineaIngrediente struct {
	IngredienteID  uuid.UUID
	Nombre         string
	UnidadMedida   string
	PrecioUnitario decimal.Decimal
	Cantidad       decimal.Decimal
	Notas          string
}

// Subtotal returns Cantidad × PrecioUnitario.
func (l LineaIngrediente) Subtotal() decimal.Decimal {
	return l.PrecioUnitario.Mul(l.Cantidad)
}

// CarritoCotizacion combines two parallel line-item kinds — finished products
// and raw ingredients — into one total. Which kinds are allowed is decided by
// the cotizacion type at commit time, not here.
type CarritoCotizacion struct {
	productos    Carrito
	ingredientes []LineaIngrediente
}

// AgregarProducto adds one unit of a finished product (same contract as the
// sales cart, including the stock cap).
func (c *CarritoCotizacion) AgregarProducto(p *model.Producto) {
	c.productos.Agregar(p)
}

// ActualizarCantidadProducto clamps to [1, stock] like the sales cart.
func (c *CarritoCotizacion) ActualizarCantidadProducto(productoID uuid.UUID, cantidad int) {
	c.productos.ActualizarCantidad(productoID, cantidad)
}

// AgregarIngrediente adds an ingredient line with the given fractional
// quantity and notes. Quantities below the 0.1 minimum are raised to it.
func (c *CarritoCotizacion) AgregarIngrediente(ing *model.Ingrediente, cantidad decimal.Decimal, notas string) {
	if cantidad.LessThan(CantidadMinimaIngrediente) {
		cantidad = CantidadMinimaIngrediente
	}
	for i := range c.ingredientes {
		if c.ingredientes[i].IngredienteID == ing.ID {
			c.ingredientes[i].Cantidad = cantidad
			c.ingredientes[i].Notas = notas
			return
		}
	}
	c.ingredientes = append(c.ingredientes, LineaIngrediente{
		IngredienteID:  ing.ID,
		Nombre:         ing.Nombre,
		UnidadMedida:   ing.UnidadMedida,
		PrecioUnitario: ing.PrecioUnitario,
		Cantidad:       cantidad,
		Notas:          notas,
	})
}

// ActualizarCantidadIngrediente sets an ingredient line's quantity, floored
// at the 0.1 minimum. There is no upper bound: quotations are proposals and
// do not reserve stock.
func (c *CarritoCotizacion) ActualizarCantidadIngrediente(ingredienteID uuid.UUID, cantidad decimal.Decimal) {
	for i := range c.ingredientes {
		if c.ingredientes[i].IngredienteID != ingredienteID {
			continue
		}
		if cantidad.LessThan(CantidadMinimaIngrediente) {
			cantidad = CantidadMinimaIngrediente
		}
		c.ingredientes[i].Cantidad = cantidad
		return
	}
}

// QuitarIngrediente removes an ingredient line.
func (c *CarritoCotizacion) QuitarIngrediente(ingredienteID uuid.UUID) {
	for i := range c.ingredientes {
		if c.ingredientes[i].IngredienteID == ingredienteID {
			c.ingredientes = append(c.ingredientes[:i], c.ingredientes[i+1:]...)
			return
		}
	}
}

// Limpiar empties both line kinds.
func (c *CarritoCotizacion) Limpiar() {
	c.productos.Limpiar()
	c.ingredientes = nil
}

// Vacio reports whether the cart has no lines of either kind.
func (c *CarritoCotizacion) Vacio() bool {
	return c.productos.Vacio() && len(c.ingredientes) == 0
}

// LineasProducto returns the product lines in insertion order.
func (c *CarritoCotizacion) LineasProducto() []Linea { return c.productos.Lineas() }

// LineasIngrediente returns the ingredient lines in insertion order.
func (c *CarritoCotizacion) LineasIngrediente() []LineaIngrediente { return c.ingredientes }

// Total sums product-line subtotals and ingredient-line subtotals.
func (c *CarritoCotizacion) Total() decimal.Decimal {
	total := c.productos.Total()
	for _, l := range c.ingredientes {
		total = total.Add(l.Subtotal())
	}
	return total
}
