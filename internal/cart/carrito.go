// Package cart holds the transient line-item state built up before a sale or
// cotizacion is committed. A Carrito belongs to a single request/interaction
// and is discarded after commit — it is never shared or persisted.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
)

// Linea is one product line in a sales cart. Subtotal is always recomputed
// from Cantidad × PrecioUnitario, never stored independently, so the displayed
// total can never drift from the lines.
type Linea struct {
	ProductoID     uuid.UUID
	Nombre         string
	PrecioUnitario decimal.Decimal
	Stock          int
	Cantidad       int
}

// Subtotal returns Cantidad × PrecioUnitario.
func (l Linea) Subtotal() decimal.Decimal {
	return l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// Carrito is the sales cart: an ordered collection of product lines whose
// quantities are bounded by the stock available at the time each product was
// added.
type Carrito struct {
	lineas []Linea
}

// Agregar adds one unit of p. If p is already in the cart the quantity is
// incremented, silently capped at the product's stock — no error is surfaced
// for the refused increment.
func (c *Carrito) Agregar(p *model.Producto) {
	for i := range c.lineas {
		if c.lineas[i].ProductoID == p.ID {
			if c.lineas[i].Cantidad < c.lineas[i].Stock {
				c.lineas[i].Cantidad++
			}
			return
		}
	}
	c.lineas = append(c.lineas, Linea{
		ProductoID:     p.ID,
		Nombre:         p.Nombre,
		PrecioUnitario: p.PrecioVenta,
		Stock:          p.StockActual,
		Cantidad:       1,
	})
}

// ActualizarCantidad sets the quantity for a product line, clamped to
// [1, stock]. Unknown product IDs are ignored.
func (c *Carrito) ActualizarCantidad(productoID uuid.UUID, cantidad int) {
	for i := range c.lineas {
		if c.lineas[i].ProductoID != productoID {
			continue
		}
		if cantidad < 1 {
			cantidad = 1
		}
		if cantidad > c.lineas[i].Stock {
			cantidad = c.lineas[i].Stock
		}
		c.lineas[i].Cantidad = cantidad
		return
	}
}

// Quitar removes the line for a product.
func (c *Carrito) Quitar(productoID uuid.UUID) {
	for i := range c.lineas {
		if c.lineas[i].ProductoID == productoID {
			c.lineas = append(c.lineas[:i], c.lineas[i+1:]...)
			return
		}
	}
}

// Limpiar empties the cart.
func (c *Carrito) Limpiar() { c.lineas = nil }

// Vacio reports whether the cart has no lines.
func (c *Carrito) Vacio() bool { return len(c.lineas) == 0 }

// Lineas returns the lines in insertion order.
func (c *Carrito) Lineas() []Linea { return c.lineas }

// Total is a pure function of the current lines: the sum of all subtotals,
// recomputed on every call.
func (c *Carrito) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lineas {
		total = total.Add(l.Subtotal())
	}
	return total
}
