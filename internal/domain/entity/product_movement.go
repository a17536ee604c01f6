package entity

import "time"

// Tipos de movimiento del kardex.
const (
	MovementEntry      = "entry"      // entrada
	MovementExit       = "exit"       // salida
	MovementAdjustment = "adjustment" // ajuste (Quantity con signo)
)

// ProductMovement registro del kardex de un producto.
type ProductMovement struct {
	Base
	ProductID     string    `json:"productId"`
	Product       *Product  `json:"product,omitempty"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previousStock"`
	NewStock      int       `json:"newStock"`
	Reason        string    `json:"reason,omitempty"`
	Reference     string    `json:"reference,omitempty"` // venta, compra, nota de ajuste
	WorkerID      string    `json:"workerId,omitempty"`
	Date          time.Time `json:"date"`
}

// ProductMovementInput payload de creación.
type ProductMovementInput struct {
	ProductID     string    `json:"productId"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previousStock"`
	NewStock      int       `json:"newStock"`
	Reason        string    `json:"reason,omitempty"`
	Reference     string    `json:"reference,omitempty"`
	WorkerID      string    `json:"workerId,omitempty"`
	Date          time.Time `json:"date,omitempty"`
}

// Validate producto, tipo y cantidad distinta de cero.
func (in ProductMovementInput) Validate() error {
	if err := required("movimiento", "productId", in.ProductID); err != nil {
		return err
	}
	if err := oneOf("movimiento", "type", in.Type, MovementEntry, MovementExit, MovementAdjustment); err != nil {
		return err
	}
	if in.Quantity == 0 {
		return required("movimiento", "quantity", "")
	}
	return nil
}

// Build materializa el movimiento.
func (in ProductMovementInput) Build(id string, now time.Time) ProductMovement {
	return ProductMovement{
		Base:          newBase(id, now),
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		PreviousStock: in.PreviousStock,
		NewStock:      in.NewStock,
		Reason:        in.Reason,
		Reference:     in.Reference,
		WorkerID:      in.WorkerID,
		Date:          orNow(in.Date, now),
	}
}

// ProductMovementPatch solo admite corregir los textos; las cantidades del kardex son inmutables.
type ProductMovementPatch struct {
	Reason    *string `json:"reason,omitempty"`
	Reference *string `json:"reference,omitempty"`
}

// Apply aplica los campos presentes.
func (p ProductMovementPatch) Apply(item *ProductMovement, now time.Time) {
	set(&item.Reason, p.Reason)
	set(&item.Reference, p.Reference)
	item.UpdatedAt = now
}
