package dto

import "github.com/shopspring/decimal"

// RegisterMovementRequest body de POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string           `json:"productId"`
	Type      string           `json:"type"` // entry | exit | adjustment
	Quantity  int              `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unitCost,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	Reference string           `json:"reference,omitempty"`
	WorkerID  string           `json:"workerId,omitempty"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición de un producto bajo mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID           string          `json:"productId"`
	Code                string          `json:"code"`
	ProductName         string          `json:"productName"`
	CurrentStock        int             `json:"currentStock"`
	MinStock            int             `json:"minStock"`
	IdealStock          int             `json:"idealStock"`         // ceil(MinStock * 1.5)
	SuggestedOrderQty   int             `json:"suggestedOrderQty"`  // IdealStock - CurrentStock
	UnitCost            decimal.Decimal `json:"unitCost"`           // costo promedio ponderado
	EstimatedOrderCost  decimal.Decimal `json:"estimatedOrderCost"` // SuggestedOrderQty * UnitCost
	GrossMarginPct      decimal.Decimal `json:"grossMarginPct"`
	UnitsSoldLast90Days int             `json:"unitsSoldLast90Days"`
	Priority            int             `json:"priority"` // 1 = más urgente
}
