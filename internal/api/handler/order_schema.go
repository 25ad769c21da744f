package handler

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type paymentDetailsRequest struct {
	Method string `json:"payment_method" validate:"required"`
	Status string `json:"payment_status" validate:"required"`
}

// createOrderRequest is the cart reconciliation payload. The client's total is
// sanity-checked only; the server recomputes the authoritative figure from
// catalog prices.
type createOrderRequest struct {
	Items   []orderItemRequest    `json:"items"           validate:"required,min=1,dive"`
	Total   float64               `json:"total"           validate:"required,gt=0"`
	Payment paymentDetailsRequest `json:"payment_details" validate:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped completed"`
}
