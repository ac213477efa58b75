package request

type UpdateMarkPriceRequest struct {
	Price float64 `json:"price"`
}
