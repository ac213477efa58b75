package request

type CreateTransactionRequest struct {
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Fee      float64 `json:"fee"`
}
