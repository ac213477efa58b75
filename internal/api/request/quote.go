package request

type UpdateQuoteConfigRequest struct {
	APIToken string `json:"apiToken"`
	Enabled  bool   `json:"enabled"`
}
