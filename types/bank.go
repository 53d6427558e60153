package types

import "LuckyChat/models"

type BankTransactionRequest struct {
	Type        string  `json:"type"` // income / expense
	Amount      float64 `json:"amount"`
	Source      string  `json:"source"`
	SourceName  string  `json:"source_name"`
	Note        string  `json:"note"`
	PersonaID   string  `json:"personaId"`
	PersonaName string  `json:"personaName"`
}

type BankBalance struct {
	Balance      float64                  `json:"balance"`
	Currency     string                   `json:"currency"`
	PersonaID    string                   `json:"personaId"`
	Transactions []models.BankTransaction `json:"transactions"` // 最近若干条
}

type BankTransactionPage struct {
	Transactions []models.BankTransaction `json:"transactions"`
	Total        int                      `json:"total"`
	HasMore      bool                     `json:"has_more"`
}
