package types

import "time"

// PersonaRequest 创建或修改人设。InitialBalance 单位为元。
type PersonaRequest struct {
	Name           string  `json:"name" binding:"required"`
	Avatar         string  `json:"avatar"`
	InitialBalance float64 `json:"initial_balance"`
}

type PersonaInfo struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Avatar         string    `json:"avatar"`
	InitialBalance float64   `json:"initial_balance"` // 元
	CreatedAt      time.Time `json:"created_at"`
}
