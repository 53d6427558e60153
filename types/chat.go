package types

// ChatRequest 与角色对话。SessionID 是当前人设身份，好感度按它隔离。
type ChatRequest struct {
	CharacterID string `json:"character_id" binding:"required"`
	SessionID   string `json:"session_id"`
	Text        string `json:"text" binding:"required"`
}

type ChatReply struct {
	CharacterID string          `json:"character_id"`
	Text        string          `json:"text"`
	Affection   *AffectionDelta `json:"affection,omitempty"`
}

type CharacterRequest struct {
	Name     string `json:"name" binding:"required"`
	Avatar   string `json:"avatar"`
	Persona  string `json:"persona"`
	Greeting string `json:"greeting"`
}
