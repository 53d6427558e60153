package config

// LLM 角色对话使用的 OpenAI 兼容接口配置
type LLM struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	APIKey  string `json:"api_key" yaml:"api_key"`
	Model   string `json:"model" yaml:"model"`
}
