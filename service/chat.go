package service

import (
	"context"
	"fmt"
	"strings"

	"LuckyChat/pkg/llm"
	"LuckyChat/pkg/log"
	"LuckyChat/types"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	affectionChangeMin = -10
	affectionChangeMax = 10
)

// Notifier 向在线用户推送实时事件，websocket 实现见 pkg/notify
type Notifier interface {
	Push(userID int64, event string, payload interface{})
}

type IChatService interface {
	Send(ctx context.Context, userID int64, req *types.ChatRequest) (*types.ChatReply, error)
}

var _ IChatService = (*ChatService)(nil)

type ChatService struct {
	LLM        *llm.Client
	Characters ICharacterService
	Affection  IAffectionService
	notifier   Notifier
}

func NewChatService(llmClient *llm.Client, characters ICharacterService, affection IAffectionService, notifier Notifier) *ChatService {
	return &ChatService{LLM: llmClient, Characters: characters, Affection: affection, notifier: notifier}
}

// Send 与角色对话一轮。模型除了回复文本还会给出本轮好感度变化，
// 变化值收敛到 [-10,10] 后记入好感度账本；升降级时向用户推送提醒。
// 模型没按格式输出时降级为纯文本回复，好感度不变。
func (s *ChatService) Send(ctx context.Context, userID int64, req *types.ChatRequest) (*types.ChatReply, error) {
	character, err := s.Characters.Get(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}

	sessionID := normalizeSession(req.SessionID)
	affection, err := s.Affection.Get(ctx, req.CharacterID, sessionID)
	if err != nil {
		return nil, err
	}

	system := buildSystemPrompt(character.Name, character.Persona, affection.Score, affection.LevelTitle)
	raw, err := s.LLM.Complete(ctx, system, req.Text)
	if err != nil {
		return nil, err
	}

	reply := &types.ChatReply{CharacterID: req.CharacterID}

	text, change, reason, ok := parseReply(raw)
	reply.Text = text
	if !ok || change == 0 {
		return reply, nil
	}

	delta, err := s.Affection.Update(ctx, req.CharacterID, change, reason, sessionID)
	if err != nil {
		// 回复本身是成功的，好感度落库失败只记日志
		log.L.Error("affection update failed",
			zap.String("character_id", req.CharacterID),
			zap.Error(err))
		return reply, nil
	}
	reply.Affection = delta

	if s.notifier != nil && (delta.LevelUp || delta.LevelDown) {
		s.notifier.Push(userID, "affection.level", delta)
	}
	return reply, nil
}

func buildSystemPrompt(name, persona string, score int, levelTitle string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "你正在扮演「%s」。\n", name)
	if persona != "" {
		b.WriteString(persona)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "你与对方当前的好感度为 %d（%s），回复请符合这个关系亲疏。\n", score, levelTitle)
	b.WriteString("严格按如下 JSON 格式输出，不要输出其他内容：\n")
	b.WriteString(`{"reply": "你的回复", "affection": {"change": 变化值(-10到10的整数), "reason": "变化原因"}}`)
	return b.String()
}

// parseReply 解析模型输出。ok=false 表示不是合法 JSON，
// 此时把原始文本当作回复，好感度不变。
func parseReply(raw string) (text string, change int, reason string, ok bool) {
	// 部分模型会把 JSON 包在 markdown 代码块里
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if !gjson.Valid(trimmed) {
		return raw, 0, "", false
	}
	parsed := gjson.Parse(trimmed)
	replyField := parsed.Get("reply")
	if !replyField.Exists() {
		return raw, 0, "", false
	}

	text = replyField.String()
	change = int(parsed.Get("affection.change").Int())
	reason = parsed.Get("affection.reason").String()

	if change < affectionChangeMin {
		change = affectionChangeMin
	}
	if change > affectionChangeMax {
		change = affectionChangeMax
	}
	if reason == "" {
		reason = "对话互动"
	}
	return text, change, reason, true
}
