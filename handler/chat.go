package handler

import (
	"net/http"

	"LuckyChat/config"
	"LuckyChat/middleware"
	"LuckyChat/pkg/context"
	"LuckyChat/pkg/response"
	"LuckyChat/service"
	"LuckyChat/types"

	"github.com/gin-gonic/gin"
)

type Chat struct {
	Config           *config.Config
	ChatService      service.IChatService
	CharacterService service.ICharacterService
}

func (h *Chat) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))

	chat := r.Group("/v1/chat", authorize)
	chat.POST("/send", context.Wrap(h.Send))

	characters := r.Group("/v1/characters", authorize)
	characters.POST("", context.Wrap(h.CreateCharacter))
	characters.GET("", context.Wrap(h.ListCharacters))
	characters.GET("/:charId", context.Wrap(h.GetCharacter))
	characters.PUT("/:charId", context.Wrap(h.UpdateCharacter))
	characters.DELETE("/:charId", context.Wrap(h.DeleteCharacter))
	characters.POST("/:charId/reset", context.Wrap(h.ResetCharacter))
}

func (h *Chat) Send(c *gin.Context) error {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	reply, err := h.ChatService.Send(c, userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, reply)
	return nil
}

func (h *Chat) CreateCharacter(c *gin.Context) error {
	var req types.CharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	character, err := h.CharacterService.Create(c, userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, character)
	return nil
}

func (h *Chat) ListCharacters(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	characters, err := h.CharacterService.ListByUser(c, userID)
	if err != nil {
		return err
	}
	response.Success(c, characters)
	return nil
}

func (h *Chat) GetCharacter(c *gin.Context) error {
	character, err := h.CharacterService.Get(c, c.Param("charId"))
	if err != nil {
		return err
	}
	response.Success(c, character)
	return nil
}

func (h *Chat) UpdateCharacter(c *gin.Context) error {
	var req types.CharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	character, err := h.CharacterService.Update(c, c.Param("charId"), &req)
	if err != nil {
		return err
	}
	response.Success(c, character)
	return nil
}

func (h *Chat) DeleteCharacter(c *gin.Context) error {
	if err := h.CharacterService.Delete(c, c.Param("charId")); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}

// ResetCharacter 重置角色会话状态，角色卡保留
func (h *Chat) ResetCharacter(c *gin.Context) error {
	if err := h.CharacterService.ResetState(c, c.Param("charId")); err != nil {
		return err
	}
	response.Success(c, gin.H{"reset": true})
	return nil
}
