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

type Affection struct {
	Config           *config.Config
	AffectionService service.IAffectionService
}

func (h *Affection) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))

	r.GET("/v1/affection-levels", context.Wrap(h.Levels))
	r.GET("/v1/affection-sessions", authorize, context.Wrap(h.Sessions))

	affection := r.Group("/v1/affection", authorize)
	affection.GET("", context.Wrap(h.ListBySession))
	affection.GET("/:charId", context.Wrap(h.Get))
	affection.POST("/:charId", context.Wrap(h.Update))
}

// Levels 等级表是静态的，不需要登录
func (h *Affection) Levels(c *gin.Context) error {
	response.Success(c, h.AffectionService.Levels())
	return nil
}

func (h *Affection) Sessions(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	sessions, err := h.AffectionService.Sessions(c, userID)
	if err != nil {
		return err
	}
	response.Success(c, sessions)
	return nil
}

func (h *Affection) ListBySession(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	infos, err := h.AffectionService.ListBySession(c, userID, c.Query("session_id"))
	if err != nil {
		return err
	}
	response.Success(c, infos)
	return nil
}

func (h *Affection) Get(c *gin.Context) error {
	info, err := h.AffectionService.Get(c, c.Param("charId"), c.Query("session_id"))
	if err != nil {
		return err
	}
	response.Success(c, info)
	return nil
}

func (h *Affection) Update(c *gin.Context) error {
	var req types.AffectionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	delta, err := h.AffectionService.Update(c, c.Param("charId"), req.Change, req.Reason, req.SessionID)
	if err != nil {
		return err
	}
	response.Success(c, delta)
	return nil
}
