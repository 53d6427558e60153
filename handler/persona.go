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

type Persona struct {
	Config         *config.Config
	PersonaService service.IPersonaService
}

func (h *Persona) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))

	personas := r.Group("/v1/personas", authorize)
	personas.POST("", context.Wrap(h.Create))
	personas.GET("", context.Wrap(h.List))
	personas.PUT("/:personaId", context.Wrap(h.Update))
	personas.DELETE("/:personaId", context.Wrap(h.Delete))
}

func (h *Persona) Create(c *gin.Context) error {
	var req types.PersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	persona, err := h.PersonaService.Create(c, userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, persona)
	return nil
}

func (h *Persona) List(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	personas, err := h.PersonaService.List(c, userID)
	if err != nil {
		return err
	}
	response.Success(c, personas)
	return nil
}

func (h *Persona) Update(c *gin.Context) error {
	var req types.PersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	persona, err := h.PersonaService.Update(c, userID, c.Param("personaId"), &req)
	if err != nil {
		return err
	}
	response.Success(c, persona)
	return nil
}

func (h *Persona) Delete(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	if err := h.PersonaService.Delete(c, userID, c.Param("personaId")); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}
