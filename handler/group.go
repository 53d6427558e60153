package handler

import (
	"errors"
	"net/http"
	"strconv"

	"LuckyChat/config"
	"LuckyChat/middleware"
	"LuckyChat/pkg/context"
	"LuckyChat/pkg/response"
	"LuckyChat/service"
	"LuckyChat/types"

	"github.com/gin-gonic/gin"
)

type Group struct {
	Config           *config.Config
	GroupService     service.IGroupService
	MessageService   service.IMessageService
	RedPacketService service.IRedPacketService
	Scheduler        *service.AutoGrabScheduler
}

func (h *Group) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	groups := r.Group("/v1/groups", authorize)

	groups.POST("", context.Wrap(h.Create))
	groups.GET("", context.Wrap(h.List))
	groups.GET("/:groupId", context.Wrap(h.Get))
	groups.POST("/:groupId/members", context.Wrap(h.AddMember))
	groups.GET("/:groupId/messages", context.Wrap(h.Messages))

	groups.POST("/:groupId/red-packets", context.Wrap(h.SendRedPacket))
	groups.GET("/:groupId/red-packets", context.Wrap(h.ListRedPackets))
	groups.GET("/:groupId/red-packets/:packetId", context.Wrap(h.GetRedPacket))
	groups.POST("/:groupId/red-packets/:packetId/grab", context.Wrap(h.GrabRedPacket))
}

func (h *Group) Create(c *gin.Context) error {
	var req types.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	group, err := h.GroupService.Create(c, userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, group)
	return nil
}

func (h *Group) List(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	groups, err := h.GroupService.ListByOwner(c, userID)
	if err != nil {
		return err
	}
	response.Success(c, groups)
	return nil
}

func (h *Group) Get(c *gin.Context) error {
	group, err := h.GroupService.Get(c, c.Param("groupId"))
	if err != nil {
		return err
	}
	response.Success(c, group)
	return nil
}

func (h *Group) AddMember(c *gin.Context) error {
	var req types.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	group, err := h.GroupService.AddMember(c, c.Param("groupId"), req.Member)
	if err != nil {
		return err
	}
	response.Success(c, group)
	return nil
}

// Messages 群消息列表，before 为毫秒时间戳游标
func (h *Group) Messages(c *gin.Context) error {
	var before int64
	if v := c.Query("before"); v != "" {
		before, _ = strconv.ParseInt(v, 10, 64)
	}
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	messages, err := h.MessageService.List(c, c.Param("groupId"), before, limit)
	if err != nil {
		return err
	}
	response.Success(c, messages)
	return nil
}

// SendRedPacket 发红包，落库后立刻调度 NPC 自动抢
func (h *Group) SendRedPacket(c *gin.Context) error {
	var req types.SendRedPacketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	groupID := c.Param("groupId")

	group, err := h.GroupService.Get(c, groupID)
	if err != nil {
		return err
	}

	packet, err := h.RedPacketService.Create(c, groupID, &req)
	if err != nil {
		return err
	}

	h.Scheduler.Schedule(groupID, packet.ID, group.Members, packet.SenderID)

	response.Success(c, packet)
	return nil
}

func (h *Group) ListRedPackets(c *gin.Context) error {
	packets, err := h.RedPacketService.ListByGroup(c, c.Param("groupId"))
	if err != nil {
		return err
	}
	response.Success(c, packets)
	return nil
}

func (h *Group) GetRedPacket(c *gin.Context) error {
	packet, err := h.RedPacketService.Get(c, c.Param("groupId"), c.Param("packetId"))
	if err != nil {
		return err
	}
	response.Success(c, packet)
	return nil
}

func (h *Group) GrabRedPacket(c *gin.Context) error {
	var req types.GrabRedPacketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	result, err := h.RedPacketService.Grab(c, c.Param("groupId"), c.Param("packetId"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPacketExpired):
			middleware.CountGrab("expired")
		case errors.Is(err, service.ErrPacketExhausted):
			middleware.CountGrab("exhausted")
		}
		return err
	}

	if result.AlreadyClaimed {
		middleware.CountGrab("duplicate")
	} else {
		middleware.CountGrab("success")
	}
	response.Success(c, result)
	return nil
}
