package types

import "LuckyChat/models"

type CreateGroupRequest struct {
	Name    string               `json:"name"`
	Avatar  string               `json:"avatar"`
	Members []models.GroupMember `json:"members"`
}

type AddMemberRequest struct {
	Member models.GroupMember `json:"member"`
}

type GroupInfo struct {
	ID      string               `json:"id"`
	OwnerID int64                `json:"owner_id"`
	Name    string               `json:"name"`
	Avatar  string               `json:"avatar"`
	Members []models.GroupMember `json:"members"`
}
