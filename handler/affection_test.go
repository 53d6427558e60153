package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"LuckyChat/types"

	"github.com/gin-gonic/gin"
)

func bindAffectionUpdate(t *testing.T, body string) (*types.AffectionUpdateRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/v1/affection/char1", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req types.AffectionUpdateRequest
	err := c.ShouldBindJSON(&req)
	return &req, err
}

// change 为 0 是合法的空操作，参数校验不能拒绝
func TestAffectionUpdateBindingAcceptsZeroChange(t *testing.T) {
	req, err := bindAffectionUpdate(t, `{"change": 0, "reason": "打招呼"}`)
	if err != nil {
		t.Fatalf("binding rejected zero change: %v", err)
	}
	if req.Change != 0 || req.Reason != "打招呼" {
		t.Errorf("req = %+v, want change 0 reason 打招呼", req)
	}
}

func TestAffectionUpdateBindingDefaults(t *testing.T) {
	req, err := bindAffectionUpdate(t, `{}`)
	if err != nil {
		t.Fatalf("binding error = %v", err)
	}
	if req.Change != 0 || req.SessionID != "" {
		t.Errorf("req = %+v, want zero values", req)
	}
}
