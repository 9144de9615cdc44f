package controller

import (
	"cemse_backend/internal/util"
	"cemse_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// bindJSON 解析请求体并做结构校验，失败时已写入 400 响应
func bindJSON(ctx *gin.Context, v *validator.Validator, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		util.BadRequest(ctx, "Invalid request body: "+err.Error())
		return false
	}
	if err := v.Struct(req); err != nil {
		util.HandleError(ctx, err)
		return false
	}
	return true
}

// idParam 路径参数必须为正整数
func idParam(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func currentUser(ctx *gin.Context) *util.Claims {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
	}
	return user
}
