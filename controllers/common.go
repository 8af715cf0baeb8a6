package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pixshare/photoshare/repository"
	"github.com/pixshare/photoshare/utils"
)

// fail maps a repository error kind onto the response envelope. Every kind
// keeps a distinct status and code so clients can branch on them.
func fail(ctx *gin.Context, err error) {
	msg := "internal server error"
	var e *repository.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	switch repository.KindOf(err) {
	case repository.KindNotFound:
		utils.Error(ctx, http.StatusNotFound, 40400, msg)
	case repository.KindValidation:
		utils.Error(ctx, http.StatusBadRequest, 40000, msg)
	case repository.KindConflict:
		utils.Error(ctx, http.StatusConflict, 40900, msg)
	case repository.KindForbidden:
		utils.Error(ctx, http.StatusForbidden, 40300, msg)
	case repository.KindUpstream:
		utils.Error(ctx, http.StatusBadGateway, 50200, msg)
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorw("request failed", "path", ctx.FullPath(), "err", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000, msg)
	}
}

// paramID parses a numeric path parameter.
func paramID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
