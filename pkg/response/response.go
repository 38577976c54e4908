package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code: 0,
		Msg:  "success",
		Data: data,
	})
}

// Fail 以 httpStatus 作为业务码返回
func Fail(c *gin.Context, httpStatus int, msg string) {
	FailWithData(c, httpStatus, msg, nil)
}

func FailWithData(c *gin.Context, httpStatus int, msg string, data any) {
	c.JSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: data,
	})
}
