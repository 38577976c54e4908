package response

import (
	"github.com/gin-gonic/gin"
)

// BizError Code 即 HTTP 状态码
type BizError struct {
	Code int
	Msg  string
	// 可选的附加数据，随错误一起返回给前端
	Data any
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

func (e *BizError) WithData(data any) *BizError {
	e.Data = data
	return e
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
