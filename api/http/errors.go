// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of a failed operator request. Detail carries
// the error chain with stack traces and is left out in production.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func newErrorResponse(err error, production bool) ErrorResponse {
	res := ErrorResponse{Error: err.Error()}
	if !production {
		res.Detail = fmt.Sprintf("%+v", err)
	}
	return res
}

func abortWithError(c *gin.Context, status int, err error, production bool) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, newErrorResponse(err, production))
}
