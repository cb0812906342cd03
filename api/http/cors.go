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
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
)

var corsMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
}

var corsMaxAge = time.Hour * 12

// NewCORSConfig returns the cross-origin policy for the given accepted
// origins. Without origins every origin is accepted.
func NewCORSConfig(origins []string) cors.Config {
	conf := cors.Config{
		AllowCredentials: true,
		AllowHeaders: []string{
			"Accept",
			"Allow",
			"Content-Type",
			"Origin",
			"Authorization",
			"Accept-Encoding",
			"Access-Control-Request-Headers",
			"Header-Access-Control-Request",
		},
		AllowMethods: corsMethods,
		ExposeHeaders: []string{
			"Location",
			"Link",
		},
		MaxAge: corsMaxAge,
	}
	conf.AllowOriginFunc = originChecker(origins)
	if conf.AllowOriginFunc == nil {
		conf.AllowAllOrigins = true
	}
	return conf
}

func originChecker(origins []string) func(string) bool {
	switch len(origins) {
	case 0:
		return nil
	case 1:
		origin := origins[0]
		return func(actual string) bool {
			return origin == actual
		}
	default:
		// Compile a hashmap of valid origins for fast lookup
		originSet := make(map[string]struct{}, len(origins))
		for _, origin := range origins {
			originSet[origin] = struct{}{}
		}
		return func(actual string) bool {
			_, allowed := originSet[actual]
			return allowed
		}
	}
}
