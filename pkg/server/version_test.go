// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := map[string]struct {
		accept string
		want   string
	}{
		"vendor with quality":    {"application/vnd.feedform.v1+json; q=0.9", "v1"},
		"vendor after html":      {"text/html, application/vnd.feedform.v1+json", "v1"},
		"vendor yaml suffix":     {"application/vnd.feedform.v1+yaml", "v1"},
		"other vendor":           {"application/vnd.github.v3+json", DefaultAPIVersion},
		"malformed version":      {"application/vnd.feedform.vX+json", DefaultAPIVersion},
		"wildcard":               {"*/*", DefaultAPIVersion},
		"unsupported then plain": {"application/vnd.feedform.v2+json, application/json", DefaultAPIVersion},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/classes", nil)
			req.Header.Set("Accept", tt.accept)
			assert.Equal(t, tt.want, negotiateAPIVersion(req))
		})
	}
}

func TestIsValidAPIVersion(t *testing.T) {
	assert.True(t, isValidAPIVersion("v1"))
	for _, v := range []string{"", "v2", "V1", "1"} {
		assert.False(t, isValidAPIVersion(v), v)
	}
}

func TestSetAPIVersionHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	SetAPIVersionHeader(rec, "v1")
	assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))
}
