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

package api

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/feedform/feedform/pkg/config"
	fferrors "github.com/feedform/feedform/pkg/errors"
)

// LambdaHandler serves Lambda function URL events.
type LambdaHandler func(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error)

// NewLambdaHandler builds the API once and returns a handler that serves
// each event through the same routes and middleware as feedformd.
func NewLambdaHandler(ctx context.Context, opts ...config.Option) (LambdaHandler, error) {
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}
	s, err := NewServer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return adaptLambda(s.Handler()), nil
}

func adaptLambda(h http.Handler) LambdaHandler {
	return func(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		req, err := lambdaRequest(ctx, event)
		if err != nil {
			return events.LambdaFunctionURLResponse{}, err
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		headers := make(map[string]string, len(rec.Header()))
		for k, v := range rec.Header() {
			headers[k] = strings.Join(v, ", ")
		}
		return events.LambdaFunctionURLResponse{
			StatusCode: rec.Code,
			Headers:    headers,
			Body:       rec.Body.String(),
		}, nil
	}
}

func lambdaRequest(ctx context.Context, event events.LambdaFunctionURLRequest) (*http.Request, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fferrors.Wrap(fferrors.ErrCodeInvalidRequest, "invalid base64 body", err)
		}
		body = string(decoded)
	}

	path := event.RawPath
	if path == "" {
		path = "/"
	}
	if event.RawQueryString != "" {
		path += "?" + event.RawQueryString
	}

	method := event.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, path, strings.NewReader(body))
	if err != nil {
		return nil, fferrors.Wrap(fferrors.ErrCodeInvalidRequest, "invalid request", err)
	}
	for k, v := range event.Headers {
		req.Header.Set(k, v)
	}
	req.RemoteAddr = event.RequestContext.HTTP.SourceIP
	return req, nil
}
