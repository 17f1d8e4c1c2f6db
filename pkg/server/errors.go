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
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	fferrors "github.com/feedform/feedform/pkg/errors"
	"github.com/feedform/feedform/pkg/serializer"
)

// HTTPStatusFromCode maps an error code to the HTTP status returned to clients.
func HTTPStatusFromCode(code fferrors.ErrorCode) int {
	switch code {
	case fferrors.ErrCodeInvalidRequest,
		fferrors.ErrCodeInvalidAnimalType,
		fferrors.ErrCodeInvalidClass:
		return http.StatusBadRequest
	case fferrors.ErrCodeInsufficientSelection,
		fferrors.ErrCodeInvalidIngredient:
		return http.StatusUnprocessableEntity
	case fferrors.ErrCodeGenerationTooLarge:
		return http.StatusRequestEntityTooLarge
	case fferrors.ErrCodeNotFound:
		return http.StatusNotFound
	case fferrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case fferrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case fferrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case fferrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// retryableFromCode reports whether a client may retry the same request.
func retryableFromCode(code fferrors.ErrorCode) bool {
	switch code {
	case fferrors.ErrCodeTimeout,
		fferrors.ErrCodeUnavailable,
		fferrors.ErrCodeRateLimitExceeded,
		fferrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails combines a and b, with b winning on key conflicts. It returns
// nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// WriteError writes an ErrorResponse with the given status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code fferrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes err as an ErrorResponse. Structured errors keep
// their code, message, and context; anything else becomes INTERNAL with
// fallbackMessage. The cause, if any, is reported under details.error.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extra map[string]any) {
	var se *fferrors.StructuredError
	if errors.As(err, &se) {
		details := mergeDetails(se.Context, extra)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), details)
		return
	}

	details := mergeDetails(extra, nil)
	if err != nil {
		details = mergeDetails(details, map[string]any{"error": err.Error()})
	}
	WriteError(w, r, http.StatusInternalServerError, fferrors.ErrCodeInternal, fallbackMessage,
		retryableFromCode(fferrors.ErrCodeInternal), details)
}
