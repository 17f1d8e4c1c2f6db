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

// Package serializer reads and writes feedform documents.
//
// Writers render values as JSON, YAML, or an aligned text table. Values that
// implement Tabular are rendered as rows and columns; anything else is
// flattened into dotted FIELD/VALUE pairs.
//
//	w, err := serializer.NewFileWriter(serializer.FormatYAML, "result.yaml")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//	    return err
//	}
//
// Readers decode JSON or YAML from local files, http(s) URLs, or standard
// input ("-"). FromFile is the one-call form:
//
//	req, err := serializer.FromFile[RequestDocument](ctx, "request.yaml")
//
// RespondJSON is the HTTP counterpart used by the API server.
package serializer
