// Copyright (c) 2025, Skillsight Authors.
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

package search

import (
	"net/http"

	"github.com/wyattowalsh/skillsight/pkg/serializer"
	"github.com/wyattowalsh/skillsight/pkg/server"
)

// HandleSearch handles GET /v1/search.
func (e *Engine) HandleSearch(w http.ResponseWriter, r *http.Request) {
	e.handleQuery(w, r, VariantSearch)
}

// HandleList handles GET /v1/skills, the bulk listing variant that
// tolerates an empty query and allows larger pages.
func (e *Engine) HandleList(w http.ResponseWriter, r *http.Request) {
	e.handleQuery(w, r, VariantList)
}

func (e *Engine) handleQuery(w http.ResponseWriter, r *http.Request, variant Variant) {
	p, err := ParamsFromQuery(r.URL.Query(), variant)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid query", nil)
		return
	}

	var res *Result
	if variant == VariantSearch {
		res, err = e.Search(r.Context(), p)
	} else {
		res, err = e.List(r.Context(), p)
	}
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "query failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, res)
}
