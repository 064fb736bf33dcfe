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

package skills

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wyattowalsh/skillsight/pkg/errors"
	"github.com/wyattowalsh/skillsight/pkg/serializer"
	"github.com/wyattowalsh/skillsight/pkg/server"
	"github.com/wyattowalsh/skillsight/pkg/snapshot"
)

// HandleDataPack handles GET <webPrefix>/*: the transparent artifact
// pass-through. A stored object is served verbatim; a missing one is
// synthesized when the path names a shape the fallback chain can
// rebuild, and 404s otherwise.
func (rd *Reader) HandleDataPack(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/")

	raw, found, err := rd.tier.Load(r.Context(), key)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "loading artifact", nil)
		return
	}
	if found {
		serializer.RespondRaw(w, http.StatusOK, raw)
		return
	}

	rd.synthesizeArtifact(w, r, key)
}

// synthesizeArtifact rebuilds the artifact at key from the compact
// layout, dispatching on the canonical path shape.
func (rd *Reader) synthesizeArtifact(w http.ResponseWriter, r *http.Request, key string) {
	rel, ok := strings.CutPrefix(key, rd.layout.WebPrefix()+"/")
	if !ok {
		rd.notFound(w, r)
		return
	}

	if rel == "latest.json" {
		// The resolver already reconciles the legacy pointer into the
		// manifest shape, so its output is the synthesized artifact.
		m, found, err := rd.resolver.Latest(r.Context())
		if err != nil {
			server.WriteErrorFromErr(w, r, err, "resolving snapshot", nil)
			return
		}
		if !found {
			server.WriteError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
				"no snapshot manifest is available", true, nil)
			return
		}
		serializer.RespondJSON(w, http.StatusOK, m)
		return
	}

	parts := strings.Split(rel, "/")
	if len(parts) < 3 || parts[0] != "snapshots" || !snapshot.ValidDate(parts[1]) {
		rd.notFound(w, r)
		return
	}
	date, rest := parts[1], parts[2:]

	var (
		doc   any
		found bool
		err   error
	)
	switch {
	case len(rest) == 2 && rest[0] == "stats" && rest[1] == "summary.json":
		doc, found, err = rd.synth.Summary(r.Context(), date)

	case len(rest) == 3 && rest[0] == "leaderboard":
		page, ok := parsePageFile(rest[2])
		if !ok {
			rd.notFound(w, r)
			return
		}
		doc, found, err = rd.synth.LeaderboardPage(r.Context(), date, rest[1], page)

	case len(rest) == 5 && rest[0] == "skills" && rest[1] == "by-id":
		doc, found, err = rd.synth.Detail(r.Context(), date, rest[2], rest[3],
			strings.TrimSuffix(rest[4], ".json"))

	case len(rest) == 5 && rest[0] == "metrics" && rest[1] == "by-id":
		doc, found, err = rd.synth.Metrics(r.Context(), date, rest[2], rest[3],
			strings.TrimSuffix(rest[4], ".json"))

	default:
		// The slim index and anything unrecognized have no synthesis
		// path.
		rd.notFound(w, r)
		return
	}

	if err != nil {
		server.WriteErrorFromErr(w, r, err, "synthesizing artifact", nil)
		return
	}
	if !found {
		rd.notFound(w, r)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, doc)
}

func (rd *Reader) notFound(w http.ResponseWriter, r *http.Request) {
	server.WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound,
		"artifact not found", false, nil)
}

// parsePageFile extracts the page number from a "page-NNNN.json" name.
func parsePageFile(name string) (int, bool) {
	num, ok := strings.CutPrefix(name, "page-")
	if !ok {
		return 0, false
	}
	num, ok = strings.CutSuffix(num, ".json")
	if !ok {
		return 0, false
	}
	page, err := strconv.Atoi(num)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}
