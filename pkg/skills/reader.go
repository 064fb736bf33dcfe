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

// Package skills serves per-skill detail and metrics views plus the
// raw artifact pass-through. Each endpoint tries the pre-rendered
// artifact first and falls back to synthesis from the compact layout;
// only when both are absent does the client see a 404.
package skills

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/wyattowalsh/skillsight/pkg/cache"
	"github.com/wyattowalsh/skillsight/pkg/errors"
	"github.com/wyattowalsh/skillsight/pkg/fallback"
	"github.com/wyattowalsh/skillsight/pkg/serializer"
	"github.com/wyattowalsh/skillsight/pkg/server"
	"github.com/wyattowalsh/skillsight/pkg/snapshot"
)

// Reader answers skill-scoped read requests.
type Reader struct {
	tier     *cache.Tier
	resolver *snapshot.Resolver
	synth    *fallback.Synthesizer
	layout   snapshot.Layout
	log      *slog.Logger
}

// NewReader creates a Reader.
func NewReader(tier *cache.Tier, resolver *snapshot.Resolver, synth *fallback.Synthesizer,
	layout snapshot.Layout, log *slog.Logger) *Reader {
	return &Reader{
		tier:     tier,
		resolver: resolver,
		synth:    synth,
		layout:   layout,
		log:      log,
	}
}

// currentDate resolves the active snapshot date, honoring an explicit
// snapshot_date query parameter. Absence of any manifest is service
// unavailability, never not-found.
func (rd *Reader) currentDate(ctx context.Context, r *http.Request) (string, error) {
	if date := r.URL.Query().Get("snapshot_date"); date != "" {
		if !snapshot.ValidDate(date) {
			return "", errors.New(errors.ErrCodeInvalidRequest, "snapshot_date must be YYYY-MM-DD")
		}
		return date, nil
	}

	m, found, err := rd.resolver.Latest(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.New(errors.ErrCodeUnavailable, "no snapshot manifest is available")
	}
	return m.SnapshotDate, nil
}

// HandleDetail handles GET /v1/skills/{owner}/{repo}/{skill}.
func (rd *Reader) HandleDetail(w http.ResponseWriter, r *http.Request) {
	owner, repo, skillID := r.PathValue("owner"), r.PathValue("repo"), r.PathValue("skill")
	if owner == "" || repo == "" || skillID == "" {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"id must be owner/repo/skillId", false, nil)
		return
	}

	date, err := rd.currentDate(r.Context(), r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "resolving snapshot", nil)
		return
	}

	// Pre-rendered artifacts are served byte for byte.
	raw, found, err := rd.tier.Load(r.Context(), rd.layout.SkillDetailKey(date, owner, repo, skillID))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "loading skill detail", nil)
		return
	}
	if found {
		serializer.RespondRaw(w, http.StatusOK, raw)
		return
	}

	detail, found, err := rd.synth.Detail(r.Context(), date, owner, repo, skillID)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "synthesizing skill detail", nil)
		return
	}
	if !found {
		server.WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound,
			"skill not found", false, nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, detail)
}

// HandleMetrics handles GET /v1/metrics/{owner}/{repo}/{skill}.
func (rd *Reader) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	owner, repo, skillID := r.PathValue("owner"), r.PathValue("repo"), r.PathValue("skill")
	if owner == "" || repo == "" || skillID == "" {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"id must be owner/repo/skillId", false, nil)
		return
	}

	date, err := rd.currentDate(r.Context(), r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "resolving snapshot", nil)
		return
	}

	raw, found, err := rd.tier.Load(r.Context(), rd.layout.MetricsKey(date, owner, repo, skillID))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "loading skill metrics", nil)
		return
	}
	if found {
		serializer.RespondRaw(w, http.StatusOK, raw)
		return
	}

	series, found, err := rd.synth.Metrics(r.Context(), date, owner, repo, skillID)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "synthesizing skill metrics", nil)
		return
	}
	if !found {
		server.WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound,
			"skill not found", false, nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, series)
}
