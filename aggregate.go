// Copyright 2025 Pressgather Authors
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

package pressgather

import (
	"github.com/pressgather/pressgather/core"
	"github.com/pressgather/pressgather/normalize"
	"github.com/pressgather/pressgather/records"
)

// FileReport describes the outcome of aggregating one export file.
type FileReport struct {
	Path     string
	Platform core.Platform
	Articles int
	Err      error
}

// Aggregate reads every export file, maps each to canonical articles using
// its detected platform schema, and replaces the session collection with
// the combined result. A file that cannot be read or mapped is skipped and
// reported; it never aborts the run.
func (s *Session) Aggregate(schema *normalize.Schema, paths []string) []FileReport {
	reports := make([]FileReport, 0, len(paths))
	var combined []core.CanonicalArticle

	for _, path := range paths {
		platform := records.DetectPlatform(path)
		report := FileReport{Path: path, Platform: platform}

		table, err := records.ReadFile(path)
		if err != nil {
			report.Err = err
			s.logger.Warn("skipping unreadable file", "path", path, "err", err)
			reports = append(reports, report)
			continue
		}

		articles, err := schema.Normalize(table, platform)
		if err != nil {
			report.Err = err
			s.logger.Warn("skipping unmappable file", "path", path, "platform", platform, "err", err)
			reports = append(reports, report)
			continue
		}

		report.Articles = len(articles)
		combined = append(combined, articles...)
		reports = append(reports, report)
	}

	s.Replace(combined)
	return reports
}

// AddHarvest maps harvested stubs onto the canonical schema and appends
// them to the session collection.
func (s *Session) AddHarvest(schema *normalize.Schema, stubs []core.HarvestedStub) (int, error) {
	articles, err := schema.Normalize(normalize.StubTable(stubs), core.PlatformGoogleNews)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.articles = append(s.articles, articles...)
	total := len(s.articles)
	s.mu.Unlock()

	s.logger.Info("harvest added to session", "session", s.id, "added", len(articles), "total", total)
	return len(articles), nil
}
