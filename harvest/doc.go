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

// Package harvest collects news article stubs from Google News search pages.
//
// The Harvester type fans out over keywords and result pages using bounded
// worker pools, parses each page into article stubs, and deduplicates the
// combined results by URL. Optional post-processing fetches each article
// page to recover full headlines truncated in search results.
//
// Individual page failures are logged and skipped so a single bad fetch
// never fails a whole harvest. Pages that yield no results can be persisted
// through a DumpStore for later inspection.
package harvest
