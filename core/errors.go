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


package core

import "errors"

// Validation errors. These are the only fatal error class: they are raised
// before any work begins and surfaced verbatim to the caller. Every per-item
// failure elsewhere degrades to the Sentinel value or an empty result.
var (
	// ErrNoKeywords indicates the keyword list is empty after trimming.
	ErrNoKeywords = errors.New("no valid keywords provided")

	// ErrNoArticles indicates a ranking request against an empty collection.
	ErrNoArticles = errors.New("article collection is empty")

	// ErrUnknownPlatform indicates a platform tag with no registered schema.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrInvalidSelection indicates an unrecognized result selection method.
	ErrInvalidSelection = errors.New("invalid selection method")
)
