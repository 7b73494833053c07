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

import (
	"fmt"
	"strings"
)

// CleanKeywords trims every keyword and drops empty entries.
// Returns ErrNoKeywords when nothing survives; this check runs before any
// network activity starts.
func CleanKeywords(keywords []string) ([]string, error) {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if trimmed := strings.TrimSpace(kw); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoKeywords
	}
	return cleaned, nil
}

// SplitKeywords splits a comma-separated keyword string and validates the
// result the same way CleanKeywords does.
func SplitKeywords(raw string) ([]string, error) {
	return CleanKeywords(strings.Split(raw, ","))
}

// ValidatePlatform checks that a platform tag has a known export shape.
func ValidatePlatform(platform Platform) error {
	switch platform {
	case PlatformTalkwalker, PlatformNewswhip, PlatformGoogleNews:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
}
