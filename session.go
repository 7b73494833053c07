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

// Package pressgather collects news articles from platform exports and
// Google News harvests into one session-scoped collection that can be
// ranked against a search query and written back out.
package pressgather

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pressgather/pressgather/core"
)

// Session holds the article collection shared by aggregation, search and
// export. Aggregation replaces the collection wholesale; readers always see
// a consistent snapshot.
type Session struct {
	id     uuid.UUID
	logger *slog.Logger

	mu       sync.RWMutex
	articles []core.CanonicalArticle
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSession creates an empty session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		id:     uuid.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Replace swaps the whole collection for a new one.
func (s *Session) Replace(articles []core.CanonicalArticle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = articles
	s.logger.Info("session collection replaced", "session", s.id, "articles", len(articles))
}

// Articles returns a copy of the current collection.
func (s *Session) Articles() []core.CanonicalArticle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]core.CanonicalArticle, len(s.articles))
	copy(snapshot, s.articles)
	return snapshot
}

// Len reports the collection size.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

// Clear empties the collection.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = nil
}
