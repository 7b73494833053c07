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

// Package sentiment labels article text with a VADER polarity class.
//
// Labeling is local and optional. Harvested articles carry no sentiment in
// their source platform, so callers may use Label to fill the field that
// other platforms populate natively.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/pressgather/pressgather/core"
)

// Labels assigned by Label. Articles whose compound polarity falls within
// (-0.20, 0.20) are considered neutral.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"

	positiveThreshold = 0.20
	negativeThreshold = -0.20
)

var (
	analyzer   = govader.NewSentimentIntensityAnalyzer()
	urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// RemoveLinks strips bare URLs from text so they do not skew scoring.
func RemoveLinks(input string) string {
	return urlPattern.ReplaceAllString(input, "")
}

// Score returns the VADER compound polarity of text in [-1, 1].
func Score(text string) float64 {
	cleaned := strings.Join(strings.Fields(RemoveLinks(text)), " ")
	return analyzer.PolarityScores(cleaned).Compound
}

// Label classifies text as Positive, Negative or Neutral.
func Label(text string) string {
	score := Score(text)
	switch {
	case score >= positiveThreshold:
		return Positive
	case score <= negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// LabelStub classifies a harvested stub by its headline and snippet.
func LabelStub(stub core.HarvestedStub) string {
	return Label(strings.TrimSpace(stub.Title + " " + stub.Snippet))
}

// Enrich fills the Sentiment field of every article whose value is still
// the placeholder, using the article title as the scored text.
func Enrich(articles []core.CanonicalArticle) {
	for i := range articles {
		if articles[i].Sentiment == core.Sentinel || articles[i].Sentiment == "" {
			articles[i].Sentiment = Label(articles[i].Title)
		}
	}
}
