// Copyright (c) 2026 PodCentral. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/podcentral/api/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "spaces to hyphens", input: "True Crime", want: "true-crime"},
		{name: "accents stripped", input: "Café Société", want: "cafe-societe"},
		{name: "punctuation collapsed", input: "News & Politics!!", want: "news-politics"},
		{name: "already clean", input: "technology", want: "technology"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, slug.From(testCase.input))
		})
	}
}

// TestCompact pins the canonical category label form: all separators AND
// punctuation are dropped, so any casing or spelling of a label maps to one
// plain ASCII identifier.
func TestCompact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "two words", input: "True Crime", want: "truecrime"},
		{name: "uppercase", input: "TECHNOLOGY", want: "technology"},
		{name: "hyphenated", input: "tv-film", want: "tvfilm"},
		{name: "ampersand dropped", input: "News & Politics", want: "newspolitics"},
		{name: "accents dropped", input: "Santé", want: "sante"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, slug.Compact(testCase.input))
		})
	}
}
