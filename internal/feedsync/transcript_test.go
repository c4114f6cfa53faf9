// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcentral/api/internal/feedsync"
)

/*
TestParseTranscript_JSON covers the JSON transcript path: the segments and
cues envelopes, the bare-array form, field aliases, and the five second
default end time.
*/
func TestParseTranscript_JSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []feedsync.Segment
	}{
		{
			name:    "segments_envelope",
			content: `{"segments":[{"startTime":0,"endTime":5,"speaker":"A","text":"hi"}]}`,
			want:    []feedsync.Segment{{StartTime: 0, EndTime: 5, Speaker: "A", Text: "hi"}},
		},
		{
			name:    "cues_envelope_with_body",
			content: `{"cues":[{"start":1.5,"end":3,"body":"hello"}]}`,
			want:    []feedsync.Segment{{StartTime: 1.5, EndTime: 3, Text: "hello"}},
		},
		{
			name:    "bare_array",
			content: `[{"startTime":10,"endTime":12,"text":"bare"}]`,
			want:    []feedsync.Segment{{StartTime: 10, EndTime: 12, Text: "bare"}},
		},
		{
			name:    "missing_end_defaults_to_start_plus_five",
			content: `{"segments":[{"startTime":30,"text":"open ended"}]}`,
			want:    []feedsync.Segment{{StartTime: 30, EndTime: 35, Text: "open ended"}},
		},
		{
			name:    "start_alias_with_default_end",
			content: `{"segments":[{"start":8,"text":"aliased"}]}`,
			want:    []feedsync.Segment{{StartTime: 8, EndTime: 13, Text: "aliased"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := feedsync.ParseTranscript(tt.content, "application/json")
			assert.Equal(t, tt.want, segments)
		})
	}
}

/*
TestParseTranscript_MalformedJSON verifies the intentional degrade-to-empty
behavior: broken JSON yields zero segments, never a panic or an error.
*/
func TestParseTranscript_MalformedJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated_object", `{"segments":[{"startTime":0,`},
		{"not_json_at_all", `WEBVTT pretending to be JSON`},
		{"wrong_shape", `{"segments":"oops"}`},
		{"empty_body", ``},
		{"null_document", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := feedsync.ParseTranscript(tt.content, "application/json+podcast-transcript")
			require.NotNil(t, segments)
			assert.Empty(t, segments)
		})
	}
}

/*
TestParseTranscript_WebVTT covers the cue-scanning path: header skipping,
voice tags, and timestamp arithmetic.
*/
func TestParseTranscript_WebVTT(t *testing.T) {
	content := "WEBVTT\n" +
		"\n" +
		"1\n" +
		"00:00:00.000 --> 00:00:05.000\n" +
		"<v Alice>Hello there\n"

	segments := feedsync.ParseTranscript(content, "text/vtt")

	require.Len(t, segments, 1)
	assert.Equal(t, float64(0), segments[0].StartTime)
	assert.Equal(t, float64(5), segments[0].EndTime)
	assert.Equal(t, "Alice", segments[0].Speaker)
	assert.Equal(t, "Hello there", segments[0].Text)
}

/*
TestParseTranscript_SRT verifies comma fractional separators and multi-line
cue accumulation.
*/
func TestParseTranscript_SRT(t *testing.T) {
	content := "1\n" +
		"00:01:02,500 --> 00:01:04,250\n" +
		"First line\n" +
		"second line\n" +
		"\n" +
		"2\n" +
		"00:01:05,000 --> 00:01:06,000\n" +
		"Next cue\n"

	segments := feedsync.ParseTranscript(content, "application/srt")

	require.Len(t, segments, 2)
	assert.InDelta(t, 62.5, segments[0].StartTime, 0.0001)
	assert.InDelta(t, 64.25, segments[0].EndTime, 0.0001)
	assert.Equal(t, "First line second line", segments[0].Text)
	assert.Empty(t, segments[0].Speaker)

	assert.Equal(t, "Next cue", segments[1].Text)
}

/*
TestParseTranscript_VTT_MultipleVoices checks that a timing line flushes the
previous cue and resets the speaker.
*/
func TestParseTranscript_VTT_MultipleVoices(t *testing.T) {
	content := "WEBVTT\n" +
		"\n" +
		"00:00:00.000 --> 00:00:02.000\n" +
		"<v Alice>Hi Bob\n" +
		"\n" +
		"00:00:02.000 --> 00:00:04.000\n" +
		"Unattributed line\n"

	segments := feedsync.ParseTranscript(content, "text/vtt")

	require.Len(t, segments, 2)
	assert.Equal(t, "Alice", segments[0].Speaker)
	assert.Equal(t, "Hi Bob", segments[0].Text)

	// Speaker must not leak into the next cue
	assert.Empty(t, segments[1].Speaker)
	assert.Equal(t, "Unattributed line", segments[1].Text)
}

/*
TestParseTranscript_TrailingCueWithoutBlankLine ensures the final
accumulated segment is flushed at end of input.
*/
func TestParseTranscript_TrailingCueWithoutBlankLine(t *testing.T) {
	content := "00:00:10.000 --> 00:00:12.000\nlast words"

	segments := feedsync.ParseTranscript(content, "text/vtt")

	require.Len(t, segments, 1)
	assert.Equal(t, "last words", segments[0].Text)
	assert.Equal(t, float64(10), segments[0].StartTime)
}

/*
TestParseTranscript_NoOrderingCorrection confirms output order is input
order: out-of-order timestamps are preserved, not sorted.
*/
func TestParseTranscript_NoOrderingCorrection(t *testing.T) {
	content := "00:00:30.000 --> 00:00:35.000\nsecond half\n" +
		"\n" +
		"00:00:00.000 --> 00:00:05.000\nfirst half\n"

	segments := feedsync.ParseTranscript(content, "text/vtt")

	require.Len(t, segments, 2)
	assert.Equal(t, float64(30), segments[0].StartTime)
	assert.Equal(t, float64(0), segments[1].StartTime)
}
