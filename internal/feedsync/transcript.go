// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// # Transcript Parsing

var (
	// timestampRange matches a VTT/SRT cue timing line. Both the dot and
	// comma fractional separators are accepted so one pattern covers both
	// formats.
	timestampRange = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2})[.,](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[.,](\d{3})`)

	// voiceTag matches a WebVTT voice span opener like "<v Alice>".
	voiceTag = regexp.MustCompile(`<v\s+([^>]+)>`)

	// numericLine matches SRT cue-index lines.
	numericLine = regexp.MustCompile(`^\d+$`)
)

/*
ParseTranscript converts a raw transcript document into ordered segments.

Description: Pure function, no I/O. The content type decides the strategy:
anything JSON-flavored goes through the JSON path, everything else is
scanned as WebVTT/SRT. Output order is input order; no timestamp ordering
validation or overlap correction is performed.

Parameters:
  - content: Raw document body.
  - contentType: The document's declared media type.

Returns:
  - []Segment: Parsed segments, possibly empty, never nil. Parsing never
    fails: malformed input degrades to an empty result.
*/
func ParseTranscript(content, contentType string) []Segment {
	if isJSONTranscript(contentType) {
		return parseJSONTranscript(content)
	}
	return parseCueTranscript(content)
}

// isJSONTranscript reports whether the declared media type names a JSON
// transcript (application/json, application/json+podcast-transcript, with
// or without parameters).
func isJSONTranscript(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}

// # JSON Transcripts

// jsonTranscriptEntry accepts the field aliases seen in the wild:
// startTime/start, endTime/end, body/text.
type jsonTranscriptEntry struct {
	StartTime *float64 `json:"startTime"`
	Start     *float64 `json:"start"`
	EndTime   *float64 `json:"endTime"`
	End       *float64 `json:"end"`
	Speaker   string   `json:"speaker"`
	Body      string   `json:"body"`
	Text      string   `json:"text"`
}

// parseJSONTranscript reads a JSON transcript document. The entry list may
// live under "segments", under "cues", or be the document itself.
//
// Malformed JSON yields an empty result on purpose: a broken transcript is
// treated as "no transcript available" and must never fail the sync that
// triggered the fetch.
func parseJSONTranscript(content string) []Segment {
	data := []byte(content)
	var entries []jsonTranscriptEntry

	var envelope struct {
		Segments json.RawMessage `json:"segments"`
		Cues     json.RawMessage `json:"cues"`
	}

	if err := json.Unmarshal(data, &envelope); err == nil {
		raw := envelope.Segments
		if raw == nil {
			raw = envelope.Cues
		}
		if raw == nil {
			return []Segment{}
		}
		if err := json.Unmarshal(raw, &entries); err != nil {
			return []Segment{}
		}
	} else if err := json.Unmarshal(data, &entries); err != nil {
		// Neither an envelope nor a bare array: degrade to empty.
		return []Segment{}
	}

	segments := make([]Segment, 0, len(entries))
	for _, entry := range entries {
		start := firstValue(entry.StartTime, entry.Start)

		// Missing end times default to a five second cue. Deliberate
		// heuristic carried over from the ingest format's loose schema.
		end := start + 5
		if value := firstPointer(entry.EndTime, entry.End); value != nil {
			end = *value
		}

		text := entry.Body
		if text == "" {
			text = entry.Text
		}

		segments = append(segments, Segment{
			StartTime: start,
			EndTime:   end,
			Speaker:   entry.Speaker,
			Text:      text,
		})
	}

	return segments
}

// # WebVTT / SRT Transcripts

// parseCueTranscript scans a VTT or SRT document line by line.
//
// A timing line flushes the accumulated segment and opens a new one. Voice
// tags set the speaker. The WEBVTT header, numeric cue indices, and blank
// lines are skipped; any other line is accumulated as text.
func parseCueTranscript(content string) []Segment {
	segments := []Segment{}

	var currentStart, currentEnd float64
	var currentSpeaker string
	var textBuilder strings.Builder

	flush := func() {
		if text := strings.TrimSpace(textBuilder.String()); text != "" {
			segments = append(segments, Segment{
				StartTime: currentStart,
				EndTime:   currentEnd,
				Speaker:   currentSpeaker,
				Text:      text,
			})
		}
		textBuilder.Reset()
		currentSpeaker = ""
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		// Timing line: flush the previous cue, open the next
		if match := timestampRange.FindStringSubmatch(trimmed); match != nil {
			flush()
			currentStart = clockToSeconds(match[1], match[2], match[3], match[4])
			currentEnd = clockToSeconds(match[5], match[6], match[7], match[8])
			continue
		}

		// Voice tag: capture the speaker, keep the spoken text
		if match := voiceTag.FindStringSubmatch(trimmed); match != nil {
			currentSpeaker = match[1]
			spoken := voiceTag.ReplaceAllString(trimmed, "")
			spoken = strings.ReplaceAll(spoken, "</v>", "")
			textBuilder.WriteString(spoken + " ")
			continue
		}

		// Structural noise
		if trimmed == "" || trimmed == "WEBVTT" || numericLine.MatchString(trimmed) {
			continue
		}

		textBuilder.WriteString(trimmed + " ")
	}

	flush()
	return segments
}

// clockToSeconds converts HH, MM, SS, mmm captures into fractional seconds.
func clockToSeconds(hours, minutes, seconds, millis string) float64 {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	ms, _ := strconv.Atoi(millis)

	return float64(h)*3600 + float64(m)*60 + float64(s) + float64(ms)/1000
}

// # Small Helpers

// firstValue dereferences the first non-nil pointer, defaulting to zero.
func firstValue(pointers ...*float64) float64 {
	if p := firstPointer(pointers...); p != nil {
		return *p
	}
	return 0
}

// firstPointer returns the first non-nil pointer in order.
func firstPointer(pointers ...*float64) *float64 {
	for _, pointer := range pointers {
		if pointer != nil {
			return pointer
		}
	}
	return nil
}
