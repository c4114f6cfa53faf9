// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync

import (
	"sort"
	"time"

	"github.com/podcentral/api/internal/directory"
	"github.com/podcentral/api/pkg/pointer"
	"github.com/podcentral/api/pkg/slug"
)

// # Directory → Storage Transformation

/*
TransformPodcast maps a directory feed record onto a storage record.

Description: Applies the catalogue's defaulting chain: author falls back to
the feed owner name, artwork falls back to the episode-level image, language
defaults to English, medium defaults to "podcast". Category labels are
normalized to their compact form ("True Crime" → "truecrime").

Parameters:
  - podcast: The directory wire record.

Returns:
  - *PodcastRecord: The storage-shaped record, including nested funding and
    value blocks when the feed declares them.
*/
func TransformPodcast(podcast *directory.Podcast) *PodcastRecord {
	author := podcast.Author
	if author == "" {
		author = podcast.OwnerName
	}

	image := podcast.Artwork
	if image == "" {
		image = podcast.Image
	}

	language := podcast.Language
	if language == "" {
		language = "en"
	}

	medium := podcast.Medium
	if medium == "" {
		medium = "podcast"
	}

	record := &PodcastRecord{
		PodcastIndexID: podcast.ID,
		Title:          podcast.Title,
		Author:         author,
		Description:    podcast.Description,
		Image:          image,
		Categories:     normalizeCategories(podcast.Categories),
		Locked:         podcast.Locked == 1,
		Medium:         medium,
		Language:       language,
		EpisodeCount:   podcast.EpisodeCount,
		FeedURL:        podcast.URL,
	}

	if podcast.Funding != nil {
		record.Funding = &FundingRecord{
			URL:     podcast.Funding.URL,
			Message: podcast.Funding.Message,
		}
	}

	if podcast.Value != nil {
		record.Value = transformValue(podcast.Value)
	}

	return record
}

/*
TransformEpisode maps a directory episode record onto a storage record.

Description: Converts the epoch-seconds publish date into a UTC timestamp,
detects trailers from the declared episode type, normalizes contributor
roles, and merges the legacy single soundbite field with the soundbites
list.

Returns:
  - *EpisodeRecord: The storage-shaped record with its dependent person,
    soundbite, and social-link records attached.
*/
func TransformEpisode(episode *directory.Episode) *EpisodeRecord {
	record := &EpisodeRecord{
		PodcastIndexID: episode.ID,
		Title:          episode.Title,
		Description:    episode.Description,
		DatePublished:  time.Unix(episode.DatePublished, 0).UTC(),
		Duration:       episode.Duration,
		EnclosureURL:   episode.EnclosureURL,
		Season:         episode.Season,
		Episode:        episode.Episode,
		IsTrailer:      episode.EpisodeType == "trailer",
		ChaptersURL:    emptyToNil(episode.ChaptersURL),
		TranscriptURL:  emptyToNil(episode.TranscriptURL),
	}

	if episode.Image != "" {
		record.Image = pointer.To(episode.Image)
	}

	record.Persons = transformPersons(episode.Persons)
	record.Soundbites = mergeSoundbites(episode.Soundbite, episode.Soundbites)
	record.SocialLinks = transformSocialLinks(episode.SocialInteract)

	return record
}

// normalizeCategories compacts and deduplicates directory category labels.
// Keys are sorted first so output order is stable across syncs.
func normalizeCategories(categories map[string]string) []string {
	if len(categories) == 0 {
		return []string{}
	}

	keys := make([]string, 0, len(categories))
	for key := range categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seen := make(map[string]struct{}, len(keys))
	labels := make([]string, 0, len(keys))

	for _, key := range keys {
		label := slug.Compact(categories[key])
		if label == "" {
			continue
		}
		if _, duplicate := seen[label]; duplicate {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	return labels
}

// transformPersons maps directory contributor credits, normalizing roles
// and filling placeholder avatars.
func transformPersons(persons []directory.Person) []PersonRecord {
	if len(persons) == 0 {
		return nil
	}

	records := make([]PersonRecord, 0, len(persons))
	for _, person := range persons {
		img := person.Img
		if img == "" {
			img = PlaceholderAvatar(person.Name)
		}

		record := PersonRecord{
			Name: person.Name,
			Role: NormalizeRole(person.Role),
			Img:  img,
		}
		if person.Group != "" {
			record.GroupName = pointer.To(person.Group)
		}
		if person.Href != "" {
			record.Href = pointer.To(person.Href)
		}

		records = append(records, record)
	}

	return records
}

// mergeSoundbites accepts both the legacy single soundbite field and the
// soundbites list. The list wins when both are present.
func mergeSoundbites(single *directory.Soundbite, list []directory.Soundbite) []SoundbiteRecord {
	source := list
	if len(source) == 0 && single != nil {
		source = []directory.Soundbite{*single}
	}
	if len(source) == 0 {
		return nil
	}

	records := make([]SoundbiteRecord, 0, len(source))
	for _, soundbite := range source {
		records = append(records, SoundbiteRecord{
			StartTime: soundbite.StartTime,
			Duration:  soundbite.Duration,
			Title:     soundbite.Title,
		})
	}

	return records
}

// transformSocialLinks maps social-interact declarations.
func transformSocialLinks(links []directory.SocialInteract) []SocialLinkRecord {
	if len(links) == 0 {
		return nil
	}

	records := make([]SocialLinkRecord, 0, len(links))
	for _, link := range links {
		record := SocialLinkRecord{
			URI:      link.URL,
			Protocol: link.Protocol,
		}
		if link.AccountURL != "" {
			record.AccountURL = pointer.To(link.AccountURL)
		}
		records = append(records, record)
	}

	return records
}

// transformValue maps a value block, assigning recipient positions so the
// declared split order survives the delete-and-reinsert replace.
func transformValue(value *directory.Value) *ValueRecord {
	record := &ValueRecord{
		Type:   value.Model.Type,
		Method: value.Model.Method,
	}

	for index, destination := range value.Destinations {
		record.Recipients = append(record.Recipients, ValueRecipientRecord{
			Name:     destination.Name,
			Type:     destination.Type,
			Address:  destination.Address,
			Split:    destination.Split,
			Position: index,
		})
	}

	return record
}

// emptyToNil converts the directory's "present but empty" URL fields into
// proper absence.
func emptyToNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
