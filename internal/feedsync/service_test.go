// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcentral/api/internal/directory"
	"github.com/podcentral/api/internal/feedsync"
	"github.com/podcentral/api/internal/platform/apperr"
	"github.com/podcentral/api/pkg/pointer"
)

// # Test Doubles

// fakeDirectory serves canned directory records.
type fakeDirectory struct {
	podcast  *directory.Podcast
	episodes []directory.Episode

	podcastErr  error
	episodesErr error
}

func (fake *fakeDirectory) PodcastByFeedID(_ context.Context, _ int64) (*directory.Podcast, error) {
	if fake.podcastErr != nil {
		return nil, fake.podcastErr
	}
	return fake.podcast, nil
}

func (fake *fakeDirectory) EpisodesByFeedID(_ context.Context, _ int64, _ int) ([]directory.Episode, error) {
	if fake.episodesErr != nil {
		return nil, fake.episodesErr
	}
	return fake.episodes, nil
}

// fakeFetcher serves canned side documents.
type fakeFetcher struct {
	chapters    []feedsync.Chapter
	segments    []feedsync.Segment
	chaptersErr error
}

func (fake *fakeFetcher) FetchChapters(_ context.Context, _ string) ([]feedsync.Chapter, error) {
	return fake.chapters, fake.chaptersErr
}

func (fake *fakeFetcher) FetchTranscript(_ context.Context, _ string) ([]feedsync.Segment, error) {
	return fake.segments, nil
}

// memStore is an in-memory [feedsync.Store] honoring the natural-key upsert
// semantics, so idempotence and dedup are observable.
type memStore struct {
	mu sync.Mutex

	podcasts    map[int64]string            // podcast_index_id → podcast id
	episodes    map[string]map[int64]string // podcast id → index id → episode id
	persons     map[string]string           // name|role → person id
	personLinks map[string]int              // episode|person → link count
	chapters    map[string][]feedsync.Chapter
	transcripts map[string][]feedsync.Segment
	soundbites  map[string][]feedsync.SoundbiteRecord
	socialLinks map[string][]feedsync.SocialLinkRecord
	counts      map[string]int

	nextID int
}

func newMemStore() *memStore {
	return &memStore{
		podcasts:    make(map[int64]string),
		episodes:    make(map[string]map[int64]string),
		persons:     make(map[string]string),
		personLinks: make(map[string]int),
		chapters:    make(map[string][]feedsync.Chapter),
		transcripts: make(map[string][]feedsync.Segment),
		soundbites:  make(map[string][]feedsync.SoundbiteRecord),
		socialLinks: make(map[string][]feedsync.SocialLinkRecord),
		counts:      make(map[string]int),
	}
}

func (store *memStore) newID(prefix string) string {
	store.nextID++
	return fmt.Sprintf("%s-%d", prefix, store.nextID)
}

func (store *memStore) UpsertPodcast(_ context.Context, record *feedsync.PodcastRecord) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if id, exists := store.podcasts[record.PodcastIndexID]; exists {
		return id, nil
	}
	id := store.newID("podcast")
	store.podcasts[record.PodcastIndexID] = id
	store.episodes[id] = make(map[int64]string)
	return id, nil
}

func (store *memStore) ReplaceFunding(_ context.Context, _ string, _ *feedsync.FundingRecord) error {
	return nil
}

func (store *memStore) ReplaceValue(_ context.Context, _ string, _ *feedsync.ValueRecord) error {
	return nil
}

func (store *memStore) ExistingEpisodes(_ context.Context, podcastID string, indexIDs []int64) (map[int64]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	known := make(map[int64]string)
	for _, indexID := range indexIDs {
		if episodeID, exists := store.episodes[podcastID][indexID]; exists {
			known[indexID] = episodeID
		}
	}
	return known, nil
}

func (store *memStore) UpdateEpisode(_ context.Context, _ string, _ *feedsync.EpisodeRecord) error {
	return nil
}

func (store *memStore) InsertEpisode(_ context.Context, podcastID string, record *feedsync.EpisodeRecord) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if episodeID, exists := store.episodes[podcastID][record.PodcastIndexID]; exists {
		return episodeID, nil
	}
	episodeID := store.newID("episode")
	store.episodes[podcastID][record.PodcastIndexID] = episodeID
	return episodeID, nil
}

func (store *memStore) UpsertPerson(_ context.Context, person *feedsync.PersonRecord) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	key := person.Name + "|" + person.Role
	if personID, exists := store.persons[key]; exists {
		return personID, nil
	}
	personID := store.newID("person")
	store.persons[key] = personID
	return personID, nil
}

func (store *memStore) LinkEpisodePerson(_ context.Context, episodeID, personID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.personLinks[episodeID+"|"+personID]++
	return nil
}

func (store *memStore) ReplaceChapters(_ context.Context, episodeID string, chapters []feedsync.Chapter) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.chapters[episodeID] = chapters
	return nil
}

func (store *memStore) ReplaceTranscript(_ context.Context, episodeID string, segments []feedsync.Segment) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.transcripts[episodeID] = segments
	return nil
}

func (store *memStore) InsertSoundbites(_ context.Context, episodeID string, soundbites []feedsync.SoundbiteRecord) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.soundbites[episodeID] = soundbites
	return nil
}

func (store *memStore) InsertSocialLinks(_ context.Context, episodeID string, links []feedsync.SocialLinkRecord) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.socialLinks[episodeID] = links
	return nil
}

func (store *memStore) SetEpisodeCount(_ context.Context, podcastID string, count int) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.counts[podcastID] = count
	return nil
}

// # Fixtures

func testFeed() *directory.Podcast {
	return &directory.Podcast{
		ID:     920666,
		Title:  "Test Show",
		Author: "Jane Doe",
		URL:    "https://example.com/feed.xml",
		Categories: map[string]string{
			"103": "True Crime",
		},
	}
}

func testEpisodes() []directory.Episode {
	chaptersURL := "https://example.com/chapters.json"
	return []directory.Episode{
		{
			ID:            1,
			Title:         "Episode One",
			DatePublished: 1609125600,
			ChaptersURL:   &chaptersURL,
			Persons: []directory.Person{
				{Name: "Jane Doe", Role: "host"},
			},
		},
		{
			ID:            2,
			Title:         "Episode Two",
			DatePublished: 1609212000,
			Persons: []directory.Person{
				{Name: "Jane Doe", Role: "host"},
			},
		},
	}
}

// # Orchestrator Tests

/*
TestService_Sync_CreatesEverything walks the happy path end to end.
*/
func TestService_Sync_CreatesEverything(t *testing.T) {
	store := newMemStore()
	fetcher := &fakeFetcher{
		chapters: []feedsync.Chapter{{StartTime: 0, Title: "Intro"}},
	}
	service := feedsync.NewService(&fakeDirectory{podcast: testFeed(), episodes: testEpisodes()}, fetcher, store)

	result, err := service.Sync(context.Background(), 920666)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.EpisodesCreated)
	assert.Equal(t, 0, result.EpisodesUpdated)
	assert.NotEmpty(t, result.PodcastID)

	// The chapters document was applied to the episode that declared one
	assert.Len(t, store.chapters, 1)

	// Episode count is the directory list size
	assert.Equal(t, 2, store.counts[result.PodcastID])
}

/*
TestService_Sync_Idempotent verifies a second sync with unchanged upstream
data creates nothing and keeps exactly one podcast row.
*/
func TestService_Sync_Idempotent(t *testing.T) {
	store := newMemStore()
	source := &fakeDirectory{podcast: testFeed(), episodes: testEpisodes()}
	service := feedsync.NewService(source, &fakeFetcher{}, store)

	first, err := service.Sync(context.Background(), 920666)
	require.NoError(t, err)
	assert.Equal(t, 2, first.EpisodesCreated)

	second, err := service.Sync(context.Background(), 920666)
	require.NoError(t, err)
	assert.Equal(t, 0, second.EpisodesCreated)
	assert.Equal(t, 2, second.EpisodesUpdated)

	assert.Len(t, store.podcasts, 1)
	assert.Equal(t, first.PodcastID, second.PodcastID)
}

/*
TestService_Sync_PersonDedup checks that one contributor across two
episodes yields one person row and two links.
*/
func TestService_Sync_PersonDedup(t *testing.T) {
	store := newMemStore()
	service := feedsync.NewService(&fakeDirectory{podcast: testFeed(), episodes: testEpisodes()}, &fakeFetcher{}, store)

	_, err := service.Sync(context.Background(), 920666)
	require.NoError(t, err)

	assert.Len(t, store.persons, 1)
	assert.Len(t, store.personLinks, 2)
}

/*
TestService_Sync_NotFound verifies the terminal not-found failure: the
exact error message and zero writes.
*/
func TestService_Sync_NotFound(t *testing.T) {
	store := newMemStore()
	source := &fakeDirectory{podcastErr: apperr.NotFound("Podcast")}
	service := feedsync.NewService(source, &fakeFetcher{}, store)

	result, err := service.Sync(context.Background(), 404404)

	require.Error(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Podcast not found in directory", result.Error)
	assert.Empty(t, store.podcasts)
}

/*
TestService_Sync_EpisodeFetchFailureIsFatal covers the step-2 terminal
failure: a directory network error aborts before any write.
*/
func TestService_Sync_EpisodeFetchFailureIsFatal(t *testing.T) {
	store := newMemStore()
	source := &fakeDirectory{podcast: testFeed(), episodesErr: errors.New("connection reset")}
	service := feedsync.NewService(source, &fakeFetcher{}, store)

	result, err := service.Sync(context.Background(), 920666)

	require.Error(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "connection reset")
	assert.Empty(t, store.podcasts)
}

/*
TestService_Sync_PartialFailureTolerated verifies an unreachable chapters
URL degrades: the sync still succeeds and the episode row exists.
*/
func TestService_Sync_PartialFailureTolerated(t *testing.T) {
	store := newMemStore()
	fetcher := &fakeFetcher{chaptersErr: errors.New("dial tcp: connection refused")}
	service := feedsync.NewService(&fakeDirectory{podcast: testFeed(), episodes: testEpisodes()}, fetcher, store)

	result, err := service.Sync(context.Background(), 920666)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.EpisodesCreated)
	assert.Empty(t, store.chapters)
}

/*
TestService_Sync_EmptyChaptersNoop verifies an empty chapters document
leaves prior chapter state untouched.
*/
func TestService_Sync_EmptyChaptersNoop(t *testing.T) {
	store := newMemStore()

	// nil chapters simulates the empty-array document
	service := feedsync.NewService(&fakeDirectory{podcast: testFeed(), episodes: testEpisodes()}, &fakeFetcher{chapters: nil}, store)

	result, err := service.Sync(context.Background(), 920666)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, store.chapters)
}

/*
TestService_Sync_EmptyEpisodeListIsValid verifies an empty directory
episode list syncs successfully with zero counts.
*/
func TestService_Sync_EmptyEpisodeListIsValid(t *testing.T) {
	store := newMemStore()
	service := feedsync.NewService(&fakeDirectory{podcast: testFeed(), episodes: []directory.Episode{}}, &fakeFetcher{}, store)

	result, err := service.Sync(context.Background(), 920666)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.EpisodesCreated)
	assert.Equal(t, 0, store.counts[result.PodcastID])
}

/*
TestService_Sync_ConcurrentSameFeed runs two syncs of one feed in parallel
and expects exactly one podcast row.
*/
func TestService_Sync_ConcurrentSameFeed(t *testing.T) {
	store := newMemStore()
	service := feedsync.NewService(&fakeDirectory{podcast: testFeed(), episodes: testEpisodes()}, &fakeFetcher{}, store)

	var group sync.WaitGroup
	for range 2 {
		group.Add(1)
		go func() {
			defer group.Done()
			_, err := service.Sync(context.Background(), 920666)
			assert.NoError(t, err)
		}()
	}
	group.Wait()

	assert.Len(t, store.podcasts, 1)
	totalEpisodes := 0
	for _, byIndex := range store.episodes {
		totalEpisodes += len(byIndex)
	}
	assert.Equal(t, 2, totalEpisodes)
}

/*
TestService_Sync_TranscriptStored verifies parsed segments reach storage
for a new episode that declares a transcript URL.
*/
func TestService_Sync_TranscriptStored(t *testing.T) {
	transcriptURL := "https://example.com/transcript.vtt"
	episodes := []directory.Episode{{
		ID:            9,
		Title:         "With Transcript",
		DatePublished: 1609125600,
		TranscriptURL: &transcriptURL,
		Image:         "https://example.com/ep.png",
		Season:        pointer.To(1),
	}}

	store := newMemStore()
	fetcher := &fakeFetcher{
		segments: []feedsync.Segment{{StartTime: 0, EndTime: 5, Speaker: "Alice", Text: "Hello there"}},
	}
	service := feedsync.NewService(&fakeDirectory{podcast: testFeed(), episodes: episodes}, fetcher, store)

	result, err := service.Sync(context.Background(), 920666)

	require.NoError(t, err)
	require.Equal(t, 1, result.EpisodesCreated)
	require.Len(t, store.transcripts, 1)
	for _, segments := range store.transcripts {
		require.Len(t, segments, 1)
		assert.Equal(t, "Alice", segments[0].Speaker)
	}
}
