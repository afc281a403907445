package services

import (
	"context"
	"errors"
	"testing"

	"wordaday-backend/application/ports"
	apperrors "wordaday-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type enricherFixture struct {
	bank       *fakeBankRepo
	dictionary *fakeDictionary
	audio      *fakeAudio
	images     *fakeImages
	media      *fakeMediaStore
	enricher   *Enricher
}

func newEnricherFixture() *enricherFixture {
	f := &enricherFixture{
		bank: &fakeBankRepo{},
		dictionary: &fakeDictionary{entry: &ports.DictionaryEntry{
			Definition:    "emitting light",
			PartOfSpeech:  "adjective",
			Pronunciation: "LOO-muh-nuhs",
			Synonyms:      []string{"radiant"},
		}},
		audio:  &fakeAudio{data: []byte("mp3")},
		images: &fakeImages{url: "https://img.test/l.jpg", data: []byte("jpg")},
		media:  &fakeMediaStore{},
	}
	f.enricher = NewEnricher(f.bank, f.dictionary, f.audio, f.images, f.media, zap.NewNop())
	return f
}

func TestEnrichWordBuildsCompleteEntry(t *testing.T) {
	f := newEnricherFixture()

	result, err := f.enricher.EnrichWord(context.Background(), "  Luminous ")
	require.NoError(t, err)

	entry := result.Entry
	assert.Equal(t, "luminous", entry.Word, "input is lowercased and trimmed")
	assert.NotEmpty(t, entry.WordID)
	assert.Equal(t, "emitting light", entry.Definition)
	assert.Equal(t, "adjective", entry.PartOfSpeech)
	assert.NotEmpty(t, entry.Syllables)
	assert.NotEmpty(t, entry.AgeGroups)
	assert.True(t, result.HasAudio)
	assert.True(t, result.HasImage)
	assert.Equal(t, "https://media.test/audio/luminous.mp3", entry.AudioURL)
	assert.Equal(t, "https://media.test/images/luminous.jpg", entry.ImageURL)

	require.Len(t, f.bank.stored, 1)
}

func TestEnrichWordDictionaryFailures(t *testing.T) {
	t.Run("lookup error aborts", func(t *testing.T) {
		f := newEnricherFixture()
		f.dictionary.err = errors.New("api down")

		_, err := f.enricher.EnrichWord(context.Background(), "luminous")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
		assert.Empty(t, f.bank.stored)
	})

	t.Run("unknown word is not found", func(t *testing.T) {
		f := newEnricherFixture()
		f.dictionary.entry = nil

		_, err := f.enricher.EnrichWord(context.Background(), "asdfgh")
		assert.True(t, apperrors.IsNotFound(err))
		assert.Empty(t, f.bank.stored)
	})

	t.Run("blank word is invalid", func(t *testing.T) {
		f := newEnricherFixture()
		_, err := f.enricher.EnrichWord(context.Background(), "   ")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestEnrichWordMediaFailuresAreTolerated(t *testing.T) {
	f := newEnricherFixture()
	f.audio.err = errors.New("forvo down")
	f.images.err = errors.New("unsplash down")

	result, err := f.enricher.EnrichWord(context.Background(), "luminous")
	require.NoError(t, err, "media is decoration, not a requirement")

	assert.False(t, result.HasAudio)
	assert.False(t, result.HasImage)
	require.Len(t, f.bank.stored, 1)
	assert.Empty(t, f.bank.stored[0].AudioURL)
}

func TestEnrichWordStoreFailure(t *testing.T) {
	f := newEnricherFixture()
	f.bank.putErr = errors.New("dynamo down")

	_, err := f.enricher.EnrichWord(context.Background(), "luminous")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDatabase))
}

func TestEnrichBatchIsolatesFailures(t *testing.T) {
	f := newEnricherFixture()

	succeeded, failed := f.enricher.EnrichBatch(context.Background(), []string{"luminous", "", "radiant"})
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, failed)
	assert.Len(t, f.bank.stored, 2)
}

func TestEstimateDifficulty(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"rhythm", 1},
		{"serendipity", 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateDifficulty(tt.word), "word %q", tt.word)
	}
}
