package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/events"
	"wordaday-backend/domain/notifications"
	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"
	apperrors "wordaday-backend/pkg/errors"
)

func recordKey(userID, date string) string { return userID + "|" + date }

// fakeRecordRepo is an in-memory WordRecordRepository with injectable
// failures.
type fakeRecordRepo struct {
	mu       sync.Mutex
	items    map[string]*words.WordRecord
	getErr   error
	putErr   error
	queryErr error

	// conflictWinner, when set, makes the next conditional put store this
	// record and fail with a conflict, simulating a concurrent writer that
	// won the race.
	conflictWinner *words.WordRecord

	// failPutUser makes writes for one user fail while others succeed.
	failPutUser string
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{items: map[string]*words.WordRecord{}}
}

func (f *fakeRecordRepo) Get(_ context.Context, userID, date string) (*words.WordRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.items[recordKey(userID, date)]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecordRepo) Put(_ context.Context, record *words.WordRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	cp := *record
	f.items[recordKey(record.UserID, record.Date)] = &cp
	return nil
}

func (f *fakeRecordRepo) PutIfAbsentOrSkipped(_ context.Context, record *words.WordRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	if f.failPutUser != "" && record.UserID == f.failPutUser {
		return errors.New("write throttled")
	}
	if f.conflictWinner != nil {
		winner := *f.conflictWinner
		f.conflictWinner = nil
		f.items[recordKey(winner.UserID, winner.Date)] = &winner
		return apperrors.NewConflictError("word already stored")
	}
	key := recordKey(record.UserID, record.Date)
	if existing, ok := f.items[key]; ok && existing.Status != words.StatusSkipped {
		return apperrors.NewConflictError("word already stored")
	}
	cp := *record
	f.items[key] = &cp
	return nil
}

func (f *fakeRecordRepo) QueryRange(_ context.Context, userID, start, end string) ([]words.WordRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []words.WordRecord
	for _, r := range f.items {
		if r.UserID == userID && r.Date >= start && r.Date <= end {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeRecordRepo) QueryRecent(_ context.Context, userID, start, end string, limit int) ([]words.WordRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []words.WordRecord
	for _, r := range f.items {
		if r.UserID != userID {
			continue
		}
		if start != "" && r.Date < start {
			continue
		}
		if end != "" && r.Date > end {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRecordRepo) UpdatePractice(_ context.Context, userID, date string, status words.PracticeStatus, rating int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[recordKey(userID, date)]
	if !ok {
		return apperrors.NewNotFoundError("word record")
	}
	r.Status = status
	if rating > 0 {
		r.Rating = rating
	}
	return nil
}

// fakeBankRepo is an in-memory WordBankRepository.
type fakeBankRepo struct {
	entries []words.BankEntry
	scanErr error
	putErr  error
	stored  []words.BankEntry
}

func (f *fakeBankRepo) ScanByDifficulty(_ context.Context, low, high, limit int) ([]words.BankEntry, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	var out []words.BankEntry
	for _, e := range f.entries {
		if e.Difficulty >= low && e.Difficulty <= high {
			out = append(out, e)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeBankRepo) Put(_ context.Context, entry *words.BankEntry) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.stored = append(f.stored, *entry)
	return nil
}

// fakeProfileRepo is an in-memory ProfileRepository.
type fakeProfileRepo struct {
	profiles map[string]*users.Profile
	getErr   error
	putErr   error
	listErr  error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*users.Profile{}}
}

func (f *fakeProfileRepo) Get(_ context.Context, userID string) (*users.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Put(_ context.Context, profile *users.Profile) error {
	if f.putErr != nil {
		return f.putErr
	}
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakeProfileRepo) ListAll(_ context.Context) ([]users.Profile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]string, 0, len(f.profiles))
	for id := range f.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]users.Profile, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.profiles[id])
	}
	return out, nil
}

// fakeFeedbackRepo records stored feedback rows.
type fakeFeedbackRepo struct {
	stored []words.Feedback
	putErr error
}

func (f *fakeFeedbackRepo) Put(_ context.Context, fb *words.Feedback) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.stored = append(f.stored, *fb)
	return nil
}

// fakeUsageRepo tracks per-day counts.
type fakeUsageRepo struct {
	counts    map[string]int
	countErr  error
	incErr    error
	providers []string
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{counts: map[string]int{}}
}

func (f *fakeUsageRepo) Count(_ context.Context, userID, date string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[recordKey(userID, date)], nil
}

func (f *fakeUsageRepo) Increment(_ context.Context, userID, date, provider string) error {
	if f.incErr != nil {
		return f.incErr
	}
	f.counts[recordKey(userID, date)]++
	f.providers = append(f.providers, provider)
	return nil
}

// fakeLogRepo records delivery logs.
type fakeLogRepo struct {
	logs   []notifications.Log
	putErr error
}

func (f *fakeLogRepo) Put(_ context.Context, log *notifications.Log) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.logs = append(f.logs, *log)
	return nil
}

// fakeBus collects published events.
type fakeBus struct {
	published []events.DomainEvent
	err       error
}

func (f *fakeBus) Publish(_ context.Context, event events.DomainEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

func (f *fakeBus) PublishBatch(_ context.Context, batch []events.DomainEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, batch...)
	return nil
}

// fakeMetrics counts emissions by metric name.
type fakeMetrics struct {
	counts map[string]float64
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{counts: map[string]float64{}}
}

func (f *fakeMetrics) Count(_ context.Context, name string, value float64, _ map[string]string) {
	f.counts[name] += value
}

// fakeProvider is a scripted WordProvider.
type fakeProvider struct {
	name       string
	configured bool
	word       *ports.GeneratedWord
	err        error
	calls      int
	lastPrompt ports.WordPrompt
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) GenerateWord(_ context.Context, prompt ports.WordPrompt) (*ports.GeneratedWord, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return f.word, nil
}

func providerChain(providers []*fakeProvider) []ports.WordProvider {
	out := make([]ports.WordProvider, len(providers))
	for i, p := range providers {
		out[i] = p
	}
	return out
}

func generatedWord(text string) *ports.GeneratedWord {
	return &ports.GeneratedWord{
		Word:       text,
		Definition: "a definition of " + text,
		Difficulty: 3,
		Sentences:  []string{"s1", "s2", "s3"},
	}
}

// fakeImages is a scripted ImageProvider.
type fakeImages struct {
	url     string
	data    []byte
	err     error
	dlErr   error
	queries []string
}

func (f *fakeImages) SearchImage(_ context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func (f *fakeImages) DownloadImage(_ context.Context, _ string) ([]byte, error) {
	if f.dlErr != nil {
		return nil, f.dlErr
	}
	return f.data, nil
}

// fakeSentences is a scripted SentenceGenerator.
type fakeSentences struct {
	sentences []string
	err       error
	calls     int
}

func (f *fakeSentences) GenerateSentences(_ context.Context, _ words.BankEntry, _ *users.Profile) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.sentences, nil
}

// fakeDictionary is a scripted DictionaryProvider.
type fakeDictionary struct {
	entry *ports.DictionaryEntry
	err   error
}

func (f *fakeDictionary) Lookup(_ context.Context, _ string) (*ports.DictionaryEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entry, nil
}

// fakeAudio is a scripted AudioProvider.
type fakeAudio struct {
	data []byte
	err  error
}

func (f *fakeAudio) FetchPronunciation(_ context.Context, _ string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

// fakeMediaStore records stored objects.
type fakeMediaStore struct {
	audioErr error
	imageErr error
	audio    []string
	images   []string
}

func (f *fakeMediaStore) StoreAudio(_ context.Context, word string, _ []byte) (string, error) {
	if f.audioErr != nil {
		return "", f.audioErr
	}
	f.audio = append(f.audio, word)
	return "https://media.test/audio/" + word + ".mp3", nil
}

func (f *fakeMediaStore) StoreImage(_ context.Context, word string, _ []byte) (string, error) {
	if f.imageErr != nil {
		return "", f.imageErr
	}
	f.images = append(f.images, word)
	return "https://media.test/images/" + word + ".jpg", nil
}

// fakePush, fakeEmail, fakeSMS record deliveries.
type fakePush struct {
	err    error
	tokens []string
	titles []string
}

func (f *fakePush) SendPush(_ context.Context, token, title, _ string, _ map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.tokens = append(f.tokens, token)
	f.titles = append(f.titles, title)
	return nil
}

type fakeEmail struct {
	err error
	to  []string
}

func (f *fakeEmail) SendEmail(_ context.Context, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	return nil
}

type fakeSMS struct {
	err    error
	phones []string
}

func (f *fakeSMS) SendSMS(_ context.Context, phoneNumber, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.phones = append(f.phones, phoneNumber)
	return nil
}
