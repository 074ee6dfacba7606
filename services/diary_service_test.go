package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PleasantH/NutriPal-Chatbot/models"
)

func newTestStore(t *testing.T) *DiaryStore {
	t.Helper()
	store, err := NewDiaryStore(t.TempDir())
	require.NoError(t, err)
	return store
}

// fixedClock returns a clock that starts at base and advances one
// minute per call.
func fixedClock(base time.Time) func() time.Time {
	calls := 0
	return func() time.Time {
		at := base.Add(time.Duration(calls) * time.Minute)
		calls++
		return at
	}
}

func TestAppendPreservesCallOrder(t *testing.T) {
	store := newTestStore(t)
	store.now = fixedClock(time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC))

	inputs := []EntryInput{
		{MealType: models.MealBreakfast, Description: "Akara and pap", Water: 2},
		{MealType: models.MealLunch, Description: "Jollof rice", Water: 1},
		{MealType: models.MealDinner, Description: "Efo riro", Water: 3},
	}
	for _, in := range inputs {
		_, err := store.Append("ada@example.com", in)
		require.NoError(t, err)
	}

	got, err := store.LoadAll("ada@example.com")
	require.NoError(t, err)
	require.Len(t, got, 3)
	prev := ""
	for i, e := range got {
		assert.Equal(t, inputs[i].Description, e.Description)
		assert.Equal(t, "ada@example.com", e.OwnerID)
		assert.Equal(t, e.Timestamp[:10], e.Date, "date must be a prefix of timestamp")
		assert.GreaterOrEqual(t, e.Timestamp, prev, "timestamps must not go backwards")
		prev = e.Timestamp
	}
}

func TestPartitionIsolation(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Append("ada@example.com", EntryInput{MealType: models.MealLunch, Description: "Rice", Water: 2})
	require.NoError(t, err)
	_, err = store.Append("bisi@example.com", EntryInput{MealType: models.MealSnack, Description: "Chin chin", Water: 1})
	require.NoError(t, err)
	_, err = store.Append("ada@example.com", EntryInput{MealType: models.MealDinner, Description: "Stew", Water: 1})
	require.NoError(t, err)

	bisi, err := store.LoadAll("bisi@example.com")
	require.NoError(t, err)
	require.Len(t, bisi, 1)
	assert.Equal(t, "Chin chin", bisi[0].Description)

	ada, err := store.LoadAll("ada@example.com")
	require.NoError(t, err)
	assert.Len(t, ada, 2)
}

func TestAppendValidatesAtTheBoundary(t *testing.T) {
	store := newTestStore(t)

	cases := []struct {
		name  string
		owner string
		in    EntryInput
	}{
		{"water above range", "ada@example.com", EntryInput{MealType: models.MealLunch, Water: 11}},
		{"water below range", "ada@example.com", EntryInput{MealType: models.MealLunch, Water: -1}},
		{"unknown meal type", "ada@example.com", EntryInput{MealType: "Brunch", Water: 2}},
		{"missing owner", "", EntryInput{MealType: models.MealLunch, Water: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Append(tc.owner, tc.in)
			var invalid *models.InvalidEntryError
			assert.ErrorAs(t, err, &invalid)
		})
	}

	// nothing got persisted
	got, err := store.LoadAll("ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadAllUnknownOwnerIsEmpty(t *testing.T) {
	store := newTestStore(t)
	got, err := store.LoadAll("nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiaryFileLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiaryStore(dir)
	require.NoError(t, err)

	_, err = store.Append("ada@example.com", EntryInput{MealType: models.MealLunch, Description: "Rice", Water: 2})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "ada_at_example.com-b5fc85e5.json"))
	require.NoError(t, err, "file name should be the sanitized owner id plus digest")
	assert.Contains(t, string(raw), `"version": 1`)
	assert.Contains(t, string(raw), `"owner": "ada@example.com"`)
	assert.Contains(t, string(raw), "\n  ", "diary files stay human-diffable")
}

func TestSanitizedNameCollisionsStaySeparate(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiaryStore(dir)
	require.NoError(t, err)

	// both collapse to "a_at_b.com" before the digest suffix
	_, err = store.Append("a@b.com", EntryInput{MealType: models.MealLunch, Description: "Okra soup", Water: 2})
	require.NoError(t, err)
	_, err = store.Append("a_at_b.com", EntryInput{MealType: models.MealDinner, Description: "Suya", Water: 1})
	require.NoError(t, err)

	first, err := store.LoadAll("a@b.com")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Okra soup", first[0].Description)

	second, err := store.LoadAll("a_at_b.com")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Suya", second[0].Description)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestEntriesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiaryStore(dir)
	require.NoError(t, err)
	_, err = store.Append("ada@example.com", EntryInput{MealType: models.MealBreakfast, Description: "Moi moi", Water: 1})
	require.NoError(t, err)

	reopened, err := NewDiaryStore(dir)
	require.NoError(t, err)
	got, err := reopened.LoadAll("ada@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Moi moi", got[0].Description)
}

func TestOwnersListsEveryPersistedDiary(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Append("ada@example.com", EntryInput{MealType: models.MealLunch, Description: "Rice", Water: 2})
	require.NoError(t, err)
	_, err = store.Append("bisi@example.com", EntryInput{MealType: models.MealSnack, Description: "Garden egg", Water: 0})
	require.NoError(t, err)

	owners, err := store.Owners()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ada@example.com", "bisi@example.com"}, owners)
}
