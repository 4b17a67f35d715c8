package bank

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const questionsDoc = `{
  "sections": [
    {
      "sectionId": "algebra",
      "sectionTitle": "Algebra basics",
      "questions": [
        {"id": "q-1", "question": "Solve 2x = 10"},
        {"id": 2, "question": "Expand (x+1)(x+2)"}
      ]
    },
    {
      "sectionId": "geometry",
      "sectionTitle": "Angles",
      "questions": [
        {"id": "q-3", "question": "Angles in a triangle sum to?"}
      ]
    }
  ]
}`

const answersDoc = `{
  "answers": [
    {"id": "q-1", "answer": "x = 5"},
    {"id": 2, "answer": 42},
    {"id": "q-3", "answer": "180"}
  ]
}`

func TestParseLessonBank(t *testing.T) {
	lb, err := parseLessonBank([]byte(questionsDoc), []byte(answersDoc))
	require.NoError(t, err)
	require.Equal(t, 3, lb.Size())

	// Sections flatten in document order; position is the difficulty
	// ordering downstream, so it must be stable.
	assert.Equal(t, []string{"q-1", "2", "q-3"}, lb.QuestionIDs())
	assert.Equal(t, "algebra", lb.Questions[0].SectionID)
	assert.Equal(t, "Angles", lb.Questions[2].SectionTitle)

	answer, ok := lb.CanonicalAnswer("q-1")
	require.True(t, ok)
	assert.Equal(t, "x = 5", answer)

	// Numeric ids and answers normalise to strings.
	answer, ok = lb.CanonicalAnswer("2")
	require.True(t, ok)
	assert.Equal(t, "42", answer)

	_, ok = lb.CanonicalAnswer("missing")
	assert.False(t, ok)
}

func TestParseLessonBankMalformed(t *testing.T) {
	_, err := parseLessonBank([]byte(`{"sections": "nope"}`), []byte(answersDoc))
	assert.Error(t, err)

	_, err = parseLessonBank([]byte(questionsDoc), []byte(`not json`))
	assert.Error(t, err)
}

// mapFetcher serves documents from memory and counts fetches so the
// cache behaviour is observable.
type mapFetcher struct {
	docs    map[string]string
	fetches int
}

func (f *mapFetcher) Fetch(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	f.fetches++
	doc, ok := f.docs[objectPath]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", objectPath)
	}
	return io.NopCloser(strings.NewReader(doc)), nil
}

func TestStoreLessonBank(t *testing.T) {
	fetcher := &mapFetcher{docs: map[string]string{
		"maths/questions/lesson-7.json": questionsDoc,
		"maths/answers/lesson-7.json":   answersDoc,
	}}
	store := NewStoreWithFetcher(fetcher)

	lb, err := store.LessonBank(context.Background(), "maths", 7)
	require.NoError(t, err)
	assert.Equal(t, 3, lb.Size())
	assert.Equal(t, 2, fetcher.fetches)

	// Second load is served from cache.
	again, err := store.LessonBank(context.Background(), "maths", 7)
	require.NoError(t, err)
	assert.Same(t, lb, again)
	assert.Equal(t, 2, fetcher.fetches)
}

func TestStoreLessonBankMissing(t *testing.T) {
	store := NewStoreWithFetcher(&mapFetcher{docs: map[string]string{}})

	_, err := store.LessonBank(context.Background(), "maths", 99)
	assert.Error(t, err)
}
