package bank

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Question is one bank entry. Bank position order is load-bearing:
// the sampler's difficulty tiers are slices over this order.
type Question struct {
	ID           string `json:"id"`
	Prompt       string `json:"question"`
	SectionID    string `json:"sectionId,omitempty"`
	SectionTitle string `json:"sectionTitle,omitempty"`
}

// LessonBank holds a lesson's questions in bank order plus the
// canonical answer per question id. Immutable once loaded.
type LessonBank struct {
	Questions []Question
	answers   map[string]string
}

func (b *LessonBank) Size() int {
	return len(b.Questions)
}

// CanonicalAnswer returns the marking answer for a question id.
func (b *LessonBank) CanonicalAnswer(questionID string) (string, bool) {
	a, ok := b.answers[questionID]
	return a, ok
}

// QuestionIDs returns all ids in bank order.
func (b *LessonBank) QuestionIDs() []string {
	ids := make([]string, len(b.Questions))
	for i, q := range b.Questions {
		ids[i] = q.ID
	}
	return ids
}

// flexValue tolerates the bank files storing ids and answers as
// either JSON strings or numbers.
type flexValue string

func (v *flexValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*v = flexValue(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*v = flexValue(num.String())
	return nil
}

type questionsFile struct {
	Sections []struct {
		SectionID    string `json:"sectionId"`
		SectionTitle string `json:"sectionTitle"`
		Questions    []struct {
			ID       flexValue `json:"id"`
			Question string    `json:"question"`
		} `json:"questions"`
	} `json:"sections"`
}

type answersFile struct {
	Answers []struct {
		ID     flexValue `json:"id"`
		Answer flexValue `json:"answer"`
	} `json:"answers"`
}

// parseLessonBank decodes the paired questions/answers documents,
// flattening sections in document order so bank positions survive.
func parseLessonBank(questionsJSON, answersJSON []byte) (*LessonBank, error) {
	var qf questionsFile
	if err := json.Unmarshal(questionsJSON, &qf); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	var af answersFile
	if err := json.Unmarshal(answersJSON, &af); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}

	lb := &LessonBank{
		answers: make(map[string]string, len(af.Answers)),
	}
	for _, a := range af.Answers {
		lb.answers[string(a.ID)] = string(a.Answer)
	}

	for _, section := range qf.Sections {
		for _, q := range section.Questions {
			lb.Questions = append(lb.Questions, Question{
				ID:           string(q.ID),
				Prompt:       q.Question,
				SectionID:    section.SectionID,
				SectionTitle: section.SectionTitle,
			})
		}
	}

	return lb, nil
}
