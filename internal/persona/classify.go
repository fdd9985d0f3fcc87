package persona

import "strings"

// Category is an interview-question topic with a canned answer.
type Category string

const (
	// None means no category matched.
	None Category = ""

	LifeStory         Category = "life_story"
	Superpower        Category = "superpower"
	GrowthAreas       Category = "growth_areas"
	Misconception     Category = "misconception"
	PushingBoundaries Category = "pushing_boundaries"
)

// triggers lists each category's phrases in priority order. The first category
// with a matching phrase wins.
var triggers = []struct {
	category Category
	phrases  []string
}{
	{LifeStory, []string{"tell me about yourself", "your background", "life story", "journey"}},
	{Superpower, []string{"superpower", "strength", "greatest skill", "best at"}},
	{GrowthAreas, []string{"growth", "improve", "development", "working on", "weakness"}},
	{Misconception, []string{"misconception", "misunderstand", "wrong about you", "misjudge"}},
	{PushingBoundaries, []string{"push boundaries", "challenge yourself", "comfort zone", "limits"}},
}

// Categories returns every category in classification priority order.
func Categories() []Category {
	out := make([]Category, len(triggers))
	for i, t := range triggers {
		out[i] = t.category
	}
	return out
}

// Phrases returns a copy of the trigger phrases for c.
func Phrases(c Category) []string {
	for _, t := range triggers {
		if t.category == c {
			return append([]string(nil), t.phrases...)
		}
	}
	return nil
}

// Classify assigns text to the highest-priority category whose trigger
// phrases it contains, case-insensitively. It returns None when nothing
// matches.
func Classify(text string) Category {
	text = strings.ToLower(text)

	for _, t := range triggers {
		for _, phrase := range t.phrases {
			if strings.Contains(text, phrase) {
				return t.category
			}
		}
	}
	return None
}
