package persona_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nadzzz/voicebot/internal/persona"
)

func TestClassify_Examples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  persona.Category
	}{
		{"Tell me about yourself", persona.LifeStory},
		{"What is your superpower?", persona.Superpower},
		{"What are you BEST AT?", persona.Superpower},
		{"Which areas would you like to improve?", persona.GrowthAreas},
		{"What's the biggest misconception people have about you?", persona.Misconception},
		{"How do you push boundaries at work?", persona.PushingBoundaries},
		{"What's the weather like today?", persona.None},
		{"", persona.None},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := persona.Classify(tt.input); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassify_EveryPhraseMatchesItsCategory(t *testing.T) {
	t.Parallel()

	for _, c := range persona.Categories() {
		for _, phrase := range persona.Phrases(c) {
			input := "Could you answer this: " + strings.ToUpper(phrase[:1]) + phrase[1:] + "?"
			if got := persona.Classify(input); got != c {
				t.Errorf("Classify(%q) = %q, want %q", input, got, c)
			}
		}
	}
}

func TestClassify_PriorityOrderBreaksTies(t *testing.T) {
	t.Parallel()

	categories := persona.Categories()
	for i, earlier := range categories {
		for _, later := range categories[i+1:] {
			// The later category's phrase comes first in the text to show
			// position in the message does not matter.
			input := persona.Phrases(later)[0] + " and also " + persona.Phrases(earlier)[0]
			if got := persona.Classify(input); got != earlier {
				t.Errorf("Classify(%q) = %q, want %q", input, got, earlier)
			}
		}
	}
}

func TestCategoriesOrder(t *testing.T) {
	want := []persona.Category{
		persona.LifeStory,
		persona.Superpower,
		persona.GrowthAreas,
		persona.Misconception,
		persona.PushingBoundaries,
	}
	got := persona.Categories()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	answer, ok := persona.Lookup(persona.Classify("Tell me about yourself"))
	if !ok {
		t.Fatal("expected a canned life_story answer")
	}
	want := "My journey is defined by a relentless curiosity for AI and machine learning. From conducting research for academic projects to supporting student research papers, I've been driven by a desire to leverage technology to solve complex problems and continuously learn."
	if answer != want {
		t.Errorf("Lookup(life_story) = %q", answer)
	}

	for _, c := range persona.Categories() {
		if a, ok := persona.Lookup(c); !ok || a == "" {
			t.Errorf("Lookup(%q) missing", c)
		}
	}

	if _, ok := persona.Lookup(persona.None); ok {
		t.Error("Lookup(None) should be absent")
	}
	if _, ok := persona.Lookup(persona.Category("favourite_colour")); ok {
		t.Error("Lookup(unknown) should be absent")
	}
}

func TestLoad(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		got, err := persona.Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !strings.HasPrefix(got, "You are Adithya S Arangil") {
			t.Errorf("unexpected default persona: %.40q", got)
		}
		if got != persona.Default() {
			t.Error("Load(\"\") should equal Default()")
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "persona.txt")
		if err := os.WriteFile(path, []byte("\n  You are a test persona.  \n"), 0o600); err != nil {
			t.Fatal(err)
		}
		got, err := persona.Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != "You are a test persona." {
			t.Errorf("Load = %q", got)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.txt")
		if err := os.WriteFile(path, []byte("   "), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := persona.Load(path); err == nil {
			t.Error("expected error for empty persona file")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := persona.Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
			t.Error("expected error for missing persona file")
		}
	})
}
