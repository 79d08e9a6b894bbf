package parser

import (
	"strings"
	"testing"
)

const header = "# Deck: Spanish Basics\nLanguages: Spanish -> English\n"

func TestParse(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedCards int
		expectedFront string
		expectedBack  string
		expectedNotes string
	}{
		{
			name:          "Simple front and back",
			input:         header + "F: perro\nB: dog",
			expectedCards: 1,
			expectedFront: "perro",
			expectedBack:  "dog",
			expectedNotes: "",
		},
		{
			name:          "Front, back and notes",
			input:         header + "F: perro\nB: dog\nN: masculine noun",
			expectedCards: 1,
			expectedFront: "perro",
			expectedBack:  "dog",
			expectedNotes: "masculine noun",
		},
		{
			name: "Multiline back",
			input: header + `
F: estar
B: to be
(temporary states and locations)
`,
			expectedCards: 1,
			expectedFront: "estar",
			expectedBack:  "to be\n(temporary states and locations)",
			expectedNotes: "",
		},
		{
			name: "Two cards with separator",
			input: header + `
F: perro
B: dog
---
F: gato
B: cat
`,
			expectedCards: 2,
		},
		{
			name: "New front starts a new card without separator",
			input: header + `
F: perro
B: dog

F: gato
B: cat
`,
			expectedCards: 2,
		},
		{
			name:          "Card missing a back is dropped",
			input:         header + "F: perro\n---\nF: gato\nB: cat",
			expectedCards: 1,
			expectedFront: "gato",
			expectedBack:  "cat",
		},
		{
			name:          "Header only",
			input:         header,
			expectedCards: 0,
		},
		{
			name:          "Prefixes with no space",
			input:         header + "F:perro\nB:dog",
			expectedCards: 1,
			expectedFront: "perro",
			expectedBack:  "dog",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deck, err := Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Parse() returned an unexpected error: %v", err)
			}

			if deck.Name != "Spanish Basics" {
				t.Errorf("Expected deck name 'Spanish Basics', but got '%s'", deck.Name)
			}
			if deck.TargetLanguage != "Spanish" || deck.NativeLanguage != "English" {
				t.Errorf("Expected languages Spanish/English, but got '%s'/'%s'",
					deck.TargetLanguage, deck.NativeLanguage)
			}

			if len(deck.Cards) != tc.expectedCards {
				t.Fatalf("Expected %d cards, but got %d", tc.expectedCards, len(deck.Cards))
			}

			if tc.expectedCards == 1 {
				card := deck.Cards[0]
				if card.Front != tc.expectedFront {
					t.Errorf("Expected Front to be '%s', but got '%s'", tc.expectedFront, card.Front)
				}
				if card.Back != tc.expectedBack {
					t.Errorf("Expected Back to be '%s', but got '%s'", tc.expectedBack, card.Back)
				}
				if card.Notes != tc.expectedNotes {
					t.Errorf("Expected Notes to be '%s', but got '%s'", tc.expectedNotes, card.Notes)
				}
			}
		})
	}
}

func TestParseRejectsMissingHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("F: perro\nB: dog"))
	if err == nil {
		t.Fatal("Expected an error for a file without a deck header, but got none")
	}
}
