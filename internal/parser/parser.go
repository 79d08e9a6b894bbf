// Package parser reads plain-text deck files.
//
// A deck file starts with header directives, then card blocks separated by
// "---" lines:
//
//	# Deck: Spanish Basics
//	Languages: Spanish -> English
//
//	F: perro
//	B: dog
//	N: masculine noun
//	---
//	F: gato
//	B: cat
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	deckPrefix      = "# Deck:"
	languagesPrefix = "Languages:"
	frontPrefix     = "F:"
	backPrefix      = "B:"
	notesPrefix     = "N:"
)

type state int

const (
	seeking state = iota
	readingFront
	readingBack
	readingNotes
)

// CardEntry is one card read from a deck file, before it gains an identity
// or review state.
type CardEntry struct {
	Front string
	Back  string
	Notes string
}

// DeckFile is the parsed content of one deck file.
type DeckFile struct {
	Name           string
	TargetLanguage string
	NativeLanguage string
	Cards          []CardEntry
}

// ParseFile reads a deck file from the given path.
func ParseFile(path string) (*DeckFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a deck file from an io.Reader. A file without a "# Deck:"
// header is rejected; cards missing a front or back are dropped.
func Parse(r io.Reader) (*DeckFile, error) {
	scanner := bufio.NewScanner(r)
	deck := &DeckFile{}
	var currentCard CardEntry
	var currentBlock []string
	currentState := seeking

	closeBlock := func() {
		if len(currentBlock) == 0 {
			return
		}
		content := strings.Join(currentBlock, "\n")
		switch currentState {
		case readingFront:
			currentCard.Front = content
		case readingBack:
			currentCard.Back = content
		case readingNotes:
			currentCard.Notes = content
		}
		currentBlock = nil
	}

	finishCard := func() {
		closeBlock()
		if currentCard.Front != "" && currentCard.Back != "" {
			deck.Cards = append(deck.Cards, currentCard)
		}
		currentCard = CardEntry{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, deckPrefix) {
			deck.Name = strings.TrimSpace(line[len(deckPrefix):])
			continue
		}
		if strings.HasPrefix(line, languagesPrefix) {
			target, native, ok := strings.Cut(strings.TrimSpace(line[len(languagesPrefix):]), "->")
			if ok {
				deck.TargetLanguage = strings.TrimSpace(target)
				deck.NativeLanguage = strings.TrimSpace(native)
			}
			continue
		}

		if line == "---" {
			finishCard()
			continue
		}

		isF := strings.HasPrefix(line, frontPrefix)
		isB := strings.HasPrefix(line, backPrefix)
		isN := strings.HasPrefix(line, notesPrefix)

		if isF || isB || isN {
			closeBlock()

			if isF {
				if currentState != seeking { // A new front always starts a new card
					finishCard()
				}
				currentState = readingFront
				currentBlock = append(currentBlock, trimPrefix(line, frontPrefix))
			} else if isB {
				currentState = readingBack
				currentBlock = append(currentBlock, trimPrefix(line, backPrefix))
			} else {
				currentState = readingNotes
				currentBlock = append(currentBlock, trimPrefix(line, notesPrefix))
			}
		} else if currentState != seeking {
			currentBlock = append(currentBlock, line)
		}
	}

	finishCard() // Finish the very last card in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if deck.Name == "" {
		return nil, fmt.Errorf("deck file has no %q header", deckPrefix)
	}

	return deck, nil
}

func trimPrefix(line, prefix string) string {
	content := line[len(prefix):]
	if strings.HasPrefix(content, " ") {
		content = content[1:]
	}
	return content
}
