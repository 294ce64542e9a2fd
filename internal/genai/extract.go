package genai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when model output contains no usable JSON block
var ErrNoJSON = errors.New("no JSON block found in model output")

// BlockKind selects the JSON value kind searched for in model output
type BlockKind byte

const (
	ObjectBlock BlockKind = '{'
	ArrayBlock  BlockKind = '['
)

func (k BlockKind) closing() byte {
	if k == ArrayBlock {
		return ']'
	}
	return '}'
}

// Extraction is the result of searching model output for a JSON block
type Extraction struct {
	// Block is the raw JSON text, empty when nothing was found
	Block string
	// Err is ErrNoJSON when no valid block was found
	Err error
}

// OK reports whether a valid block was found
func (e Extraction) OK() bool {
	return e.Err == nil
}

// Decode unmarshals the extracted block into v
func (e Extraction) Decode(v any) error {
	if e.Err != nil {
		return e.Err
	}
	if err := json.Unmarshal([]byte(e.Block), v); err != nil {
		return fmt.Errorf("failed to decode JSON block: %w", err)
	}
	return nil
}

// Extract finds the first balanced and syntactically valid JSON block of the given kind
//
// Model output often wraps JSON in prose or markdown fences, so every opening
// bracket is tried in order until a block parses.
func Extract(text string, kind BlockKind) Extraction {
	open := byte(kind)
	for start := strings.IndexByte(text, open); start != -1; {
		if end := balancedEnd(text, start, open, kind.closing()); end != -1 {
			block := text[start : end+1]
			if json.Valid([]byte(block)) {
				return Extraction{Block: block}
			}
		}
		next := strings.IndexByte(text[start+1:], open)
		if next == -1 {
			break
		}
		start += next + 1
	}
	return Extraction{Err: ErrNoJSON}
}

// ExtractObject finds the first JSON object in text
func ExtractObject(text string) Extraction {
	return Extract(text, ObjectBlock)
}

// ExtractArray finds the first JSON array in text
func ExtractArray(text string) Extraction {
	return Extract(text, ArrayBlock)
}

// balancedEnd returns the index of the bracket closing the one at start, or -1
func balancedEnd(text string, start int, open, close byte) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
