package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ReadLines reads one question per line. Blank lines and lines starting
// with '#' are skipped.
func ReadLines(r io.Reader) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		items = append(items, Item{ID: fmt.Sprintf("L%d", line), Question: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return items, nil
}

type questionFileData struct {
	Questions []struct {
		ID       string `toml:"id"`
		Question string `toml:"question"`
		Expect   string `toml:"expect"`
	} `toml:"question"`
}

// ReadTOML reads a question file made of [[question]] tables with an id,
// the question text and an optional expected section id.
func ReadTOML(r io.Reader) ([]Item, error) {
	var data questionFileData
	if err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	items := make([]Item, 0, len(data.Questions))
	for i, q := range data.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrEmptyQuestion, i)
		}
		items = append(items, Item{ID: q.ID, Question: q.Question, Expect: q.Expect})
	}
	return items, nil
}
