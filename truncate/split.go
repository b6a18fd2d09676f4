package truncate

import (
	"strings"

	"github.com/zakharsmirnoff/lloom/tokens"
)

// Split breaks text into consecutive chunks of at most maxTokens each.
//
// Paragraphs (blank-line separated) are packed greedily; a paragraph too
// large for a chunk is split by lines, and a line too large is cut at the
// longest prefix that fits. Blank input yields no chunks.
func Split(text string, maxTokens int, counter tokens.Counter) []string {
	if maxTokens <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}
	s := splitter{counter: counter, max: maxTokens}
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if counter.FitsInLimit(para, maxTokens) {
			s.add(para, "\n\n")
			continue
		}
		for _, line := range strings.Split(para, "\n") {
			s.addLine(line)
		}
	}
	s.flush()
	return s.chunks
}

type splitter struct {
	counter tokens.Counter
	max     int
	current strings.Builder
	chunks  []string
}

// add appends piece to the current chunk, starting a new chunk when the
// joined text would not fit.
func (s *splitter) add(piece, sep string) {
	if s.current.Len() == 0 {
		s.current.WriteString(piece)
		return
	}
	joined := s.current.String() + sep + piece
	if s.counter.FitsInLimit(joined, s.max) {
		s.current.WriteString(sep)
		s.current.WriteString(piece)
		return
	}
	s.flush()
	s.current.WriteString(piece)
}

func (s *splitter) addLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	runes := []rune(line)
	tr := Truncator{counter: s.counter}
	for len(runes) > 0 {
		n := tr.headLen(runes, s.max)
		if n == 0 {
			// A single rune over budget; emit it rather than loop.
			n = 1
		}
		s.add(string(runes[:n]), "\n")
		runes = runes[n:]
	}
}

func (s *splitter) flush() {
	if s.current.Len() > 0 {
		s.chunks = append(s.chunks, s.current.String())
		s.current.Reset()
	}
}
