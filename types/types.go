package types

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
)

// Format selects the output video shape.
type Format string

const (
	// FormatShorts is the vertical single-question target.
	FormatShorts Format = "shorts"
	// FormatFull is the horizontal multi-question target with a
	// running score display.
	FormatFull Format = "full"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatShorts, FormatFull:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid format %q (expected shorts or full)", s)
	}
}

// OptionCount is fixed: every question carries exactly four options.
const OptionCount = 4

// OptionLabels are the spoken/displayed letters for the four options.
var OptionLabels = [OptionCount]string{"A", "B", "C", "D"}

// QuestionRecord is one quiz item as parsed from the input document.
// Immutable after parsing.
type QuestionRecord struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
	// Image is the illustration directive: "" (none), "auto" (resolve
	// via image backends), or an explicit path/URL.
	Image      string `json:"image,omitempty"`
	Category   string `json:"category,omitempty"`
	Language   string `json:"language,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Validate checks the invariants every downstream stage assumes.
func (q *QuestionRecord) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question %q: expected %d options, got %d", q.Question, OptionCount, len(q.Options))
	}
	for i, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("question %q: option %s is empty", q.Question, OptionLabels[i])
		}
	}
	if q.Correct < 0 || q.Correct >= OptionCount {
		return fmt.Errorf("question %q: correct index %d out of range [0,%d]", q.Question, q.Correct, OptionCount-1)
	}
	return nil
}

// Quiz is the input document: a titled, ordered batch of questions.
type Quiz struct {
	Title     string           `json:"title"`
	Language  string           `json:"language,omitempty"`
	Category  string           `json:"category,omitempty"`
	Questions []QuestionRecord `json:"questions"`
}

// LoadQuiz reads and validates a quiz document from a JSON file.
// Any validation failure is fatal before generation begins.
func LoadQuiz(path string) (*Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	var quiz Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		return nil, fmt.Errorf("parse quiz file: %w", err)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("quiz file %s contains no questions", path)
	}
	for i := range quiz.Questions {
		if err := quiz.Questions[i].Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return &quiz, nil
}

// Progress is the running position inside a full-format video.
// Score is a display artifact: it increments by one on every question
// because there is no real answer input.
type Progress struct {
	Number int
	Total  int
	Score  int
}

// DisplayState is one rendering instruction for the frame composer.
// Transient: one instance per rendered frame, never persisted.
type DisplayState struct {
	Question string
	Options  []string
	// Highlight is the index of the option drawn in the accent style,
	// or -1 for no highlight.
	Highlight int
	// Countdown is the numeral to display; 0 hides the countdown.
	Countdown int
	// Illustration is pasted into the image panel when non-nil
	// (wide layout only).
	Illustration image.Image
	// Progress adds the question counter and score line (wide layout only).
	Progress *Progress
}

// ClipSegment is a still image held for a duration, optionally carrying
// an audio track (the narration segment only). Consumed once by the
// video writer, then discarded along with its audio file.
type ClipSegment struct {
	Frame     image.Image
	AudioPath string
	Duration  float64
}
