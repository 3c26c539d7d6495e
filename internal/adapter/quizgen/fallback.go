package quizgen

import (
	"fmt"
	"strings"

	"github.com/Swayamo/quizverse/internal/domain"
)

// The fallback bank is fixed, deterministic content served whenever
// generation fails. Constructed once at init and treated as read-only; the
// slices handed out are copies so callers can't mutate the bank.

var fallbackBank = map[string][]domain.GeneratedQuestion{
	"javascript": {
		{
			Question:      "What is JavaScript primarily used for?",
			Options:       []string{"Server-side scripting only", "Client-side web development", "Database management", "Mobile app development only"},
			CorrectAnswer: "Client-side web development",
			Explanation:   "JavaScript was created to add interactivity to web pages in the browser, although it now runs server-side as well.",
		},
		{
			Question:      "Which of the following is NOT a JavaScript data type?",
			Options:       []string{"String", "Boolean", "Integer", "Object"},
			CorrectAnswer: "Integer",
			Explanation:   "JavaScript has a single Number type; there is no separate Integer type.",
		},
		{
			Question:      "What will 'typeof null' return in JavaScript?",
			Options:       []string{"null", "undefined", "object", "number"},
			CorrectAnswer: "object",
			Explanation:   "'typeof null' returning \"object\" is a long-standing quirk kept for backwards compatibility.",
		},
	},
	"python": {
		{
			Question:      "What is Python?",
			Options:       []string{"A compiled language", "An interpreted language", "A markup language", "An assembly language"},
			CorrectAnswer: "An interpreted language",
			Explanation:   "Python source is executed by an interpreter rather than compiled ahead of time to machine code.",
		},
		{
			Question:      "Which of the following is NOT a Python data type?",
			Options:       []string{"List", "Dictionary", "Tuple", "Array"},
			CorrectAnswer: "Array",
			Explanation:   "Python's built-in sequence types are list and tuple; arrays come from the array module or NumPy.",
		},
		{
			Question:      "How do you create a comment in Python?",
			Options:       []string{"/* Comment */", "// Comment", "# Comment", "-- Comment --"},
			CorrectAnswer: "# Comment",
			Explanation:   "Python uses the hash character for single-line comments.",
		},
	},
	"general": {
		{
			Question:      "Which planet is known as the Red Planet?",
			Options:       []string{"Earth", "Mars", "Jupiter", "Venus"},
			CorrectAnswer: "Mars",
			Explanation:   "Iron oxide on the Martian surface gives the planet its reddish appearance.",
		},
		{
			Question:      "What is the chemical symbol for gold?",
			Options:       []string{"Ag", "Au", "Fe", "Pb"},
			CorrectAnswer: "Au",
			Explanation:   "Au comes from aurum, the Latin word for gold.",
		},
		{
			Question:      "Which gas do plants primarily use for photosynthesis?",
			Options:       []string{"Oxygen", "Nitrogen", "Carbon Dioxide", "Hydrogen"},
			CorrectAnswer: "Carbon Dioxide",
			Explanation:   "Plants fix carbon dioxide into sugars during photosynthesis and release oxygen.",
		},
	},
}

// FallbackQuestions returns up to count questions from the bank set matching
// the topic. Matching is case-insensitive substring containment, checked in
// fixed priority order: the javascript family first, then python, then the
// general-knowledge default. The result is a prefix of the matched set and is
// never padded to reach count.
func FallbackQuestions(topic, difficulty string, count int) []domain.GeneratedQuestion {
	set := fallbackBank["general"]

	lowerTopic := strings.ToLower(topic)
	if strings.Contains(lowerTopic, "javascript") || strings.Contains(lowerTopic, "js") {
		set = fallbackBank["javascript"]
	} else if strings.Contains(lowerTopic, "python") {
		set = fallbackBank["python"]
	}

	if count > len(set) {
		count = len(set)
	}
	if count < 0 {
		count = 0
	}

	questions := make([]domain.GeneratedQuestion, count)
	copy(questions, set[:count])
	return questions
}

// DocumentFallback synthesizes a quiz from the source text when
// document-grounded generation fails: a topic-focus question first, a keyword
// question when the text yields enough usable keywords, then generic
// topic-templated questions, sliced to count.
func DocumentFallback(sourceText, topic, difficulty string, count int) *domain.GeneratedQuiz {
	questions := []domain.GeneratedQuestion{
		{
			Question: fmt.Sprintf("What is the main focus of this document related to %s?", topic),
			Options: []string{
				fmt.Sprintf("Learning %s concepts", topic),
				fmt.Sprintf("%s implementation details", topic),
				fmt.Sprintf("History of %s", topic),
				fmt.Sprintf("%s best practices", topic),
			},
			CorrectAnswer: fmt.Sprintf("%s implementation details", topic),
		},
	}

	keywords := extractKeywords(sourceText, 20)
	if len(keywords) >= 3 && len(questions) < count {
		questions = append(questions, domain.GeneratedQuestion{
			Question: fmt.Sprintf("Which of the following terms is most relevant to %s?", topic),
			Options: []string{
				keywords[0],
				keywords[1],
				keywords[2],
				"None of the above",
			},
			CorrectAnswer: keywords[0],
		})
	}

	generic := []domain.GeneratedQuestion{
		{
			Question:      fmt.Sprintf("What is a common practice in %s?", topic),
			Options:       []string{"Documentation", "Testing", "Implementation", "All of the above"},
			CorrectAnswer: "All of the above",
		},
		{
			Question: fmt.Sprintf("Which statement best describes %s?", topic),
			Options: []string{
				"A methodology for software development",
				"A programming language feature",
				"A design pattern",
				"A software tool",
			},
			CorrectAnswer: "A methodology for software development",
		},
		{
			Question:      fmt.Sprintf("What is important to consider when working with %s?", topic),
			Options:       []string{"Performance", "Readability", "Maintainability", "All of these"},
			CorrectAnswer: "All of these",
		},
	}
	for _, q := range generic {
		if len(questions) >= count {
			break
		}
		questions = append(questions, q)
	}

	if len(questions) > count && count > 0 {
		questions = questions[:count]
	}

	return &domain.GeneratedQuiz{
		Topic:       topic,
		Description: fmt.Sprintf("A %s quiz about %s based on the provided document content.", difficulty, topic),
		Difficulty:  difficulty,
		Questions:   questions,
	}
}

// extractKeywords picks up to limit distinct words longer than five
// characters from the text, in order of first appearance.
func extractKeywords(text string, limit int) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, word := range strings.Fields(text) {
		if len(word) <= 5 || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) >= limit {
			break
		}
	}
	return keywords
}
