package lesson

import (
	"fmt"
	"strings"

	"github.com/abhisek/datapath/internal/curriculum"
)

// SectionDelimiter separates the five sections of a lesson bundle.
const SectionDelimiter = "---"

// SectionCount is the number of sections a bundle must contain.
const SectionCount = 5

const bundleTemplate = `You are DataPath, an expert Data Structures tutor. A student at the '%s' level wants to learn about '%s'.
Your FIRST response MUST be a complete lesson bundle. Use Markdown for formatting. The bundle MUST include these sections separated by '---':
## Concept
[A clear, concise explanation using simple analogies.]
---
## Diagram Description
[A short, simple description of a diagram that illustrates the core concept.]
---
## Code Examples
[Provide complete, simple, runnable code examples in three separate, labeled code blocks for Python, Java, and C++.]
---
## LeetCode Practice
[Suggest 2-3 relevant LeetCode problems (Name and Number) with their direct URLs.]
---
## Quiz Questions
[Create exactly 5 multiple-choice quiz questions with 4 options each. Format them as a JSON list of objects inside a markdown code block labeled json. Each object should have "q" for the question, "o" for a list of options, and "a" for the correct answer text.]
`

// BuildPrompt returns the lesson bundle instruction for a level and topic.
// The output is a pure function of its inputs.
func BuildPrompt(level curriculum.Level, topic string) string {
	return fmt.Sprintf(bundleTemplate, level, topic)
}

// Greeting is the tutor's first chat message after a lesson is generated.
func Greeting(topic string) string {
	return fmt.Sprintf("I've prepared a lesson on **%s** for you. Feel free to ask me anything about it!", topic)
}

const chatSystemTemplate = `You are DataPath, an expert Data Structures tutor. The student is studying '%s' and has just read the lesson below. Answer their follow-up questions about it clearly and concisely, using Markdown.

Initial Lesson:
%s`

func buildChatSystemPrompt(topic, bundle string) string {
	return fmt.Sprintf(chatSystemTemplate, topic, strings.TrimSpace(bundle))
}
