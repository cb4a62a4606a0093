package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/datapath/internal/curriculum"
	"github.com/abhisek/datapath/internal/lesson"
	"github.com/abhisek/datapath/internal/llm"
	"github.com/abhisek/datapath/internal/logging"
	"github.com/abhisek/datapath/internal/tutor"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate a lesson for a topic and take its quiz (no account)",
	Long: `Generate a lesson bundle for one topic, print its sections and
interactively answer its quiz.

This is a developer tool for judging lesson quality. No account is needed and
no progress is saved; the LLM call is still recorded for 'datapath llm'.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("level", "Beginner", "Level: Beginner, Intermediate or Pro")
	previewCmd.Flags().String("topic", "", "Topic name or its number in the level's list (required)")
	previewCmd.Flags().Bool("raw", false, "Print the raw model output instead of the parsed sections")
	previewCmd.Flags().Bool("no-quiz", false, "Skip the interactive quiz")
	_ = previewCmd.MarkFlagRequired("topic")
}

func runPreview(cmd *cobra.Command, args []string) error {
	levelVal, _ := cmd.Flags().GetString("level")
	topicVal, _ := cmd.Flags().GetString("topic")
	raw, _ := cmd.Flags().GetBool("raw")
	noQuiz, _ := cmd.Flags().GetBool("no-quiz")

	level, err := curriculum.ParseLevel(levelVal)
	if err != nil {
		return err
	}
	topic, err := resolveTopic(level, topicVal)
	if err != nil {
		return err
	}

	st, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := llm.WithPurpose(cmd.Context(), llm.PurposePreview)
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logging.Discard())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	fmt.Printf("Generating %s lesson on %q...\n\n", level, topic)
	bundle, err := lesson.NewGenerator(provider, lesson.DefaultConfig()).Generate(ctx, level, topic)
	if err != nil {
		return err
	}
	if raw {
		fmt.Println(bundle)
		return nil
	}

	l, err := lesson.Parse(bundle)
	if err != nil {
		var pe *lesson.ParseError
		if errors.As(err, &pe) {
			fmt.Printf("Parse failed at %s stage: %v\n\n%s\n", pe.Stage, pe.Err, pe.Raw)
		}
		return err
	}

	section := func(title, body string) {
		fmt.Println(strings.Repeat("─", 72))
		fmt.Println(title)
		fmt.Println(strings.Repeat("─", 72))
		fmt.Println(body)
		fmt.Println()
	}
	section("CONCEPT", l.Concept)
	section("DIAGRAM", l.Diagram.Text+"\n"+l.Diagram.URL)
	section("CODE", l.Code)
	section("PRACTICE", l.Practice)

	if noQuiz {
		fmt.Printf("%d quiz questions parsed.\n", len(l.Questions))
		return nil
	}
	return runQuiz(l.Questions)
}

// runQuiz asks each question on stdin and prints the score.
func runQuiz(questions []lesson.Question) error {
	scanner := bufio.NewScanner(os.Stdin)
	answers := make([]*string, len(questions))

	for i, q := range questions {
		fmt.Printf("── Question %d/%d ──\n", i+1, len(questions))
		fmt.Println(q.Q)
		for j, o := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, o)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n < 1 || n > len(q.Options) {
			fmt.Printf("(skipped) Answer: %s\n\n", q.Answer)
			continue
		}
		choice := q.Options[n-1]
		answers[i] = &choice

		if choice == q.Answer {
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Answer)
		}
		fmt.Println()
	}

	fmt.Printf("── Score: %d / %d ──\n", tutor.Score(questions, answers), len(questions))
	return scanner.Err()
}

// resolveTopic matches a topic by 1-based number or case-insensitive name.
func resolveTopic(level curriculum.Level, val string) (string, error) {
	topics := curriculum.Topics(level)
	if n, err := strconv.Atoi(val); err == nil {
		if t, ok := curriculum.TopicAt(level, n-1); ok {
			return t, nil
		}
		return "", fmt.Errorf("%s has %d topics; %d is out of range", level, len(topics), n)
	}
	for _, t := range topics {
		if strings.EqualFold(t, strings.TrimSpace(val)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("no %s topic named %q (see 'datapath topics --level %s')", level, val, level)
}
