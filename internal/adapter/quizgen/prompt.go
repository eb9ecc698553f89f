package quizgen

import (
	"fmt"
	"strings"

	"quiz-progression/internal/domain"
)

const responseFormat = `Respond with ONLY a JSON object in the following format:
{
  "questions": [
    {
      "id": "q_1",
      "question": "question text",
      "options": ["option A", "option B", "option C", "option D"],
      "correct_answer": 0,
      "topic_id": "topic id from the list above",
      "topic_title": "topic title",
      "is_bonus": false,
      "explanation": "one sentence explaining the correct answer"
    }
  ]
}

Rules:
1. Every question has exactly 4 options and one correct answer.
2. correct_answer is the zero-based index of the correct option.
3. topic_id must be one of the listed topic ids.
4. Vary the position of the correct answer across questions.`

// variantIntro holds the variant specific part of the prompt.
var variantIntro = map[domain.Variant]string{
	domain.VariantMain: "You are writing the graded main quiz for week %d of the course %q. " +
		"Cover every topic of the week evenly.",
	domain.VariantRefresher: "You are writing an ungraded refresher practice quiz for week %d of the course %q. " +
		"Write new questions that differ from any previous practice set.",
	domain.VariantDynamic: "You are writing a remedial quiz for week %d of the course %q. " +
		"The student struggled with the topics below, so focus on their fundamentals and common mistakes.",
}

// BuildPrompt renders the generation prompt for a request.
func BuildPrompt(req domain.GenerationRequest) string {
	var b strings.Builder

	intro, ok := variantIntro[req.Variant]
	if !ok {
		intro = variantIntro[domain.VariantMain]
	}
	title := req.CourseTitle
	if title == "" {
		title = req.CourseID
	}
	fmt.Fprintf(&b, intro, req.WeekNumber, title)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Write %d multiple choice questions on these topics:\n", req.QuestionCount)
	writeTopics(&b, req.Topics)

	if req.BonusCount > 0 && len(req.BonusTopics) > 0 {
		fmt.Fprintf(&b, "\nAlso write %d bonus questions (set \"is_bonus\": true) reviewing last week's topics:\n", req.BonusCount)
		writeTopics(&b, req.BonusTopics)
	}

	if req.Nonce != "" {
		fmt.Fprintf(&b, "\nVariation seed: %s\n", req.Nonce)
	}

	b.WriteString("\n")
	b.WriteString(responseFormat)
	return b.String()
}

func writeTopics(b *strings.Builder, topics []domain.Topic) {
	for _, t := range topics {
		fmt.Fprintf(b, "- %s: %s", t.ID, t.Title)
		if t.Summary != "" {
			fmt.Fprintf(b, " (%s)", t.Summary)
		}
		b.WriteString("\n")
	}
}
