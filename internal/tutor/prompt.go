package tutor

import (
	"fmt"
	"strings"
)

// ProblemPrompt asks for exactly one practice problem matching s.
func ProblemPrompt(s Settings) string {
	grade := s.Grade.Label()

	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly math tutor for %s students.\n\n", grade)
	fmt.Fprintf(&b, "Generate ONE %s difficulty %s problem appropriate for %s.\n\n",
		strings.ToLower(s.Difficulty.Label()), strings.ToLower(s.ProblemType.Label()), grade)
	b.WriteString(`Requirements:
- Make it engaging and age-appropriate
- For word problems, use fun scenarios (toys, animals, games, snacks, friends)
- Keep numbers reasonable for this grade level
- Return ONLY the problem text, nothing else
- DO NOT include the answer

Examples:
- Basic: "What is 7 + 5?"
- Word problem: "Alex has 15 toy cars and gets 8 more for his birthday. How many toy cars does Alex have now?"
`)
	return b.String()
}

// HintPrompt asks for one hint that does not give the answer away.
func HintPrompt(grade GradeLevel, problem string) string {
	return fmt.Sprintf(`Student problem: %s

Give ONE helpful hint that guides them without giving the answer away.
Be encouraging. Use simple language for %s.`, problem, grade.Label())
}

// CheckPrompt asks the oracle to judge answer and reply with feedback.
func CheckPrompt(grade GradeLevel, problem, answer string) string {
	g := grade.Label()
	return fmt.Sprintf(`You are a friendly math tutor for %s.

Problem: %s
Student's answer: %s

Check if correct, then respond:
- If CORRECT: Celebrate enthusiastically! Explain why in simple terms.
- If INCORRECT: Be very encouraging. Guide them gently. Explain the right approach step-by-step.

Be warm, supportive, and use emojis! Appropriate for %s.`, g, problem, answer, g)
}

// ExplainPrompt asks for a numbered walkthrough of the solution.
func ExplainPrompt(grade GradeLevel, problem string) string {
	g := grade.Label()
	return fmt.Sprintf(`You are a friendly math tutor for %s.

Problem: %s

Explain the solution step-by-step:
- Use simple language for %s
- Number each step clearly
- Use visual descriptions ("imagine you have 5 apples...")
- Be encouraging
- Use emojis
- Explain WHY, not just HOW`, g, problem, g)
}
