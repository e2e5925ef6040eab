package review

import (
	"fmt"
	"strings"
	"text/template"
)

const fence = "```"

const reviewPromptTemplate = `You are an expert senior software engineer and a world-class code reviewer.
Your feedback is always constructive, clear, and professional.

Please provide a detailed, constructive code review for the following {{.Language}} code.

Analyze the code based on the following criteria:
1. **Bugs and Logic Errors:** Identify any potential bugs, logical fallacies, or unhandled edge cases. Provide specific examples.
2. **Performance:** Suggest optimizations for performance, memory usage, or efficiency. Explain why your suggestions improve performance.
3. **Security:** Point out any potential security vulnerabilities (e.g., XSS, SQL injection, insecure handling of secrets, etc.).
4. **Best Practices & Readability:** Comment on code style, naming conventions, and whether the code adheres to established best practices and idioms for {{.Language}}. Suggest improvements for clarity and maintainability.
5. **Architecture & Design:** Comment on the overall structure and design. Are there any design patterns that could be applied? Is the code modular and well-organized?

Structure your feedback using Markdown. Use headings for each section (e.g., "### Bugs and Logic Errors"). Use code blocks ({{.Fence}}) for code snippets and suggestions.
Start with a brief, high-level summary of the code's quality before diving into the detailed points.

Here is the code to review:
{{.Fence}}{{.FenceTag}}
{{.Code}}
{{.Fence}}
`

var reviewPrompt = template.Must(template.New("review").Parse(reviewPromptTemplate))

// Dimensions are the review criteria every prompt asks for, in order
var Dimensions = []string{
	"Bugs and Logic Errors",
	"Performance",
	"Security",
	"Best Practices & Readability",
	"Architecture & Design",
}

// BuildPrompt renders the review prompt. The language name is used verbatim
// in the instructions and lower-cased as the fence tag; the code is embedded
// byte for byte.
func BuildPrompt(code, languageName string) string {
	var b strings.Builder
	err := reviewPrompt.Execute(&b, map[string]string{
		"Language": languageName,
		"FenceTag": strings.ToLower(languageName),
		"Fence":    fence,
		"Code":     code,
	})
	if err != nil {
		// unreachable for a parsed template over string data
		panic(fmt.Sprintf("review: rendering prompt: %v", err))
	}
	return b.String()
}
