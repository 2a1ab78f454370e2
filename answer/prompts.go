package answer

import (
	"fmt"
	"strings"

	"github.com/poiesic/docquery/core"
)

const groundingInstruction = `You are a question-answering assistant for a document search application.

Answer the user's question using ONLY the context passages provided. Do not use prior knowledge and do not invent information. If the context does not contain the answer, say that the documents do not cover it.

Keep the answer concise and factual.`

const userPromptTemplate = `Context:
%s

Question: %s`

// buildContext joins match texts with a blank-line separator, dropping
// matches once the character budget is exhausted. The first match is always
// admitted so a single oversized chunk cannot empty the context.
func buildContext(matches []core.Match, budget int) string {
	var sb strings.Builder
	for i, match := range matches {
		if i > 0 && sb.Len()+len("\n\n")+len(match.Text) > budget {
			break
		}
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(match.Text)
	}
	return sb.String()
}

// buildUserPrompt assembles the grounded prompt for the generator.
func buildUserPrompt(query, context string) string {
	return fmt.Sprintf(userPromptTemplate, context, query)
}
