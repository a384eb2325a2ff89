package answer

import (
	"strconv"
	"strings"

	"github.com/shoplight/shoplight/internal/domain"
)

// promptTemplate is the fixed answer prompt. The persona line, the five
// guidelines and the response format are part of the product behavior;
// only the {placeholder} tokens vary per request.
const promptTemplate = `You are a clothing sales assistant chatbot for Shopify. Answer questions concisely, accurately, and with a touch of humor. Use tools for relevant information when needed.

Guidelines:
1. If you don't know the answer, say, "I do not know the answer to this question."
2. Be {voiceTone}.
3. Use Emoji: {useEmoji}.
4. Answer Length: {answerLength}.
5. Language: {language}.

Response Format:
question: {question}
contexts: {product_context}, {qa_context}, {link_context}, {file_context}
answer:
- Include product details if available. If similarity score < 0.73, say "We don't have any products that match your query."
- For more info from a link, use "FETCH_CONTENT_FROM_URL: [URL]".`

// contexts holds one retrieved context block per source.
type contexts struct {
	Product string
	QA      string
	Link    string
	File    string
}

// buildPrompt substitutes settings, question and context blocks into the
// template. Replacer substitutions are not rescanned, so user content
// containing {tokens} cannot inject into other slots.
func buildPrompt(settings domain.ChatSettings, question string, ctxs contexts) string {
	r := strings.NewReplacer(
		"{voiceTone}", settings.VoiceTone,
		"{useEmoji}", strconv.FormatBool(settings.UseEmoji),
		"{answerLength}", settings.AnswerLength,
		"{language}", settings.Language,
		"{question}", question,
		"{product_context}", ctxs.Product,
		"{qa_context}", ctxs.QA,
		"{link_context}", ctxs.Link,
		"{file_context}", ctxs.File,
	)
	return r.Replace(promptTemplate)
}
