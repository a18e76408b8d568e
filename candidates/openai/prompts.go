package openai

import (
	"fmt"

	"github.com/poiesic/phrasemap/core"
)

const suggestionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "suggestions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "phrase": {
            "type": "string"
          },
          "rationale": {
            "type": "string"
          }
        },
        "required": ["phrase", "rationale"],
        "additionalProperties": false
      }
    }
  },
  "required": ["suggestions"],
  "additionalProperties": false
}`

const suggestionPromptTemplate = `You suggest related search phrases real users type into a search engine.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Suggest at most %d phrases for the %s market, in that market's language.
- Phrases must be realistic search queries: lowercase, no punctuation beyond what users actually type.
- Cover a mix of angles: price and cost, how-to questions, comparisons, named providers.
- Each rationale is one short sentence saying why a searcher would move from the seed to this phrase.
- Never repeat the seed phrase itself.
- If no related phrases exist, return "suggestions": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

func buildSystemPrompt(market string, maxCandidates int) string {
	return fmt.Sprintf(suggestionPromptTemplate, suggestionResponseSchema, maxCandidates, market)
}

func buildUserPrompt(seed core.Seed) string {
	return fmt.Sprintf("Seed phrase: %q (intent: %s, perspective: %s)", seed.Phrase, seed.Intent, seed.Perspective)
}
