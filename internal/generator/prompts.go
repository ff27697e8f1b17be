package generator

import (
	"fmt"
	"strings"

	"github.com/quizwhiz/backend/internal/models"
)

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// cacheContext renders the id-reuse map as "name" → id lines for the
// semantic-matching section of the category prompts.
func cacheContext(cached [][2]string) string {
	if len(cached) == 0 {
		return "No cached categories yet"
	}
	lines := make([]string, len(cached))
	for i, entry := range cached {
		lines[i] = fmt.Sprintf("%q → %s", entry[1], entry[0])
	}
	return strings.Join(lines, "\n")
}

const strictJSONFooter = `
Do NOT wrap the response in markdown code blocks.
Do NOT add any introduction, explanation, prefix, or suffix.
Return ONLY valid JSON.`

func BuildCategoriesPrompt(existingTitles []string, cached [][2]string) string {
	return fmt.Sprintf(`
Generate exactly 30 popular, engaging, and well-known quiz categories that users would actually want to explore.

CRITICAL REQUIREMENTS:
1. DO NOT generate any of these existing categories: %s
2. Check if any new category matches cached categories for ID reuse
3. Categories must be FAMOUS, POPULAR topics - not obscure or niche
4. Cover diverse domains that real people care about

DOMAIN DISTRIBUTION REQUIREMENT:
- 40%% Technology & Science (AI, Programming, Space, etc.)
- 20%% Entertainment & Pop Culture (Movies, Music, Sports, Games)
- 15%% Business & Finance (Startups, Marketing, Investing)
- 15%% Lifestyle & General Knowledge (Food, Travel, Health)
- 10%% History & Geography (World History, Countries, Landmarks)

SERVER CACHE (existing categories with their IDs):
%s

SEMANTIC MATCHING RULES:
- If cache has "React" with ID "cat_123", then "React JS" should use cachedId: "cat_123"
- If cache has "JavaScript" with ID "cat_456", then "Modern JS" should use cachedId: "cat_456"
- Only use cachedId when the core topic is essentially the same

RESPONSE FORMAT - STRICT JSON ARRAY:
[{"name":"Famous and engaging category name","description":"Exciting 1-2 sentence description","trending":true,"cachedId":"cat_123"}]
Include "cachedId" ONLY when the category matches a cached one, otherwise OMIT the field.
`+strictJSONFooter,
		joinOrNone(existingTitles), cacheContext(cached))
}

func BuildCategorySearchPrompt(search string, existingTitles []string, cached [][2]string) string {
	return fmt.Sprintf(`
Generate exactly 30 diverse and engaging quiz categories related to or starting with %[1]q.

CRITICAL REQUIREMENTS:
1. Categories must be related to %[1]q - either starting with %[1]q or semantically related
2. DO NOT generate any of these existing categories: %[2]s
3. Check if any new category is semantically similar to categories in the server cache below
4. If a new category is essentially the same as a cached category, use the cachedId from the cache
5. If %[1]q appears to be random characters or nonsense (anything meaningless), return EMPTY ARRAY []

SERVER CACHE (existing categories with their IDs):
%[3]s

SEMANTIC MATCHING RULES:
- If cache has "React" with ID "cat_123", then "React JS" should use cachedId: "cat_123"
- Only use cachedId when the core topic is essentially the same

RESPONSE FORMAT - STRICT JSON ARRAY:
[{"name":"Clear category name related to the search","description":"Engaging 1-2 sentence description","trending":false,"cachedId":"cat_123"}]
Include "cachedId" ONLY when the category matches a cached one, otherwise OMIT the field.
`+strictJSONFooter,
		search, joinOrNone(existingTitles), cacheContext(cached))
}

func BuildSubcategoriesPrompt(category string, existing []string) string {
	return fmt.Sprintf(`
Generate exactly 10 diverse and relevant subcategories for the main quiz category: %[1]q.

Each subcategory should be a specific, well-defined topic within %[1]q
(e.g., if the parent is "Information Technology", valid subcategories include "React.js", "Cybersecurity", "Cloud Architecture").

CRITICAL DISTRIBUTION RULES:
- "trending": TRUE for only 2-3 subcategories that are currently most popular
- "new": TRUE for only 1-2 recently emerging topics
- A subcategory can be BOTH trending AND new, but rarely (max 1 item)

Each object must have:
  - "name": short, clear title
  - "description": 1-sentence engaging explanation of what the subcategory covers
  - "trending": boolean
  - "new": boolean
  - "usersTaken": number between 1-100 (trending items 60-100, new items 10-40, regular items 20-80)

Return a JSON array in this exact format:
[{"name":"...","description":"...","trending":true,"new":false,"usersTaken":50}]

Do NOT include any of the following subcategory names (avoid duplicates): %[2]s
`+strictJSONFooter,
		category, joinOrNone(existing))
}

func BuildSubcategorySearchPrompt(categoryTitle, search string, existing []string) string {
	return fmt.Sprintf(`
Generate exactly 10 diverse and relevant subcategories for the main quiz category: %[1]q.
Subcategory names should start with %[2]q or be subcategories closely related to %[2]q.

Each object must have:
  - "name": short, clear title
  - "description": 1-sentence engaging explanation of what the subcategory covers
  - "trending": boolean (true if currently popular or high-demand)
  - "new": boolean (true if the topic is recently introduced)
  - "usersTaken": number below 100
  - "color": a Tailwind-compatible background color class like "bg-blue-50", "bg-green-50" (use varied soft colors)

Return a JSON array in this exact format:
[{"name":"...","description":"...","trending":true,"new":true,"usersTaken":50,"color":"..."}]

Do NOT include any of the following subcategory names (avoid duplicates): %[3]s
`+strictJSONFooter,
		categoryTitle, search, joinOrNone(existing))
}

func BuildQuestionPrompt(categoryTitle, subcategoryTitle string, difficulty int, questionType models.QuestionType) string {
	if questionType == models.TypeMultipleChoice {
		return fmt.Sprintf(`
Generate a CRYSTAL CLEAR multiple choice quiz question where ONE option is DEFINITELY correct and the others are clearly wrong.

CATEGORY: %s
SUBCATEGORY: %s
DIFFICULTY: %d/5

REQUIREMENTS:
- Create 1 unambiguous question with exactly 4 options
- ONE option must be 100%% factually correct based on established knowledge
- The other 3 options must be clearly incorrect with no ambiguity
- Avoid "trick" questions or debatable answers
- The question should test clear factual knowledge, not interpretation
- Make it appropriate for difficulty level %[3]d

Return ONLY valid JSON:
{"questionText":"clear direct question","options":["Option A","Option B","Option C","Option D"],"questionType":"%s","difficultyLevel":%[3]d}
`+strictJSONFooter,
			categoryTitle, subcategoryTitle, difficulty, questionType)
	}

	return fmt.Sprintf(`
Generate a SPECIFIC descriptive question that can be answered in 1-2 lines and has a clear, evaluatable correct answer.

CATEGORY: %s
SUBCATEGORY: %s
DIFFICULTY: %d/5

REQUIREMENTS:
- The question should be answerable in 1-2 sentences maximum
- Must have ONE clear correct answer based on facts, not opinions
- Should test specific knowledge that can be objectively evaluated
- Avoid open-ended or general discussion questions
- Focus on definitions, processes, or specific concepts
- Make it appropriate for difficulty level %[3]d

Return ONLY valid JSON:
{"questionText":"specific factual question","options":[],"questionType":"%s","difficultyLevel":%[3]d}
`+strictJSONFooter,
		categoryTitle, subcategoryTitle, difficulty, questionType)
}

func BuildEvaluationPrompt(question *models.Question, userAnswer, category, subcategory string) string {
	optionsLine := ""
	if len(question.Options) > 0 {
		optionsLine = "OPTIONS: " + strings.Join(question.Options, ", ") + "\n"
	}

	scoringRules := `- Evaluate completeness and accuracy (0-10)
- Score based on key points covered`
	if question.QuestionType == models.TypeMultipleChoice {
		scoringRules = `- Check if the answer exactly matches the correct option
- Score: 10 if correct, 0 if wrong`
	}

	return fmt.Sprintf(`
Evaluate the answer and provide a SHORT explanation:

QUESTION: %s
%sUSER'S ANSWER: %s
QUESTION TYPE: %s

CATEGORY: %s
SUBCATEGORY: %s

EVALUATION RULES:
%s

CORRECT ANSWER REQUIREMENTS:
- For multiple choice: provide the exact correct option text
- For descriptive: provide a SHORT ideal answer (1-2 lines maximum, 10-20 words)
- Keep descriptive answers concise and focused on key points only

EXPLANATION REQUIREMENTS:
- Keep it VERY SHORT (1 sentence maximum)
- Focus on the KEY LEARNING POINT only
- Do NOT mention "user gave" or "user answered"
- Do NOT repeat the question or options

RESPONSE FORMAT (JSON only):
{"wasCorrect":false,"correctAnswer":"string","score":0,"explanation":"one short sentence with key learning point"}
`+strictJSONFooter,
		question.QuestionText, optionsLine, userAnswer, question.QuestionType,
		category, subcategory, scoringRules)
}

func BuildFeedbackPrompt(totalScore, maxPossibleScore, totalQuestions, goodAnswers int) string {
	return fmt.Sprintf(`
Generate a brief evaluation and feedback for a quiz performance:

TOTAL SCORE: %[1]d/%[2]d
TOTAL QUESTIONS: %[3]d
PERFORMANCE BREAKDOWN:
- Questions with good scores: %[4]d
- Questions needing improvement: %[5]d

Generate a constructive evaluation that:
1. Acknowledges the performance level based on the %[1]d/%[2]d score
2. Provides specific feedback based on the score pattern
3. Suggests areas for improvement or next steps
4. Is encouraging and motivational
5. Keeps it brief (2-3 sentences)

Return only the evaluation text as a string, no JSON.
`,
		totalScore, maxPossibleScore, totalQuestions, goodAnswers, totalQuestions-goodAnswers)
}
