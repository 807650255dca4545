package gemini

import "google.golang.org/genai"

// System instructions select the model persona for each operation. The
// concept instruction carries the content rules; the others are short
// mode switches.
const (
	conceptSystemInstruction = `You are the OMNIORA Knowledge Core, the ultimate knowledge engine.
Synthesize high-density, futuristic micro-learning nodes across 20+ advanced domains (Quantum Mechanics, Bioinformatics, AI, etc.).

CONTENT RULES:
- Lessons must be dense but micro (200-300 words).
- Language: Strictly provide both English and Arabic translations for everything.
- Advanced Resources: Provide real-world or theoretical deep-dive links (YouTube, scientific papers, or articles).
- Tone: Cold, futuristic, high-intellect, precise.

QUIZ:
- 3-5 rigorous questions.
- Bilingual options and explanations.`

	topicsSystemInstruction = "Knowledge Architect Mode. Return JSON array of strings."

	recommendationSystemInstruction = "Neural Curator Mode. Suggest one domain, one topic, and a clinical reason."

	alertSystemInstruction = "Omniora Herald Mode. High-impact engagement text JSON."
)

// topicsSchema constrains the topic discovery response.
var topicsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"topics": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"topics"},
}

// conceptSchema constrains the generated learning node. Quiz entries
// must carry both languages so a stored concept renders without a
// second round trip when the user switches language.
var conceptSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title_en":          {Type: genai.TypeString},
		"title_ar":          {Type: genai.TypeString},
		"category":          {Type: genai.TypeString},
		"lesson_en":         {Type: genai.TypeString},
		"lesson_ar":         {Type: genai.TypeString},
		"extendedLesson_en": {Type: genai.TypeString},
		"extendedLesson_ar": {Type: genai.TypeString},
		"relatedConcepts": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"advancedResources": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": {Type: genai.TypeString},
					"url":   {Type: genai.TypeString},
					"type":  {Type: genai.TypeString},
				},
			},
		},
		"quiz": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"question_en": {Type: genai.TypeString},
					"question_ar": {Type: genai.TypeString},
					"options_en": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeString},
					},
					"options_ar": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeString},
					},
					"correctAnswer":  {Type: genai.TypeInteger},
					"explanation_en": {Type: genai.TypeString},
					"explanation_ar": {Type: genai.TypeString},
				},
				Required: []string{
					"question_en", "question_ar",
					"options_en", "options_ar",
					"correctAnswer",
				},
			},
		},
	},
	Required: []string{"title_en", "title_ar", "lesson_en", "lesson_ar", "quiz"},
}

// recommendationSchema constrains the daily curator response.
var recommendationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"topic":      {Type: genai.TypeString},
		"domain":     {Type: genai.TypeString},
		"reason":     {Type: genai.TypeString},
		"isFrontier": {Type: genai.TypeBoolean},
	},
}

// alertSchema constrains the engagement notification text.
var alertSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":   {Type: genai.TypeString},
		"message": {Type: genai.TypeString},
	},
}
