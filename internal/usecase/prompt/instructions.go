package prompt

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// Category lenses: the frame every instruction block opens with.
const (
	lensSoftwareBuild = `You are an expert product engineer helping someone turn a rough software idea into a precise, build-ready prompt for an AI coding assistant.`

	lensAcademic = `You are an experienced research advisor helping someone turn a rough topic into a precise, well-scoped prompt for academic research or writing.`

	lensGeneral = `You are a seasoned planning assistant helping someone turn a rough idea into a precise, actionable prompt.`
)

func lensFor(category entity.IdeaCategory) string {
	switch category.Normalize() {
	case entity.CategoryAcademic:
		return lensAcademic
	case entity.CategoryGeneral:
		return lensGeneral
	default:
		return lensSoftwareBuild
	}
}

const questionContract = `Produce between 4 and 7 clarification questions that would most improve the final prompt.

Respond with ONLY a JSON object, no prose and no markdown fences, in exactly this shape:
{
  "questions": [
    {
      "id": "snake_case_identifier",
      "type": "text | textarea | single_select | multi_select | boolean | number",
      "question": "The question shown to the user",
      "required": true,
      "placeholder": "e.g., a short example answer",
      "choices": ["First option", "Second option"]
    }
  ]
}

Rules:
- id values must be unique snake_case strings.
- single_select and multi_select questions need 3 to 5 distinct choices; set choices to null for every other type.
- placeholder is only allowed on text and textarea questions and must start with "e.g.,"; set it to null everywhere else.
- Ask about concrete decisions the idea leaves open, not things it already states.`

// questionInstructions builds the system block for the question flow.
func questionInstructions(category entity.IdeaCategory) string {
	return lensFor(category) + "\n\n" + questionContract
}

func questionContent(idea *entity.Idea) string {
	return "Idea: " + idea.Description
}

const (
	promptContractSoftware = `Write one complete, ready-to-use prompt that could be pasted into an AI coding assistant to build the described product. Cover the goal, target users, platform, core features, interface direction and data handling in clear imperative language. Respond with the prompt text only: no preamble, no commentary, no markdown fences.`

	promptContractAcademic = `Write one complete, ready-to-use prompt that could be pasted into an AI research assistant to carry out the described work. Cover the research question, scope, methodology, expected sources and output structure in clear language. Respond with the prompt text only: no preamble, no commentary, no markdown fences.`

	promptContractGeneral = `Write one complete, ready-to-use prompt that could be pasted into an AI assistant to get the described task done well. Cover the goal, audience, constraints and desired output in clear language. Respond with the prompt text only: no preamble, no commentary, no markdown fences.`
)

// promptInstructions builds the system block for the synthesis flow.
func promptInstructions(category entity.IdeaCategory) string {
	lens := lensFor(category)
	switch category.Normalize() {
	case entity.CategoryAcademic:
		return lens + "\n\n" + promptContractAcademic
	case entity.CategoryGeneral:
		return lens + "\n\n" + promptContractGeneral
	default:
		return lens + "\n\n" + promptContractSoftware
	}
}

// promptContent renders the idea and the collected answers for the model.
// Answers go in sorted key order so identical requests produce identical
// content.
func promptContent(req *entity.PromptRequest) string {
	var b strings.Builder
	b.WriteString("Idea: ")
	b.WriteString(req.Idea)
	b.WriteString("\n")

	if len(req.Answers) > 0 {
		b.WriteString("\nClarified details:\n")
		ids := make([]string, 0, len(req.Answers))
		for id := range req.Answers {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "- %s: %s\n", humanizeID(id), renderAnswer(req.Answers[id]))
		}
	}

	return b.String()
}

// suggestInstructions builds the system block for the answer-suggest flow,
// constraining the value shape to the question's declared type.
func suggestInstructions(req *entity.SuggestAnswerRequest) string {
	var b strings.Builder
	b.WriteString(lensFor(req.Category))
	b.WriteString("\n\nSuggest a realistic answer to one clarification question about the idea.")
	b.WriteString("\nRespond with ONLY a JSON object in the shape {\"value\": <answer>} and nothing else.")

	switch req.Question.Type {
	case entity.QuestionTypeSingleSelect:
		fmt.Fprintf(&b, "\nThe value must be exactly one of: %s.", strings.Join(req.Question.Choices, " | "))
	case entity.QuestionTypeMultiSelect:
		fmt.Fprintf(&b, "\nThe value must be a JSON array containing only items from: %s.", strings.Join(req.Question.Choices, " | "))
	case entity.QuestionTypeBoolean:
		b.WriteString("\nThe value must be a JSON boolean.")
	case entity.QuestionTypeNumber:
		b.WriteString("\nThe value must be a JSON number.")
	default:
		b.WriteString("\nThe value must be a short string, at most two sentences.")
	}

	return b.String()
}

func suggestContent(req *entity.SuggestAnswerRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Idea: %s\n", req.Idea)
	fmt.Fprintf(&b, "Question: %s\n", req.Question.Question)

	if len(req.CurrentAnswers) > 0 {
		b.WriteString("\nAlready answered:\n")
		ids := make([]string, 0, len(req.CurrentAnswers))
		for id := range req.CurrentAnswers {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "- %s: %s\n", humanizeID(id), renderAnswer(req.CurrentAnswers[id]))
		}
	}

	return b.String()
}

// renderAnswer flattens a raw answer value into prompt-friendly text.
func renderAnswer(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "yes"
		}
		return "no"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, renderAnswer(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

func humanizeID(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}
