package internal_promptgen

import (
	"fmt"
	"strings"
)

func rolePrompt(role AssistantRole, req PromptRequest) string {
	cfg := ConfigFor(role)
	combined := strings.Join(req.AudioSummaries, audioSummarySeparator)
	if combined == "" {
		combined = "No audio summaries provided."
	}

	return fmt.Sprintf(`
You are an expert AI assistant prompt engineer. Generate a detailed, actionable prompt for a %[1]s working on a software development project.

## Project Context:
**Project Name:** %[2]s
**Project Description:** %[3]s

## Meeting/Audio Content:
%[4]s

## Assistant Role: %[1]s
**Responsibilities:** %[5]s

## Instructions:
Generate a comprehensive prompt that will help a %[1]s AI assistant effectively support this project. The prompt should:

1. **Clearly define the role and responsibilities** specific to %[1]s
2. **Reference specific requirements, features, and decisions** mentioned in the audio content
3. **Provide actionable guidance** for typical tasks this assistant will handle
4. **Include relevant technical context** from the project and meetings
5. **Be copy-paste ready** for immediate use with an AI assistant
6. **Be approximately 500-800 words** with clear structure and sections

## Output Format:
Provide ONLY the assistant prompt content. Do not include explanations, meta-commentary, or additional text. The output should be the complete prompt that can be directly copied and used.

## %[1]s Prompt Focus Areas:
%[6]s

Generate the prompt now:`,
		cfg.Label, req.ProjectName, req.ProjectDescription, combined, cfg.Description, cfg.Guidelines)
}

func canvasPrompt(componentDescriptions string) string {
	return fmt.Sprintf(`You are an expert prompt engineer. I have created a visual prompt builder with the following components arranged on a canvas:

%s

Based on these components and their positions, create a comprehensive, well-structured prompt that:

1. Takes into account the spatial relationships between components
2. Creates a logical flow from the component arrangement
3. Incorporates the component configurations effectively
4. Results in a clear, actionable prompt for an AI system

The components are arranged from top-left (0,0) to bottom-right. Components closer together should be more related in the final prompt structure.

Please generate a detailed, professional prompt that makes use of all these elements cohesively.`, componentDescriptions)
}

// FallbackPrompt builds a static prompt used when generation for a role
// fails.
func FallbackPrompt(role AssistantRole, projectName, projectDescription string) string {
	cfg := ConfigFor(role)
	return fmt.Sprintf(`# %[1]s Assistant Prompt

## Project Context
You are a %[1]s assistant working on the %[2]q project.

**Project Description:** %[3]s

## Your Role
%[4]s

## Key Responsibilities
%[5]s

## Instructions
- Provide expert guidance in your area of specialization
- Reference the project context in your responses
- Offer practical, actionable advice
- Consider project constraints and requirements
- Maintain focus on project goals and deliverables

## Communication Style
- Be clear and concise in your responses
- Ask clarifying questions when needed
- Provide examples and best practices
- Suggest alternatives when appropriate
- Stay focused on your role's responsibilities

*Note: This is a fallback prompt. For best results, generate a custom prompt based on specific project requirements and meeting content.*`,
		cfg.Label, projectName, projectDescription, cfg.Description, cfg.Guidelines)
}

func estimationInput(role AssistantRole, req PromptRequest) string {
	cfg := ConfigFor(role)
	return fmt.Sprintf("Role: %s\nProject: %s\nDescription: %s\nAudio Content: %s\nGuidelines: %s",
		cfg.Label, req.ProjectName, req.ProjectDescription,
		strings.Join(req.AudioSummaries, audioSummarySeparator), cfg.Guidelines)
}
