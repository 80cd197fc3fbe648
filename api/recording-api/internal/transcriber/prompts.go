package internal_transcriber

import "fmt"

const transcriptPrompt = `
Please transcribe this audio file with speaker identification. Provide ONLY a JSON response with this exact structure:

{
  "rawTranscript": "Complete word-for-word transcription with speaker labels like 'Speaker 1: Hello, how are you? Speaker 2: I'm doing well, thanks.'",
  "speakerCount": 2,
  "speakerSegments": [
    {
      "speaker": "Speaker 1",
      "text": "Hello, how are you?",
      "timestamp": "00:00"
    },
    {
      "speaker": "Speaker 2",
      "text": "I'm doing well, thanks.",
      "timestamp": "00:05"
    }
  ]
}

Instructions:
- Be intelligent about identifying different voices and speech patterns
- If you can't clearly distinguish speakers, use "Speaker 1" for all content
- Include natural pauses and "um", "uh" sounds in raw transcript
- Estimate timestamps based on speech flow (don't worry about exact precision)
- Ensure the rawTranscript field contains the complete transcription with speaker labels
`

func summaryPrompt(rawTranscript string) string {
	return fmt.Sprintf(`
Based on the following raw transcript, please generate an objective, structured AI summary with bullet points.

RAW TRANSCRIPT:
%q

Please provide ONLY a JSON response with this structure:
{
  "aiSummary": "**Meeting Overview:**\n- Key discussion points in bullet format\n- Decisions made and action items\n\n**Technical Details:** (if applicable)\n- Features discussed\n- Requirements mentioned\n- Technical specifications\n\n**Action Items:**\n- Tasks assigned\n- Next steps\n- Deadlines mentioned"
}

AI SUMMARY Guidelines:
- Use objective, factual language (avoid subjective opinions)
- Structure with clear sections using **bold headers**
- Use bullet points for all key information
- For software development meetings, include these sections if applicable:
  * **Meeting Overview:** Main purpose and topics
  * **Features Discussed:** List of app features mentioned
  * **Technical Requirements:** Technical specifications, frameworks, APIs
  * **Design Decisions:** UI/UX choices, architecture decisions
  * **Action Items:** Tasks, assignments, deadlines
  * **Next Steps:** Follow-up meetings, deliverables
- For non-technical meetings, use:
  * **Meeting Overview:** Purpose and main topics
  * **Key Points:** Important discussion items
  * **Decisions Made:** Conclusions reached
  * **Action Items:** Tasks and next steps
- Be specific with feature lists (e.g., "Authentication system", "User dashboard", "Payment integration")
- Include technical terms mentioned (React, API, database, etc.)
- List concrete deliverables and timelines
- Keep bullet points concise but informative
- If audio quality was poor, mention it in the summary
`, rawTranscript)
}
