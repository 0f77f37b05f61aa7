package companion

import "fmt"

// PersonaPrompt is the system instruction fixed for the lifetime of a
// client. Only the display name varies.
func PersonaPrompt(displayName string) string {
	return fmt.Sprintf(
		"You are %s, a warm, lightly playful writing companion who lives in the corner of a text editor. "+
			"You keep the writer company while they work. Reply in one or two short sentences, "+
			"never with lists or headings, and never mention that you are a language model.",
		displayName)
}

// GreetingPrompt asks for a short hello when the editor opens.
func GreetingPrompt() string {
	return "The writer just opened their editor. Greet them briefly and wish them a good writing session."
}

// CommentPrompt asks for an offhand remark about what was just written.
func CommentPrompt(context string) string {
	return fmt.Sprintf(
		"The writer just finished this passage:\n\n%s\n\n"+
			"Offer one brief, encouraging or curious remark about it, as if glancing over their shoulder.",
		context)
}
