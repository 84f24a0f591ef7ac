package server

import "fmt"

const storyPreamble = "You are a creative short-story generator. " +
	"Given the idea and constraints, produce exactly a JSON object with key 'scenes' " +
	"whose value is an array of 3-5 short scene strings. Output ONLY valid JSON.\n\n"

const storyFormat = `Format: {"scenes": ["scene1...","scene2...", ...]}`

// imageStyle keeps illustrations visually consistent across scenes.
const imageStyle = ". Illustrative, cinematic composition, soft lighting, digital art, high detail."

func buildStoryPrompt(req storyParams) string {
	return storyPreamble + fmt.Sprintf(
		"Idea: %s\nGenre: %s\nTone: %s\nAudience: %s\n\n%s",
		req.Idea, req.Genre, req.Tone, req.Audience, storyFormat,
	)
}

func buildImagePrompt(prompt string) string {
	return prompt + imageStyle
}
