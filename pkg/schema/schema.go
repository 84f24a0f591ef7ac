package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

// Story is the shape the text model is asked to produce.
type Story struct {
	Scenes []string `json:"scenes" jsonschema_description:"Three to five short scene descriptions, in story order"`
}

func generateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

var StorySchema = generateSchema[Story]()

// StructuredOutputsResponseFormat asks OpenAI-compatible models to answer with a Story object.
func StructuredOutputsResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "story_scenes",
		Description: openai.String("A short story split into ordered scenes"),
		Schema:      StorySchema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}
