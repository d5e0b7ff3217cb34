package anthropic

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"

	ai "github.com/spetersoncode/agentor"
)

// jsonResponseToolName is the synthetic tool used to force structured JSON
// output from models that only guarantee schemas through tool use.
const jsonResponseToolName = "__agentor_json_response__"

// convertTools converts internal tool definitions to Anthropic format.
func convertTools(tools []ai.Tool) []anthropic.ToolUnionParam {
	result := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		result = append(result, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name,
				Description: anthropic.String(t.Description),
				InputSchema: toInputSchema(t.Parameters),
			},
		})
	}
	return result
}

// convertToolChoice maps tool choice modes onto the Anthropic union type.
func convertToolChoice(choice ai.ToolChoice) anthropic.ToolChoiceUnionParam {
	switch choice {
	case ai.ToolChoiceNone:
		return anthropic.ToolChoiceUnionParam{
			OfNone: &anthropic.ToolChoiceNoneParam{},
		}
	case ai.ToolChoiceRequired:
		return anthropic.ToolChoiceUnionParam{
			OfAny: &anthropic.ToolChoiceAnyParam{},
		}
	default:
		return anthropic.ToolChoiceUnionParam{
			OfAuto: &anthropic.ToolChoiceAutoParam{},
		}
	}
}

// buildJSONTool returns the synthetic structured-output tool and a choice
// that forces the model to call it.
func buildJSONTool(options *ai.Options) (anthropic.ToolUnionParam, anthropic.ToolChoiceUnionParam) {
	var schema json.RawMessage
	description := "Respond with a JSON object."
	if options.ResponseSchema != nil {
		schema = options.ResponseSchema.Schema
		if options.ResponseSchema.Description != "" {
			description = options.ResponseSchema.Description
		}
	} else {
		schema = json.RawMessage(`{"type":"object"}`)
	}

	tool := anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        jsonResponseToolName,
			Description: anthropic.String(description),
			InputSchema: toInputSchema(schema),
		},
	}
	choice := anthropic.ToolChoiceUnionParam{
		OfTool: &anthropic.ToolChoiceToolParam{Name: jsonResponseToolName},
	}
	return tool, choice
}

// toInputSchema decodes a JSON schema document into the SDK's input
// schema shape, keeping properties and required fields.
func toInputSchema(raw json.RawMessage) anthropic.ToolInputSchemaParam {
	var doc struct {
		Properties json.RawMessage `json:"properties"`
		Required   []string        `json:"required"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return anthropic.ToolInputSchemaParam{}
	}
	var props any
	if len(doc.Properties) > 0 {
		if err := json.Unmarshal(doc.Properties, &props); err != nil {
			props = nil
		}
	}
	return anthropic.ToolInputSchemaParam{
		Properties: props,
		Required:   doc.Required,
	}
}
