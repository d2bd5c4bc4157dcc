/*
PURPOSE:
  Optional natural-language recap of the analysis, generated by the OpenAI
  chat completion API from the aggregated totals.

REQUIREMENTS:
  User-specified:
  - Off by default; opt-in via --summarize or config.

  Implementation-discovered:
  - API key comes from the OPENAI_API_KEY environment variable, never from
    the config file.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Dependencies: github.com/sashabaranov/go-openai

ERROR HANDLING:
  - Returns errors to the caller; the runner degrades them to a warning so
    a summary failure never fails the analysis.

USAGE:
  text, err := summary.Generate(ctx, "gpt-3.5-turbo", report)

MAINTENANCE:
  - Update the default model name as OpenAI retires models.
*/

package summary

import (
	"context"
	"errors"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a concise meteorology analyst. You explain precipitation totals and the spread between forecast models in plain language."

const userPrompt = "Based on the following precipitation totals per data source and forecast model, write a 3-5 sentence summary. Mention notable disagreement between models if any:\n\n"

// Generate produces a short narrative for the given report text.
func Generate(ctx context.Context, chatModel, report string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", errors.New("OPENAI_API_KEY environment variable is not set")
	}

	client := openai.NewClient(apiKey)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt + report},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}
