// Package assistant sends user questions, together with a digest of the
// user's financial data, to a text-generation endpoint. Failures never
// propagate to the caller: they are converted into apology reply text so
// the conversation UI stays consistent.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Generator produces text from a single prompt. The concrete implementation
// is the Gemini API; tests substitute a fake.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ConfigApology is returned when no API credential is configured. No
// network call is attempted in that case.
const ConfigApology = "I'm sorry, but the Gemini API key is not configured. " +
	"Please add GEMINI_API_KEY to your environment variables."

const promptPreamble = `You are a helpful financial assistant for a personal finance app called Monarch Money.
You have access to the user's financial data and should provide helpful, accurate, and actionable advice.

User's Financial Data:
%s

Instructions:
- Be concise and helpful
- Use specific numbers from the user's data when relevant
- Provide actionable suggestions
- Be friendly and supportive
- If asked about data you don't have, say so politely
- Focus on budgets, goals, transactions, and spending patterns

User's question: %s`

// Gateway asks the generator one question at a time. Each call is
// independent and at-most-once: no retries, no caching, no rate limiting.
type Gateway struct {
	gen Generator
	log zerolog.Logger
}

// NewGateway creates a gateway over gen. A nil gen marks the gateway as
// unconfigured; Ask then replies with ConfigApology without any call.
func NewGateway(gen Generator, log zerolog.Logger) *Gateway {
	return &Gateway{gen: gen, log: log}
}

// Ask sends userMessage with the digest as context and returns the reply
// text. Callers must not pass an empty or whitespace-only message; that is
// enforced at the UI boundary. Any failure is returned as apology text
// embedding the underlying reason.
func (g *Gateway) Ask(ctx context.Context, userMessage, digestText string) string {
	if g.gen == nil {
		return ConfigApology
	}

	prompt := fmt.Sprintf(promptPreamble, digestText, strings.TrimSpace(userMessage))

	reply, err := g.gen.GenerateText(ctx, prompt)
	if err != nil {
		g.log.Error().Err(err).Msg("Assistant call failed")
		return apology(err)
	}
	return reply
}

// apology converts an assistant failure into the templated reply text.
func apology(err error) string {
	return fmt.Sprintf("I'm sorry, I encountered an error: %s. Please try again later.", err.Error())
}
