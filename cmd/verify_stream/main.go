package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"neurax-chat-be/pkg/llm"
	"neurax-chat-be/pkg/llm/factory"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Quick manual smoke test for the streaming pipeline against the live API.
// Usage: go run ./cmd/verify_stream -prompt "hello" -model gemini-2.5-flash
func main() {
	_ = godotenv.Load()

	prompt := flag.String("prompt", "Say hello in one short sentence.", "prompt to send")
	model := flag.String("model", "gemini-2.5-flash", "model id")
	search := flag.Bool("search", false, "enable web search grounding")
	flag.Parse()

	apiKey := os.Getenv("GEMINI_API_KEY")

	provider, err := factory.NewChatProvider("gemini", apiKey)
	if err != nil {
		log.Fatalf("provider: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	events, err := provider.StreamChat(ctx, &llm.ChatRequest{
		Model:           *model,
		Temperature:     0.7,
		EnableWebSearch: *search,
		Text:            *prompt,
	})
	if err != nil {
		color.Red("stream failed to start: %v", err)
		os.Exit(1)
	}

	cyan := color.New(color.FgCyan)
	printed := 0
	for ev := range events {
		if ev.Err != nil {
			color.Red("\nstream error: %v", ev.Err)
			os.Exit(1)
		}
		// Text is cumulative, print only the new tail.
		if len(ev.Text) > printed {
			cyan.Print(ev.Text[printed:])
			printed = len(ev.Text)
		}
		if ev.Done {
			fmt.Println()
			color.Green("--- done (%d chars) ---", len(ev.Text))
			for _, src := range ev.Sources {
				color.Yellow("source: %s <%s>", src.Title, src.URI)
			}
		}
	}
}
