// Package client provides a small facade over the provider backends.
//
// A Client is configured once with a provider, API key, and retry policy,
// and satisfies the chat.Client contract expected by the agent loop:
//
//	c, err := client.New(client.Config{
//	    Provider: client.ProviderOpenRouter,
//	    APIKey:   os.Getenv("OPENROUTER_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := c.Chat(ctx, []ai.Message{ai.NewUserMessage("Hello!")})
//
// ChatWithRetry adds bounded retries with per-attempt timeouts and linear
// backoff; a run that exhausts its attempts reports OK false rather than
// an error:
//
//	result := c.ChatWithRetry(ctx, messages)
//	if !result.OK {
//	    // fall back; result.LastErr has the final failure
//	}
package client
