// Package client sends chat messages to one of three providers and always
// returns a result.
//
// The provider is chosen once, from the credentials passed to [New]:
//
//   - MISTRAL_API_KEY selects Mistral
//   - otherwise FIREWORKS_API_KEY selects Fireworks
//   - otherwise OPENAI_API_KEY selects OpenAI
//
// # Basic Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c, err := client.New(cfg.Options, cfg.Model, config.CredentialsFromEnv())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, ids := c.Chat(ctx, "Summarize this diff", ai.Ids{})
//	more, _ := c.Chat(ctx, "Any risks?", ids)
//
// # Failure Model
//
// Chat never returns an error. Every call is retried up to Options.Retries
// extra times; if all attempts fail the result is an empty string and empty
// ids, and the cause goes to the logger and the optional event channel.
// Callers cannot tell an empty reply from a failure without those.
//
// # Continuation
//
// Only OpenAI threads conversations: passing back the returned ids makes the
// next message a reply to the previous one. Mistral and Fireworks return
// timestamp-based ids ("mistral_<ms>", "fw_<ms>") so the shape of the result
// is the same, but each call to them stands alone.
//
// # Events
//
// Pass a channel with [WithEvents] to observe requests:
//
//	events := make(chan client.Event, 100)
//	c, _ := client.New(opts, model, creds, client.WithEvents(events))
//
//	go func() {
//	    for e := range events {
//	        if e.Type == client.EventRequestError {
//	            log.Printf("%s failed: %v", e.Provider, e.Error)
//	        }
//	    }
//	}()
package client
