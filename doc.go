// Package reviewchat holds the types shared by the chat client and its
// provider backends.
//
// A [github.com/spetersoncode/reviewchat/client.Client] talks to exactly one
// of Mistral, Fireworks, or OpenAI, chosen by which API key is configured,
// in that order of preference. Every call is retried and never fails: the
// worst outcome is an empty reply with empty [Ids].
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c, err := client.New(cfg.Options, cfg.Model, config.CredentialsFromEnv())
//	if err != nil {
//	    log.Fatal(err) // no key set
//	}
//
//	text, ids := c.Chat(ctx, "Review this diff", reviewchat.Ids{})
//	text, ids = c.Chat(ctx, "Now check the tests", ids)
//
// # Continuation
//
// OpenAI conversations are threaded: the [Ids] returned by one call link the
// next message to the earlier exchange. Mistral and Fireworks are stateless
// and return synthesized ids that carry no history.
//
// # Errors
//
// Provider backends return [Error] values categorized as transient,
// permanent, or user input. Transient errors carry an optional server
// Retry-After hint. Construction fails with [ConfigurationError] when no key
// is available.
package reviewchat
