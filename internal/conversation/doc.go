// Package conversation implements a threaded conversational provider on top
// of a stateless chat completion backend.
//
// Each exchange is stored as two messages keyed by id: the user message and
// the assistant reply, linked through ParentMessageID. Sending a message
// with a ParentMessageID rebuilds the prior history by walking those links,
// so callers only need to carry the last reply's id between calls:
//
//	conv := conversation.New(provider, conversation.WithSystemMessage(prompt))
//
//	first, err := conv.SendMessage(ctx, "Review this diff", conversation.SendOptions{})
//	if err != nil {
//	    return err
//	}
//
//	next, err := conv.SendMessage(ctx, "And the tests?", conversation.SendOptions{
//	    ParentMessageID: first.ID,
//	})
//
// Messages persist through an [Adapter]; the default [MemoryAdapter] keeps
// them for the life of the process.
package conversation
