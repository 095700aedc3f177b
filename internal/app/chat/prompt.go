package chat

// systemPrompt is the fixed preamble prepended to every model call.
// It is never persisted in the session log.
const systemPrompt = "You are a helpful, friendly assistant. Provide concise and accurate responses."
