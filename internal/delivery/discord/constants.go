package discord

const (
	// Discord caps message content at 2000 characters.
	maxMessageLength     = 2000
	maxMessageTruncation = 1970

	msgFetchFailed = "❌ Failed to fetch data. Please try again later."
)
