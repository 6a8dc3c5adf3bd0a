package command

// User-visible strings. Slack mrkdwn: _italic_, *bold*, >>> block quote.
const (
	msgAskFirst    = "Please ask a question first."
	msgRunOut      = "I'm afraid I've run out of answers to that question."
	msgDontKnow    = "Sorry! I don't know the answer to that."
	msgEchoToggled = "Echo mode toggled"

	msgAddUsage = "Sorry, I didn't understand that. The usage for `.add` is: " +
		".add question | answer"

	// Appended to backend error messages relayed into the channel.
	errorHelpSuffix = "\nType `.help` if you need a reminder of what I can do."

	msgFileUnsupported = "Sorry, I can only read text and markdown files."
	msgFileUploaded    = "Thanks, I've read that document and will use it when answering."

	helpText = `Hi, I am *Ansabot*, I will answer all your questions, I will learn from you and your documents and improve over time.
Here are my commands:

    *.add* _question_ | _answer_ - Create a new saved reply.
    *.next* - Show the next possible answer for the last question.
    *.why* - Explain why the last answer was given.
    *.help* - Display this message.

You can also :

    *Add* a Slack emoji reaction to bot answers with :thumbsup: or :smiley:, I will remember and improve over time.
    *Upload* text and markdown documents by sending them to me in a private message. I will read them when answering.
    *Ask* me to calculate, for example ` + "`what is 3+2?`" + `.

For more options login to your account at https://ansa.app.
`
)

// FileUnsupportedMessage is sent when a shared file is not plain text.
func FileUnsupportedMessage() string { return msgFileUnsupported }

// FileUploadedMessage confirms a successful document ingestion.
func FileUploadedMessage() string { return msgFileUploaded }

// positiveReactions is the fixed allow-list of emoji treated as approval of
// an answer.
var positiveReactions = map[string]struct{}{
	"smiley": {}, "smile": {}, "wink": {}, "simple_smile": {}, "grinning": {},
	"kissing": {}, "laughing": {}, "satisfied": {}, "thumbsup": {}, "ok_hand": {},
	"+1": {}, "v": {}, "point_up": {}, "point_up_2": {}, "clap": {},
	"muscle": {}, "raised_hands": {}, "arrow_up": {}, "up": {}, "ok": {},
	"new": {}, "top": {}, "cool": {}, "100": {},
	"heavy_check_mark": {}, "ballot_box_with_check": {}, "white_check_mark": {},
}

// IsPositiveReaction reports whether the emoji name counts as positive
// feedback on an answer.
func IsPositiveReaction(name string) bool {
	_, ok := positiveReactions[name]
	return ok
}
