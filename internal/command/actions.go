package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"ansa.app/bridge/internal/model"
	"ansa.app/bridge/internal/responder"
)

// numericConfidence is the fixed confidence assigned to a synthetic
// calculator answer.
const numericConfidence = 0.80

func (r *Router) post(ctx context.Context, c Context, text string) (string, error) {
	return r.chat.PostMessage(ctx, c.Bot.BotToken, c.Channel, text)
}

// reportBackendError relays a responder-reported failure into the channel
// with a help hint. Transport-level failures are returned to the caller for
// logging instead.
func (r *Router) reportBackendError(ctx context.Context, c Context, err error) error {
	var apiErr *responder.APIError
	if errors.As(err, &apiErr) {
		_, postErr := r.post(ctx, c, apiErr.Message+errorHelpSuffix)
		return postErr
	}
	return err
}

func (r *Router) echo(ctx context.Context, c Context, message string) error {
	if strings.HasPrefix(message, ".echo") {
		r.convo.ToggleEcho(r.key(c))
		_, err := r.post(ctx, c, msgEchoToggled)
		return err
	}
	_, err := r.post(ctx, c, message)
	return err
}

func (r *Router) help(ctx context.Context, c Context, _ string) error {
	_, err := r.post(ctx, c, helpText)
	return err
}

func (r *Router) askQuestion(ctx context.Context, c Context, question string) error {
	answers, err := r.backend.Answer(ctx, c.UserToken, question, r.answerCount)
	if err != nil {
		return r.reportBackendError(ctx, c, err)
	}

	if len(answers) == 0 || answers[0].Confidence < r.threshold {
		if expr, result, ok := tryNumericAnswer(question); ok {
			synthetic := model.Answer{
				AnswerText:      expr + "=" + result,
				Confidence:      numericConfidence,
				SourceType:      model.SourceNumerical,
				SourceID:        uuid.NewString(),
				MatchedQuestion: fmt.Sprintf("What is %s ?", expr),
			}
			answers = append([]model.Answer{synthetic}, answers...)
		}
	}

	key := r.key(c)
	r.convo.SetAnswers(key, question, answers)

	if len(answers) == 0 {
		_, err := r.post(ctx, c, msgDontKnow)
		return err
	}

	top := answers[0]
	r.convo.TrackAnswer(key, question, top)
	ts, err := r.post(ctx, c, top.AnswerText)
	if err != nil {
		return err
	}
	r.convo.RecordOutgoing(key, ts, top.AnswerText)
	return nil
}

func (r *Router) nextAnswer(ctx context.Context, c Context, _ string) error {
	key := r.key(c)
	if !r.convo.HasAnswers(key) {
		_, err := r.post(ctx, c, msgAskFirst)
		return err
	}

	answer, ok := r.convo.Advance(key)
	if !ok {
		_, err := r.post(ctx, c, msgRunOut)
		return err
	}

	r.convo.TrackAnswer(key, r.convo.LastQuestion(key), answer)
	ts, err := r.post(ctx, c, answer.AnswerText)
	if err != nil {
		return err
	}
	r.convo.RecordOutgoing(key, ts, answer.AnswerText)
	return nil
}

func (r *Router) explain(ctx context.Context, c Context, _ string) error {
	key := r.key(c)
	if !r.convo.HasAnswers(key) {
		_, err := r.post(ctx, c, msgAskFirst)
		return err
	}

	answer, ok := r.convo.Current(key)
	if !ok {
		// The last question produced no answers, so there is nothing
		// to explain.
		_, err := r.post(ctx, c, msgAskFirst)
		return err
	}

	if answer.SourceType == model.SourceDocument && answer.AnswerContext != "" {
		_, err := r.post(ctx, c, explainDocument(answer))
		return err
	}

	_, err := r.post(ctx, c, fmt.Sprintf("I thought you asked (Index %.2f)\n_%s_\n>>>%s",
		answer.Confidence, answer.MatchedQuestion, answer.AnswerText))
	return err
}

// explainDocument re-renders the stored document context with the matched
// span bolded. Offsets from the backend are absolute document positions
// counted in characters, so the context's own start offset is subtracted
// and the context is sliced in rune space.
func explainDocument(answer model.Answer) string {
	context := []rune(answer.AnswerContext)
	start := answer.TextStartOffset - answer.ContextStartOffset
	end := answer.TextEndOffset - answer.ContextStartOffset

	if start < 0 {
		start = 0
	}
	if end > len(context) {
		end = len(context)
	}
	if end < start {
		end = start
	}

	bold := strings.ReplaceAll(string(context[start:end]), "\n", "")
	rendered := string(context[:start]) + " *" + bold + "* " + string(context[end:])
	return fmt.Sprintf("From _%s_ (Index %.2f)\n>>>%s", answer.SourceID, answer.Confidence, rendered)
}

func (r *Router) addSavedReply(ctx context.Context, c Context, message string) error {
	body := message
	if strings.HasPrefix(body, ".") {
		body = stripCommandToken(body)
	}

	segments := strings.Split(body, "|")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	if len(segments) < 2 {
		_, err := r.post(ctx, c, msgAddUsage)
		return err
	}

	questions := segments[:len(segments)-1]
	answer := segments[len(segments)-1]

	replyID, err := r.backend.CreateSavedReply(ctx, c.UserToken, questions[0], answer)
	if err != nil {
		return r.reportBackendError(ctx, c, err)
	}

	// Extra questions become paraphrases of the reply just created. A
	// failure aborts the remainder; already-registered paraphrases stay.
	for _, question := range questions[1:] {
		if err := r.backend.AddParaphrase(ctx, c.UserToken, replyID, question); err != nil {
			return r.reportBackendError(ctx, c, err)
		}
	}

	var questionsText strings.Builder
	if len(questions) == 1 {
		fmt.Fprintf(&questionsText, "_%s_\n", questions[0])
	} else {
		for _, question := range questions {
			fmt.Fprintf(&questionsText, "•_%s_\n", question)
		}
	}
	_, err = r.post(ctx, c, fmt.Sprintf("Thanks, I'll remember that:\n%s>>>%s", questionsText.String(), answer))
	return err
}

// stripCommandToken drops the leading command word: everything up to and
// including the first character that is neither a word character nor a dot.
// A bare command with no arguments strips to the empty string.
func stripCommandToken(s string) string {
	for i, r := range s {
		if r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		return s[i+utf8.RuneLen(r):]
	}
	return ""
}

// Feedback handles a positive reaction on one of the bot's own messages. It
// reports whether the reaction was consumed as answer feedback; reactions on
// untracked or already-consumed messages are ignored.
func (r *Router) Feedback(ctx context.Context, c Context, reaction, ts string) (bool, error) {
	if !IsPositiveReaction(reaction) {
		return false, nil
	}

	key := r.key(c)
	qa, ok := r.convo.ConsumeFeedback(key, ts)
	if !ok {
		return false, nil
	}

	question := strings.TrimSpace(qa.Question)
	answer := qa.Answer

	thanks := fmt.Sprintf("Thanks for the feedback.\n_%s_\n>>>%s", qa.Question, answer.AnswerText)
	remember := fmt.Sprintf("Thanks, I'll remember that:\n_%s_\n>>>%s", qa.Question, answer.AnswerText)

	switch {
	case answer.SourceType == model.SourceSavedReply && answer.Confidence == 1.0:
		// A verbatim match of a known reply needs no reinforcement.
		_, err := r.post(ctx, c, thanks)
		return true, err

	case answer.SourceType == model.SourceSavedReply:
		if err := r.backend.AddParaphrase(ctx, c.UserToken, answer.SourceID, question); err != nil {
			return true, r.reportBackendError(ctx, c, err)
		}
		_, err := r.post(ctx, c, remember)
		return true, err

	case answer.SourceType == model.SourceDocument:
		if _, err := r.backend.CreateSavedReply(ctx, c.UserToken, question, strings.TrimSpace(answer.AnswerText)); err != nil {
			return true, r.reportBackendError(ctx, c, err)
		}
		_, err := r.post(ctx, c, remember)
		return true, err

	default:
		_, err := r.post(ctx, c, thanks)
		return true, err
	}
}
