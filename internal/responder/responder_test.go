package responder_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ansa.app/bridge/core/config"
	"ansa.app/bridge/internal/responder"
)

var _ = Describe("Client", func() {
	var (
		server *httptest.Server
		client responder.Client
		ctx    context.Context

		lastPath  string
		lastQuery map[string]string
		lastForm  map[string]string
		respond   func(w http.ResponseWriter)
	)

	BeforeEach(func() {
		ctx = context.Background()
		respond = func(w http.ResponseWriter) {
			w.Write([]byte(`{"success": true, "result": {}}`))
		}

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastPath = r.URL.Path
			lastQuery = map[string]string{}
			for k := range r.URL.Query() {
				lastQuery[k] = r.URL.Query().Get(k)
			}
			r.ParseForm()
			lastForm = map[string]string{}
			for k := range r.PostForm {
				lastForm[k] = r.PostForm.Get(k)
			}
			respond(w)
		}))

		client = responder.NewClient(config.ResponderConfig{
			BaseURL: server.URL,
			Timeout: 5 * time.Second,
		})
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("Answer", func() {
		It("decodes ranked answers from the result payload", func() {
			respond = func(w http.ResponseWriter) {
				w.Write([]byte(`{"success": true, "result": {"items": [
					{"answerText": "42", "confidence": 0.91, "sourceType": "saved_reply", "sourceId": "sr-1", "matchedQuestion": "what is the answer"},
					{"answerText": "depends", "confidence": 0.42, "sourceType": "document", "sourceId": "doc-7"}
				]}}`))
			}

			answers, err := client.Answer(ctx, "tok", "what is the answer", 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(answers).To(HaveLen(2))
			Expect(answers[0].AnswerText).To(Equal("42"))
			Expect(answers[0].Confidence).To(BeNumerically("~", 0.91))
			Expect(answers[1].SourceID).To(Equal("doc-7"))

			Expect(lastPath).To(Equal("/answer"))
			Expect(lastQuery["token"]).To(Equal("tok"))
			Expect(lastQuery["question"]).To(Equal("what is the answer"))
			Expect(lastQuery["numberofitems"]).To(Equal("5"))
		})

		It("surfaces the backend failure message as an APIError", func() {
			respond = func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"success": false, "result": {"message": "Invalid token"}}`))
			}

			_, err := client.Answer(ctx, "bad", "q", 5)
			var apiErr *responder.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.Message).To(Equal("Invalid token"))
		})

		It("falls back to a status-based message when the failure body is empty", func() {
			respond = func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"success": false, "result": {}}`))
			}

			_, err := client.Answer(ctx, "tok", "q", 5)
			var apiErr *responder.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.Message).To(ContainSubstring("500"))
		})
	})

	Describe("CreateSavedReply", func() {
		It("posts the pair and returns the new reply id", func() {
			respond = func(w http.ResponseWriter) {
				w.Write([]byte(`{"success": true, "result": {"replyId": "sr-99"}}`))
			}

			id, err := client.CreateSavedReply(ctx, "tok", "q?", "a.")
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("sr-99"))

			Expect(lastPath).To(Equal("/saved-reply"))
			Expect(lastForm["question"]).To(Equal("q?"))
			Expect(lastForm["answer"]).To(Equal("a."))
		})
	})

	Describe("AddParaphrase", func() {
		It("posts the paraphrase against the reply id", func() {
			err := client.AddParaphrase(ctx, "tok", "sr-1", "another phrasing?")
			Expect(err).NotTo(HaveOccurred())

			Expect(lastPath).To(Equal("/add-paraphrase-question"))
			Expect(lastForm["replyid"]).To(Equal("sr-1"))
			Expect(lastForm["question"]).To(Equal("another phrasing?"))
		})
	})

	Describe("UploadDocument", func() {
		It("posts the document with the replace flag", func() {
			err := client.UploadDocument(ctx, "tok", "notes.md", "# Notes", "notes.md", true)
			Expect(err).NotTo(HaveOccurred())

			Expect(lastPath).To(Equal("/upload-document"))
			Expect(lastForm["title"]).To(Equal("notes.md"))
			Expect(lastForm["text"]).To(Equal("# Notes"))
			Expect(lastForm["replace"]).To(Equal("true"))
		})
	})
})
