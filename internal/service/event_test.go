package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ansa.app/bridge/core/config"
	"ansa.app/bridge/internal/chat"
	"ansa.app/bridge/internal/command"
	"ansa.app/bridge/internal/convo"
	"ansa.app/bridge/internal/dedup"
	"ansa.app/bridge/internal/model"
	"ansa.app/bridge/internal/service"
	"ansa.app/bridge/internal/store"
)

var _ = Describe("EventService", func() {
	var (
		svc     service.EventService
		bots    *mockBotStore
		users   *mockUserStore
		chatAPI *mockChat
		backend *mockResponder
		states  *convo.Store
		ctx     context.Context

		bot  *model.Bot
		user *model.User
	)

	event := func(id string, ev service.WebhookEvent) service.EventParams {
		return service.EventParams{
			EventID:     id,
			AuthedUsers: []string{"B1"},
			Event:       ev,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		bot = &model.Bot{ID: 1, UserID: 10, SlackBotID: "B1", BotToken: "xoxb-1", AccessToken: "xoxp-1"}
		user = &model.User{ID: 10, Email: "owner@example.com", APIToken: "user-token"}

		bots = &mockBotStore{
			getBySlackIDFn: func(_ context.Context, slackBotID string) (*model.Bot, error) {
				if slackBotID == "B1" {
					return bot, nil
				}
				return nil, store.ErrNotFound
			},
		}
		users = &mockUserStore{
			getByIDFn: func(_ context.Context, id int64) (*model.User, error) {
				if id == 10 {
					return user, nil
				}
				return nil, store.ErrNotFound
			},
		}
		chatAPI = &mockChat{}
		backend = &mockResponder{}
		states = convo.NewStore(time.Hour)

		router := command.NewRouter(chatAPI, backend, states, config.ResponderConfig{
			AnswerCount:         5,
			ConfidenceThreshold: 0.5,
		})
		svc = service.NewEventService(bots, users, dedup.NewMemoryWindow(1000), router, chatAPI, states, backend)
	})

	Describe("duplicate suppression", func() {
		It("processes a redelivered event id at most once", func() {
			msg := service.WebhookEvent{Type: "message", Channel: "C1", Text: "what is the plan"}

			Expect(svc.Process(ctx, event("Ev1", msg))).To(Succeed())
			Expect(svc.Process(ctx, event("Ev1", msg))).To(Succeed())

			Expect(backend.answerCalls).To(Equal(1))
		})
	})

	Describe("bot resolution", func() {
		It("fails for an unregistered workspace", func() {
			params := event("Ev1", service.WebhookEvent{Type: "message", Channel: "C1", Text: "hi"})
			params.AuthedUsers = []string{"B9"}

			err := svc.Process(ctx, params)
			Expect(err).To(MatchError(service.ErrBotNotRegistered))
			Expect(backend.answerCalls).To(BeZero())
		})
	})

	Describe("message routing", func() {
		It("strips the bot mention before routing", func() {
			Expect(svc.Process(ctx, event("Ev1", service.WebhookEvent{
				Type: "app_mention", Channel: "C1", Text: "<@B1> .help",
			}))).To(Succeed())

			Expect(chatAPI.lastPost()).To(ContainSubstring("*.help*"))
			Expect(backend.answerCalls).To(BeZero())
		})

		It("collapses mailto markup to its display text", func() {
			Expect(svc.Process(ctx, event("Ev1", service.WebhookEvent{
				Type: "message", Channel: "C1",
				Text: "who owns <mailto:ops@example.com|ops@example.com>",
			}))).To(Succeed())

			Expect(backend.askedQuestions).To(ConsistOf("who owns ops@example.com"))
		})

		It("routes the edited text of a changed message", func() {
			Expect(svc.Process(ctx, event("Ev1", service.WebhookEvent{
				Type: "message", Subtype: "message_changed", Channel: "C1",
				Text:    "old text",
				Message: &service.EditedMessage{Text: "what is new"},
			}))).To(Succeed())

			Expect(backend.askedQuestions).To(ConsistOf("what is new"))
		})

		It("acknowledges bot messages without replying", func() {
			Expect(svc.Process(ctx, event("Ev1", service.WebhookEvent{
				Type: "message", Subtype: "bot_message", Channel: "C1", TS: "1.1", Text: "an answer",
			}))).To(Succeed())

			Expect(chatAPI.posted).To(BeEmpty())
			Expect(backend.answerCalls).To(BeZero())
		})

		It("ignores app mentions with a subtype", func() {
			Expect(svc.Process(ctx, event("Ev1", service.WebhookEvent{
				Type: "app_mention", Subtype: "file_mention", Channel: "C1", Text: "hi",
			}))).To(Succeed())

			Expect(backend.answerCalls).To(BeZero())
		})
	})

	Describe("reaction feedback", func() {
		It("ignores reactions on untracked messages", func() {
			Expect(svc.Process(ctx, event("Ev1", service.WebhookEvent{
				Type: "reaction_added", Reaction: "thumbsup",
				Item: &service.ReactionItem{Channel: "C1", TS: "404.0"},
			}))).To(Succeed())

			Expect(backend.createCalls).To(BeZero())
			Expect(backend.paraphraseCalls).To(BeZero())
			Expect(chatAPI.posted).To(BeEmpty())
		})

		It("promotes an approved document answer via the tracked timestamp", func() {
			backend.answerFn = func(_ context.Context, _, _ string, _ int) ([]model.Answer, error) {
				return []model.Answer{{
					AnswerText: "from the handbook", Confidence: 0.7,
					SourceType: model.SourceDocument, SourceID: "doc-1",
				}}, nil
			}
			chatAPI.postFn = func(_ context.Context, _, _, _ string) (string, error) {
				return "55.0001", nil
			}

			Expect(svc.Process(ctx, event("Ev1", service.WebhookEvent{
				Type: "message", Channel: "C1", Text: "where do I find the vpn config",
			}))).To(Succeed())
			chatAPI.postFn = nil

			Expect(svc.Process(ctx, event("Ev2", service.WebhookEvent{
				Type: "reaction_added", Reaction: "thumbsup",
				Item: &service.ReactionItem{Channel: "C1", TS: "55.0001"},
			}))).To(Succeed())

			Expect(backend.createCalls).To(Equal(1))
			Expect(chatAPI.lastPost()).To(HavePrefix("Thanks, I'll remember that:"))
		})
	})

	Describe("token revocation", func() {
		It("deletes every revoked bot", func() {
			Expect(svc.Process(ctx, event("Ev1", service.WebhookEvent{
				Type:   "tokens_revoked",
				Tokens: &service.RevokedTokens{Bot: []string{"B1", "B2"}},
			}))).To(Succeed())

			Expect(bots.deleted).To(Equal([]string{"B1", "B2"}))
		})
	})

	Describe("file sharing", func() {
		It("rejects unsupported file types", func() {
			Expect(svc.Process(ctx, event("Ev1", service.WebhookEvent{
				Type: "message", Subtype: "file_share", Channel: "C1",
				File: &service.SharedFile{ID: "F1", Filetype: "pdf", Title: "Q3 report"},
			}))).To(Succeed())

			Expect(backend.uploads).To(BeEmpty())
			Expect(chatAPI.lastPost()).To(ContainSubstring("text and markdown"))
		})

		It("uploads markdown files with replace semantics", func() {
			chatAPI.fileContentsFn = func(_ context.Context, token, urlPrivate string) (string, error) {
				Expect(token).To(Equal("xoxb-1"))
				Expect(urlPrivate).To(Equal("https://files.example.com/f1"))
				return "# Handbook", nil
			}

			Expect(svc.Process(ctx, event("Ev1", service.WebhookEvent{
				Type: "message", Subtype: "file_share", Channel: "C1",
				File: &service.SharedFile{
					ID: "F1", Name: "handbook.md", Title: "Handbook",
					Filetype: "markdown", URLPrivate: "https://files.example.com/f1",
				},
			}))).To(Succeed())

			Expect(backend.uploads).To(HaveLen(1))
			Expect(backend.uploads[0].title).To(Equal("Handbook"))
			Expect(backend.uploads[0].text).To(Equal("# Handbook"))
			Expect(backend.uploads[0].origin).To(Equal("handbook.md"))
			Expect(backend.uploads[0].replace).To(BeTrue())
			Expect(chatAPI.lastPost()).To(HavePrefix("Thanks, I've read"))
		})

		It("resolves missing download URLs through files.info", func() {
			chatAPI.fileInfoFn = func(_ context.Context, _, fileID string) (*chat.File, error) {
				Expect(fileID).To(Equal("F1"))
				return &chat.File{
					ID: "F1", Name: "notes.txt", Title: "Notes",
					Filetype: "text", URLPrivate: "https://files.example.com/f1",
				}, nil
			}
			chatAPI.fileContentsFn = func(_ context.Context, _, urlPrivate string) (string, error) {
				Expect(urlPrivate).To(Equal("https://files.example.com/f1"))
				return "plain notes", nil
			}

			Expect(svc.Process(ctx, event("Ev1", service.WebhookEvent{
				Type: "message", Subtype: "file_share", Channel: "C1",
				File: &service.SharedFile{ID: "F1", Filetype: "text"},
			}))).To(Succeed())

			Expect(backend.uploads).To(HaveLen(1))
			Expect(backend.uploads[0].title).To(Equal("Notes"))
		})
	})
})
