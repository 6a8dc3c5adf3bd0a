package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ansa.app/bridge/internal/http/handler"
	"ansa.app/bridge/internal/model"
	"ansa.app/bridge/internal/service"
)

var _ = Describe("OAuthHandler", func() {
	var (
		router *gin.Engine
		oauth  *mockOAuthService
		users  *mockUserStore
	)

	const completeURL = "https://ansa.app/slack.html#complete"

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		oauth = &mockOAuthService{}
		users = &mockUserStore{
			getByAPITokenFn: func(_ context.Context, token string) (*model.User, error) {
				if token == "valid-token" {
					return &model.User{ID: 10, APIToken: token}, nil
				}
				return nil, errors.New("not found")
			},
		}
		h := handler.NewOAuthHandler(oauth, users, completeURL)
		router.GET("/slack/auth/oauth_callback", h.Callback)
	})

	get := func(path, bearer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("requires an api token", func() {
		w := get("/slack/auth/oauth_callback?code=abc", "")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("requires the authorization code", func() {
		w := get("/slack/auth/oauth_callback", "valid-token")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("redirects to the completion page on success", func() {
		var gotUser *model.User
		var gotCode string
		oauth.completeFn = func(_ context.Context, user *model.User, code string) (*model.Bot, error) {
			gotUser = user
			gotCode = code
			return &model.Bot{SlackBotID: "B1"}, nil
		}

		w := get("/slack/auth/oauth_callback?code=abc", "valid-token")

		Expect(w.Code).To(Equal(http.StatusFound))
		Expect(w.Header().Get("Location")).To(Equal(completeURL))
		Expect(gotUser.ID).To(Equal(int64(10)))
		Expect(gotCode).To(Equal("abc"))
	})

	It("accepts the token as a query parameter", func() {
		w := get("/slack/auth/oauth_callback?code=abc&token=valid-token", "")
		Expect(w.Code).To(Equal(http.StatusFound))
	})

	It("reports a malformed upstream response", func() {
		oauth.completeFn = func(_ context.Context, _ *model.User, _ string) (*model.Bot, error) {
			return nil, service.ErrInvalidOAuthResponse
		}

		w := get("/slack/auth/oauth_callback?code=abc", "valid-token")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("invalid response"))
	})

	It("maps other failures to a 500", func() {
		oauth.completeFn = func(_ context.Context, _ *model.User, _ string) (*model.Bot, error) {
			return nil, errors.New("db down")
		}

		w := get("/slack/auth/oauth_callback?code=abc", "valid-token")
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
