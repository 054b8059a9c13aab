package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wfdeller/feedback/internal/directory"
	"github.com/wfdeller/feedback/internal/http/handler"
)

var _ = Describe("UserHandler", func() {
	var (
		router *gin.Engine
		dir    *mockDirectoryService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		dir = &mockDirectoryService{}
		h := handler.NewUserHandler(dir)

		api := router.Group("/api/user-info")
		{
			api.GET("/:userId", h.GetUserInfo)
			api.DELETE("/:userId/cache", h.InvalidateCache)
		}
	})

	Describe("GetUserInfo", func() {
		It("returns the resolved record", func() {
			dir.resolveFn = func(_ context.Context, userID string) (*directory.UserInfo, error) {
				return &directory.UserInfo{UserID: userID, UserName: "Jane", Email: "j@x.com"}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/api/user-info/u1", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["userId"]).To(Equal("u1"))
			Expect(resp["userName"]).To(Equal("Jane"))
			Expect(resp["email"]).To(Equal("j@x.com"))
		})

		It("includes the lookup error on a degraded record", func() {
			dir.resolveFn = func(_ context.Context, userID string) (*directory.UserInfo, error) {
				return &directory.UserInfo{
					UserID:   userID,
					UserName: directory.FallbackName(userID),
					Err:      "directory timeout",
				}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/api/user-info/u9", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["userName"]).To(Equal("User u9"))
			Expect(resp["error"]).To(Equal("directory timeout"))
		})

		It("returns 500 with a fallback name when resolution errors outright", func() {
			dir.resolveFn = func(_ context.Context, _ string) (*directory.UserInfo, error) {
				return nil, errors.New("boom")
			}

			req := httptest.NewRequest(http.MethodGet, "/api/user-info/u1", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("boom"))
			Expect(resp["userId"]).To(Equal("u1"))
			Expect(resp["userName"]).To(Equal("User u1"))
		})
	})

	Describe("InvalidateCache", func() {
		It("returns 204 and drops the cache entry", func() {
			req := httptest.NewRequest(http.MethodDelete, "/api/user-info/u1/cache", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(dir.invalidateCalls).To(Equal([]string{"u1"}))
		})
	})
})
