package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wfdeller/feedback/internal/http/handler"
	"github.com/wfdeller/feedback/internal/model"
	"github.com/wfdeller/feedback/internal/service"
	"github.com/wfdeller/feedback/internal/store"
)

var _ = Describe("FeedbackHandler", func() {
	var (
		router *gin.Engine
		svc    *mockFeedbackService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockFeedbackService{}
		h := handler.NewFeedbackHandler(svc)

		api := router.Group("/api/feedback-requests")
		{
			api.POST("", h.Create)
			api.GET("", h.List)
			api.GET("/:id", h.Get)
			api.PUT("/:id", h.Update)
			api.POST("/:id/status", h.ChangeStatus)
		}
	})

	Describe("Create", func() {
		It("returns 201 with the created record", func() {
			svc.submitFn = func(_ context.Context, params service.SubmitParams) (*model.FeedbackRequest, error) {
				Expect(params.UserID).To(Equal("u1"))
				Expect(params.Priority).To(Equal(model.PriorityHigh))
				return &model.FeedbackRequest{
					ID:             42,
					UserID:         params.UserID,
					Title:          params.Title,
					FeedbackStatus: model.FeedbackStatusOpen,
					Status:         []model.StatusEntry{{Description: "Request created"}},
				}, nil
			}

			body, _ := json.Marshal(map[string]string{
				"userId":        "u1",
				"applicationId": "a1",
				"title":         "X",
				"description":   "Y",
				"priority":      "High",
			})

			req := httptest.NewRequest(http.MethodPost, "/api/feedback-requests", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["id"]).To(Equal("42"))
			Expect(resp["feedbackStatus"]).To(Equal("Open"))
		})

		It("returns 400 with the validation message when the draft is rejected", func() {
			svc.submitFn = func(_ context.Context, _ service.SubmitParams) (*model.FeedbackRequest, error) {
				return nil, fmt.Errorf("%w: title is required", store.ErrValidation)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/feedback-requests", bytes.NewBufferString(`{"userId":"u1"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["message"]).To(ContainSubstring("title is required"))
		})

		It("returns 400 on a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/feedback-requests", bytes.NewBufferString(`{"title":`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("List", func() {
		It("passes query filters through to the service", func() {
			var captured store.Filter
			svc.listFn = func(_ context.Context, filter store.Filter) ([]model.FeedbackRequest, error) {
				captured = filter
				return []model.FeedbackRequest{{ID: 1}, {ID: 2}}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/api/feedback-requests?userId=u1&applicationId=a1", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(captured.UserID).To(Equal("u1"))
			Expect(captured.ApplicationID).To(Equal("a1"))

			var resp []map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(HaveLen(2))
		})

		It("returns an empty array, not null, when nothing matches", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/feedback-requests", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("[]"))
		})
	})

	Describe("Get", func() {
		It("returns the record by id", func() {
			svc.getFn = func(_ context.Context, id int64) (*model.FeedbackRequest, error) {
				Expect(id).To(Equal(int64(42)))
				return &model.FeedbackRequest{ID: 42, Title: "X"}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/api/feedback-requests/42", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 404 with the standard message for an unknown id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/feedback-requests/999", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Feedback request not found"))
		})

		It("returns 404 for an unparsable id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/feedback-requests/not-a-number", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Feedback request not found"))
		})
	})

	Describe("Update", func() {
		It("shallow-merges the provided fields", func() {
			var captured store.UpdateParams
			svc.updateFn = func(_ context.Context, id int64, params store.UpdateParams) (*model.FeedbackRequest, error) {
				captured = params
				return &model.FeedbackRequest{ID: id, Title: *params.Title}, nil
			}

			body, _ := json.Marshal(map[string]any{
				"title":          "New title",
				"feedbackStatus": "Resolved",
			})

			req := httptest.NewRequest(http.MethodPut, "/api/feedback-requests/42", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(captured.Title).To(HaveValue(Equal("New title")))
			Expect(captured.FeedbackStatus).To(HaveValue(Equal(model.FeedbackStatusResolved)))
			Expect(captured.Description).To(BeNil())
			Expect(captured.Priority).To(BeNil())
		})

		It("returns 400 for an unknown priority", func() {
			req := httptest.NewRequest(http.MethodPut, "/api/feedback-requests/42", bytes.NewBufferString(`{"priority":"Urgent"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("unknown priority: Urgent"))
		})

		It("returns 400 for an unknown feedback status", func() {
			req := httptest.NewRequest(http.MethodPut, "/api/feedback-requests/42", bytes.NewBufferString(`{"feedbackStatus":"Done"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodPut, "/api/feedback-requests/999", bytes.NewBufferString(`{"title":"X"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("ChangeStatus", func() {
		It("appends the status entry and returns the updated record", func() {
			svc.changeStatusFn = func(_ context.Context, id int64, status, detail string) (*model.FeedbackRequest, error) {
				Expect(id).To(Equal(int64(42)))
				Expect(status).To(Equal("Resolved"))
				Expect(detail).To(BeEmpty())
				return &model.FeedbackRequest{ID: 42, FeedbackStatus: model.FeedbackStatusResolved}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/api/feedback-requests/42/status", bytes.NewBufferString(`{"status":"Resolved"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 400 when status is missing", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/feedback-requests/42/status", bytes.NewBufferString(`{"detail":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/feedback-requests/999/status", bytes.NewBufferString(`{"status":"Resolved"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
