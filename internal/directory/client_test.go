package directory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wfdeller/feedback/internal/directory"
)

var _ = Describe("Client", func() {
	var (
		ctx      context.Context
		upstream *httptest.Server
		handler  http.HandlerFunc
	)

	BeforeEach(func() {
		ctx = context.Background()
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"FormattedName":"Jane","OfficialEmail":"j@x.com","Department":"QA"}`))
		}
		upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler(w, r)
		}))
	})

	AfterEach(func() {
		upstream.Close()
	})

	It("extracts FormattedName and OfficialEmail and keeps the raw payload", func() {
		client := directory.NewClient(upstream.URL, time.Second)

		info, err := client.Fetch(ctx, "u1")

		Expect(err).NotTo(HaveOccurred())
		Expect(info.UserID).To(Equal("u1"))
		Expect(info.UserName).To(Equal("Jane"))
		Expect(info.Email).To(Equal("j@x.com"))
		Expect(info.RawData).To(HaveKeyWithValue("Department", "QA"))
		Expect(info.Err).To(BeEmpty())
	})

	It("requests <baseURL>/<userId>", func() {
		var requestedPath string
		handler = func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.Path
			_, _ = w.Write([]byte(`{}`))
		}
		client := directory.NewClient(upstream.URL+"/", time.Second)

		_, err := client.Fetch(ctx, "u42")

		Expect(err).NotTo(HaveOccurred())
		Expect(requestedPath).To(Equal("/u42"))
	})

	It("escapes path metacharacters in the user id", func() {
		var requestedPath string
		handler = func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.EscapedPath()
			_, _ = w.Write([]byte(`{}`))
		}
		client := directory.NewClient(upstream.URL, time.Second)

		info, err := client.Fetch(ctx, "dept/42?x")

		Expect(err).NotTo(HaveOccurred())
		Expect(requestedPath).To(Equal("/dept%2F42%3Fx"))
		Expect(info.UserID).To(Equal("dept/42?x"))
	})

	It("falls back to a placeholder name when FormattedName is absent", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"OfficialEmail":"j@x.com"}`))
		}
		client := directory.NewClient(upstream.URL, time.Second)

		info, err := client.Fetch(ctx, "u7")

		Expect(err).NotTo(HaveOccurred())
		Expect(info.UserName).To(Equal("User u7"))
		Expect(info.Email).To(Equal("j@x.com"))
	})

	It("returns an error on a non-200 response", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}
		client := directory.NewClient(upstream.URL, time.Second)

		_, err := client.Fetch(ctx, "u1")

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("status 502"))
	})

	It("rejects an empty user id", func() {
		client := directory.NewClient(upstream.URL, time.Second)

		_, err := client.Fetch(ctx, "")

		Expect(err).To(MatchError(directory.ErrUserIDRequired))
	})
})
