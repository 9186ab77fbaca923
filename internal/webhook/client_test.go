package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(url string, retries int) *Client {
	return New(Config{
		OnboardingURL:  url + "/webhook/get-filtered-jobs",
		ParseResumeURL: url + "/webhook-test/parse-resume",
		Timeout:        time.Second,
		Retries:        retries,
		Backoff:        time.Millisecond,
	}, zap.NewNop())
}

func TestForwardOnboarding_SendsForm(t *testing.T) {
	var got *http.Request
	var fileBody []byte
	var fileName, fileType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		got = r
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		fileBody, _ = io.ReadAll(f)
		fileName = hdr.Filename
		fileType = hdr.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	err := c.ForwardOnboarding(context.Background(), Onboarding{
		UserID:          "user_123",
		Role:            "Backend Engineer",
		ExperienceLevel: "senior",
		JobTypes:        []string{"remote", "full-time"},
		Skills:          []string{"Go"},
		File:            &File{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")},
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/webhook/get-filtered-jobs", got.URL.Path)
	assert.Equal(t, "user_123", got.FormValue("userId"))
	assert.Equal(t, "Backend Engineer", got.FormValue("role"))
	assert.Equal(t, "senior", got.FormValue("experienceLevel"))
	assert.Equal(t, `["remote","full-time"]`, got.FormValue("jobTypes"))
	assert.Equal(t, `["Go"]`, got.FormValue("skills"))
	assert.Equal(t, "%PDF-1.4", string(fileBody))
	assert.Equal(t, "cv.pdf", fileName)
	assert.Equal(t, "application/pdf", fileType)
}

func TestForwardOnboarding_OmitsEmptyFields(t *testing.T) {
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		form = r.MultipartForm.Value
		assert.Empty(t, r.MultipartForm.File)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	require.NoError(t, c.ForwardOnboarding(context.Background(), Onboarding{
		UserID: "user_123",
		Skills: []string{},
	}))

	assert.Equal(t, []string{"user_123"}, form["userId"])
	assert.NotContains(t, form, "role")
	assert.NotContains(t, form, "experienceLevel")
	assert.NotContains(t, form, "jobTypes")
	assert.Equal(t, []string{"[]"}, form["skills"])
}

func TestParseResume_ReturnsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/webhook-test/parse-resume", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Alex","skills":["Go"]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	out, err := c.ParseResume(context.Background(), &File{Name: "cv.txt", Data: []byte("Alex, Go")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alex","skills":["Go"]}`, string(out))
}

func TestParseResume_WrapsPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Workflow was started"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	out, err := c.ParseResume(context.Background(), &File{Name: "cv.txt", Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, `"Workflow was started"`, string(out))
}

func TestParseResume_NilFile(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0", 1)
	_, err := c.ParseResume(context.Background(), nil)
	assert.Error(t, err)
}

func TestPost_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 3)
	out, err := c.ParseResume(context.Background(), &File{Name: "cv.txt", Data: []byte("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(out))
	assert.Equal(t, int32(3), calls.Load())
}

func TestPost_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 2)
	err := c.ForwardOnboarding(context.Background(), Onboarding{UserID: "u"})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Equal(t, int32(2), calls.Load())
}

func TestPost_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"webhook not registered"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 3)
	err := c.ForwardOnboarding(context.Background(), Onboarding{UserID: "u"})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
	assert.Contains(t, statusErr.Body, "webhook not registered")
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := retry(ctx, 5, time.Hour, func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("boom")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
