// Package webhook relays onboarding data and resumes to the n8n workflow
// engine as multipart form posts.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"
)

// File is an uploaded file held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Onboarding is the payload of the job-matching workflow. Nil slices are
// left out of the form.
type Onboarding struct {
	UserID          string
	Role            string
	ExperienceLevel string
	JobTypes        []string
	Skills          []string
	File            *File
}

// StatusError is returned when the workflow engine answers with a non-2xx
// status.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook %s returned status %d", e.URL, e.Status)
}

type Config struct {
	OnboardingURL  string
	ParseResumeURL string
	Timeout        time.Duration
	Retries        int
	// Backoff is the wait before the first retry; it doubles on every attempt.
	Backoff time.Duration
}

type Client struct {
	http   *http.Client
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	return &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// ForwardOnboarding posts the user's preferences (and resume, when present)
// to the job-matching workflow.
func (c *Client) ForwardOnboarding(ctx context.Context, o Onboarding) error {
	_, err := c.post(ctx, c.cfg.OnboardingURL, func(w *multipart.Writer) error {
		if err := w.WriteField("userId", o.UserID); err != nil {
			return err
		}
		if o.Role != "" {
			if err := w.WriteField("role", o.Role); err != nil {
				return err
			}
		}
		if o.ExperienceLevel != "" {
			if err := w.WriteField("experienceLevel", o.ExperienceLevel); err != nil {
				return err
			}
		}
		if err := writeJSONField(w, "jobTypes", o.JobTypes); err != nil {
			return err
		}
		if err := writeJSONField(w, "skills", o.Skills); err != nil {
			return err
		}
		if o.File != nil {
			return writeFile(w, "file", o.File)
		}
		return nil
	})
	return err
}

// ParseResume sends the resume to the parsing workflow and returns its answer
// as JSON. A non-JSON answer is returned as a JSON string.
func (c *Client) ParseResume(ctx context.Context, f *File) (json.RawMessage, error) {
	if f == nil {
		return nil, errors.New("no file to parse")
	}
	body, err := c.post(ctx, c.cfg.ParseResumeURL, func(w *multipart.Writer) error {
		return writeFile(w, "file", f)
	})
	if err != nil {
		return nil, err
	}
	if json.Valid(body) {
		return json.RawMessage(body), nil
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil, err
	}
	return quoted, nil
}

func (c *Client) post(ctx context.Context, url string, build func(*multipart.Writer) error) ([]byte, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	if err := build(w); err != nil {
		return nil, fmt.Errorf("building form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("building form: %w", err)
	}
	payload := b.Bytes()

	return retry(ctx, c.cfg.Retries, c.cfg.Backoff, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, permanent(err)
		}
		req.Header.Set("Content-Type", w.FormDataContentType())

		resp, err := c.http.Do(req)
		if err != nil {
			c.logger.Debug("webhook request failed", zap.String("url", url), zap.Error(err))
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading webhook response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			statusErr := &StatusError{URL: url, Status: resp.StatusCode, Body: string(body)}
			if resp.StatusCode >= 500 {
				return nil, statusErr
			}
			return nil, permanent(statusErr)
		}
		return body, nil
	})
}

func writeJSONField(w *multipart.Writer, name string, v []string) error {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.WriteField(name, string(b))
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(w *multipart.Writer, field string, f *File) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(f.Data)
	return err
}
