package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/genai"
)

func newOpenAIServer(t *testing.T, path string, status int, body string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, path) {
			http.NotFound(w, r)
			return
		}
		if captured != nil {
			b, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(b, captured)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOptions(srv *httptest.Server) []option.RequestOption {
	return []option.RequestOption{option.WithBaseURL(srv.URL + "/v1/"), option.WithMaxRetries(0)}
}

const chatBody = `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"{\"scenes\":[\"a\"]}"}}]}`

func TestOpenAIInferencerSendsSingleUserMessage(t *testing.T) {
	var captured map[string]any
	srv := newOpenAIServer(t, "/chat/completions", http.StatusOK, chatBody, &captured)
	inf := NewOpenAIInferencer("test-key", "gpt-4o-mini", testOptions(srv)...)

	out, err := inf.Infer(context.Background(), nil, "", "tell me a story")
	if err != nil {
		t.Fatalf("Infer returned error: %v", err)
	}
	if out != `{"scenes":["a"]}` {
		t.Fatalf("Infer = %q", out)
	}
	if captured["model"] != "gpt-4o-mini" {
		t.Fatalf("model = %v", captured["model"])
	}
	msgs, _ := captured["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("messages = %v, want a single user message", captured["messages"])
	}
	if m, _ := msgs[0].(map[string]any); m["role"] != "user" || m["content"] != "tell me a story" {
		t.Fatalf("message = %v", msgs[0])
	}
}

func TestOpenAIInferencerWithSystemPrompt(t *testing.T) {
	var captured map[string]any
	srv := newOpenAIServer(t, "/chat/completions", http.StatusOK, chatBody, &captured)
	inf := NewOpenAIInferencer("test-key", "gpt-4o-mini", testOptions(srv)...)

	if _, err := inf.Infer(context.Background(), nil, "be brief", "hi"); err != nil {
		t.Fatalf("Infer returned error: %v", err)
	}
	msgs, _ := captured["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %v, want system + user", captured["messages"])
	}
	if m, _ := msgs[0].(map[string]any); m["role"] != "system" {
		t.Fatalf("first message = %v", msgs[0])
	}
}

func TestOpenAIInferencerEmptyContentIsNotAnError(t *testing.T) {
	body := `{"id":"c1","object":"chat.completion","created":1,"model":"m",
"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":""}}]}`
	srv := newOpenAIServer(t, "/chat/completions", http.StatusOK, body, nil)
	inf := NewOpenAIInferencer("test-key", "m", testOptions(srv)...)

	out, err := inf.Infer(context.Background(), nil, "", "hi")
	if err != nil {
		t.Fatalf("Infer returned error: %v", err)
	}
	if out != "" {
		t.Fatalf("Infer = %q, want empty", out)
	}
}

func TestOpenAIInferencerNoChoices(t *testing.T) {
	body := `{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[]}`
	srv := newOpenAIServer(t, "/chat/completions", http.StatusOK, body, nil)
	inf := NewOpenAIInferencer("test-key", "m", testOptions(srv)...)

	_, err := inf.Infer(context.Background(), nil, "", "hi")
	if !errors.Is(err, ErrNoChoices) {
		t.Fatalf("error = %v, want ErrNoChoices", err)
	}
}

func TestOpenAIIllustratorURL(t *testing.T) {
	var captured map[string]any
	srv := newOpenAIServer(t, "/images/generations", http.StatusOK,
		`{"created":1,"data":[{"url":"https://img.example/1.png"}]}`, &captured)
	ill := NewOpenAIIllustrator("test-key", "", testOptions(srv)...)

	url, err := ill.Illustrate(context.Background(), "a fox", "1024x1024")
	if err != nil {
		t.Fatalf("Illustrate returned error: %v", err)
	}
	if url != "https://img.example/1.png" {
		t.Fatalf("url = %q", url)
	}
	if captured["model"] != "gpt-image-1" || captured["size"] != "1024x1024" || captured["prompt"] != "a fox" {
		t.Fatalf("request = %v", captured)
	}
}

func TestOpenAIIllustratorBase64(t *testing.T) {
	srv := newOpenAIServer(t, "/images/generations", http.StatusOK,
		`{"created":1,"data":[{"b64_json":"aGVsbG8="}]}`, nil)
	ill := NewOpenAIIllustrator("test-key", "gpt-image-1", testOptions(srv)...)

	url, err := ill.Illustrate(context.Background(), "a fox", "1024x1024")
	if err != nil {
		t.Fatalf("Illustrate returned error: %v", err)
	}
	if url != "data:image/png;base64,aGVsbG8=" {
		t.Fatalf("url = %q", url)
	}
}

func TestOpenAIIllustratorNoData(t *testing.T) {
	srv := newOpenAIServer(t, "/images/generations", http.StatusOK, `{"created":1,"data":[]}`, nil)
	ill := NewOpenAIIllustrator("test-key", "", testOptions(srv)...)

	_, err := ill.Illustrate(context.Background(), "a fox", "1024x1024")
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("error = %v, want ErrNoImage", err)
	}
	if Classify(err) != KindEmpty {
		t.Fatalf("Classify = %q, want %q", Classify(err), KindEmpty)
	}
}

func TestOpenAIIllustratorAPIErrorKinds(t *testing.T) {
	cases := []struct {
		status int
		kind   string
	}{
		{http.StatusUnauthorized, KindAuth},
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusBadRequest, KindProvider},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			srv := newOpenAIServer(t, "/images/generations", tc.status,
				`{"error":{"message":"nope","type":"invalid_request_error"}}`, nil)
			ill := NewOpenAIIllustrator("test-key", "", testOptions(srv)...)

			_, err := ill.Illustrate(context.Background(), "a fox", "1024x1024")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := Classify(err); got != tc.kind {
				t.Fatalf("Classify = %q, want %q (err: %v)", got, tc.kind, err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"canceled", fmt.Errorf("wrap: %w", context.Canceled), KindCanceled},
		{"timeout", context.DeadlineExceeded, KindTimeout},
		{"no_choices", ErrNoChoices, KindEmpty},
		{"no_candidates", fmt.Errorf("wrap: %w", ErrNoCandidates), KindEmpty},
		{"genai_auth", fmt.Errorf("gemini image error: %w", genai.APIError{Code: 403}), KindAuth},
		{"genai_other", genai.APIError{Code: 500}, KindProvider},
		{"unknown", errors.New("boom"), KindUnknown},
		{"openai", &openai.Error{StatusCode: 429}, KindRateLimited},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tc.err); got != tc.want {
				t.Fatalf("Classify(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestAspectRatio(t *testing.T) {
	t.Parallel()
	for size, want := range map[string]string{
		"1024x1024": "1:1",
		"1792x1024": "16:9",
		"1024x1536": "9:16",
		"":          "1:1",
	} {
		if got := aspectRatio(size); got != want {
			t.Fatalf("aspectRatio(%q) = %q, want %q", size, got, want)
		}
	}
}
