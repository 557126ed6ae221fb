package testutils

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"
)

// Browser is an HTTP client that keeps cookies between requests and does
// not follow redirects, so tests can assert on each 303.
type Browser struct {
	t       *testing.T
	baseURL string
	client  *http.Client
}

// NewBrowser creates a Browser for the server at baseURL.
func NewBrowser(t *testing.T, baseURL string) *Browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &Browser{
		t:       t,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Response is a fully read response.
type Response struct {
	Status   int
	Header   http.Header
	Body     string
	Location string
}

// Get issues a GET request.
func (b *Browser) Get(path string, headers ...string) Response {
	b.t.Helper()
	return b.do(http.MethodGet, path, nil, headers)
}

// PostForm submits form values.
func (b *Browser) PostForm(path string, form url.Values, headers ...string) Response {
	b.t.Helper()
	headers = append(headers, "Content-Type", "application/x-www-form-urlencoded")
	return b.do(http.MethodPost, path, strings.NewReader(form.Encode()), headers)
}

// Cookie returns the value the jar holds for name, or "".
func (b *Browser) Cookie(name string) string {
	u, _ := url.Parse(b.baseURL)
	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// headers is a flat list of name, value pairs.
func (b *Browser) do(method, path string, body io.Reader, headers []string) Response {
	b.t.Helper()
	req, err := http.NewRequest(method, b.baseURL+path, body)
	if err != nil {
		b.t.Fatalf("build request: %v", err)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := b.client.Do(req)
	if err != nil {
		b.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		b.t.Fatalf("read body: %v", err)
	}
	return Response{
		Status:   resp.StatusCode,
		Header:   resp.Header,
		Body:     string(data),
		Location: resp.Header.Get("Location"),
	}
}
