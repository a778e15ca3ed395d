package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResponseWriterCapture(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newResponseWriter(w)

	if rw.statusCode != http.StatusOK {
		t.Errorf("default status = %d, want 200", rw.statusCode)
	}

	rw.WriteHeader(http.StatusNotFound)
	if rw.statusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rw.statusCode)
	}

	// A second WriteHeader must not change the recorded status.
	rw.WriteHeader(http.StatusInternalServerError)
	if rw.statusCode != http.StatusNotFound {
		t.Error("status changed after first WriteHeader")
	}
}

func TestResponseWriterCountsBytes(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newResponseWriter(w)

	data := []byte("test data")
	n, err := rw.Write(data)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len(data) {
		t.Errorf("wrote %d bytes, want %d", n, len(data))
	}
	if rw.bytesWritten != int64(len(data)) {
		t.Errorf("bytesWritten = %d, want %d", rw.bytesWritten, len(data))
	}
}

func TestSanitizeLogField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "GET /api/videos", "GET /api/videos"},
		{"newline forging", "a\nb\rc", "a b c"},
		{"null and escape stripped", "a\x00b\x1bc", "abc"},
		{"tab kept", "a\tb", "a\tb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogField(tt.in); got != tt.want {
				t.Errorf("sanitizeLogField(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShouldSkip(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		config LoggingConfig
		want   bool
	}{
		{"api request logged", "/api/videos", DefaultLoggingConfig(), false},
		{"segment skipped", "/api/video/1/720p/index000.ts", DefaultLoggingConfig(), true},
		{"health logged by default", "/health", DefaultLoggingConfig(), false},
		{"health skipped when disabled", "/health", LoggingConfig{LogHealthChecks: false}, true},
		{"configured prefix skipped", "/internal/x", LoggingConfig{SkipPaths: []string{"/internal"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldSkip(tt.path, tt.config); got != tt.want {
				t.Errorf("shouldSkip(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "10.0.0.1:4242", nil, "10.0.0.1"},
		{"x-forwarded-for single", "10.0.0.1:4242", map[string]string{"X-Forwarded-For": "203.0.113.9"}, "203.0.113.9"},
		{"x-forwarded-for chain", "10.0.0.1:4242", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.2"}, "203.0.113.9"},
		{"x-real-ip", "10.0.0.1:4242", map[string]string{"X-Real-IP": "198.51.100.7"}, "198.51.100.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoggerMiddlewarePassesThrough(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("ok"))
	})

	wrapped := Logger(DefaultLoggingConfig())(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/videos", http.NoBody)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("body = %q, want %q", w.Body.String(), "ok")
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"video list", "/api/videos", "/api/videos"},
		{"master playlist", "/api/video/42/index.m3u8", "/api/video/{id}/index.m3u8"},
		{"variant playlist", "/api/video/42/720p/index.m3u8", "/api/video/{id}/720p/{file}"},
		{"segment", "/api/video/42/1080p/index017.ts", "/api/video/{id}/1080p/{file}"},
		{"health", "/health", "/health"},
		{"root", "/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizePath(tt.path); got != tt.want {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNormalizePathCardinality(t *testing.T) {
	// Distinct IDs and segment names must collapse to one series.
	paths := []string{
		"/api/video/1/720p/index000.ts",
		"/api/video/2/720p/index001.ts",
		"/api/video/99999/720p/index432.ts",
	}
	for _, p := range paths {
		if got := normalizePath(p); got != "/api/video/{id}/720p/{file}" {
			t.Errorf("normalizePath(%q) = %q, want /api/video/{id}/720p/{file}", p, got)
		}
	}
}

func TestMetricsMiddlewareStatusCodes(t *testing.T) {
	codes := []int{
		http.StatusOK,
		http.StatusCreated,
		http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusInternalServerError,
	}

	for _, code := range codes {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
		})

		wrapped := Metrics(MetricsConfig{})(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/videos", http.NoBody)
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)

		if w.Code != code {
			t.Errorf("status = %d, want %d", w.Code, code)
		}
	}
}

func TestMetricsMiddlewareSkipsConfiguredPaths(t *testing.T) {
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	wrapped := Metrics(DefaultMetricsConfig())(handler)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if !handlerCalled {
		t.Error("skipped path must still reach the handler")
	}
}

func TestCompressionMiddleware(t *testing.T) {
	tests := []struct {
		name              string
		responseBody      string
		contentType       string
		acceptEncoding    string
		expectCompression bool
	}{
		{
			name:              "compresses large playlist",
			responseBody:      strings.Repeat("#EXT-X-STREAM-INF:BANDWIDTH=2500000\n720p/index.m3u8\n", 40),
			contentType:       "application/vnd.apple.mpegurl",
			acceptEncoding:    "gzip",
			expectCompression: true,
		},
		{
			name:              "compresses JSON",
			responseBody:      strings.Repeat(`{"id":1,"status":"ready"}`, 100),
			contentType:       "application/json",
			acceptEncoding:    "gzip",
			expectCompression: true,
		},
		{
			name:              "skips small responses",
			responseBody:      "ok",
			contentType:       "application/json",
			acceptEncoding:    "gzip",
			expectCompression: false,
		},
		{
			name:              "skips segment data",
			responseBody:      strings.Repeat("G", 4096),
			contentType:       "video/mp2t",
			acceptEncoding:    "gzip",
			expectCompression: false,
		},
		{
			name:              "respects client without gzip support",
			responseBody:      strings.Repeat("data", 500),
			contentType:       "application/json",
			acceptEncoding:    "",
			expectCompression: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(tt.responseBody))
			})

			wrapped := Compression(DefaultCompressionConfig())(handler)

			req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, req)

			isCompressed := w.Header().Get("Content-Encoding") == "gzip"
			if isCompressed != tt.expectCompression {
				t.Fatalf("compressed = %v, want %v", isCompressed, tt.expectCompression)
			}

			if tt.expectCompression {
				gr, err := gzip.NewReader(w.Body)
				if err != nil {
					t.Fatalf("gzip reader: %v", err)
				}
				defer gr.Close()

				decompressed, err := io.ReadAll(gr)
				if err != nil {
					t.Fatalf("decompress: %v", err)
				}
				if string(decompressed) != tt.responseBody {
					t.Error("decompressed content does not match original")
				}
			} else if w.Body.String() != tt.responseBody {
				t.Error("uncompressed content does not match original")
			}
		})
	}
}

func TestCompressionWithMultipleWrites(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		for i := 0; i < 50; i++ {
			w.Write([]byte(strings.Repeat(`{"k":"v"}`, 10)))
		}
	})

	wrapped := Compression(DefaultCompressionConfig())(handler)

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Error("expected combined writes above MinSize to be compressed")
	}
}

func BenchmarkMetricsMiddleware(b *testing.B) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	wrapped := Metrics(DefaultMetricsConfig())(handler)
	req := httptest.NewRequest(http.MethodGet, "/api/videos", http.NoBody)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
	}
}
