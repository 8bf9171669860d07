package foaas_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/foaas/pkg/foaas"
	"github.com/okian/foaas/pkg/logger"
	"github.com/okian/foaas/pkg/metrics"
)

const okBody = `{"message":"M","subtitle":"S"}`

// stub records what the client sent and answers with a fixed status and body.
type stub struct {
	status  int
	body    string
	headers map[string]string
	delay   time.Duration

	mu       sync.Mutex
	hits     int32
	uri      string
	accept   string
	encoding string
}

func (s *stub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.hits, 1)
	s.mu.Lock()
	s.uri = r.RequestURI
	s.accept = r.Header.Get("Accept")
	s.encoding = r.Header.Get("Accept-Encoding")
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
	}
	for k, v := range s.headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(s.status)
	_, _ = io.WriteString(w, s.body)
}

func (s *stub) requestURI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uri
}

func (s *stub) sentHeaders() (accept, encoding string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accept, s.encoding
}

func newClient(srv *httptest.Server, opts ...foaas.Option) *foaas.Client {
	return foaas.New(append([]foaas.Option{
		foaas.WithBaseURL(srv.URL),
		foaas.WithHTTPClient(srv.Client()),
	}, opts...)...)
}

func mustLookup(name string) foaas.Endpoint {
	ep, ok := foaas.Lookup(name)
	if !ok {
		panic("missing endpoint " + name)
	}
	return ep
}

func TestInvokeSuccess(t *testing.T) {
	Convey("Given a stub answering 200 with a valid body", t, func() {
		s := &stub{status: http.StatusOK, body: okBody}
		srv := httptest.NewServer(s)
		defer srv.Close()
		c := newClient(srv)

		Convey("When the awesome endpoint is invoked with alice", func() {
			r := c.Invoke(context.Background(), mustLookup("awesome"), "alice")

			Convey("Then the decoded body is returned", func() {
				So(r, ShouldResemble, foaas.Response{Message: "M", Subtitle: "S"})
				So(r.IsError(), ShouldBeFalse)
			})

			Convey("And exactly one GET carried the JSON accept header", func() {
				So(atomic.LoadInt32(&s.hits), ShouldEqual, 1)
				So(s.requestURI(), ShouldEqual, "/awesome/alice")
				accept, encoding := s.sentHeaders()
				So(accept, ShouldEqual, "Application/json")
				So(encoding, ShouldNotEqual, "zstd, br, gzip")
			})
		})

		Convey("When a three-argument endpoint is called by name", func() {
			r := c.Call(context.Background(), "ballmer", "name", "company", "from")

			Convey("Then the arguments land in declaration order", func() {
				So(r.IsError(), ShouldBeFalse)
				So(s.requestURI(), ShouldEqual, "/ballmer/name/company/from")
			})
		})

		Convey("When field is called, whose last parameter is not from", func() {
			c.Call(context.Background(), "field", "n", "f", "r")
			So(s.requestURI(), ShouldEqual, "/field/n/f/r")
		})

		Convey("When the body carries extra fields", func() {
			s.body = `{"message":"M","subtitle":"S","extra":1}`
			r := c.Call(context.Background(), "cool", "bob")
			So(r, ShouldResemble, foaas.Response{Message: "M", Subtitle: "S"})
		})
	})
}

func TestInvokeFailures(t *testing.T) {
	Convey("Given a stub answering 500", t, func() {
		s := &stub{status: http.StatusInternalServerError, body: okBody}
		srv := httptest.NewServer(s)
		defer srv.Close()
		c := newClient(srv)

		Convey("When awesome is invoked", func() {
			r := c.Call(context.Background(), "awesome", "alice")

			Convey("Then the error-shaped Response embeds the status", func() {
				So(r.Message, ShouldStartWith, "Error: ")
				So(r.Message, ShouldEqual, "Error: 500 Internal Server Error")
				So(r.Subtitle, ShouldEqual, "error")
				So(r.IsError(), ShouldBeTrue)
			})
		})

		Convey("When Fetch is used instead", func() {
			_, err := c.Fetch(context.Background(), mustLookup("awesome"), "alice")

			Convey("Then a status Error is returned", func() {
				var fe *foaas.Error
				So(errors.As(err, &fe), ShouldBeTrue)
				So(fe.Kind, ShouldEqual, foaas.KindStatus)
				So(fe.StatusCode, ShouldEqual, http.StatusInternalServerError)
				So(fe.Endpoint, ShouldEqual, "awesome")
				So(errors.Is(err, foaas.ErrUnexpectedStatus), ShouldBeTrue)
			})
		})
	})

	Convey("Given a stub answering a success code other than 200", t, func() {
		s := &stub{status: http.StatusCreated, body: okBody}
		srv := httptest.NewServer(s)
		defer srv.Close()

		r := newClient(srv).Call(context.Background(), "awesome", "alice")
		So(r.Subtitle, ShouldEqual, "error")
		So(r.Message, ShouldEqual, "Error: 201 Created")
	})

	Convey("Given a stub answering 200 with a body missing subtitle", t, func() {
		s := &stub{status: http.StatusOK, body: `{"message":"M"}`}
		srv := httptest.NewServer(s)
		defer srv.Close()
		c := newClient(srv)

		Convey("When awesome is invoked", func() {
			r := c.Call(context.Background(), "awesome", "alice")

			Convey("Then the decode failure is reported, not a partial value", func() {
				So(r.Subtitle, ShouldEqual, "error")
				So(r.Message, ShouldStartWith, "Error: ")
				So(r.Message, ShouldContainSubstring, "subtitle")
			})
		})

		Convey("When Fetch is used instead", func() {
			r, err := c.Fetch(context.Background(), mustLookup("awesome"), "alice")
			var fe *foaas.Error
			So(errors.As(err, &fe), ShouldBeTrue)
			So(fe.Kind, ShouldEqual, foaas.KindDecode)
			So(errors.Is(err, foaas.ErrMissingField), ShouldBeTrue)
			So(r, ShouldResemble, foaas.Response{})
		})
	})

	Convey("Given a stub answering 200 with malformed JSON", t, func() {
		s := &stub{status: http.StatusOK, body: `<html>nope</html>`}
		srv := httptest.NewServer(s)
		defer srv.Close()

		_, err := newClient(srv).Fetch(context.Background(), mustLookup("bag"), "x")
		var fe *foaas.Error
		So(errors.As(err, &fe), ShouldBeTrue)
		So(fe.Kind, ShouldEqual, foaas.KindDecode)
	})

	Convey("Given a server that is no longer listening", t, func() {
		s := &stub{status: http.StatusOK, body: okBody}
		srv := httptest.NewServer(s)
		c := newClient(srv)
		srv.Close()

		Convey("When awesome is invoked", func() {
			r := c.Call(context.Background(), "awesome", "alice")
			So(r.Subtitle, ShouldEqual, "error")
			So(r.Message, ShouldStartWith, "Error: ")

			_, err := c.Fetch(context.Background(), mustLookup("awesome"), "alice")
			var fe *foaas.Error
			So(errors.As(err, &fe), ShouldBeTrue)
			So(fe.Kind, ShouldEqual, foaas.KindTransport)
		})
	})
}

func TestInvokeRequestErrors(t *testing.T) {
	Convey("Given a client and a counting stub", t, func() {
		s := &stub{status: http.StatusOK, body: okBody}
		srv := httptest.NewServer(s)
		defer srv.Close()
		c := newClient(srv)

		Convey("When an endpoint is called with the wrong arity", func() {
			r := c.Call(context.Background(), "awesome")
			_, err := c.Fetch(context.Background(), mustLookup("back"), "only-one")

			Convey("Then no request is sent and the error names the arity", func() {
				So(r.Subtitle, ShouldEqual, "error")
				So(r.Message, ShouldContainSubstring, "wrong number of arguments")
				So(errors.Is(err, foaas.ErrArity), ShouldBeTrue)
				So(atomic.LoadInt32(&s.hits), ShouldEqual, 0)
			})
		})

		Convey("When an unknown endpoint name is called", func() {
			r := c.Call(context.Background(), "nope", "a")
			So(r.Subtitle, ShouldEqual, "error")
			So(r.Message, ShouldContainSubstring, "unknown endpoint")
			So(atomic.LoadInt32(&s.hits), ShouldEqual, 0)
		})

		Convey("When an empty Endpoint value is fetched", func() {
			_, err := c.Fetch(context.Background(), foaas.Endpoint{})
			So(errors.Is(err, foaas.ErrUnknownEndpoint), ShouldBeTrue)
		})
	})
}

func TestPathEscaping(t *testing.T) {
	Convey("Given a stub recording the request target", t, func() {
		s := &stub{status: http.StatusOK, body: okBody}
		srv := httptest.NewServer(s)
		defer srv.Close()

		Convey("When arguments contain a slash and a space", func() {
			newClient(srv).Call(context.Background(), "back", "Jane Doe", "x/y")

			Convey("Then each argument stays one percent-encoded segment", func() {
				So(s.requestURI(), ShouldEqual, "/back/Jane%20Doe/x%2Fy")
			})
		})

		Convey("When raw paths are enabled", func() {
			newClient(srv, foaas.WithRawPaths()).Call(context.Background(), "awesome", "x/y")

			Convey("Then the argument is spliced verbatim", func() {
				So(s.requestURI(), ShouldEqual, "/awesome/x/y")
			})
		})
	})
}

func TestCancellation(t *testing.T) {
	Convey("Given a slow stub", t, func() {
		s := &stub{status: http.StatusOK, body: okBody, delay: 2 * time.Second}
		srv := httptest.NewServer(s)
		defer srv.Close()

		Convey("When the client timeout is shorter than the stub delay", func() {
			_, err := newClient(srv, foaas.WithTimeout(20*time.Millisecond)).
				Fetch(context.Background(), mustLookup("awesome"), "alice")

			Convey("Then the call fails as a transport error", func() {
				var fe *foaas.Error
				So(errors.As(err, &fe), ShouldBeTrue)
				So(fe.Kind, ShouldEqual, foaas.KindTransport)
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			})
		})

		Convey("When the caller context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			r := newClient(srv).Call(ctx, "awesome", "alice")
			_, err := newClient(srv).Fetch(ctx, mustLookup("awesome"), "alice")

			So(r.Subtitle, ShouldEqual, "error")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestRateLimit(t *testing.T) {
	Convey("Given a client allowing one request per thousand seconds", t, func() {
		s := &stub{status: http.StatusOK, body: okBody}
		srv := httptest.NewServer(s)
		defer srv.Close()
		c := newClient(srv, foaas.WithRateLimit(0.001, 1))

		Convey("When two calls are made with a short deadline", func() {
			first := c.Call(context.Background(), "awesome", "a")
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			second := c.Call(ctx, "awesome", "b")

			Convey("Then the burst passes and the throttled call fails locally", func() {
				So(first.IsError(), ShouldBeFalse)
				So(second.IsError(), ShouldBeTrue)
				So(second.Message, ShouldContainSubstring, "rate limit")
				So(atomic.LoadInt32(&s.hits), ShouldEqual, 1)
			})
		})
	})
}

func TestCompression(t *testing.T) {
	encoders := map[string]func([]byte) []byte{
		"gzip": func(b []byte) []byte {
			var buf bytes.Buffer
			w := gzip.NewWriter(&buf)
			_, _ = w.Write(b)
			_ = w.Close()
			return buf.Bytes()
		},
		"br": func(b []byte) []byte {
			var buf bytes.Buffer
			w := brotli.NewWriter(&buf)
			_, _ = w.Write(b)
			_ = w.Close()
			return buf.Bytes()
		},
		"zstd": func(b []byte) []byte {
			enc, _ := zstd.NewWriter(nil)
			defer enc.Close()
			return enc.EncodeAll(b, nil)
		},
	}

	for name, encode := range encoders {
		Convey("Given a stub answering with "+name, t, func() {
			s := &stub{
				status:  http.StatusOK,
				body:    string(encode([]byte(okBody))),
				headers: map[string]string{"Content-Encoding": name, "Content-Type": "application/json"},
			}
			srv := httptest.NewServer(s)
			defer srv.Close()

			Convey("When compression is enabled", func() {
				r := newClient(srv, foaas.WithCompression()).Call(context.Background(), "awesome", "alice")

				Convey("Then the body is decoded", func() {
					So(r, ShouldResemble, foaas.Response{Message: "M", Subtitle: "S"})
					_, encoding := s.sentHeaders()
					So(encoding, ShouldEqual, "zstd, br, gzip")
				})
			})
		})
	}

	Convey("Given a stub answering with an unknown coding", t, func() {
		s := &stub{status: http.StatusOK, body: okBody, headers: map[string]string{"Content-Encoding": "snappy"}}
		srv := httptest.NewServer(s)
		defer srv.Close()

		_, err := newClient(srv, foaas.WithCompression()).Fetch(context.Background(), mustLookup("awesome"), "alice")
		var fe *foaas.Error
		So(errors.As(err, &fe), ShouldBeTrue)
		So(fe.Kind, ShouldEqual, foaas.KindDecode)
		So(err.Error(), ShouldContainSubstring, "snappy")
	})
}

// recordingLogger keeps the messages it was asked to log at warn level.
type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Info(context.Context, string, ...logger.Field)  {}
func (l *recordingLogger) Error(context.Context, string, ...logger.Field) {}
func (l *recordingLogger) Debug(context.Context, string, ...logger.Field) {}
func (l *recordingLogger) Fatal(context.Context, string, ...logger.Field) {}
func (l *recordingLogger) Named(string) logger.Logger                     { return l }
func (l *recordingLogger) Warn(_ context.Context, msg string, _ ...logger.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func TestObservability(t *testing.T) {
	Convey("Given a failing stub and a recording logger", t, func() {
		s := &stub{status: http.StatusBadGateway, body: ""}
		srv := httptest.NewServer(s)
		defer srv.Close()
		rec := &recordingLogger{}
		c := newClient(srv, foaas.WithLogger(rec))

		Convey("When a call fails", func() {
			c.Call(context.Background(), "horse", "alice")

			Convey("Then a warning is logged and the failure is counted", func() {
				So(rec.warns, ShouldContain, "endpoint invocation failed")

				var buf bytes.Buffer
				So(metrics.WriteText(&buf), ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, `foaas_client_errors_total{kind="status"}`)
				So(buf.String(), ShouldContainSubstring, `endpoint="horse",outcome="error"`)
			})
		})
	})
}

func TestNewDefaults(t *testing.T) {
	Convey("Given a client with no options", t, func() {
		c := foaas.New()
		So(c.BaseURL(), ShouldEqual, foaas.DefaultBaseURL)

		Convey("When the base URL has a trailing slash", func() {
			c := foaas.New(foaas.WithBaseURL("http://mirror.local/ "))
			So(c.BaseURL(), ShouldEqual, "http://mirror.local")
			So(strings.HasSuffix(c.BaseURL(), "/"), ShouldBeFalse)
		})
	})
}
