package foaas

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const (
	// acceptEncoding is sent only when compression is enabled.
	acceptEncoding = "zstd, br, gzip"

	maxBodyBytes = 1 << 20
)

// readBody reads at most maxBodyBytes of the decoded response body.
func readBody(res *http.Response) ([]byte, error) {
	r, err := decodedBody(res)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(io.LimitReader(r, maxBodyBytes))
}

// decodedBody wraps res.Body according to its Content-Encoding. The
// transport already strips gzip when it negotiated it itself, in which case
// the header is gone and the body is returned as is.
func decodedBody(res *http.Response) (io.ReadCloser, error) {
	ce := strings.ToLower(strings.TrimSpace(res.Header.Get("Content-Encoding")))
	switch ce {
	case "", "identity":
		return io.NopCloser(res.Body), nil
	case "zstd":
		dec, err := zstd.NewReader(res.Body, zstd.WithDecoderMaxMemory(8*maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	case "br":
		return io.NopCloser(brotli.NewReader(res.Body)), nil
	case "gzip":
		gr, err := gzip.NewReader(res.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return gr, nil
	default:
		return nil, fmt.Errorf("unsupported Content-Encoding: %s", ce)
	}
}
