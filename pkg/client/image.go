package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoImage is returned when a legacy page carries no usable <img>.
var ErrNoImage = errors.New("no image in response")

// FirstImageSrc parses an HTML document and returns the src attribute of its
// first img element.
func FirstImageSrc(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	img := firstImage(doc)
	if img == nil {
		return "", ErrNoImage
	}
	for _, attr := range img.Attr {
		if attr.Key == "src" && attr.Val != "" {
			return attr.Val, nil
		}
	}
	return "", ErrNoImage
}

func firstImage(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if img := firstImage(child); img != nil {
			return img
		}
	}
	return nil
}

// Image is a decoded legacy render.
type Image struct {
	Src    string
	Format string
	Width  int
	Height int
	Bytes  []byte
}

// LoadImage resolves src the way a browser would load it, then decodes it to
// prove it is a usable picture. Data URLs are decoded in place; anything else
// is fetched with one GET.
func (c *Client) LoadImage(ctx context.Context, src string) (*Image, error) {
	raw, err := c.imageBytes(ctx, src)
	if err != nil {
		return nil, transportErr("load image", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, transportErr("decode image", err)
	}
	return &Image{
		Src:    src,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Bytes:  raw,
	}, nil
}

func (c *Client) imageBytes(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "data:") {
		return decodeDataURL(src)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(src), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBody))
}

func decodeDataURL(src string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URL")
	}
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}
