// Package pinata pins images through the Pinata pinning API.
package pinata

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
	"strconv"
	"strings"
	"time"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/pkg/apperror"

	"github.com/dustin/go-humanize"
	"github.com/ipfs/go-cid"
	"github.com/rs/zerolog"
)

const pinFilePath = "/pinning/pinFileToIPFS"

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the uploader settings.
type Config struct {
	APIURL     string
	JWT        string
	GatewayURL string
	CacheBust  bool
}

// Uploader implements ports.ImageUploader.
type Uploader struct {
	cfg    Config
	client HTTPClient
	log    zerolog.Logger
	now    func() time.Time
}

// NewUploader creates an Uploader. A nil client uses an http.Client with
// the given timeout.
func NewUploader(cfg Config, client HTTPClient, timeout time.Duration, log zerolog.Logger) *Uploader {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.GatewayURL = strings.TrimRight(cfg.GatewayURL, "/")
	return &Uploader{cfg: cfg, client: client, log: log, now: time.Now}
}

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// Upload pins image and returns its gateway locator. One request per call.
func (u *Uploader) Upload(ctx context.Context, image domain.Image) (string, error) {
	if image.Empty() {
		return "", apperror.Validation("image payload is required").WithPhase("upload")
	}

	body, contentType, err := encodeFile(image)
	if err != nil {
		return "", apperror.ErrUpload(fmt.Errorf("encode multipart: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.APIURL+pinFilePath, body)
	if err != nil {
		return "", apperror.ErrUpload(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+u.cfg.JWT)

	start := u.now()
	resp, err := u.client.Do(req)
	if err != nil {
		return "", apperror.ErrUpload(fmt.Errorf("pin request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", apperror.ErrUpload(fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperror.ErrUpload(fmt.Errorf("pinning service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var pinned pinResponse
	if err := json.Unmarshal(raw, &pinned); err != nil {
		return "", apperror.ErrUpload(fmt.Errorf("decode response: %w", err))
	}
	if pinned.IpfsHash == "" {
		return "", apperror.ErrUpload(errors.New("response has no content hash"))
	}
	c, err := cid.Decode(pinned.IpfsHash)
	if err != nil {
		return "", apperror.ErrUpload(fmt.Errorf("invalid content hash %q: %w", pinned.IpfsHash, err))
	}

	u.log.Info().
		Str("cid", c.String()).
		Str("file", image.Filename).
		Str("size", humanize.Bytes(uint64(len(image.Data)))).
		Dur("took", time.Since(start)).
		Msg("image pinned")

	return u.locator(c), nil
}

// locator builds the gateway address for c. The timestamp keeps caches
// from serving a previous upload of identical content.
func (u *Uploader) locator(c cid.Cid) string {
	loc := u.cfg.GatewayURL + "/ipfs/" + c.String()
	if u.cfg.CacheBust {
		loc += "?t=" + strconv.FormatInt(u.now().UnixMilli(), 10)
	}
	return loc
}

func encodeFile(image domain.Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := image.Filename
	if name == "" {
		name = "image"
	}
	ct := image.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// Ping implements ports.HealthChecker using Pinata's authentication check.
func (u *Uploader) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.cfg.APIURL+"/data/testAuthentication", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+u.cfg.JWT)
	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pinning service returned %d", resp.StatusCode)
	}
	return nil
}

// Name implements ports.HealthChecker.
func (u *Uploader) Name() string { return "pinata" }
