package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	pkglog "github.com/Hamzahxou/api-x/pkg/log"
	"github.com/Hamzahxou/api-x/pkg/storage"
)

// Config holds image normalization settings. Uploads are shrunk to fit
// within MaxWidth×MaxHeight (never enlarged) and re-encoded as JPEG.
type Config struct {
	MaxWidth    int           `mapstructure:"max_width"`
	MaxHeight   int           `mapstructure:"max_height"`
	JPEGQuality int           `mapstructure:"jpeg_quality"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
	URLTTL      time.Duration `mapstructure:"url_ttl"`
}

// Processor normalizes post images and stores them, returning the canonical
// URL to persist on the post.
type Processor struct {
	store storage.Storage
	cfg   Config
}

// NewProcessor creates a new image processor backed by the given storage.
func NewProcessor(store storage.Storage, cfg Config) *Processor {
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = 800
	}
	if cfg.MaxHeight <= 0 {
		cfg.MaxHeight = 600
	}
	if cfg.JPEGQuality <= 0 {
		cfg.JPEGQuality = 85
	}
	if cfg.URLTTL <= 0 {
		cfg.URLTTL = 7 * 24 * time.Hour
	}
	return &Processor{store: store, cfg: cfg}
}

// StorePostImage decodes the uploaded image, limits its dimensions,
// re-encodes it as JPEG, writes it to storage and returns the URL.
func (p *Processor) StorePostImage(ctx context.Context, userID string, r io.Reader) (string, error) {
	l := pkglog.Ctx(ctx)

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	// Shrink to fit the limit box; never enlarge.
	bounds := img.Bounds()
	if bounds.Dx() > p.cfg.MaxWidth || bounds.Dy() > p.cfg.MaxHeight {
		img = imaging.Fit(img, p.cfg.MaxWidth, p.cfg.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.cfg.JPEGQuality)); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	key := fmt.Sprintf("%s%s/%s.jpg", p.cfg.KeyPrefix, userID, uuid.New().String())
	if err := p.store.Write(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "image/jpeg"); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	url, err := p.store.GetURL(ctx, key, p.cfg.URLTTL)
	if err != nil {
		return "", fmt.Errorf("resolve image url: %w", err)
	}

	l.Debug().Str("key", key).Int("bytes", buf.Len()).Msg("stored post image")
	return url, nil
}
