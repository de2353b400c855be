package news

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// FailureText is the user-facing reply when no digest can be produced. It is
// returned as-is to the user, with no extra wrapping by the caller.
const FailureText = "⚠️ 新聞暫時無法取得"

const defaultHeadlineLimit = 5

// Source produces a formatted news digest. On failure the returned string is
// still a complete user-facing reply.
type Source interface {
	Digest(ctx context.Context) (string, error)
}

// FeedSource builds a digest from an RSS feed.
type FeedSource struct {
	url    string
	client *http.Client
	limit  int
}

func NewFeedSource(url string) *FeedSource {
	return &FeedSource{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		limit:  defaultHeadlineLimit,
	}
}

type rssDoc struct {
	Channel struct {
		Items []struct {
			Title string `xml:"title"`
		} `xml:"item"`
	} `xml:"channel"`
}

func (s *FeedSource) Digest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return FailureText, errors.Wrap(err, "build feed request")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return FailureText, errors.Wrap(err, "fetch feed")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return FailureText, errors.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return FailureText, errors.Wrap(err, "read feed")
	}
	var doc rssDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return FailureText, errors.Wrap(err, "parse feed")
	}
	if len(doc.Channel.Items) == 0 {
		return FailureText, errors.New("feed has no items")
	}

	var b strings.Builder
	b.WriteString("📰 今日新聞：")
	for i, item := range doc.Channel.Items {
		if i >= s.limit {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		b.WriteString("\n- ")
		b.WriteString(title)
	}
	return b.String(), nil
}

// Cache serves the last good digest and is refreshed out of band. A cold
// cache fetches synchronously on first use.
type Cache struct {
	src    Source
	mu     sync.RWMutex
	digest string
}

func NewCache(src Source) *Cache {
	return &Cache{src: src}
}

// Refresh fetches a new digest and keeps the previous one on failure.
func (c *Cache) Refresh(ctx context.Context) error {
	digest, err := c.src.Digest(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.digest = digest
	c.mu.Unlock()
	return nil
}

func (c *Cache) Digest(ctx context.Context) (string, error) {
	c.mu.RLock()
	cached := c.digest
	c.mu.RUnlock()
	if cached != "" {
		return cached, nil
	}

	digest, err := c.src.Digest(ctx)
	if err != nil {
		return digest, err
	}
	c.mu.Lock()
	c.digest = digest
	c.mu.Unlock()
	return digest, nil
}
