package listing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// pagedSite serves n listing pages with one row each; pages listed in fail
// return a transport error.
func pagedSite(n int, fail map[int]bool) fetcherFunc {
	return func(_ context.Context, url string) ([]byte, error) {
		page := 1
		if _, err := fmt.Sscanf(url, baseURL+"?b=%d", &page); err != nil {
			page = 1
		}
		if fail[page] {
			return nil, errors.New("connection reset")
		}
		summary := fmt.Sprintf("資料筆數：%d　頁數：%d/%d", n, page, n)
		row := fmt.Sprintf(`<tr><td>113</td><td>%d</td><td><a href="law_view.php?id=%d">主旨%d</a></td><td>公告</td></tr>`, page, page, page)
		return listingHTML(summary, row), nil
	}
}

func TestCrawlAllPages(t *testing.T) {
	t.Parallel()

	c := New(pagedSite(3, nil), baseURL, zap.NewNop(), nil)
	summaries, total, err := c.Crawl(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, summaries, 3)
	assert.Equal(t, "主旨1", summaries[0].Subject)
	assert.Equal(t, "主旨3", summaries[2].Subject)
}

func TestCrawlSkipsFailedPage(t *testing.T) {
	t.Parallel()

	// Page 3 of 5 fails; pages 4 and 5 must still be crawled.
	c := New(pagedSite(5, map[int]bool{3: true}), baseURL, zap.NewNop(), nil)
	summaries, _, err := c.Crawl(context.Background(), 0)
	require.NoError(t, err)

	var serials []string
	for _, s := range summaries {
		serials = append(serials, s.Serial)
	}
	assert.Equal(t, []string{"1", "2", "4", "5"}, serials)
}

func TestCrawlPageOneFailureTerminates(t *testing.T) {
	t.Parallel()

	// With page 1 down the page count stays at its default of 1 and the
	// crawl ends after the single attempt.
	c := New(pagedSite(5, map[int]bool{1: true}), baseURL, zap.NewNop(), nil)
	summaries, total, err := c.Crawl(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.Zero(t, total)
}

func TestCrawlHonorsPageCap(t *testing.T) {
	t.Parallel()

	c := New(pagedSite(10, nil), baseURL, zap.NewNop(), nil)
	summaries, _, err := c.Crawl(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestCrawlCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(pagedSite(3, nil), baseURL, zap.NewNop(), nil)
	_, _, err := c.Crawl(ctx, 0)
	require.ErrorIs(t, err, context.Canceled)
}
