package linkcheck

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/moddocs/internal/site"
)

func TestExtractLinks_FindsInlineImageAutoAndReferenceDefinitions(t *testing.T) {
	body := []byte("[a](target.md) ![img](logo.png) <https://example.com>\n\n[ref]: other/page.md\n")

	links := ExtractLinks(body)

	destinations := make(map[LinkKind][]string)
	for _, l := range links {
		destinations[l.Kind] = append(destinations[l.Kind], l.Destination)
	}
	require.Contains(t, destinations[LinkKindInline], "target.md")
	require.Contains(t, destinations[LinkKindImage], "logo.png")
	require.Contains(t, destinations[LinkKindAuto], "https://example.com")
	require.Contains(t, destinations[LinkKindReferenceDefinition], "other/page.md")
}

func TestIsExternal_SchemesAndProtocolRelative(t *testing.T) {
	require.True(t, IsExternal("https://example.com/x"))
	require.True(t, IsExternal("mailto:ops@example.com"))
	require.True(t, IsExternal("irc://irc.example.com/#help"))
	require.True(t, IsExternal("//cdn.example.com/x.png"))
	require.False(t, IsExternal("../guide/start.md"))
	require.False(t, IsExternal("/3/modules/ban/"))
}

func siteFiles() []site.File {
	return []site.File{
		site.NewFile("index.md", "docs", "site", true),
		site.NewFile("guide/start.md", "docs", "site", true),
		site.NewFile("3/modules/ban.yml", "docs", "site", true).Reclassified(true, "site", true),
		site.NewFile("img/logo.png", "docs", "site", true),
	}
}

func TestCheckPage_ResolvableLinksProduceNoFindings(t *testing.T) {
	checker := NewChecker(siteFiles())
	page := site.NewFile("index.md", "docs", "site", true)

	markdown := "[guide](guide/start.md) [ban](3/modules/ban/) ![logo](img/logo.png) [root](/guide/start/)\n" +
		"[anchor](#section) [ext](https://example.com)\n"

	findings := checker.CheckPage(page, markdown)
	require.Empty(t, findings)
}

func TestCheckPage_RelativeResolutionFromNestedPage(t *testing.T) {
	checker := NewChecker(siteFiles())
	page := site.NewFile("guide/start.md", "docs", "site", true)

	findings := checker.CheckPage(page, "[home](../../) [mod](../../3/modules/ban/)\n")
	require.Empty(t, findings)
}

func TestCheckPage_BrokenLinkIsReported(t *testing.T) {
	checker := NewChecker(siteFiles())
	page := site.NewFile("index.md", "docs", "site", true)

	findings := checker.CheckPage(page, "[missing](no/such/page.md)\n")
	require.Len(t, findings, 1)
	require.Equal(t, "index.md", findings[0].Page)
	require.Equal(t, "no/such/page.md", findings[0].Destination)
}

func TestCheckPage_FragmentAndQueryStripped(t *testing.T) {
	checker := NewChecker(siteFiles())
	page := site.NewFile("index.md", "docs", "site", true)

	findings := checker.CheckPage(page, "[guide](guide/start.md#install)\n")
	require.Empty(t, findings)
}
