package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

var testWords = []layout.DrawableWord{
	{Word: "whale", X: 120, Y: 40, FontSize: 300, Category: layout.OnlyDoc1},
	{Word: "sea", X: 250, Y: 80, FontSize: 510, Category: layout.Shared},
	{Word: "storm", X: 500.2, Y: 10, FontSize: 210, Category: layout.OnlyDoc2},
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testWords, WithCanvas(500, 400)))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000.0 400.0"`) {
		t.Errorf("unexpected header: %.80s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}

	for _, want := range []string{
		`<text class="word only-doc1" x="120.00" y="40.00" font-size="300" fill="blue">whale</text>`,
		`<text class="word shared" x="250.00" y="80.00" font-size="510" fill="black">sea</text>`,
		`<text class="word only-doc2" x="500.20" y="10.00" font-size="210" fill="red">storm</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s", want)
		}
	}

	// Largest first.
	if strings.Index(svg, ">sea<") > strings.Index(svg, ">whale<") {
		t.Error("words are not ordered by descending size")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	reversed := []layout.DrawableWord{testWords[2], testWords[1], testWords[0]}
	if !bytes.Equal(RenderSVG(testWords), RenderSVG(reversed)) {
		t.Error("output depends on input order")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(nil,
		WithTitle("a & b"),
		WithBackground("white"),
		WithLegend("moby.txt", "<odyssey>"),
	))

	for _, want := range []string{
		"<title>a &amp; b</title>",
		`fill="white"`,
		"only in moby.txt",
		"only in &lt;odyssey&gt;",
		"in both",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderSVGEscapesWords(t *testing.T) {
	svg := string(RenderSVG([]layout.DrawableWord{{Word: "don't", FontSize: 12}}))
	if !strings.Contains(svg, ">don&#39;t<") {
		t.Errorf("apostrophe not escaped: %s", svg)
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(nil))
	if strings.Contains(svg, "<text") {
		t.Error("empty layout produced text elements")
	}
	if !strings.Contains(svg, `width="1000"`) {
		t.Errorf("default canvas not applied: %.120s", svg)
	}
}
