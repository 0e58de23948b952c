package llms

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/jmylchreest/llmsmd/pkg/htmltree"
	"github.com/jmylchreest/llmsmd/pkg/markdown"
	"github.com/jmylchreest/llmsmd/pkg/selector"
)

// runStage parses markup, runs one stage and returns the rendered tree.
func runStage(t *testing.T, run func(*Context, *html.Node) *html.Node, markup string, opts Options) (string, *Result) {
	t.Helper()
	root, err := htmltree.Parse(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	result := &Result{Stats: NewStats()}
	ctx := newContext(opts, selector.New(), result)
	root = run(ctx, root)

	out, err := htmltree.Render(root)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, result
}

func TestStages_Order(t *testing.T) {
	want := []string{
		StageMedia, StageIgnore, StageStructure, StageCode,
		StageTabs, StageFileTree, StageEmptyItems, StageTables,
	}
	got := Stages()
	if len(got) != len(want) {
		t.Fatalf("expected %d stages, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("stage %d: expected %q, got %q", i, want[i], got[i].Name)
		}
	}
}

func TestRemoveMedia(t *testing.T) {
	out, result := runStage(t, removeMedia,
		`<p>text<img src="a.png"></p><picture><source></picture><div class="photo">p</div><iframe></iframe>`,
		Options{})

	for _, e := range []string{"<img", "<picture", "photo", "<iframe"} {
		if strings.Contains(out, e) {
			t.Errorf("expected %q removed, got %s", e, out)
		}
	}
	if !strings.Contains(out, "<p>text</p>") {
		t.Errorf("expected paragraph kept, got %s", out)
	}
	if got := result.Stats.GetPhase(StageMedia).Removed; got != 4 {
		t.Errorf("expected 4 removals, got %d", got)
	}
}

func TestRemoveIgnored(t *testing.T) {
	markup := `<nav>menu</nav><main><p>a</p><p class="no-llms">b</p></main>`

	a, _ := runStage(t, removeIgnored, markup, Options{IgnoreSelectors: []string{"nav", ".no-llms"}})
	b, _ := runStage(t, removeIgnored, markup, Options{IgnoreSelectors: []string{".no-llms", "nav"}})
	if a != b {
		t.Errorf("expected selector order to be irrelevant:\n%s\n%s", a, b)
	}
	if a != `<main><p>a</p></main>` {
		t.Errorf("unexpected tree %s", a)
	}

	c, _ := runStage(t, removeIgnored, markup, Options{})
	if !strings.Contains(c, "menu") {
		t.Errorf("expected no removals without selectors, got %s", c)
	}
}

func TestReduceToStructure(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		out, _ := runStage(t, reduceToStructure, `<h2>Title</h2><p>Body</p>`, Options{})
		if out != `<h2>Title</h2><p>Body</p>` {
			t.Errorf("expected tree unchanged, got %s", out)
		}
	})

	t.Run("keeps structural skeleton", func(t *testing.T) {
		out, _ := runStage(t, reduceToStructure,
			`<h2>Title</h2><p>Body text</p><ul><li>one<ul><li>nested</li></ul></li></ul>`,
			Options{OnlyStructure: true})

		// Own text runs are not structural and are stripped with the
		// paragraph; nested structural elements survive.
		want := `<h2></h2><ul><li><ul><li></li></ul></li></ul>`
		if out != want {
			t.Errorf("expected %s, got %s", want, out)
		}
	})

	t.Run("non structural wrapper removes subtree", func(t *testing.T) {
		out, _ := runStage(t, reduceToStructure, `<div><h3>Inner</h3></div><h4>x</h4>`,
			Options{OnlyStructure: true})
		if out != `<h4></h4>` {
			t.Errorf("unexpected tree %s", out)
		}
	})
}

func TestTagCodeBlocks(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		contains []string
		excludes []string
		warnings int
	}{
		{
			name:     "adds language class",
			html:     `<pre data-language="ts"><code class="x">a</code></pre>`,
			contains: []string{`class="x language-ts"`},
		},
		{
			name:     "no hint is untouched",
			html:     `<pre><code>a</code></pre>`,
			excludes: []string{"language-"},
		},
		{
			name:     "blank hint is untouched",
			html:     `<pre data-language="  "><code>a</code></pre>`,
			excludes: []string{"language-"},
		},
		{
			name:     "diff hint does not prefix",
			html:     `<pre data-language="diff"><code><span class="ec-line ins">+a</span></code></pre>`,
			contains: []string{"language-diff", ">+a<"},
			excludes: []string{"++a"},
		},
		{
			name: "flagged lines prefix",
			html: `<pre data-language="js"><code>` +
				`<div class="ec-line ins"><span>a</span></div>` +
				`<div class="ec-line del">b</div>` +
				`<div class="ec-line">c</div></code></pre>`,
			contains: []string{`<code class="language-diff">+a` + "\n-b\nc</code>"},
			excludes: []string{"language-js", "ec-line"},
		},
		{
			name:     "flagged line without text",
			html:     `<pre data-language="js"><code><div class="ec-line ins"><span></span></div></code></pre>`,
			contains: []string{`<code class="language-diff">+</code>`},
		},
		{
			name: "nested line markup joined",
			html: `<pre data-language="sh"><code>` + "\n" +
				`<div class="ec-line"><div class="gutter"><div class="ln">1</div></div><div class="code"><span>npm</span> i</div></div>` + "\n" +
				`<div class="ec-line"><div class="gutter"><div class="ln">2</div></div><div class="code"></div></div>` +
				`<div class="ec-line ins"><div class="gutter"><div class="ln">3</div></div><div class="code">npm run</div></div></code></pre>`,
			contains: []string{`<code class="language-diff">npm i` + "\n\n+npm run</code>"},
			excludes: []string{"ln", "+1", "+3"},
		},
		{
			name:     "span lines keep their text",
			html:     `<pre data-language="ts"><code><span class="ec-line">a</span>` + "\n" + `<span class="ec-line">b</span></code></pre>`,
			contains: []string{`<span class="ec-line">a</span>` + "\n" + `<span class="ec-line">b</span>`},
		},
		{
			name:     "missing code element",
			html:     `<pre data-language="go">plain</pre>`,
			contains: []string{`<pre data-language="go">plain</pre>`},
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, result := runStage(t, tagCodeBlocks, tt.html, Options{})
			for _, c := range tt.contains {
				if !strings.Contains(out, c) {
					t.Errorf("expected tree to contain %q, got: %s", c, out)
				}
			}
			for _, e := range tt.excludes {
				if strings.Contains(out, e) {
					t.Errorf("expected tree to not contain %q, got: %s", e, out)
				}
			}
			if len(result.Warnings) != tt.warnings {
				t.Errorf("expected %d warnings, got %v", tt.warnings, result.Warnings)
			}
		})
	}
}

func TestFlattenTabs(t *testing.T) {
	out, result := runStage(t, flattenTabs,
		`<starlight-tabs class="tabs"><div role="tablist">`+
			`<a role="tab"> npm </a><a role="tab"><span>p</span>npm</a><a role="tab">yarn</a></div>`+
			`<section role="tabpanel">one</section><section role="tabpanel">two</section></starlight-tabs>`,
		Options{})

	want := `<ul><li><p>npm</p><section role="tabpanel">one</section></li>` +
		`<li><p>pnpm</p><section role="tabpanel">two</section></li></ul>`
	if out != want {
		t.Errorf("expected %s, got %s", want, out)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected a mismatch warning, got %v", result.Warnings)
	}
}

func TestCleanFileTrees(t *testing.T) {
	out, _ := runStage(t, cleanFileTrees,
		`<span class="sr-only">outside</span><starlight-file-tree><ul><li>`+
			`<span class="sr-only">Directory</span><span>src</span></li></ul></starlight-file-tree>`,
		Options{})

	if strings.Contains(out, "Directory") {
		t.Errorf("expected hidden label removed, got %s", out)
	}
	if !strings.Contains(out, "outside") || !strings.Contains(out, "<span>src</span>") {
		t.Errorf("expected visible text kept, got %s", out)
	}
}

func TestRemoveEmptyItems(t *testing.T) {
	out, result := runStage(t, removeEmptyItems,
		`<ul><li></li><li> </li><li>x</li></ul><ol><li></li></ol>`, Options{})

	want := `<ul><li> </li><li>x</li></ul><ol></ol>`
	if out != want {
		t.Errorf("expected %s, got %s", want, out)
	}
	if got := result.Stats.GetPhase(StageEmptyItems).Removed; got != 2 {
		t.Errorf("expected 2 removals, got %d", got)
	}
}

func TestFlattenTables(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "rows and cells",
			html: `<table class="t"><thead><tr><th>A</th><th>B</th></tr></thead>` +
				`<tbody><tr><td>C</td><td><code>D</code> <em>E</em></td></tr></tbody></table>`,
			want: "A | B\nC | D E",
		},
		{
			name: "blank cells and rows skipped",
			html: `<table><tr><td> </td><td>x</td></tr><tr><td></td></tr></table>`,
			want: "x",
		},
		{
			name: "empty table",
			html: `<table><tr><td></td></tr></table>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := htmltree.Parse(tt.html)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			ctx := newContext(Options{}, selector.New(), nil)
			flattenTables(ctx, root)

			block := root.FirstChild
			if !htmltree.IsElement(block, "div") {
				t.Fatalf("expected div block, got %v", block)
			}
			if lines, _ := htmltree.Attr(block, markdown.LinesAttr); lines != tt.want {
				t.Errorf("expected lines %q, got %q", tt.want, lines)
			}
			if block.FirstChild == nil || block.FirstChild != block.LastChild {
				t.Fatalf("expected exactly one child")
			}
			if block.FirstChild.Type != html.TextNode || block.FirstChild.Data != tt.want {
				t.Errorf("expected text %q, got %q", tt.want, block.FirstChild.Data)
			}
			if htmltree.HasClass(block, "t") {
				t.Error("expected attributes discarded")
			}
		})
	}
}
