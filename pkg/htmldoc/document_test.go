package htmldoc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/devicelab-dev/selene/pkg/core"
)

const fruitsPage = `<html><body>
<ul id="fruits">
  <li class="item">Apple</li>
  <li class="item fav">Banana</li>
  <li class="item">Cherry</li>
</ul>
<div id="hidden" style="display: none"><span>secret</span></div>
<a href="/home">  Home </a>
<input type="hidden" name="token" value="t">
</body></html>`

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func texts(t *testing.T, elems []core.Element) []string {
	t.Helper()
	var out []string
	for _, e := range elems {
		text, err := e.Text()
		if err != nil {
			t.Fatalf("text: %v", err)
		}
		out = append(out, text)
	}
	return out
}

func TestFindElementsPreservesOrder(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	elems, err := doc.FindElements(core.CSS("#fruits > li"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := texts(t, elems)
	want := []string{"Apple", "Banana", "Cherry"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFindElementsEmpty(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	elems, err := doc.FindElements(core.CSS("table"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elems) != 0 {
		t.Errorf("expected 0 elements, got %d", len(elems))
	}
}

func TestFindElementNotFound(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	_, err := doc.FindElement(core.CSS("table"))
	if !errors.Is(err, core.ErrElementNotFound) {
		t.Errorf("expected ElementNotFound, got %v", err)
	}
}

func TestFindElementStrategies(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	tests := []struct {
		name string
		by   core.By
		want string
	}{
		{"id", core.ID("fruits"), "Apple Banana Cherry"},
		{"class", core.ClassName("fav"), "Banana"},
		{"tag", core.TagName("li"), "Apple"},
		{"link text", core.LinkText("Home"), "Home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elem, err := doc.FindElement(tt.by)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			text, _ := elem.Text()
			if text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, text)
			}
		})
	}
}

func TestFindByName(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	elem, err := doc.FindElement(core.Name("token"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := elem.Attribute("value"); v != "t" {
		t.Errorf("expected value t, got %q", v)
	}
}

func TestXPathUnsupported(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	_, err := doc.FindElement(core.XPath("//li"))
	if !errors.Is(err, ErrUnsupportedStrategy) {
		t.Errorf("expected ErrUnsupportedStrategy, got %v", err)
	}
}

func TestInvalidSelector(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	if _, err := doc.FindElements(core.CSS("li[")); err == nil {
		t.Error("expected error for invalid selector")
	}
}

func TestNestedFind(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	list, err := doc.FindElement(core.ID("fruits"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elems, err := list.FindElements(core.ClassName("item"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elems) != 3 {
		t.Errorf("expected 3 items, got %d", len(elems))
	}
	if _, err := list.FindElement(core.CSS("a")); !errors.Is(err, core.ErrElementNotFound) {
		t.Errorf("expected ElementNotFound for anchor outside list, got %v", err)
	}
}

func TestDisplayed(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	tests := []struct {
		name string
		by   core.By
		want bool
	}{
		{"visible item", core.ClassName("fav"), true},
		{"display none", core.ID("hidden"), false},
		{"hidden ancestor", core.CSS("#hidden span"), false},
		{"hidden input", core.Name("token"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elem, err := doc.FindElement(tt.by)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, _ := elem.Displayed()
			if got != tt.want {
				t.Errorf("Displayed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHiddenTextIsEmpty(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	elem, _ := doc.FindElement(core.CSS("#hidden span"))
	if text, _ := elem.Text(); text != "" {
		t.Errorf("expected empty text for hidden element, got %q", text)
	}
}

func TestOuterHTML(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	elem, _ := doc.FindElement(core.ClassName("fav"))
	markup, err := elem.OuterHTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if markup != `<li class="item fav">Banana</li>` {
		t.Errorf("unexpected markup %q", markup)
	}
}

func TestElementString(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	elem, _ := doc.FindElement(core.ClassName("fav"))
	want := "html > body:nth-child(2) > ul:nth-child(1) > li:nth-child(2)"
	if elem.String() != want {
		t.Errorf("expected %q, got %q", want, elem.String())
	}
}

func TestSetHTMLReflectsNewState(t *testing.T) {
	doc := mustParse(t, fruitsPage)

	old, _ := doc.FindElement(core.ClassName("fav"))

	if err := doc.SetHTML(`<ul><li class="item">Apple</li></ul>`); err != nil {
		t.Fatalf("set html: %v", err)
	}

	elems, _ := doc.FindElements(core.ClassName("item"))
	if len(elems) != 1 {
		t.Errorf("expected 1 item after change, got %d", len(elems))
	}
	if text, _ := old.Text(); text != "Banana" {
		t.Errorf("old handle should keep its page, got %q", text)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(fruitsPage), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elems, _ := doc.FindElements(core.TagName("li"))
	if len(elems) != 3 {
		t.Errorf("expected 3 elements, got %d", len(elems))
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Error("expected error for missing file")
	}
}
