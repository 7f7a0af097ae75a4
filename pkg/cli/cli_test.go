package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devicelab-dev/selene/pkg/report"
)

const fruitsHTML = `<html><body>
<ul id="fruits"><li>Apple</li><li>Banana</li><li>Cherry</li></ul>
</body></html>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"selene"}, args...))
	return out.String(), err
}

func TestDescribe(t *testing.T) {
	out, err := runApp(t, "describe", "el:#fruits >> all:li >> text:Banana", "all:li >> index:1")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	want := "((By.CssSelector: #fruits).findAllInner(By.CssSelector: li)).findBy(ExactText(Banana))\n" +
		"(By.CssSelector: li)[1]\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestDescribeInvalidChain(t *testing.T) {
	if _, err := runApp(t, "describe", "index:1"); err == nil {
		t.Fatal("expected error for index without a collection")
	}
	if _, err := runApp(t, "describe"); err == nil {
		t.Fatal("expected error without arguments")
	}
}

func TestFind(t *testing.T) {
	page := writeFile(t, "page.html", fruitsHTML)

	out, err := runApp(t, "--html", page, "--timeout", "200", "--poll-interval", "10",
		"find", "all:#fruits li >> filter:an")
	if err != nil {
		t.Fatalf("find: %v\n%s", err, out)
	}
	if !strings.Contains(out, "PASS") || !strings.Contains(out, "0. Banana") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "1 queries: 1 passed, 0 failed") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestFindFailure(t *testing.T) {
	page := writeFile(t, "page.html", fruitsHTML)

	out, err := runApp(t, "--html", page, "--timeout", "50", "--poll-interval", "10",
		"find", "all:#fruits li >> text:Durian")
	if err == nil {
		t.Fatal("expected error for a failing query")
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "[Apple,Banana,Cherry]") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestFindNeedsOneChain(t *testing.T) {
	page := writeFile(t, "page.html", fruitsHTML)
	if _, err := runApp(t, "--html", page, "find", "el:ul", "el:li"); err == nil {
		t.Fatal("expected error for two chains")
	}
}

func TestBatchWritesReports(t *testing.T) {
	page := writeFile(t, "page.html", fruitsHTML)
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	junitPath := filepath.Join(dir, "junit.xml")

	_, err := runApp(t, "--html", page, "--timeout", "50", "--poll-interval", "10",
		"--report", jsonPath, "--junit", junitPath,
		"batch", "--workers", "3", "el:#fruits", "all:li >> index:2", "all:li >> index:7")
	if err == nil || !strings.Contains(err.Error(), "1 of 3 queries failed") {
		t.Fatalf("batch error = %v", err)
	}

	rep, err := report.ReadJSON(jsonPath)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if rep.Summary.Total != 3 || rep.Summary.Passed != 2 || rep.Summary.Failed != 1 {
		t.Errorf("summary = %+v", rep.Summary)
	}
	if rep.Results[1].Elements[0].Text != "Cherry" {
		t.Errorf("results[1] = %+v", rep.Results[1])
	}
	if rep.Results[2].ErrorKind != "WaitTimeout" {
		t.Errorf("results[2].ErrorKind = %q", rep.Results[2].ErrorKind)
	}

	junit, err := os.ReadFile(junitPath)
	if err != nil {
		t.Fatalf("read junit: %v", err)
	}
	if !strings.Contains(string(junit), `failures="1"`) {
		t.Errorf("junit missing failure count:\n%s", junit)
	}
}

func TestBatchRejectsZeroWorkers(t *testing.T) {
	page := writeFile(t, "page.html", fruitsHTML)
	if _, err := runApp(t, "--html", page, "batch", "--workers", "0", "el:ul"); err == nil {
		t.Fatal("expected error for zero workers")
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	page := writeFile(t, "page.html", fruitsHTML)
	cfgPath := writeFile(t, "selene.yaml", "driver: html\nhtml:\n  - "+page+"\ntimeout: 50\npollInterval: 10\n")

	out, err := runApp(t, "--config", cfgPath, "find", "all:li >> has:err")
	if err != nil {
		t.Fatalf("find with config: %v\n%s", err, out)
	}
	if !strings.Contains(out, "0. Cherry") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := runApp(t, "--config", cfgPath, "--driver", "carrier-pigeon", "find", "el:ul"); err == nil {
		t.Fatal("expected validation error for unknown driver")
	}
}

func TestMissingDocument(t *testing.T) {
	_, err := runApp(t, "--html", filepath.Join(t.TempDir(), "absent.html"), "find", "el:ul")
	if err == nil {
		t.Fatal("expected error for a missing document")
	}
}
