package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleResults() []Result {
	return []Result{
		{
			Query:       "all:li >> text:Banana",
			Description: "(By.CssSelector: li).findBy(ExactText(Banana))",
			Status:      StatusPassed,
			Elements:    []Element{{Text: "Banana", HTML: "<li>Banana</li>"}},
			DurationMs:  12,
		},
		{
			Query:       "all:li >> text:Durian",
			Description: "(By.CssSelector: li).findBy(ExactText(Durian))",
			Status:      StatusFailed,
			Error:       "element was not found in collection by condition ExactText(Durian)\n  Actual visible texts : [Apple,Banana]",
			ErrorKind:   "NotFoundInCollection",
			DurationMs:  4000,
		},
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
	}{
		{StatusPending, false},
		{StatusRunning, false},
		{StatusPassed, true},
		{StatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.terminal {
				t.Errorf("Status(%q).IsTerminal() = %v, want %v", tt.status, got, tt.terminal)
			}
		})
	}
}

func TestNewSummary(t *testing.T) {
	now := time.Now()
	r := New("html", now, now.Add(time.Second), sampleResults())

	if r.Summary.Total != 2 || r.Summary.Passed != 1 || r.Summary.Failed != 1 {
		t.Errorf("unexpected summary %+v", r.Summary)
	}
	if r.Status != StatusFailed {
		t.Errorf("expected failed status, got %s", r.Status)
	}

	passed := New("html", now, now, sampleResults()[:1])
	if passed.Status != StatusPassed {
		t.Errorf("expected passed status, got %s", passed.Status)
	}
}

func TestWriteAndReadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	now := time.Now().UTC().Truncate(time.Second)
	r := New("html", now, now.Add(2*time.Second), sampleResults())

	if err := WriteJSON(path, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}

	got, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Results) != 2 || got.Results[1].ErrorKind != "NotFoundInCollection" {
		t.Errorf("unexpected results %+v", got.Results)
	}
	if !got.StartTime.Equal(now) {
		t.Errorf("expected start %v, got %v", now, got.StartTime)
	}
}

func TestReadJSONInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	os.WriteFile(path, []byte("{"), 0644)

	if _, err := ReadJSON(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestWriteJUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junit.xml")
	now := time.Now()
	r := New("html", now, now.Add(1500*time.Millisecond), sampleResults())

	if err := WriteJUnit(path, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	xml := string(data)

	for _, want := range []string{
		`<testsuites tests="2" failures="1" errors="0" time="1.500">`,
		`<testcase name="all:li &gt;&gt; text:Banana" classname="html" time="0.012">`,
		`type="NotFoundInCollection"`,
		`message="element was not found in collection by condition ExactText(Durian)"`,
		`<property name="elements" value="1"/>`,
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("expected %q in:\n%s", want, xml)
		}
	}
}

func TestBuildTestCaseCause(t *testing.T) {
	res := Result{
		Query:     "all:li >> text:Durian",
		Status:    StatusFailed,
		Error:     "timed out after 4s waiting for ...",
		ErrorKind: "WaitTimeout",
		CauseKind: "NotFoundInCollection",
	}
	xml := buildTestCase(res, "html")
	for _, want := range []string{
		`type="WaitTimeout"`,
		`<property name="cause" value="NotFoundInCollection"/>`,
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("expected %q in:\n%s", want, xml)
		}
	}

	res.CauseKind = ""
	if strings.Contains(buildTestCase(res, "html"), `name="cause"`) {
		t.Error("cause property written without a cause kind")
	}
}

func TestXMLEscape(t *testing.T) {
	got := xmlEscape(`<a href="x">&'`)
	want := "&lt;a href=&quot;x&quot;&gt;&amp;&apos;"
	if got != want {
		t.Errorf("xmlEscape = %q, want %q", got, want)
	}
}
