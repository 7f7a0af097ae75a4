package report

import (
	"fmt"
	"strings"
	"time"
)

// WriteJUnit writes r as JUnit XML to path, one testcase per query.
func WriteJUnit(path string, r *Report) error {
	if err := atomicWriteFile(path, []byte(buildJUnitXML(r)), 0o644); err != nil {
		return fmt.Errorf("write junit xml: %w", err)
	}
	return nil
}

// buildJUnitXML builds the JUnit XML string for a report.
func buildJUnitXML(r *Report) string {
	totalTime := r.EndTime.Sub(r.StartTime).Seconds()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(fmt.Sprintf(
		`<testsuites tests="%d" failures="%d" errors="0" time="%.3f">`+"\n",
		r.Summary.Total, r.Summary.Failed, totalTime,
	))
	b.WriteString(fmt.Sprintf(
		`  <testsuite name="selene" tests="%d" failures="%d" errors="0" time="%.3f" timestamp="%s">`+"\n",
		r.Summary.Total, r.Summary.Failed, totalTime, r.StartTime.Format(time.RFC3339),
	))

	for _, res := range r.Results {
		b.WriteString(buildTestCase(res, r.Driver))
	}

	b.WriteString("  </testsuite>\n")
	b.WriteString("</testsuites>\n")
	return b.String()
}

// buildTestCase builds a single <testcase> element.
func buildTestCase(res Result, driver string) string {
	name := res.Query
	if name == "" {
		name = res.Description
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(
		`    <testcase name="%s" classname="%s" time="%.3f">`+"\n",
		xmlEscape(name), xmlEscape(driver), float64(res.DurationMs)/1000.0,
	))

	b.WriteString("      <properties>\n")
	b.WriteString(fmt.Sprintf(`        <property name="locator" value="%s"/>`+"\n", xmlEscape(res.Description)))
	if res.Session != "" {
		b.WriteString(fmt.Sprintf(`        <property name="session" value="%s"/>`+"\n", xmlEscape(res.Session)))
	}
	b.WriteString(fmt.Sprintf(`        <property name="elements" value="%d"/>`+"\n", len(res.Elements)))
	if res.CauseKind != "" {
		b.WriteString(fmt.Sprintf(`        <property name="cause" value="%s"/>`+"\n", xmlEscape(res.CauseKind)))
	}
	b.WriteString("      </properties>\n")

	if res.Status == StatusFailed {
		failureType := res.ErrorKind
		if failureType == "" {
			failureType = "ResolveError"
		}
		b.WriteString(fmt.Sprintf(
			`      <failure message="%s" type="%s">%s</failure>`+"\n",
			xmlEscape(firstLine(res.Error)), xmlEscape(failureType), xmlEscape(res.Error),
		))
	}

	b.WriteString("    </testcase>\n")
	return b.String()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// xmlEscape escapes special XML characters in a string.
func xmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
