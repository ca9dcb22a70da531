package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/juliet3570/afyajamii-client/internal/gateway"
	"github.com/juliet3570/afyajamii-client/internal/history"
	"github.com/juliet3570/afyajamii-client/internal/markup"
)

var (
	emphasis = color.New(color.Bold)

	severityColors = map[history.Severity]*color.Color{
		history.SeverityHigh:   color.New(color.FgRed, color.Bold),
		history.SeverityMedium: color.New(color.FgYellow, color.Bold),
		history.SeverityLow:    color.New(color.FgGreen, color.Bold),
	}
)

// renderMarkup writes advice text with ** spans in bold.
func renderMarkup(w io.Writer, text string) {
	for _, seg := range markup.Segments(text) {
		if seg.Emphasized {
			emphasis.Fprint(w, seg.Text)
		} else {
			fmt.Fprint(w, seg.Text)
		}
	}
}

func renderRiskLabel(w io.Writer, label string) {
	severityColors[history.Classify(label)].Fprint(w, label)
}

func renderAssessment(w io.Writer, a *gateway.RiskAssessment) {
	fmt.Fprintln(w, "Risk Assessment")
	fmt.Fprint(w, "  Risk level:  ")
	renderRiskLabel(w, a.MLOutput.RiskLabel)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Confidence:  %.1f%%\n", a.MLOutput.Probability*100)

	if len(a.MLOutput.FeatureImportances) > 0 {
		fmt.Fprintln(w, "  Key health indicators:")
		for _, imp := range a.MLOutput.FeatureImportances.Sorted() {
			fmt.Fprintf(w, "    %-16s %5.1f%%  %s\n", humanize(imp.Feature), imp.Weight*100, bar(imp.Weight))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "AI Health Advice")
	fmt.Fprint(w, "  ")
	renderMarkup(w, strings.ReplaceAll(a.LLMAdvice.Advice, "\n", "\n  "))
	fmt.Fprintln(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Note: this advice is AI-generated. Always consult your healthcare provider for medical decisions.")
}

func renderHistory(w io.Writer, res *history.Result) {
	fmt.Fprintln(w, "Vitals History")
	if len(res.Vitals) == 0 && res.VitalsErr == nil {
		fmt.Fprintln(w, "  No vitals submissions yet.")
	}
	for _, rec := range res.Vitals {
		renderVitalsRecord(w, rec)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversations")
	if len(res.Conversations) == 0 && res.ConversationsErr == nil {
		fmt.Fprintln(w, "  No conversations yet.")
	}
	for _, rec := range res.Conversations {
		renderConversationRecord(w, rec)
	}
}

func renderVitalsRecord(w io.Writer, rec gateway.VitalsRecord) {
	fmt.Fprintf(w, "\n  #%d  %s  ", rec.ID, formatTimestamp(rec.CreatedAt))
	renderRiskLabel(w, rec.RiskLabel)
	fmt.Fprintf(w, " (%.1f%%)\n", rec.Probability*100)
	fmt.Fprintf(w, "      age %d, bp %d/%d mmHg, sugar %.1f mmol/L, temp %.1f%s, heart rate %d bpm\n",
		rec.Age, rec.SystolicBP, rec.DiastolicBP, rec.BloodSugar, rec.BodyTemp, unitSymbol(rec.BodyTempUnit), rec.HeartRate)
	if rec.PatientHistory != "" {
		fmt.Fprintf(w, "      history: %s\n", rec.PatientHistory)
	}
}

func renderConversationRecord(w io.Writer, rec gateway.ConversationRecord) {
	fmt.Fprintf(w, "\n  #%d  %s\n", rec.ID, formatTimestamp(rec.CreatedAt))
	fmt.Fprintf(w, "      you: %s\n", rec.UserMessage)
	fmt.Fprint(w, "      ai:  ")
	renderMarkup(w, strings.ReplaceAll(rec.AIResponse, "\n", "\n           "))
	fmt.Fprintln(w)
}

func unitSymbol(unit gateway.TempUnit) string {
	if unit == gateway.UnitFahrenheit {
		return "°F"
	}
	return "°C"
}

func humanize(feature string) string {
	return strings.ReplaceAll(feature, "_", " ")
}

// bar is a proportional gauge for a 0-1 weight.
func bar(weight float64) string {
	const width = 20
	if weight < 0 {
		weight = 0
	}
	if weight > 1 {
		weight = 1
	}
	n := int(weight*width + 0.5)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// formatTimestamp renders a backend timestamp in local time, or returns the
// raw string when it is not RFC 3339.
func formatTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Local().Format("Jan 2, 2006 15:04")
		}
	}
	return ts
}
