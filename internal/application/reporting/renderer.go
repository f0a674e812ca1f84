// Package reporting renders screening reports as plain text, JSON, or HTML.
package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/molscreen/molscreen/internal/application/screening"
	"github.com/molscreen/molscreen/pkg/errors"
)

// Format selects the report output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", errors.Newf(errors.ErrCodeReportFormatUnsupported,
		"unsupported report format %q, want text, json, or html", s)
}

// Renderer renders screening reports.  It is stateless and safe for
// concurrent use.
type Renderer struct {
	htmlTmpl *template.Template
}

// NewRenderer parses the embedded HTML template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report").Parse(htmlReportTemplate)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReportRenderFailed, "parse report template")
	}
	return &Renderer{htmlTmpl: tmpl}, nil
}

// Render produces the report in the requested format.
func (r *Renderer) Render(report *screening.Report, format Format) (string, error) {
	switch format {
	case FormatText:
		return r.renderText(report), nil
	case FormatJSON:
		return r.renderJSON(report)
	case FormatHTML:
		return r.renderHTML(report)
	}
	return "", errors.Newf(errors.ErrCodeReportFormatUnsupported,
		"unsupported report format %q", format)
}

// RenderBatch produces one document for a batch result.  Text output
// concatenates the per-molecule reports; JSON emits the whole result.
func (r *Renderer) RenderBatch(result *screening.BatchResult, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCodeReportRenderFailed, "marshal batch result")
		}
		return string(data), nil
	case FormatText:
		var sb strings.Builder
		for _, report := range result.Reports {
			sb.WriteString(r.renderText(report))
			sb.WriteString("\n")
		}
		if len(result.Skipped) > 0 {
			sb.WriteString(fmt.Sprintf("Skipped %d invalid molecule(s):\n", len(result.Skipped)))
			for _, sk := range result.Skipped {
				sb.WriteString(fmt.Sprintf("  %s: %s\n", sk.SMILES, sk.Error))
			}
		}
		return sb.String(), nil
	}
	return "", errors.Newf(errors.ErrCodeReportFormatUnsupported,
		"unsupported batch report format %q, want text or json", format)
}

func (r *Renderer) renderJSON(report *screening.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeReportRenderFailed, "marshal report")
	}
	return string(data), nil
}

func pass(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func (r *Renderer) renderText(report *screening.Report) string {
	rule := strings.Repeat("=", 60)
	var sb strings.Builder
	sb.WriteString(rule + "\n")
	sb.WriteString("MOLECULAR SCREENING REPORT\n")
	sb.WriteString(rule + "\n\n")
	if report.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:   %s\n", report.Name))
	}
	sb.WriteString(fmt.Sprintf("SMILES: %s\n", report.SMILES))

	p := report.Properties
	sb.WriteString("\n--- Molecular Properties ---\n")
	sb.WriteString(fmt.Sprintf("  Molecular Weight:  %.2f g/mol\n", p.MW))
	sb.WriteString(fmt.Sprintf("  LogP:              %.2f\n", p.LogP))
	sb.WriteString(fmt.Sprintf("  H-Bond Donors:     %d\n", p.HBD))
	sb.WriteString(fmt.Sprintf("  H-Bond Acceptors:  %d\n", p.HBA))
	sb.WriteString(fmt.Sprintf("  TPSA:              %.2f\n", p.TPSA))
	sb.WriteString(fmt.Sprintf("  Rotatable Bonds:   %d\n", p.RotatableBonds))

	lip := report.Lipinski
	sb.WriteString("\n--- Lipinski's Rule of Five ---\n")
	sb.WriteString(fmt.Sprintf("  MW <= 500:    %s (%.2f)\n", pass(lip.MWOk), p.MW))
	sb.WriteString(fmt.Sprintf("  LogP <= 5:    %s (%.2f)\n", pass(lip.LogPOk), p.LogP))
	sb.WriteString(fmt.Sprintf("  HBD <= 5:     %s (%d)\n", pass(lip.HBDOk), p.HBD))
	sb.WriteString(fmt.Sprintf("  HBA <= 10:    %s (%d)\n", pass(lip.HBAOk), p.HBA))
	if lip.Passes {
		sb.WriteString("\n  Overall: PASSES Lipinski's Rule of Five\n")
	} else {
		sb.WriteString("\n  Overall: FAILS Lipinski's Rule of Five\n")
	}

	veb := report.Veber
	sb.WriteString("\n--- Veber Rules ---\n")
	sb.WriteString(fmt.Sprintf("  TPSA <= 140:            %s (%.2f)\n", pass(veb.TPSAOk), p.TPSA))
	sb.WriteString(fmt.Sprintf("  Rotatable Bonds <= 10:  %s (%d)\n", pass(veb.RotBondsOk), p.RotatableBonds))

	admet := report.ADMET
	sb.WriteString("\n--- ADMET (rule-based) ---\n")
	sb.WriteString(fmt.Sprintf("  Caco-2 Permeability:  %s\n", admet.Absorption.Caco2Class))
	sb.WriteString(fmt.Sprintf("  BBB Penetrant:        %t\n", admet.Distribution.BBBPenetrant))
	sb.WriteString(fmt.Sprintf("  Vd Class:             %s\n", admet.Distribution.VdClass))
	sb.WriteString(fmt.Sprintf("  Renal Clearance:      %s\n", admet.Excretion.RenalClearance))
	sb.WriteString(fmt.Sprintf("  Overall Score:        %.2f\n", admet.OverallScore))

	if sol := report.Solubility; sol != nil {
		sb.WriteString("\n--- Solubility Prediction ---\n")
		sb.WriteString(fmt.Sprintf("  LogS:             %.2f\n", sol.LogS))
		sb.WriteString(fmt.Sprintf("  Solubility:       %.4f mg/mL\n", sol.MgPerML))
		sb.WriteString(fmt.Sprintf("  Interpretation:   %s\n", sol.Interpretation))
	}

	sb.WriteString("\n" + rule + "\n")
	return sb.String()
}

func (r *Renderer) renderHTML(report *screening.Report) (string, error) {
	var buf bytes.Buffer
	if err := r.htmlTmpl.Execute(&buf, report); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeReportRenderFailed, "execute report template")
	}
	return buf.String(), nil
}
