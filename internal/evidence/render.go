package evidence

import (
	"bytes"
	"html/template"
	"strings"
)

// Render produces the printable HTML report. The layout targets the
// browser's print-to-PDF flow: each section is a page with a forced
// break after it.
func Render(pkg Package) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, pkg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"formatDate": FormatDate,
	"lower":      strings.ToLower,
}).Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Evidence Report - {{.CaseID}}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: 'Inter', sans-serif; font-size: 11pt; line-height: 1.6; color: #1a1a1a; background: white; }
  .page { max-width: 8.5in; margin: 0 auto; padding: 0.75in; page-break-after: always; }
  .page:last-child { page-break-after: avoid; }
  h1, h2, h3 { font-family: 'Space Grotesk', sans-serif; }
  h1 { font-size: 24pt; margin-bottom: 0.5em; }
  h2 { font-size: 16pt; margin: 1.5em 0 0.5em; border-bottom: 2px solid #6246EA; padding-bottom: 0.25em; }
  .cover { display: flex; flex-direction: column; justify-content: center; align-items: center; min-height: 9in; text-align: center; }
  .cover .logo { width: 80px; height: 80px; background: linear-gradient(135deg, #E9622D, #6246EA); border-radius: 16px; margin-bottom: 1em; }
  .cover h1 { font-size: 32pt; margin-bottom: 0.25em; }
  .cover .subtitle { font-size: 14pt; color: #666; margin-bottom: 2em; }
  .cover .case-info { background: #f5f5f5; padding: 1.5em 2em; border-radius: 8px; margin: 1em 0; }
  .cover .case-info p { margin: 0.5em 0; }
  .cover .confidential { margin-top: 2em; padding: 0.5em 1em; border: 2px solid #E9622D; color: #E9622D; font-weight: 600; text-transform: uppercase; letter-spacing: 0.1em; }
  .summary-box { background: #f8f8ff; border-left: 4px solid #6246EA; padding: 1em; margin: 1em 0; }
  .stat-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1em; margin: 1em 0; }
  .stat { background: #f5f5f5; padding: 1em; border-radius: 8px; text-align: center; }
  .stat .value { font-size: 24pt; font-weight: 700; color: #6246EA; }
  .stat .label { font-size: 9pt; color: #666; text-transform: uppercase; }
  .timeline-item { display: flex; gap: 1em; padding: 1em 0; border-bottom: 1px solid #eee; }
  .timeline-item .date { width: 120px; flex-shrink: 0; font-size: 9pt; color: #666; }
  .timeline-item.concern { background: #fff5f5; margin: 0 -1em; padding: 1em; }
  .timeline-item.concern .event { color: #c00; }
  .evidence-card { border: 1px solid #ddd; border-radius: 8px; padding: 1em; margin: 1em 0; page-break-inside: avoid; }
  .evidence-card .header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 0.5em; }
  .evidence-card .type { font-size: 9pt; padding: 0.25em 0.5em; background: #6246EA; color: white; border-radius: 4px; text-transform: uppercase; }
  .risk-badge { font-size: 9pt; padding: 0.25em 0.5em; border-radius: 4px; font-weight: 600; }
  .risk-badge.high { background: #fee; color: #c00; }
  .risk-badge.medium { background: #fff8e0; color: #a50; }
  .risk-badge.low { background: #e8f5e9; color: #2e7d32; }
  .checksum { font-family: monospace; font-size: 9pt; color: #666; background: #f5f5f5; padding: 0.25em 0.5em; border-radius: 4px; }
  .footer { margin-top: 2em; padding-top: 1em; border-top: 1px solid #ddd; font-size: 9pt; color: #666; text-align: center; }
  .appendix-section { background: #f9f9f9; padding: 1em; margin: 1em 0; border-radius: 8px; }
  .appendix-section h4 { margin-bottom: 0.5em; color: #6246EA; }
  ul { margin-left: 1.5em; }
  li { margin: 0.5em 0; }
  @media print {
    body { print-color-adjust: exact; -webkit-print-color-adjust: exact; }
    .page { padding: 0.5in; }
  }
</style>
</head>
<body>
<div class="page cover">
  <div class="logo"></div>
  <h1>Evidence Report</h1>
  <p class="subtitle">TruthSeeker Forensic Analysis Platform</p>
  <div class="case-info">
    <p><strong>Case Reference:</strong> {{.CaseID}}</p>
    <p><strong>Generated:</strong> {{formatDate .GeneratedAt}}</p>
    <p><strong>Total Evidence Items:</strong> {{.Stats.TotalItems}}</p>
  </div>
  <p class="confidential">Confidential - For Law Enforcement Use</p>
  <div style="margin-top: 3em; font-size: 10pt; color: #666;">
    <p>This report was generated using TruthSeeker by VVV Digitals.</p>
    <p>All analysis performed using AI forensic tools.</p>
  </div>
</div>
<div class="page">
  <h2>Executive Summary</h2>
  <div class="summary-box"><p>{{.OverallAssessment}}</p></div>
  <div class="stat-grid">
    <div class="stat">
      <div class="value">{{.Stats.TotalItems}}</div>
      <div class="label">Evidence Items</div>
    </div>
    <div class="stat">
      <div class="value" style="color: #c00;">{{.Stats.HighRiskCount}}</div>
      <div class="label">High Risk Findings</div>
    </div>
    <div class="stat">
      <div class="value" style="color: #a50;">{{.Stats.MediumRiskCount}}</div>
      <div class="label">Medium Risk Findings</div>
    </div>
  </div>
  <h2>Evidence Timeline</h2>
  {{range .Timeline}}
  <div class="timeline-item{{if .IsConcern}} concern{{end}}">
    <div class="date">{{.Date}}</div>
    <div class="event">{{.Event}}</div>
  </div>
  {{end}}
</div>
<div class="page">
  <h2>Detailed Evidence</h2>
  {{range .Items}}
  <div class="evidence-card">
    <div class="header">
      <div>
        <span class="type">{{.Type}}</span>
        <strong style="margin-left: 0.5em;">{{.Title}}</strong>
      </div>
      {{if .RiskLevel}}<span class="risk-badge {{lower .RiskLevel}}">{{.RiskLevel}} RISK</span>{{end}}
    </div>
    <p style="font-size: 10pt; color: #666; margin-bottom: 0.5em;">{{formatDate .Date}}</p>
    <p>{{.Summary}}</p>
    {{if .Checksum}}<p style="margin-top: 0.5em;"><span class="checksum">Checksum: {{.Checksum}}</span></p>{{end}}
  </div>
  {{end}}
</div>
<div class="page">
  <h2>Appendix</h2>
  <div class="appendix-section">
    <h4>How to Report Online Fraud</h4>
    <ul>
      <li><strong>IC3 (FBI Internet Crime Complaint Center):</strong> ic3.gov - For all internet-related crimes</li>
      <li><strong>FTC (Federal Trade Commission):</strong> reportfraud.ftc.gov - Consumer fraud reports</li>
      <li><strong>Local Police:</strong> File a report with your local law enforcement</li>
      <li><strong>Platform Reporting:</strong> Report the account on the platform where contact occurred</li>
    </ul>
  </div>
  <div class="appendix-section">
    <h4>Evidence Integrity</h4>
    <p>All evidence items include checksums generated at the time of analysis. These can be used to verify that evidence has not been modified since collection.</p>
  </div>
  <div class="appendix-section">
    <h4>Analysis Methodology</h4>
    <p>TruthSeeker uses AI-powered forensic analysis to detect:</p>
    <ul>
      <li>Image manipulation and AI-generated content</li>
      <li>Deepfake video detection</li>
      <li>Voice synthesis and audio manipulation</li>
      <li>Behavioral patterns indicating fraud</li>
    </ul>
    <p style="margin-top: 0.5em; font-size: 10pt; color: #666;">Note: AI analysis provides indicators and should be considered alongside other evidence.</p>
  </div>
  <div class="footer">
    <p>Generated by TruthSeeker | VVV Digitals LLC</p>
    <p>This report is intended for informational purposes and to assist in reporting potential fraud.</p>
  </div>
</div>
</body>
</html>
`
