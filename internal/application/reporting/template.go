package reporting

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Molecular Screening Report</title>
<style>
  body { font-family: "Segoe UI", Arial, sans-serif; background: #f4f6f8; margin: 0; padding: 24px; color: #2c3e50; }
  .container { max-width: 760px; margin: 0 auto; background: #fff; border-radius: 8px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); }
  h1 { font-size: 1.5em; border-bottom: 2px solid #3498db; padding-bottom: 8px; }
  h2 { font-size: 1.1em; color: #34495e; margin-top: 28px; }
  table { border-collapse: collapse; width: 100%; margin-top: 8px; }
  th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #ecf0f1; }
  th { color: #7f8c8d; font-weight: 600; }
  .pass { color: #27ae60; font-weight: 600; }
  .fail { color: #c0392b; font-weight: 600; }
  .smiles { font-family: "Consolas", monospace; background: #ecf0f1; padding: 2px 6px; border-radius: 4px; }
  .meta { margin-top: 32px; font-size: 0.8em; color: #95a5a6; }
</style>
</head>
<body>
<div class="container">
  <h1>Molecular Screening Report</h1>
  {{if .Name}}<p><strong>{{.Name}}</strong></p>{{end}}
  <p>SMILES: <span class="smiles">{{.SMILES}}</span></p>

  <h2>Molecular Properties</h2>
  <table>
    <tr><th>Molecular Weight</th><td>{{printf "%.2f" .Properties.MW}} g/mol</td></tr>
    <tr><th>LogP</th><td>{{printf "%.2f" .Properties.LogP}}</td></tr>
    <tr><th>H-Bond Donors</th><td>{{.Properties.HBD}}</td></tr>
    <tr><th>H-Bond Acceptors</th><td>{{.Properties.HBA}}</td></tr>
    <tr><th>TPSA</th><td>{{printf "%.2f" .Properties.TPSA}}</td></tr>
    <tr><th>Rotatable Bonds</th><td>{{.Properties.RotatableBonds}}</td></tr>
    <tr><th>Aromatic Rings</th><td>{{.Properties.AromaticRings}}</td></tr>
  </table>

  <h2>Lipinski's Rule of Five</h2>
  <table>
    <tr><th>MW &le; 500</th><td class="{{if .Lipinski.MWOk}}pass{{else}}fail{{end}}">{{if .Lipinski.MWOk}}PASS{{else}}FAIL{{end}}</td></tr>
    <tr><th>LogP &le; 5</th><td class="{{if .Lipinski.LogPOk}}pass{{else}}fail{{end}}">{{if .Lipinski.LogPOk}}PASS{{else}}FAIL{{end}}</td></tr>
    <tr><th>HBD &le; 5</th><td class="{{if .Lipinski.HBDOk}}pass{{else}}fail{{end}}">{{if .Lipinski.HBDOk}}PASS{{else}}FAIL{{end}}</td></tr>
    <tr><th>HBA &le; 10</th><td class="{{if .Lipinski.HBAOk}}pass{{else}}fail{{end}}">{{if .Lipinski.HBAOk}}PASS{{else}}FAIL{{end}}</td></tr>
    <tr><th>Overall</th><td class="{{if .Lipinski.Passes}}pass{{else}}fail{{end}}">{{if .Lipinski.Passes}}PASSES{{else}}FAILS{{end}}</td></tr>
  </table>

  <h2>Veber Rules</h2>
  <table>
    <tr><th>TPSA &le; 140</th><td class="{{if .Veber.TPSAOk}}pass{{else}}fail{{end}}">{{if .Veber.TPSAOk}}PASS{{else}}FAIL{{end}}</td></tr>
    <tr><th>Rotatable Bonds &le; 10</th><td class="{{if .Veber.RotBondsOk}}pass{{else}}fail{{end}}">{{if .Veber.RotBondsOk}}PASS{{else}}FAIL{{end}}</td></tr>
  </table>

  <h2>ADMET</h2>
  <table>
    <tr><th>Caco-2 Permeability</th><td>{{.ADMET.Absorption.Caco2Class}}</td></tr>
    <tr><th>BBB Penetrant</th><td>{{if .ADMET.Distribution.BBBPenetrant}}yes{{else}}no{{end}}</td></tr>
    <tr><th>Vd Class</th><td>{{.ADMET.Distribution.VdClass}}</td></tr>
    <tr><th>Renal Clearance</th><td>{{.ADMET.Excretion.RenalClearance}}</td></tr>
    <tr><th>Overall Score</th><td>{{printf "%.2f" .ADMET.OverallScore}}</td></tr>
  </table>

  {{with .Solubility}}
  <h2>Solubility Prediction</h2>
  <table>
    <tr><th>LogS</th><td>{{printf "%.2f" .LogS}}</td></tr>
    <tr><th>Solubility</th><td>{{printf "%.4f" .MgPerML}} mg/mL</td></tr>
    <tr><th>Interpretation</th><td>{{.Interpretation}}</td></tr>
  </table>
  {{end}}

  <p class="meta">Generated by {{.Metadata.Generator}} v{{.Metadata.Version}} at {{.Metadata.Timestamp}}</p>
</div>
</body>
</html>
`
