package report

// resultTemplate is the printable result sheet. Rendered server-side and
// printed to PDF through headless Chrome.
const resultTemplate = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #111; margin: 40px; }
  h1 { font-size: 20px; text-align: center; margin-bottom: 2px; }
  .subtitle { text-align: center; font-size: 12px; margin-bottom: 18px; }
  hr { border: none; border-top: 1px solid #333; margin-bottom: 24px; }
  .meta { font-size: 12px; line-height: 1.7; }
  .scorebox { float: right; border: 2px solid #4f46e5; border-radius: 6px;
              padding: 12px 28px; text-align: center; background: #f9fafb; }
  .scorebox .label { font-size: 11px; font-weight: bold; }
  .scorebox .value { font-size: 30px; font-weight: bold; color: #4f46e5; }
  table { width: 100%; border-collapse: collapse; margin-top: 28px; font-size: 11px; }
  th { background: #4f46e5; color: #fff; padding: 7px; }
  td { border: 1px solid #999; padding: 7px; }
  td.num { text-align: center; font-weight: bold; }
  .summary { margin-top: 20px; font-size: 12px; font-style: italic; }
  .footer { position: fixed; bottom: 16px; left: 0; right: 0; text-align: center;
            font-size: 9px; color: #888; }
</style>
</head>
<body>
  <h1>LAPORAN HASIL QUIZ KOMPETENSI</h1>
  <div class="subtitle">FICO TEMPO SURABAYA</div>
  <hr>

  <div class="scorebox">
    <div class="label">SKOR AKHIR</div>
    <div class="value">{{.FinalScore}}</div>
  </div>

  <div class="meta">
    <strong>INFORMASI PESERTA</strong><br>
    Nama Lengkap&nbsp;: {{.FullName}}<br>
    Email / No.Telp&nbsp;: {{.Contact}}<br>
    Waktu Cetak&nbsp;: {{.PrintedAt}}
  </div>

  <table>
    <thead>
      <tr><th>Aspek Penilaian</th><th>Skor</th><th>Skor Maksimal</th></tr>
    </thead>
    <tbody>
      {{range .Categories}}
      <tr><td>{{.Label}}</td><td class="num">{{.Score}}</td><td class="num">{{.FullMark}}</td></tr>
      {{end}}
      <tr><td><strong>Status Kelulusan</strong></td><td class="num" colspan="2">{{.Verdict}}</td></tr>
    </tbody>
  </table>

  <div class="summary">{{.Summary}}</div>

  <div class="footer">
    Dokumen ini sah dihasilkan oleh Sistem Shipment Tracker Fico Tempo Surabaya secara digital.
  </div>
</body>
</html>`
