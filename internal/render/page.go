package render

import "html/template"

var scanPage = template.Must(template.New("scan").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta http-equiv="Accept-CH" content="{{.AcceptCH}}">
  <title>{{.Title}}</title>
  <style>
    body { font-family: 'Segoe UI', Roboto, sans-serif; text-align: center; padding: 20px; background-color: #f5f5f5; }
    .container { background-color: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
    h1 { color: #2c3e50; }
    .info { color: #7f8c8d; }
  </style>
</head>
<body>
  <div class="container">
    <h1>{{.Title}}</h1>
    <p>{{.Message}}</p>
    <div class="info">
      <p><strong>Device:</strong> <span id="deviceModel">{{.Device}}</span></p>
      <p><strong>OS:</strong> {{.Data.OSName}} {{.Data.OSVersion}}</p>
      <p><strong>Browser:</strong> {{.Data.BrowserName}} {{.Data.BrowserVersion}}</p>
    </div>
  </div>
{{- if .AnalyticsScript}}
  <script>
    window.dataLayer = window.dataLayer || [];
    window.dataLayer.push({
      event: "qr_scan",
      slug: {{.Data.Slug}},
      deviceType: {{.Data.DeviceType}},
      osName: {{.Data.OSName}},
      browserName: {{.Data.BrowserName}}
    });
  </script>
{{- end}}
{{- if .ClientHintsScript}}
  <script>
    async function fetchDeviceModel() {
      if (!navigator.userAgentData) {
        return;
      }
      const values = await navigator.userAgentData.getHighEntropyValues(["model"]);
      const model = values.model || {{.UnknownDevice}};
      document.getElementById("deviceModel").innerText = model;
      fetch({{.UpdateURL}}, {
        method: "POST",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({ deviceModel: model })
      });
    }
    fetchDeviceModel();
  </script>
{{- end}}
</body>
</html>
`))
