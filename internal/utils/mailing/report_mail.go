package mailing

import (
	"bytes"
	"html/template"
	"strings"
)

var reportMailTemplate = template.Must(template.New("report").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Sehat</h2>
  {{if .Analyzed}}
  <p>Your report <strong>{{.FileName}}</strong> has been uploaded and analyzed.</p>
  <p>Aap ki report ka khulasa English aur Roman Urdu dono me tayyar hai.</p>
  {{else}}
  <p>Your report <strong>{{.FileName}}</strong> has been saved, but the analysis did not complete.</p>
  <p>Report upload ho gayi lekin analysis pending hai. Dashboard se dobara try karein.</p>
  {{end}}
  {{if .Link}}<p><a href="{{.Link}}">Open report</a></p>{{end}}
</body>
</html>`))

// ReportProcessedMail renders the notification sent when an upload finishes.
func ReportProcessedMail(appURL, reportID, fileName string, analyzed bool) (string, string, error) {
	subject := "Your medical report is ready"
	if !analyzed {
		subject = "Your medical report was saved"
	}

	var link string
	if appURL != "" {
		link = strings.TrimRight(appURL, "/") + "/reports/" + reportID
	}

	var body bytes.Buffer
	err := reportMailTemplate.Execute(&body, struct {
		FileName string
		Link     string
		Analyzed bool
	}{fileName, link, analyzed})
	if err != nil {
		return "", "", err
	}

	return subject, body.String(), nil
}
