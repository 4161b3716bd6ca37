package mail

import (
	"bytes"
	"html/template"
	texttemplate "text/template"
)

type invitationEmailData struct {
	InviterName string
	Role        string
	Department  string
	Message     string
	AcceptURL   string
	ExpiresAt   string
}

type renderedEmail struct {
	Text string
	HTML string
}

var invitationHTML = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2933;">
  <h2>You're invited to ProjectHub</h2>
  <p>{{.InviterName}} invited you to join ProjectHub as a <strong>{{.Role}}</strong>{{if .Department}} in {{.Department}}{{end}}.</p>
  {{if .Message}}<blockquote style="border-left: 3px solid #d3dce6; padding-left: 12px; color: #52606d;">{{.Message}}</blockquote>{{end}}
  <p><a href="{{.AcceptURL}}" style="background: #2f6fed; color: #fff; padding: 10px 18px; border-radius: 4px; text-decoration: none;">Accept invitation</a></p>
  <p style="color: #7b8794; font-size: 13px;">This invitation expires on {{.ExpiresAt}}. If the button doesn't work, open this link:<br>{{.AcceptURL}}</p>
</body>
</html>
`))

var invitationText = texttemplate.Must(texttemplate.New("invitation").Parse(
	`{{.InviterName}} invited you to join ProjectHub as a {{.Role}}{{if .Department}} in {{.Department}}{{end}}.
{{if .Message}}
"{{.Message}}"
{{end}}
Accept the invitation: {{.AcceptURL}}

This invitation expires on {{.ExpiresAt}}.
`))

func renderInvitationEmail(data invitationEmailData) (renderedEmail, error) {
	var html bytes.Buffer
	if err := invitationHTML.Execute(&html, data); err != nil {
		return renderedEmail{}, err
	}

	var text bytes.Buffer
	if err := invitationText.Execute(&text, data); err != nil {
		return renderedEmail{}, err
	}

	return renderedEmail{Text: text.String(), HTML: html.String()}, nil
}
