// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"context"
	"html/template"
	"strconv"
	"strings"

	"github.com/dalemusser/stratatrips/internal/domain/models"
)

// EnquiryEmailData contains the data for a new enquiry notification.
type EnquiryEmailData struct {
	AppName     string
	FullName    string
	Email       string
	Phone       string // country code and number, e.g. "+91 9876543210"
	Package     string // slug or id, optional
	StartDate   string // formatted, optional
	Travellers  string // e.g. "2 adults, 1 child"
	Budget      string
	Message     string
	Source      string
	SubmittedAt string
}

// ChatCallbackData contains the data for a chat callback request.
type ChatCallbackData struct {
	AppName     string
	SessionID   string
	Name        string
	Email       string
	Phone       string
	LastMessage string
}

// EnquiryNotification emails the notify address about a new enquiry.
func (m *Mailer) EnquiryNotification(ctx context.Context, e *models.Enquiry) error {
	if e == nil {
		return nil
	}
	data := EnquiryData(m.appName(), e)
	text, html := EnquiryEmail(data)
	return m.Send(ctx, Email{
		To:       m.notifyTo,
		Subject:  "New enquiry from " + data.FullName,
		TextBody: text,
		HTMLBody: html,
	})
}

// ChatCallback emails the notify address when a chat visitor leaves contact details.
func (m *Mailer) ChatCallback(ctx context.Context, data ChatCallbackData) error {
	if data.AppName == "" {
		data.AppName = m.appName()
	}
	text, html := ChatCallbackEmail(data)
	return m.Send(ctx, Email{
		To:       m.notifyTo,
		Subject:  "Chat callback request",
		TextBody: text,
		HTMLBody: html,
	})
}

func (m *Mailer) appName() string {
	if m != nil && m.fromName != "" {
		return m.fromName
	}
	return "StrataTrips"
}

// EnquiryData flattens an enquiry into display strings.
func EnquiryData(appName string, e *models.Enquiry) EnquiryEmailData {
	d := EnquiryEmailData{
		AppName:     appName,
		FullName:    e.FullName,
		Email:       e.Email,
		Phone:       strings.TrimSpace(e.CountryCode + " " + e.Phone),
		Package:     e.PackageSlug,
		Travellers:  travellers(e.NumberOfAdults, e.NumberOfChildren),
		Budget:      e.Budget,
		Message:     e.Message,
		Source:      e.Source,
		SubmittedAt: e.CreatedAt.UTC().Format("2006-01-02 15:04 MST"),
	}
	if d.Package == "" && e.PackageID != nil {
		d.Package = e.PackageID.Hex()
	}
	if e.PreferredStartDate != nil {
		d.StartDate = e.PreferredStartDate.Format("2006-01-02")
	}
	return d
}

func travellers(adults, children int) string {
	s := plural(adults, "adult", "adults")
	if children > 0 {
		s += ", " + plural(children, "child", "children")
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

// EnquiryEmail generates both plain text and HTML versions of an enquiry notification.
func EnquiryEmail(data EnquiryEmailData) (textBody, htmlBody string) {
	var b strings.Builder
	b.WriteString("A new enquiry was submitted on " + data.AppName + ".\n\n")
	line(&b, "Name", data.FullName)
	line(&b, "Email", data.Email)
	line(&b, "Phone", data.Phone)
	line(&b, "Package", data.Package)
	line(&b, "Preferred start", data.StartDate)
	line(&b, "Travellers", data.Travellers)
	line(&b, "Budget", data.Budget)
	line(&b, "Source", data.Source)
	line(&b, "Submitted", data.SubmittedAt)
	if data.Message != "" {
		b.WriteString("\nMessage:\n" + data.Message + "\n")
	}
	textBody = b.String()

	var buf bytes.Buffer
	enquiryHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

// ChatCallbackEmail generates both plain text and HTML versions of a chat callback request.
func ChatCallbackEmail(data ChatCallbackData) (textBody, htmlBody string) {
	var b strings.Builder
	b.WriteString("A visitor left contact details in the " + data.AppName + " chat.\n\n")
	line(&b, "Name", data.Name)
	line(&b, "Email", data.Email)
	line(&b, "Phone", data.Phone)
	line(&b, "Session", data.SessionID)
	if data.LastMessage != "" {
		b.WriteString("\nLast message:\n" + data.LastMessage + "\n")
	}
	textBody = b.String()

	var buf bytes.Buffer
	chatCallbackHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

// line writes "label: value" when value is set.
func line(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(label + ": " + value + "\n")
}

const htmlHead = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.AppName}}</h1>
            </td>
          </tr>`

const htmlFoot = `
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const rowTmpl = `{{define "row"}}{{if .V}}<tr><td style="padding: 4px 12px 4px 0; font-size: 14px; color: #71717a; white-space: nowrap;">{{.K}}</td><td style="padding: 4px 0; font-size: 14px; color: #18181b;">{{.V}}</td></tr>{{end}}{{end}}`

var tmplFuncs = template.FuncMap{
	"kv": func(k, v string) map[string]string { return map[string]string{"K": k, "V": v} },
}

var enquiryHTMLTmpl = template.Must(template.New("enquiry").Funcs(tmplFuncs).Parse(rowTmpl + htmlHead + `
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">New Enquiry</h2>
              <table role="presentation" cellspacing="0" cellpadding="0">
                {{template "row" kv "Name" .FullName}}
                {{template "row" kv "Email" .Email}}
                {{template "row" kv "Phone" .Phone}}
                {{template "row" kv "Package" .Package}}
                {{template "row" kv "Preferred start" .StartDate}}
                {{template "row" kv "Travellers" .Travellers}}
                {{template "row" kv "Budget" .Budget}}
                {{template "row" kv "Source" .Source}}
                {{template "row" kv "Submitted" .SubmittedAt}}
              </table>
              {{if .Message}}<p style="margin: 24px 0 0 0; font-size: 15px; line-height: 1.6; color: #52525b; white-space: pre-wrap;">{{.Message}}</p>{{end}}
            </td>
          </tr>` + htmlFoot))

var chatCallbackHTMLTmpl = template.Must(template.New("chat_callback").Funcs(tmplFuncs).Parse(rowTmpl + htmlHead + `
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">Callback Request</h2>
              <table role="presentation" cellspacing="0" cellpadding="0">
                {{template "row" kv "Name" .Name}}
                {{template "row" kv "Email" .Email}}
                {{template "row" kv "Phone" .Phone}}
                {{template "row" kv "Session" .SessionID}}
              </table>
              {{if .LastMessage}}<p style="margin: 24px 0 0 0; font-size: 15px; line-height: 1.6; color: #52525b; white-space: pre-wrap;">{{.LastMessage}}</p>{{end}}
            </td>
          </tr>` + htmlFoot))
