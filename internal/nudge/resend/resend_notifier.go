// Package resend delivers nudges as e-mail through the Resend API.
package resend

import (
	"bytes"
	"html/template"

	"github.com/resend/resend-go/v2"
)

const DefaultFrom = "streaks@resend.dev"

type ResendNotifier struct {
	ApiKey string
	Email  string
	From   string
}

var emailTemplate = template.Must(template.New("email").Parse(`
<p>These streaks end at midnight unless you check in today ({{.Hours}} hours left):</p>
<ul>
{{range .Titles}}
  <li>{{.}}</li>
{{end}}
</ul>
`))

// Render builds the HTML body for a nudge.
func Render(titles []string, hoursLeft int) (string, error) {
	data := struct {
		Titles []string
		Hours  int
	}{
		Titles: titles,
		Hours:  hoursLeft,
	}
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ResendNotifier) SendNudge(titles []string, hoursLeft int) error {
	body, err := Render(titles, hoursLeft)
	if err != nil {
		return err
	}

	from := r.From
	if from == "" {
		from = DefaultFrom
	}
	client := resend.NewClient(r.ApiKey)
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{r.Email},
		Subject: "Streaks are expiring soon",
		Html:    body,
	}

	_, err = client.Emails.Send(params)
	return err
}
