package worker

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/hamishnash1-tech/City-Uni-Club/pkg/mailer"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/queue"
)

var resetHTML = template.Must(template.New("reset").Parse(`<p>Dear {{.Name}},</p>
<p>We received a request to reset the password for your City University Club account.</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>This link expires in one hour. If you did not ask for a reset you can ignore this email.</p>`))

var loiHTML = template.Must(template.New("loi").Parse(`<p>A new letter of introduction request has been submitted.</p>
<table>
<tr><td>Member</td><td>{{.MemberName}} ({{.MemberEmail}})</td></tr>
<tr><td>Club</td><td>{{.ClubName}}</td></tr>
<tr><td>Arrival</td><td>{{.ArrivalDate}}</td></tr>
<tr><td>Departure</td><td>{{.DepartureDate}}</td></tr>
<tr><td>Purpose</td><td>{{.Purpose}}</td></tr>
<tr><td>Request</td><td>{{.LoiRequestID}}</td></tr>
</table>`))

// ResetLink builds the password reset URL sent to members.
func ResetLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/reset-password?token=" + token
}

func greetingName(p queue.EmailPayload) string {
	if p.RecipientName != "" {
		return p.RecipientName
	}
	return "Member"
}

func renderPasswordReset(baseURL string, p queue.EmailPayload) (mailer.Message, error) {
	if p.Token == "" {
		return mailer.Message{}, fmt.Errorf("password reset job without token")
	}
	link := ResetLink(baseURL, p.Token)
	name := greetingName(p)
	var buf bytes.Buffer
	if err := resetHTML.Execute(&buf, struct{ Name, Link string }{name, link}); err != nil {
		return mailer.Message{}, fmt.Errorf("render reset email: %w", err)
	}
	return mailer.Message{
		To:       p.RecipientEmail,
		Subject:  "Reset your City University Club password",
		HTMLBody: buf.String(),
		TextBody: fmt.Sprintf("Dear %s,\n\nReset your password here: %s\n\nThis link expires in one hour.\n", name, link),
	}, nil
}

func renderLoiSubmitted(p queue.EmailPayload) (mailer.Message, error) {
	var buf bytes.Buffer
	if err := loiHTML.Execute(&buf, p); err != nil {
		return mailer.Message{}, fmt.Errorf("render loi email: %w", err)
	}
	return mailer.Message{
		To:       p.RecipientEmail,
		Subject:  fmt.Sprintf("LOI request: %s to %s", p.MemberName, p.ClubName),
		HTMLBody: buf.String(),
		TextBody: fmt.Sprintf("Member: %s (%s)\nClub: %s\nArrival: %s\nDeparture: %s\nPurpose: %s\nRequest: %s\n",
			p.MemberName, p.MemberEmail, p.ClubName, p.ArrivalDate, p.DepartureDate, p.Purpose, p.LoiRequestID),
	}, nil
}
