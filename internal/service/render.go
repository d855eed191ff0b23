package service

import (
	"html"
	"strconv"
	"strings"
	"time"
)

// RenderTemplate substitutes {placeholder} keys in a template.
func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

const genericSubject = "Your Project Submission Has Been Received"

// RenderConfirmation produces the subject line and both body renditions
// of the submission confirmation email. It is pure: no network, no
// persistence, and deterministic apart from the footer's current year.
func RenderConfirmation(p SubmissionPayload) (subject, bodyHTML, bodyPlain string) {
	firstName := "there"
	if fields := strings.Fields(p.ContactName); len(fields) > 0 {
		firstName = fields[0]
	}

	subject = genericSubject
	if p.Title != "" {
		subject = "We've Received Your Project: " + p.Title
	}

	budget := FormatBudget(string(p.Budget))
	actors := strings.Join(p.Actors(), ", ")
	year := strconv.Itoa(time.Now().Year())

	var htmlDetails, plainDetails string
	if p.Title != "" {
		htmlDetails = renderHTMLDetails(p, budget, actors)
		plainDetails = renderPlainDetails(p, budget, actors)
	}

	bodyHTML = RenderTemplate(confirmationHTMLTemplate, map[string]string{
		"first_name":      html.EscapeString(firstName),
		"details_section": htmlDetails,
		"current_year":    year,
	})
	bodyPlain = RenderTemplate(confirmationPlainTemplate, map[string]string{
		"first_name":      firstName,
		"details_section": plainDetails,
		"current_year":    year,
	})
	return subject, bodyHTML, bodyPlain
}

// FormatBudget renders a numeric budget as a currency amount with two
// decimal places and thousands separators. Non-numeric values pass
// through unchanged; empty input yields empty output.
func FormatBudget(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return formatCurrency(f)
}

func formatCurrency(f float64) string {
	neg := f < 0
	if neg {
		f = -f
	}
	s := strconv.FormatFloat(f, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	out := "$" + b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

func renderHTMLDetails(p SubmissionPayload, budget, actors string) string {
	var logline, budgetRow, languagesRow, actorsRow string
	if p.Logline != "" {
		logline = RenderTemplate(htmlLoglineRow, map[string]string{"logline": html.EscapeString(p.Logline)})
	}
	if budget != "" {
		budgetRow = RenderTemplate(htmlFieldRow, map[string]string{
			"label": "Budget", "value": html.EscapeString(budget),
		})
	}
	if p.Languages != "" {
		languagesRow = RenderTemplate(htmlFieldRow, map[string]string{
			"label": "Languages", "value": html.EscapeString(p.Languages),
		})
	}
	if actors != "" {
		actorsRow = RenderTemplate(htmlFieldRow, map[string]string{
			"label": "Cast Recommendations", "value": html.EscapeString(actors),
		})
	}
	return RenderTemplate(htmlDetailsSection, map[string]string{
		"title":         html.EscapeString(p.Title),
		"logline_row":   logline,
		"budget_row":    budgetRow,
		"languages_row": languagesRow,
		"actors_row":    actorsRow,
	})
}

func renderPlainDetails(p SubmissionPayload, budget, actors string) string {
	var b strings.Builder
	b.WriteString("YOUR SUBMISSION DETAILS\n")
	b.WriteString("-----------------------\n")
	b.WriteString("Project Title: " + p.Title + "\n")
	if p.Logline != "" {
		b.WriteString("Logline: \"" + p.Logline + "\"\n")
	}
	if budget != "" {
		b.WriteString("Budget: " + budget + "\n")
	}
	if p.Languages != "" {
		b.WriteString("Languages: " + p.Languages + "\n")
	}
	if actors != "" {
		b.WriteString("Cast Recommendations: " + actors + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

const confirmationHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Project Submission Confirmation</title></head>
<body style="margin:0;padding:0;font-family:Arial,Helvetica,sans-serif;background-color:#f6f8f6;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background-color:#f6f8f6;">
    <tr><td align="center" style="padding:32px 16px;">
      <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="max-width:600px;width:100%;background-color:#ffffff;border-radius:12px;overflow:hidden;">
        <tr><td style="background-color:#112116;padding:32px;text-align:center;">
          <h1 style="margin:0;color:#b4941e;font-size:26px;letter-spacing:2px;">OMI GLOBAL</h1>
          <p style="margin:6px 0 0;color:rgba(255,255,255,0.7);font-size:12px;letter-spacing:3px;">PRODUCTIONS</p>
        </td></tr>
        <tr><td style="padding:28px 36px 8px;text-align:center;">
          <h2 style="margin:0;color:#112116;font-size:22px;">Hello {first_name},</h2>
        </td></tr>
        <tr><td style="padding:8px 36px 24px;">
          <p style="margin:0;color:#4a5568;font-size:15px;line-height:24px;text-align:center;">
            Thank you for sharing your creative vision with us. Your project submission
            has been successfully received and is now in our review queue.
          </p>
        </td></tr>
{details_section}        <tr><td style="padding:0 36px 24px;">
          <h3 style="margin:0 0 12px;color:#112116;font-size:17px;">What happens next?</h3>
          <p style="margin:0 0 6px;color:#4a5568;font-size:14px;">1. Our creative team reviews your submission</p>
          <p style="margin:0 0 6px;color:#4a5568;font-size:14px;">2. We evaluate alignment with our creative vision</p>
          <p style="margin:0;color:#4a5568;font-size:14px;">3. You'll hear from us within 5-7 business days</p>
        </td></tr>
        <tr><td style="padding:0 36px 28px;">
          <p style="margin:0;color:#92400e;font-size:13px;background-color:#fffbeb;border-left:4px solid #b4941e;padding:12px 16px;">
            <strong>Have questions?</strong> Simply reply to this email and our team will be happy to assist you.
          </p>
        </td></tr>
        <tr><td style="padding:20px 36px;border-top:1px solid #e2e8f0;text-align:center;">
          <p style="margin:0 0 6px;color:#b4941e;font-size:14px;font-weight:bold;">OMI GLOBAL PRODUCTIONS</p>
          <p style="margin:0 0 10px;color:#718096;font-size:12px;">Storytelling &bull; Wellness &bull; Sustainability</p>
          <p style="margin:0;color:#a0aec0;font-size:11px;line-height:18px;">
            &copy; {current_year} OMI Global Productions. All rights reserved.<br>
            This is a transactional email regarding your project submission.
          </p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

const htmlDetailsSection = `        <tr><td style="padding:0 36px 24px;">
          <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background-color:#fafbfa;border:1px solid #e2e8f0;border-radius:8px;">
            <tr><td style="padding:16px 20px 0;">
              <p style="margin:0 0 4px;color:#718096;font-size:11px;text-transform:uppercase;letter-spacing:1px;">Project Title</p>
              <p style="margin:0;color:#112116;font-size:18px;font-weight:bold;">{title}</p>
            </td></tr>
{logline_row}{budget_row}{languages_row}{actors_row}            <tr><td style="padding:0 0 16px;"></td></tr>
          </table>
        </td></tr>
`

const htmlLoglineRow = `            <tr><td style="padding:14px 20px 0;">
              <p style="margin:0 0 4px;color:#718096;font-size:11px;text-transform:uppercase;letter-spacing:1px;">Logline</p>
              <p style="margin:0;color:#4a5568;font-size:14px;font-style:italic;">&quot;{logline}&quot;</p>
            </td></tr>
`

const htmlFieldRow = `            <tr><td style="padding:14px 20px 0;">
              <p style="margin:0 0 4px;color:#718096;font-size:11px;text-transform:uppercase;letter-spacing:1px;">{label}</p>
              <p style="margin:0;color:#112116;font-size:14px;font-weight:bold;">{value}</p>
            </td></tr>
`

const confirmationPlainTemplate = `OMI GLOBAL PRODUCTIONS
======================

SUBMISSION RECEIVED
-------------------

Hello {first_name},

Thank you for sharing your creative vision with us. Your project submission has been successfully received and is now in our review queue.

{details_section}WHAT HAPPENS NEXT?
------------------
1. Our creative team reviews your submission
2. We evaluate alignment with our creative vision
3. You'll hear from us within 5-7 business days

Have questions? Simply reply to this email and our team will be happy to assist you.

---

OMI GLOBAL PRODUCTIONS
Storytelling | Wellness | Sustainability

(c) {current_year} OMI Global Productions. All rights reserved.
This is a transactional email regarding your project submission.`
