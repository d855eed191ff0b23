package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/omiglobal/submission-backend/internal/model"
)

// FlexString decodes a JSON string or number into its raw text form.
// Budgets arrive both ways from the intake form.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// MarshalJSON echoes numeric values back as JSON numbers and anything
// else as a string; empty becomes null.
func (f FlexString) MarshalJSON() ([]byte, error) {
	if f == "" {
		return []byte("null"), nil
	}
	var x float64
	if err := json.Unmarshal([]byte(f), &x); err == nil {
		return []byte(f), nil
	}
	return json.Marshal(string(f))
}

// SubmissionPayload is the inbound form data for one project submission.
// Contact name and phone are required; everything else is optional.
type SubmissionPayload struct {
	ContactName   string     `json:"contact_name"`
	ContactEmail  string     `json:"contact_email"`
	ContactPhone  string     `json:"contact_phone"`
	Title         string     `json:"title"`
	Logline       string     `json:"logline"`
	Synopsis      string     `json:"synopsis"`
	Treatment     string     `json:"treatment"`
	Moodboard     string     `json:"moodboard"`
	Soundtracks   string     `json:"soundtracks"`
	WriterBio     string     `json:"writer_bio"`
	Actor1        string     `json:"actor_1"`
	Actor2        string     `json:"actor_2"`
	Actor3        string     `json:"actor_3"`
	Actor4        string     `json:"actor_4"`
	Actor5        string     `json:"actor_5"`
	Actor6        string     `json:"actor_6"`
	Budget        FlexString `json:"budget"`
	Languages     string     `json:"languages"`
	PreviousWorks string     `json:"previous_works"`
	Terms         string     `json:"terms"`
}

// Actors returns the non-empty actor recommendations in original order.
func (p SubmissionPayload) Actors() []string {
	actors := []string{}
	for _, a := range []string{p.Actor1, p.Actor2, p.Actor3, p.Actor4, p.Actor5, p.Actor6} {
		if strings.TrimSpace(a) != "" {
			actors = append(actors, a)
		}
	}
	return actors
}

func (p SubmissionPayload) toModel() *model.Submission {
	s := &model.Submission{
		ContactName:   p.ContactName,
		ContactEmail:  p.ContactEmail,
		ContactPhone:  p.ContactPhone,
		Title:         p.Title,
		Logline:       p.Logline,
		Synopsis:      p.Synopsis,
		Treatment:     p.Treatment,
		Moodboard:     p.Moodboard,
		Soundtracks:   p.Soundtracks,
		WriterBio:     p.WriterBio,
		Actor1:        p.Actor1,
		Actor2:        p.Actor2,
		Actor3:        p.Actor3,
		Actor4:        p.Actor4,
		Actor5:        p.Actor5,
		Actor6:        p.Actor6,
		Languages:     p.Languages,
		PreviousWorks: p.PreviousWorks,
		TermsAccepted: strings.TrimSpace(p.Terms) != "",
		Status:        model.StatusPending,
	}
	// Only a numeric budget is persisted; the raw value still renders
	// in the confirmation email and echoes in the response.
	if f, err := strconv.ParseFloat(strings.TrimSpace(string(p.Budget)), 64); err == nil {
		s.Budget = &f
	}
	return s
}
