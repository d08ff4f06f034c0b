package landing

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/akeren/creatorchain/domain/feedback"
	"github.com/akeren/creatorchain/domain/waitlist"
	apperrors "github.com/akeren/creatorchain/pkg/errors"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// FormState is what the waitlist section shows for one render.
type FormState struct {
	ViewID    string
	Values    waitlist.Submission
	Errors    []apperrors.FieldError
	Message   string
	Submitted bool
	// Feedback is played by the page script on load.
	Feedback *feedback.Cue
}

type PageData struct {
	Copy *Copy
	Form FormState
}

func Render(w io.Writer, data PageData) error {
	return Page(data).Render(w)
}

func Page(data PageData) g.Node {
	cp := data.Copy

	return components.HTML5(components.HTML5Props{
		Title:       cp.Site.Title,
		Description: cp.Site.Description,
		Language:    "en",
		Head: []g.Node{
			Link(Rel("stylesheet"), Href("/static/app.css")),
			Script(Src("/static/app.js"), Defer()),
		},
		Body: []g.Node{
			Div(ID("scroll-progress")),
			siteHeader(cp),
			Main(
				hero(cp),
				crisis(cp),
				features(cp),
				steps(cp),
				waitlistSection(cp, data.Form),
			),
			siteFooter(cp),
		},
	})
}

func siteHeader(cp *Copy) g.Node {
	return Header(Class("site-header"),
		A(Href("/"), Class("brand"), g.Text(cp.Site.Name)),
		A(Href("#waitlist-form"), Class("btn btn-small"), Data("feedback", string(feedback.Click)), g.Text(cp.Hero.PrimaryCTA)),
	)
}

func hero(cp *Copy) g.Node {
	return Section(ID("hero"), Class("hero"),
		g.If(cp.Hero.Alert != "", Div(Class("alert"), g.Text(cp.Hero.Alert))),
		H1(
			Span(Class("tagline"), g.Text(cp.Hero.Tagline)),
			Span(Class("headline"), Data("typing", cp.Hero.Headline), g.Text(cp.Hero.Headline)),
		),
		P(Class("lead"), g.Text(cp.Hero.Subtitle)),
		Div(Class("actions"),
			A(Href("#waitlist-form"), Class("btn btn-primary"), Data("feedback", string(feedback.Click)), g.Text(cp.Hero.PrimaryCTA)),
			A(Href("#how-it-works"), Class("btn btn-ghost"), Data("feedback", string(feedback.Hover)), g.Text(cp.Hero.SecondaryCTA)),
		),
	)
}

func crisis(cp *Copy) g.Node {
	return Section(ID("crisis"), Class("crisis"),
		H2(g.Text(cp.Crisis.Title)),
		P(Class("lead"), g.Text(cp.Crisis.Intro)),
		Div(Class("stats"),
			g.Map(cp.Crisis.Stats, func(s Stat) g.Node {
				return Div(ID(s.ID), Class("stat"),
					Strong(Class("stat-value"), g.Text(s.Value)),
					P(Class("stat-label"), g.Text(s.Label)),
					Small(Class("stat-source"), g.Text(s.Source)),
				)
			}),
		),
		g.If(cp.Crisis.Callout.Title != "",
			Div(Class("callout"),
				H3(g.Text(cp.Crisis.Callout.Title)),
				P(g.Text(cp.Crisis.Callout.Body)),
			),
		),
	)
}

func features(cp *Copy) g.Node {
	return Section(ID("features"), Class("features"),
		H2(g.Text(cp.Features.Title)),
		P(Class("lead"), g.Text(cp.Features.Subtitle)),
		Div(Class("feature-grid"),
			g.Map(cp.Features.Items, func(item Item) g.Node {
				return Article(Class("feature"), Data("feedback", string(feedback.Hover)),
					H3(g.Text(item.Title)),
					P(g.Text(item.Description)),
					g.If(item.Benefit != "", P(Class("benefit"), g.Text(item.Benefit))),
				)
			}),
		),
	)
}

func steps(cp *Copy) g.Node {
	items := make([]g.Node, 0, len(cp.Steps.Items))
	for i, step := range cp.Steps.Items {
		items = append(items, Li(Class("step"),
			Span(Class("step-number"), g.Text(strconv.Itoa(i+1))),
			H3(g.Text(step.Title)),
			P(g.Text(step.Description)),
		))
	}

	return Section(ID("how-it-works"), Class("steps"),
		H2(g.Text(cp.Steps.Title)),
		Ol(items...),
	)
}

func waitlistSection(cp *Copy, form FormState) g.Node {
	wl := cp.Waitlist

	body := waitlistForm(cp, form)
	if form.Submitted {
		body = Div(ID("waitlist-success"), Class("submitted"), g.Attr("role", "status"),
			H3(g.Text(wl.SuccessTitle)),
			P(g.Text(wl.SuccessBody)),
		)
	}

	return Section(ID("waitlist-form"), Class("waitlist"),
		Data("min-email-length", strconv.Itoa(waitlist.MinEmailLength)),
		Data("feedback-profiles", profilesJSON()),
		Data("success-title", wl.SuccessTitle),
		Data("success-body", wl.SuccessBody),
		g.If(form.Feedback != nil, Data("cue", cueJSON(form.Feedback))),
		H2(g.Text(wl.Title)),
		P(Class("lead"), g.Text(wl.Intro)),
		body,
	)
}

func waitlistForm(cp *Copy, form FormState) g.Node {
	wl := cp.Waitlist
	options := waitlist.SelectOptions()
	errs := fieldErrors(form.Errors)
	valid := waitlist.ValidateEmail(form.Values.Email)

	submitText, hintClass := wl.Submit, "hint"
	if form.Values.Email != "" && !valid {
		submitText = wl.SubmitInvalid
	}
	if form.Values.Email != "" && valid {
		hintClass = "hint ok"
	}

	return Form(ID("waitlist"), Action("/waitlist"), Method("post"), g.Attr("novalidate"),
		Data("submit-text", wl.Submit),
		Data("submit-invalid-text", wl.SubmitInvalid),
		Input(Type("hidden"), Name("view_id"), Value(form.ViewID)),

		g.If(form.Message != "", Div(Class("form-message"), g.Attr("role", "alert"), g.Text(form.Message))),

		Div(Class("field"),
			Label(For("email"), g.Text(wl.EmailLabel)),
			Input(Type("email"), ID("email"), Name("email"), Required(), AutoComplete("email"),
				Placeholder(wl.EmailPlaceholder), Value(form.Values.Email),
				g.If(form.Values.Email != "" && valid, Class("valid")),
			),
			P(Class(hintClass), Data("valid-text", wl.ValidHint), Data("invalid-text", wl.InvalidHint),
				g.If(form.Values.Email != "" && valid, g.Text(wl.ValidHint)),
				g.If(form.Values.Email != "" && !valid, g.Text(wl.InvalidHint)),
			),
			errorFor(errs, "email"),
		),

		Div(Class("field-row"),
			selectField("creatorType", wl.CreatorTypeLabel, wl.CreatorTypePlaceholder, string(form.Values.CreatorType), options.CreatorTypes, errs),
			selectField("platform", wl.PlatformLabel, wl.PlatformPlaceholder, string(form.Values.Platform), options.Platforms, errs),
			selectField("contentVolume", wl.ContentVolumeLabel, wl.ContentVolumePlaceholder, string(form.Values.ContentVolume), options.ContentVolumes, errs),
		),

		g.Map(formLevel(form.Errors), func(fe apperrors.FieldError) g.Node {
			return P(Class("field-error"), Data("field", fe.Field), g.Text(fe.Message))
		}),

		Button(Type("submit"), ID("waitlist-submit"), Class("btn btn-primary btn-block"), g.Text(submitText)),
	)
}

func selectField(name, label, placeholder, selected string, options []waitlist.Option, errs map[string]string) g.Node {
	return Div(Class("field"),
		Label(For(name), g.Text(label)),
		Select(ID(name), Name(name),
			Option(Value(""), g.Text(placeholder)),
			g.Map(options, func(o waitlist.Option) g.Node {
				return Option(Value(o.Value), g.If(o.Value == selected, Selected()), g.Text(o.Label))
			}),
		),
		errorFor(errs, name),
	)
}

func errorFor(errs map[string]string, field string) g.Node {
	msg, ok := errs[field]
	if !ok {
		return nil
	}
	return P(Class("field-error"), Data("field", field), g.Text(msg))
}

// fieldErrors keeps the first message per field.
func fieldErrors(list []apperrors.FieldError) map[string]string {
	out := make(map[string]string, len(list))
	for _, fe := range list {
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

var formFields = map[string]bool{"email": true, "creatorType": true, "platform": true, "contentVolume": true}

// formLevel returns the errors that do not belong to a visible input.
func formLevel(list []apperrors.FieldError) []apperrors.FieldError {
	var out []apperrors.FieldError
	for _, fe := range list {
		if !formFields[fe.Field] {
			out = append(out, fe)
		}
	}
	return out
}

func siteFooter(cp *Copy) g.Node {
	return Footer(Class("site-footer"),
		Span(Class("brand"), g.Text(cp.Site.Name)),
		Nav(
			g.Map(cp.Footer.Links, func(l FooterLink) g.Node {
				return A(Href(l.Href), Data("feedback", string(feedback.Click)), g.Text(l.Label))
			}),
		),
		P(Class("copyright"), g.Text(cp.Footer.Copyright)),
	)
}

func profilesJSON() string {
	cues := make([]feedback.Cue, 0, len(feedback.Kinds()))
	for _, k := range feedback.Kinds() {
		cues = append(cues, feedback.CueFor(k))
	}
	raw, _ := json.Marshal(cues)
	return string(raw)
}

func cueJSON(cue *feedback.Cue) string {
	raw, _ := json.Marshal(cue)
	return string(raw)
}
