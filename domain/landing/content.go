package landing

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Stat is one entry of the problem statistics.
type Stat struct {
	ID     string `yaml:"id"`
	Value  string `yaml:"value"`
	Label  string `yaml:"label"`
	Source string `yaml:"source"`
}

type Item struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Benefit     string `yaml:"benefit,omitempty"`
}

// Callout is the highlighted box closing the crisis section.
type Callout struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type FooterLink struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Copy is the text shown on the landing page.
type Copy struct {
	Site struct {
		Name        string `yaml:"name"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"site"`

	Hero struct {
		Alert        string `yaml:"alert"`
		Headline     string `yaml:"headline"`
		Tagline      string `yaml:"tagline"`
		Subtitle     string `yaml:"subtitle"`
		PrimaryCTA   string `yaml:"primary_cta"`
		SecondaryCTA string `yaml:"secondary_cta"`
	} `yaml:"hero"`

	Crisis struct {
		Title   string  `yaml:"title"`
		Intro   string  `yaml:"intro"`
		Stats   []Stat  `yaml:"stats"`
		Callout Callout `yaml:"callout"`
	} `yaml:"crisis"`

	Features struct {
		Title    string `yaml:"title"`
		Subtitle string `yaml:"subtitle"`
		Items    []Item `yaml:"items"`
	} `yaml:"features"`

	Steps struct {
		Title string `yaml:"title"`
		Items []Item `yaml:"items"`
	} `yaml:"steps"`

	Waitlist struct {
		Title                    string `yaml:"title"`
		Intro                    string `yaml:"intro"`
		EmailLabel               string `yaml:"email_label"`
		EmailPlaceholder         string `yaml:"email_placeholder"`
		CreatorTypeLabel         string `yaml:"creator_type_label"`
		CreatorTypePlaceholder   string `yaml:"creator_type_placeholder"`
		PlatformLabel            string `yaml:"platform_label"`
		PlatformPlaceholder      string `yaml:"platform_placeholder"`
		ContentVolumeLabel       string `yaml:"content_volume_label"`
		ContentVolumePlaceholder string `yaml:"content_volume_placeholder"`
		Submit                   string `yaml:"submit"`
		SubmitInvalid            string `yaml:"submit_invalid"`
		ValidHint                string `yaml:"valid_hint"`
		InvalidHint              string `yaml:"invalid_hint"`
		SuccessTitle             string `yaml:"success_title"`
		SuccessBody              string `yaml:"success_body"`
	} `yaml:"waitlist"`

	Footer struct {
		Links     []FooterLink `yaml:"links"`
		Copyright string       `yaml:"copyright"`
	} `yaml:"footer"`
}

// ParseCopy decodes a content document. Unknown keys are rejected so a
// typo in an override file does not silently blank a section.
func ParseCopy(raw []byte) (*Copy, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var c Copy
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("landing: decode content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCopy reads the override at path, or the built-in copy when path is empty.
func LoadCopy(path string) (*Copy, error) {
	if path == "" {
		return ParseCopy(defaultContent)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("landing: read content %s: %w", path, err)
	}
	return ParseCopy(raw)
}

func (c *Copy) validate() error {
	var errs []error
	if c.Site.Name == "" {
		errs = append(errs, errors.New("site.name is required"))
	}
	if c.Hero.Headline == "" {
		errs = append(errs, errors.New("hero.headline is required"))
	}
	if c.Waitlist.Submit == "" || c.Waitlist.SuccessTitle == "" {
		errs = append(errs, errors.New("waitlist.submit and waitlist.success_title are required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("landing: invalid content: %w", err)
	}
	return nil
}
