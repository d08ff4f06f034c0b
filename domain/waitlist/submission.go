package waitlist

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MinEmailLength is the shortest email the form accepts.
const MinEmailLength = 6

type CreatorType string

const (
	CreatorTypeUnset        CreatorType = ""
	CreatorTypeYouTuber     CreatorType = "youtuber"
	CreatorTypeTikToker     CreatorType = "tiktoker"
	CreatorTypeInstagrammer CreatorType = "instagrammer"
	CreatorTypePodcaster    CreatorType = "podcaster"
	CreatorTypeStreamer     CreatorType = "streamer"
	CreatorTypeOther        CreatorType = "other"
)

type Platform string

const (
	PlatformUnset     Platform = ""
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformTwitch    Platform = "twitch"
	PlatformMultiple  Platform = "multiple"
)

type ContentVolume string

const (
	ContentVolumeUnset   ContentVolume = ""
	ContentVolume1To10   ContentVolume = "1-10"
	ContentVolume11To50  ContentVolume = "11-50"
	ContentVolume51To100 ContentVolume = "51-100"
	ContentVolume100Plus ContentVolume = "100+"
)

// Option is a select entry as rendered on the page.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options groups the select lists with their placeholder labels.
type Options struct {
	CreatorTypes   []Option `json:"creatorTypes"`
	Platforms      []Option `json:"platforms"`
	ContentVolumes []Option `json:"contentVolumes"`
}

var (
	creatorTypeOptions = []Option{
		{string(CreatorTypeYouTuber), "YouTuber"},
		{string(CreatorTypeTikToker), "TikToker"},
		{string(CreatorTypeInstagrammer), "Instagram Creator"},
		{string(CreatorTypePodcaster), "Podcaster"},
		{string(CreatorTypeStreamer), "Live Streamer"},
		{string(CreatorTypeOther), "Other"},
	}
	platformOptions = []Option{
		{string(PlatformYouTube), "YouTube"},
		{string(PlatformTikTok), "TikTok"},
		{string(PlatformInstagram), "Instagram"},
		{string(PlatformTwitch), "Twitch"},
		{string(PlatformMultiple), "Multiple Platforms"},
	}
	contentVolumeOptions = []Option{
		{string(ContentVolume1To10), "1-10 pieces"},
		{string(ContentVolume11To50), "11-50 pieces"},
		{string(ContentVolume51To100), "51-100 pieces"},
		{string(ContentVolume100Plus), "100+ pieces"},
	}
)

// SelectOptions returns copies of the option lists, unset excluded.
func SelectOptions() Options {
	return Options{
		CreatorTypes:   append([]Option(nil), creatorTypeOptions...),
		Platforms:      append([]Option(nil), platformOptions...),
		ContentVolumes: append([]Option(nil), contentVolumeOptions...),
	}
}

// ValidateEmail is the only gate before a submission leaves the service: the
// address must contain "@" and be longer than five characters.
func ValidateEmail(email string) bool {
	return strings.Contains(email, "@") && utf8.RuneCountInString(email) >= MinEmailLength
}

// Submission is the set of waitlist fields.
type Submission struct {
	Email         string
	CreatorType   CreatorType
	Platform      Platform
	ContentVolume ContentVolume
}

// Fields is the payload forwarded to the form backend. The email is
// NFC-normalised; unset selects are sent as empty strings.
func (s Submission) Fields() map[string]string {
	return map[string]string{
		"email":         norm.NFC.String(s.Email),
		"creatorType":   string(s.CreatorType),
		"platform":      string(s.Platform),
		"contentVolume": string(s.ContentVolume),
	}
}

// EmailHash identifies an address in the audit log without storing it.
func (s Submission) EmailHash() string {
	canonical := strings.ToLower(strings.TrimSpace(norm.NFC.String(s.Email)))
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
