package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidKeyFormat indicates a malformed key segment. Always a caller
// error; the HTTP layer maps it to 400.
var ErrInvalidKeyFormat = errors.New("invalid key format")

// tokenPattern is the allowed shape of a single key segment: lowercase
// URL-safe token characters only.
var tokenPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// PageRecord represents one service offering at one office location in one
// service area. Identity is the composite (state_office_token,
// area_served_token, service_token) key; the content fields are not part of
// identity.
type PageRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	StateOfficeToken string    `gorm:"column:state_office_token;size:100;not null;uniqueIndex:idx_office_page_key,priority:1" json:"state_office_token"`
	AreaServedToken  string    `gorm:"column:area_served_token;size:100;not null;uniqueIndex:idx_office_page_key,priority:2" json:"area_served_token"`
	ServiceToken     string    `gorm:"column:service_token;size:100;not null;uniqueIndex:idx_office_page_key,priority:3" json:"service_token"`
	MetaTitle        string    `gorm:"column:meta_title;size:200" json:"meta_title"`
	MetaDescription  string    `gorm:"column:meta_description;type:text" json:"meta_description"`
	PageTitle        string    `gorm:"column:page_title;size:200" json:"page_title"`
	PageContent      string    `gorm:"column:page_content;type:text" json:"page_content"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (PageRecord) TableName() string {
	return "office_pages"
}

// Key returns the composite key of the record.
func (r PageRecord) Key() Key {
	return Key{
		StateOfficeToken: r.StateOfficeToken,
		AreaServedToken:  r.AreaServedToken,
		ServiceToken:     r.ServiceToken,
	}
}

// Validate checks the composite key segments. Content fields are allowed to
// be empty; they only need to be present for serving a full page.
func (r PageRecord) Validate() error {
	return r.Key().Validate()
}

// SameContent reports whether the content fields match. Used to classify an
// upsert of identical data as a no-op.
func (r PageRecord) SameContent(other PageRecord) bool {
	return r.MetaTitle == other.MetaTitle &&
		r.MetaDescription == other.MetaDescription &&
		r.PageTitle == other.PageTitle &&
		r.PageContent == other.PageContent
}

// Key is the composite key uniquely identifying a PageRecord.
type Key struct {
	StateOfficeToken string
	AreaServedToken  string
	ServiceToken     string
}

// String renders the key for reports and logs, e.g.
// "tennessee/chattanooga|lookout-mountain|care-services".
func (k Key) String() string {
	return k.StateOfficeToken + "|" + k.AreaServedToken + "|" + k.ServiceToken
}

// Validate checks that every segment is non-empty, lowercase and contains
// only URL-safe token characters, and that the state-office token has exactly
// two slash-separated segments.
func (k Key) Validate() error {
	parts := strings.Split(k.StateOfficeToken, "/")
	if len(parts) != 2 {
		return fmt.Errorf("%w: state_office_token %q must be state/office", ErrInvalidKeyFormat, k.StateOfficeToken)
	}
	if err := ValidateToken("state token", parts[0]); err != nil {
		return err
	}
	if err := ValidateToken("office token", parts[1]); err != nil {
		return err
	}
	if err := ValidateToken("area_served_token", k.AreaServedToken); err != nil {
		return err
	}
	return ValidateToken("service_token", k.ServiceToken)
}

// OfficeToken returns the office segment of the state-office token, or ""
// when the token is malformed.
func (k Key) OfficeToken() string {
	_, office, ok := strings.Cut(k.StateOfficeToken, "/")
	if !ok {
		return ""
	}
	return office
}

// ValidateToken checks a single key segment.
func ValidateToken(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidKeyFormat, name)
	}
	if !tokenPattern.MatchString(value) {
		return fmt.Errorf("%w: %s %q contains disallowed characters", ErrInvalidKeyFormat, name, value)
	}
	return nil
}

// NormalizeToken lowercases and trims a raw segment before validation.
func NormalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// AreaService is one sitemap entry: a served area and the service offered
// there.
type AreaService struct {
	AreaServedToken string `gorm:"column:area_served_token" json:"area_served_token"`
	ServiceToken    string `gorm:"column:service_token" json:"service_token"`
}
