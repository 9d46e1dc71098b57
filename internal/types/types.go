// Package types provides the shared domain records used across ScholarSync packages.
// Types in this package are plain data with no behaviour beyond small display helpers;
// they are constructed once from the seed data and never mutated afterwards.
package types

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// PEOPLE
// =============================================================================

// Role is the academic role a user presents on their profile.
type Role string

const (
	RoleStudent    Role = "Student"
	RoleProfessor  Role = "Professor"
	RoleResearcher Role = "Researcher"
	RoleAspiring   Role = "Aspiring Researcher"
)

// Roles lists every known role in display order.
func Roles() []Role {
	return []Role{RoleStudent, RoleProfessor, RoleResearcher, RoleAspiring}
}

// Valid reports whether r is one of the fixed roles.
func (r Role) Valid() bool {
	for _, known := range Roles() {
		if r == known {
			return true
		}
	}
	return false
}

// SocialLinks holds the optional outbound profile links of a user.
// ORCID is stored as the bare identifier, not a URL.
type SocialLinks struct {
	LinkedIn      string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	GoogleScholar string `yaml:"google_scholar,omitempty" json:"google_scholar,omitempty"`
	ORCID         string `yaml:"orcid,omitempty" json:"orcid,omitempty"`
	Website       string `yaml:"website,omitempty" json:"website,omitempty"`
}

// ORCIDURL returns the resolvable ORCID URL, or "" when no ORCID is set.
func (l SocialLinks) ORCIDURL() string {
	if l.ORCID == "" {
		return ""
	}
	return "https://orcid.org/" + l.ORCID
}

// Link is a single labelled social link.
type Link struct {
	Label string
	URL   string
}

// Links returns the non-empty links in display order.
func (l SocialLinks) Links() []Link {
	var out []Link
	if l.LinkedIn != "" {
		out = append(out, Link{Label: "LinkedIn", URL: l.LinkedIn})
	}
	if l.GoogleScholar != "" {
		out = append(out, Link{Label: "Google Scholar", URL: l.GoogleScholar})
	}
	if l.ORCID != "" {
		out = append(out, Link{Label: "ORCID", URL: l.ORCIDURL()})
	}
	if l.Website != "" {
		out = append(out, Link{Label: "Website", URL: l.Website})
	}
	return out
}

// User is a ScholarSync member.
type User struct {
	ID                string       `yaml:"id" json:"id"`
	Name              string       `yaml:"name" json:"name"`
	Role              Role         `yaml:"role" json:"role"`
	Institution       string       `yaml:"institution" json:"institution"`
	Interests         []string     `yaml:"interests" json:"interests"`
	Avatar            string       `yaml:"avatar" json:"avatar"`
	Bio               string       `yaml:"bio" json:"bio"`
	CollaboratorScore int          `yaml:"collaborator_score" json:"collaborator_score"`
	SocialLinks       *SocialLinks `yaml:"social_links,omitempty" json:"social_links,omitempty"`
}

// Headline renders "Role at Institution".
func (u User) Headline() string {
	return fmt.Sprintf("%s at %s", u.Role, u.Institution)
}

// Initials returns up to two upper-case initials, skipping honorifics like "Dr.".
func (u User) Initials() string {
	var out []rune
	for _, part := range strings.Fields(u.Name) {
		if strings.HasSuffix(part, ".") {
			continue
		}
		out = append(out, []rune(strings.ToUpper(part))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// =============================================================================
// CONTENT
// =============================================================================

// ResearchPost is a short-form research snapshot in the feed.
// Author fields are denormalized from the author's User record.
type ResearchPost struct {
	ID           string   `yaml:"id" json:"id"`
	AuthorID     string   `yaml:"author_id" json:"author_id"`
	AuthorName   string   `yaml:"author_name" json:"author_name"`
	AuthorAvatar string   `yaml:"author_avatar" json:"author_avatar"`
	Title        string   `yaml:"title" json:"title"`
	VideoURL     string   `yaml:"video_url,omitempty" json:"video_url,omitempty"`
	Description  string   `yaml:"description" json:"description"`
	Tags         []string `yaml:"tags" json:"tags"`
	Likes        int      `yaml:"likes" json:"likes"`
}

// OpportunityType is the closed set of marketplace listing kinds.
type OpportunityType string

const (
	OpportunityGrant         OpportunityType = "Grant"
	OpportunityJob           OpportunityType = "Job"
	OpportunityCollaboration OpportunityType = "Collaboration"
)

// Opportunity is a marketplace listing.
type Opportunity struct {
	ID          string          `yaml:"id" json:"id"`
	Title       string          `yaml:"title" json:"title"`
	Institution string          `yaml:"institution" json:"institution"`
	Type        OpportunityType `yaml:"type" json:"type"`
	Deadline    string          `yaml:"deadline" json:"deadline"`
	Amount      string          `yaml:"amount,omitempty" json:"amount,omitempty"`
}

// =============================================================================
// CHAT
// =============================================================================

// ChatRole identifies who authored a chat message.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one entry of the assistant transcript.
// Transcripts are append-only; insertion order is display order.
type ChatMessage struct {
	ID        string
	Role      ChatRole
	Text      string
	Timestamp time.Time
}
