// Package model defines domain entities exchanged with the marketplace backend.
package model

import (
	"strings"
	"time"
)

// Tokens collects issued access/refresh tokens.
type Tokens struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"-"` // access token expiry (for diagnostics)
}

// Role is the fixed set of account roles used for view gating.
type Role string

const (
	RoleRenterBuyer   Role = "renter_buyer"
	RolePrivateSeller Role = "private_seller"
	RoleAgency        Role = "agency"
	RoleModerator     Role = "moderator"
	RoleAdmin         Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleRenterBuyer, RolePrivateSeller, RoleAgency, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role grants back-office access.
func (r Role) IsStaff() bool { return r == RoleModerator || r == RoleAdmin }

// User is the authenticated principal or an administered account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Role         Role      `json:"role"`
	Verified     bool      `json:"verified"`
	ListingQuota int       `json:"listingQuota"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TransactionType distinguishes sale and rental listings.
type TransactionType string

const (
	TransactionSale TransactionType = "sale"
	TransactionRent TransactionType = "rent"
)

// PropertyStatus is the listing lifecycle state.
type PropertyStatus string

const (
	StatusActive   PropertyStatus = "active"
	StatusInactive PropertyStatus = "inactive"
	StatusClosed   PropertyStatus = "sold_rented"
)

// PropertyImage is one uploaded listing photo.
type PropertyImage struct {
	ID        int64  `json:"id"`
	ImageURL  string `json:"imageUrl"`
	IsPrimary bool   `json:"isPrimary"`
}

// PropertyView is a single recorded listing view.
type PropertyView struct {
	ID       int64     `json:"id"`
	ViewedAt time.Time `json:"viewedAt"`
}

// Property is a marketplace listing. Facilities travel as a comma-joined
// string on the wire; use Facilities/JoinFacilities at the edges.
type Property struct {
	ID              int64           `json:"id"`
	OwnerID         int64           `json:"ownerId"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	PropertyType    string          `json:"propertyType"`
	TransactionType TransactionType `json:"transactionType"`
	Price           float64         `json:"price"`
	Currency        string          `json:"currency"`
	Size            float64         `json:"size"`
	Rooms           int             `json:"rooms"`
	Address         string          `json:"address"`
	Status          PropertyStatus  `json:"status"`
	Verified        bool            `json:"verified"`
	FacilityTags    string          `json:"facilities"`
	Images          []PropertyImage `json:"images"`
	Views           []PropertyView  `json:"views"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Facilities splits the comma-joined facility tags, dropping empty entries.
func (p Property) Facilities() []string {
	if p.FacilityTags == "" {
		return nil
	}
	parts := strings.Split(p.FacilityTags, ",")
	out := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinFacilities builds the wire representation of facility tags.
func JoinFacilities(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}

// Sender identifies who produced a chat turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is a single chat turn within the assistant conversation.
type Message struct {
	ID        int64     `json:"id"`
	Index     int       `json:"index"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

// Prompt names for the two fixed assistant roles.
const (
	PromptRenterBuyer  = "renter_buyer_default"
	PromptSellerAgency = "seller_agency_default"
)

// Prompt is a named system-prompt template editable by staff.
type Prompt struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Subscription is the read-only billing projection for the current user.
type Subscription struct {
	Plan         string    `json:"plan"`
	Status       string    `json:"status"`
	ExpiresAt    time.Time `json:"expiresAt"`
	ListingLimit int       `json:"listingLimit"`
}

// PaymentOrder is the provider-side order created before capture.
type PaymentOrder struct {
	OrderID     string `json:"orderId"`
	ApprovalURL string `json:"approvalUrl"`
}

// StatPoint is one bucket of an aggregated metric series.
type StatPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// PropertyFilter scopes listing fetches. Zero values mean "unset".
type PropertyFilter struct {
	Status          PropertyStatus
	TransactionType TransactionType
	PropertyType    string
	MinPrice        float64
	MaxPrice        float64
	MinSize         float64
	MaxSize         float64
	Rooms           int
	Search          string
	Sort            string
}
