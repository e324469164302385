package entity

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lead id or email resolves to nothing.
// Callers decide whether absence matters; the store never treats it as fatal.
var ErrNotFound = errors.New("lead not found")

type LeadStatus string

const (
	StatusNew        LeadStatus = "new"
	StatusSubscribed LeadStatus = "subscribed"
	StatusPurchased  LeadStatus = "purchased"
	StatusError      LeadStatus = "error"
)

// LeadTag selects which CRM mailing list a lead joins. The set is closed;
// unknown tags are rejected at intake.
type LeadTag string

const (
	TagGeneral       LeadTag = "general"
	TagReelFitness   LeadTag = "reel-fitness"
	TagReelNutrition LeadTag = "reel-nutrition"
	TagNewsletter    LeadTag = "newsletter"
)

func AllStatuses() []LeadStatus {
	return []LeadStatus{StatusNew, StatusSubscribed, StatusPurchased, StatusError}
}

func AllTags() []LeadTag {
	return []LeadTag{TagGeneral, TagReelFitness, TagReelNutrition, TagNewsletter}
}

func IsValidTag(s string) bool {
	for _, t := range AllTags() {
		if string(t) == s {
			return true
		}
	}
	return false
}

type Lead struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Source       string     `json:"source"`
	Tag          LeadTag    `json:"tag"`
	Status       LeadStatus `json:"status"`
	CRMContactID string     `json:"crm_contact_id,omitempty"`
	OrderID      int64      `json:"order_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LeadPatch carries the optional fields merged into a lead on transition.
type LeadPatch struct {
	CRMContactID string
	OrderID      int64
}

type ListFilter struct {
	Status string
	Tag    string
	Limit  int
	Offset int
}

type Metrics struct {
	Total    int                `json:"total"`
	ByStatus map[LeadStatus]int `json:"by_status"`
	ByTag    map[LeadTag]int    `json:"by_tag"`
	BySource map[string]int     `json:"by_source"`
}

type LeadRepositoryInterface interface {
	// Create assigns id, status=new and timestamps, then persists the record
	// and the email index entry. When a concurrent writer claims the email
	// first, the existing record wins and is copied back into lead.
	Create(ctx context.Context, lead *Lead) error

	// Transition loads by id, merges patch, sets status and refreshes
	// updated_at. Returns ErrNotFound for unknown ids. A purchased lead
	// never leaves purchased.
	Transition(ctx context.Context, id string, status LeadStatus, patch *LeadPatch) (*Lead, error)

	// FindByEmail returns (nil, nil) on any miss.
	FindByEmail(ctx context.Context, email string) (*Lead, error)

	// MarkPurchased transitions the lead matching email to purchased,
	// attaching orderID. Returns ErrNotFound when no lead matches.
	MarkPurchased(ctx context.Context, email string, orderID int64) (*Lead, error)

	List(ctx context.Context, filter ListFilter) ([]*Lead, error)
	Metrics(ctx context.Context) (*Metrics, error)
	Ping(ctx context.Context) error
}
