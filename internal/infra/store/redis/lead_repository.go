package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/reelgrowth/lead-relay/internal/entity"
)

// Key layout:
//
//	lead:<id>            JSON-encoded lead record
//	lead:email:<email>   email -> id index (SETNX, the create-if-absent point)
//	leads:by_created     sorted set of ids scored by CreatedAt (unix nanos)
const (
	leadKeyPrefix   = "lead:"
	emailKeyPrefix  = "lead:email:"
	createdIndexKey = "leads:by_created"
)

type LeadRepository struct {
	rdb *redis.Client
}

func NewLeadRepository(rdb *redis.Client) *LeadRepository {
	return &LeadRepository{rdb: rdb}
}

func leadKey(id string) string {
	return leadKeyPrefix + id
}

func emailKey(email string) string {
	return emailKeyPrefix + email
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	now := time.Now().UTC()
	lead.ID = uuid.NewString()
	lead.Status = entity.StatusNew
	lead.CreatedAt = now
	lead.UpdatedAt = now

	// Record first, index second: a crash in between leaves at worst a
	// record without an index entry, never an index entry pointing at
	// nothing we can recover from.
	if err := r.save(ctx, lead); err != nil {
		return err
	}

	claimed, err := r.rdb.SetNX(ctx, emailKey(lead.Email), lead.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to write email index: %w", err)
	}
	if claimed {
		return nil
	}

	// Lost the race for this email. Drop our record and adopt the winner's.
	r.rdb.Del(ctx, leadKey(lead.ID))
	r.rdb.ZRem(ctx, createdIndexKey, lead.ID)

	existing, err := r.FindByEmail(ctx, lead.Email)
	if err != nil {
		return err
	}
	if existing == nil {
		// The index entry dangles; claim it for our record.
		if err := r.save(ctx, lead); err != nil {
			return err
		}
		if err := r.rdb.Set(ctx, emailKey(lead.Email), lead.ID, 0).Err(); err != nil {
			return fmt.Errorf("failed to write email index: %w", err)
		}
		return nil
	}
	*lead = *existing
	return nil
}

func (r *LeadRepository) Transition(ctx context.Context, id string, status entity.LeadStatus, patch *entity.LeadPatch) (*entity.Lead, error) {
	lead, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, entity.ErrNotFound
	}

	// Purchased is terminal.
	if lead.Status == entity.StatusPurchased && status != entity.StatusPurchased {
		return lead, nil
	}

	if patch != nil {
		if patch.CRMContactID != "" {
			lead.CRMContactID = patch.CRMContactID
		}
		if patch.OrderID != 0 {
			lead.OrderID = patch.OrderID
		}
	}
	lead.Status = status
	lead.UpdatedAt = time.Now().UTC()

	if err := r.save(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	id, err := r.rdb.Get(ctx, emailKey(email)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read email index: %w", err)
	}
	return r.getByID(ctx, id)
}

func (r *LeadRepository) MarkPurchased(ctx context.Context, email string, orderID int64) (*entity.Lead, error) {
	lead, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, entity.ErrNotFound
	}
	return r.Transition(ctx, lead.ID, entity.StatusPurchased, &entity.LeadPatch{OrderID: orderID})
}

// List loads the full set, applies equality filters, orders by CreatedAt
// descending and slices [offset, offset+limit). O(total leads) per call,
// which is fine at dashboard volumes.
func (r *LeadRepository) List(ctx context.Context, filter entity.ListFilter) ([]*entity.Lead, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	leads := make([]*entity.Lead, 0, len(all))
	for _, lead := range all {
		if filter.Status != "" && string(lead.Status) != filter.Status {
			continue
		}
		if filter.Tag != "" && string(lead.Tag) != filter.Tag {
			continue
		}
		leads = append(leads, lead)
	}

	sort.Slice(leads, func(i, j int) bool {
		if leads[i].CreatedAt.Equal(leads[j].CreatedAt) {
			return leads[i].ID > leads[j].ID
		}
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})

	if filter.Offset >= len(leads) {
		return []*entity.Lead{}, nil
	}
	leads = leads[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(leads) {
		leads = leads[:filter.Limit]
	}
	return leads, nil
}

// Metrics is a single pass over all leads. Status and tag counts are
// zero-filled over their enums; sources are open-ended.
func (r *LeadRepository) Metrics(ctx context.Context) (*entity.Metrics, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	m := &entity.Metrics{
		Total:    len(all),
		ByStatus: make(map[entity.LeadStatus]int, len(entity.AllStatuses())),
		ByTag:    make(map[entity.LeadTag]int, len(entity.AllTags())),
		BySource: make(map[string]int),
	}
	for _, s := range entity.AllStatuses() {
		m.ByStatus[s] = 0
	}
	for _, t := range entity.AllTags() {
		m.ByTag[t] = 0
	}
	for _, lead := range all {
		m.ByStatus[lead.Status]++
		m.ByTag[lead.Tag]++
		m.BySource[lead.Source]++
	}
	return m, nil
}

func (r *LeadRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *LeadRepository) save(ctx context.Context, lead *entity.Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to encode lead: %w", err)
	}
	if err := r.rdb.Set(ctx, leadKey(lead.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write lead record: %w", err)
	}
	if err := r.rdb.ZAdd(ctx, createdIndexKey, redis.Z{
		Score:  float64(lead.CreatedAt.UnixNano()),
		Member: lead.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to write created index: %w", err)
	}
	return nil
}

func (r *LeadRepository) getByID(ctx context.Context, id string) (*entity.Lead, error) {
	data, err := r.rdb.Get(ctx, leadKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read lead record: %w", err)
	}
	var lead entity.Lead
	if err := json.Unmarshal([]byte(data), &lead); err != nil {
		return nil, fmt.Errorf("failed to decode lead record: %w", err)
	}
	return &lead, nil
}

func (r *LeadRepository) loadAll(ctx context.Context) ([]*entity.Lead, error) {
	ids, err := r.rdb.ZRevRange(ctx, createdIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read created index: %w", err)
	}

	leads := make([]*entity.Lead, 0, len(ids))
	for _, id := range ids {
		lead, err := r.getByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if lead == nil {
			// Dangling index entry; skip it.
			continue
		}
		leads = append(leads, lead)
	}
	return leads, nil
}
