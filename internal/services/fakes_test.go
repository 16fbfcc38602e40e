package services

import (
	"context"
	"fmt"
	"os"
	"sort"
	"testing"

	"github.com/techstock/engine/internal/models"
	"github.com/techstock/engine/internal/query"
	"github.com/techstock/engine/internal/repository"
	appErr "github.com/techstock/engine/pkg/errors"
	"github.com/techstock/engine/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

// In-memory repositories backing the service tests.

type fakeResourceRepo struct {
	store  map[int64]models.Resource
	nextID int64
	// tag mirror and app links recorded by the import path
	tags  map[int64]map[string]string
	links map[int64][]int64
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{
		store: map[int64]models.Resource{},
		tags:  map[int64]map[string]string{},
		links: map[int64][]int64{},
	}
}

var _ repository.ResourceRepository = (*fakeResourceRepo)(nil)

func (f *fakeResourceRepo) Create(ctx context.Context, obj *models.Resource) error {
	f.nextID++
	obj.ID = f.nextID
	f.store[obj.ID] = *obj
	return nil
}

func (f *fakeResourceRepo) GetByID(ctx context.Context, id int64, dest *models.Resource) error {
	r, ok := f.store[id]
	if !ok {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %d not found", id))
	}
	*dest = r
	return nil
}

func (f *fakeResourceRepo) Update(ctx context.Context, obj *models.Resource) error {
	f.store[obj.ID] = *obj
	return nil
}

func (f *fakeResourceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.store[id]; !ok {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %d not found", id))
	}
	delete(f.store, id)
	return nil
}

func (f *fakeResourceRepo) all() []models.Resource {
	ids := make([]int64, 0, len(f.store))
	for id := range f.store {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]models.Resource, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.store[id])
	}
	return out
}

func (f *fakeResourceRepo) List(ctx context.Context, d query.Descriptor) ([]models.Resource, int64, error) {
	all := f.all()
	total := int64(len(all))
	if d.Offset >= len(all) {
		return nil, total, nil
	}
	end := d.Offset + d.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[d.Offset:end], total, nil
}

func (f *fakeResourceRepo) ListAll(ctx context.Context) ([]models.Resource, error) {
	return f.all(), nil
}

func (f *fakeResourceRepo) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.Resource, error) {
	var out []models.Resource
	for _, r := range f.all() {
		if r.SubscriptionID == subscriptionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResourceRepo) ListByResourceGroup(ctx context.Context, resourceGroupID int64) ([]models.Resource, error) {
	var out []models.Resource
	for _, r := range f.all() {
		if r.ResourceGroupID == resourceGroupID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResourceRepo) ListByApplication(ctx context.Context, applicationID int64) ([]models.Resource, error) {
	var out []models.Resource
	for _, r := range f.all() {
		for _, appID := range f.links[r.ID] {
			if appID == applicationID {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeResourceRepo) inScope(r models.Resource, scope query.Scope) bool {
	if scope.SubscriptionID != nil && r.SubscriptionID != *scope.SubscriptionID {
		return false
	}
	if scope.ResourceGroupID != nil && r.ResourceGroupID != *scope.ResourceGroupID {
		return false
	}
	if scope.Location != nil && r.Location != *scope.Location {
		return false
	}
	if scope.Environment != nil {
		if r.Environment == nil || *r.Environment != *scope.Environment {
			return false
		}
	}
	return true
}

func (f *fakeResourceRepo) countBy(scope query.Scope, label func(models.Resource) string) []repository.Bucket {
	counts := map[string]int64{}
	for _, r := range f.all() {
		if f.inScope(r, scope) {
			counts[label(r)]++
		}
	}
	buckets := make([]repository.Bucket, 0, len(counts))
	for l, c := range counts {
		buckets = append(buckets, repository.Bucket{Label: l, Count: c})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}

func (f *fakeResourceRepo) CountByType(ctx context.Context, scope query.Scope) ([]repository.Bucket, error) {
	return f.countBy(scope, func(r models.Resource) string { return r.Type }), nil
}

func (f *fakeResourceRepo) CountByLocation(ctx context.Context, scope query.Scope) ([]repository.Bucket, error) {
	return f.countBy(scope, func(r models.Resource) string { return r.Location }), nil
}

func (f *fakeResourceRepo) CountByEnvironment(ctx context.Context, scope query.Scope) ([]repository.Bucket, error) {
	return f.countBy(scope, func(r models.Resource) string {
		if r.Environment == nil {
			return "Unknown"
		}
		return *r.Environment
	}), nil
}

func (f *fakeResourceRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.store)), nil
}

func (f *fakeResourceRepo) UpsertTags(ctx context.Context, resourceID int64, tags map[string]string) error {
	f.tags[resourceID] = tags
	return nil
}

type fakeSubscriptionRepo struct {
	store  map[int64]models.Subscription
	nextID int64
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{store: map[int64]models.Subscription{}}
}

var _ repository.SubscriptionRepository = (*fakeSubscriptionRepo)(nil)

func (f *fakeSubscriptionRepo) Create(ctx context.Context, obj *models.Subscription) error {
	f.nextID++
	obj.ID = f.nextID
	f.store[obj.ID] = *obj
	return nil
}

func (f *fakeSubscriptionRepo) GetByID(ctx context.Context, id int64, dest *models.Subscription) error {
	s, ok := f.store[id]
	if !ok {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %d not found", id))
	}
	*dest = s
	return nil
}

func (f *fakeSubscriptionRepo) Update(ctx context.Context, obj *models.Subscription) error {
	f.store[obj.ID] = *obj
	return nil
}

func (f *fakeSubscriptionRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.store[id]; !ok {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %d not found", id))
	}
	delete(f.store, id)
	return nil
}

func (f *fakeSubscriptionRepo) List(ctx context.Context, offset, limit int) ([]models.Subscription, int64, error) {
	var out []models.Subscription
	for _, s := range f.store {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (f *fakeSubscriptionRepo) GetByName(ctx context.Context, name string) (*models.Subscription, error) {
	for _, s := range f.store {
		if s.Name == name {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.store)), nil
}

type fakeResourceGroupRepo struct {
	store  map[int64]models.ResourceGroup
	nextID int64
}

func newFakeResourceGroupRepo() *fakeResourceGroupRepo {
	return &fakeResourceGroupRepo{store: map[int64]models.ResourceGroup{}}
}

var _ repository.ResourceGroupRepository = (*fakeResourceGroupRepo)(nil)

func (f *fakeResourceGroupRepo) Create(ctx context.Context, obj *models.ResourceGroup) error {
	f.nextID++
	obj.ID = f.nextID
	f.store[obj.ID] = *obj
	return nil
}

func (f *fakeResourceGroupRepo) GetByID(ctx context.Context, id int64, dest *models.ResourceGroup) error {
	g, ok := f.store[id]
	if !ok {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %d not found", id))
	}
	*dest = g
	return nil
}

func (f *fakeResourceGroupRepo) Update(ctx context.Context, obj *models.ResourceGroup) error {
	f.store[obj.ID] = *obj
	return nil
}

func (f *fakeResourceGroupRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.store[id]; !ok {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %d not found", id))
	}
	delete(f.store, id)
	return nil
}

func (f *fakeResourceGroupRepo) List(ctx context.Context, offset, limit int) ([]models.ResourceGroup, int64, error) {
	var out []models.ResourceGroup
	for _, g := range f.store {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (f *fakeResourceGroupRepo) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.ResourceGroup, error) {
	var out []models.ResourceGroup
	for _, g := range f.store {
		if g.SubscriptionID == subscriptionID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeResourceGroupRepo) GetByNameAndSubscription(ctx context.Context, name string, subscriptionID int64) (*models.ResourceGroup, error) {
	for _, g := range f.store {
		if g.Name == name && g.SubscriptionID == subscriptionID {
			g := g
			return &g, nil
		}
	}
	return nil, nil
}

func (f *fakeResourceGroupRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.store)), nil
}

func (f *fakeResourceGroupRepo) CountBySubscription(ctx context.Context, subscriptionID int64) (int64, error) {
	var n int64
	for _, g := range f.store {
		if g.SubscriptionID == subscriptionID {
			n++
		}
	}
	return n, nil
}

type fakeApplicationRepo struct {
	store  map[int64]models.Application
	nextID int64
	// resource -> (application, relation) links
	links map[int64]map[int64]string
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		store: map[int64]models.Application{},
		links: map[int64]map[int64]string{},
	}
}

var _ repository.ApplicationRepository = (*fakeApplicationRepo)(nil)

func (f *fakeApplicationRepo) Create(ctx context.Context, obj *models.Application) error {
	f.nextID++
	obj.ID = f.nextID
	f.store[obj.ID] = *obj
	return nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id int64, dest *models.Application) error {
	a, ok := f.store[id]
	if !ok {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %d not found", id))
	}
	*dest = a
	return nil
}

func (f *fakeApplicationRepo) Update(ctx context.Context, obj *models.Application) error {
	f.store[obj.ID] = *obj
	return nil
}

func (f *fakeApplicationRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.store[id]; !ok {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %d not found", id))
	}
	delete(f.store, id)
	return nil
}

func (f *fakeApplicationRepo) List(ctx context.Context, offset, limit int) ([]models.Application, int64, error) {
	var out []models.Application
	for _, a := range f.store {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (f *fakeApplicationRepo) GetByCode(ctx context.Context, code string) (*models.Application, error) {
	for _, a := range f.store {
		if a.Code != nil && *a.Code == code {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeApplicationRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.store)), nil
}

func (f *fakeApplicationRepo) LinkResource(ctx context.Context, resourceID, applicationID int64, relationType string) error {
	if f.links[resourceID] == nil {
		f.links[resourceID] = map[int64]string{}
	}
	f.links[resourceID][applicationID] = relationType
	return nil
}
