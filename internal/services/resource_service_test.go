package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/techstock/engine/internal/models"
	"github.com/techstock/engine/internal/query"
	appErr "github.com/techstock/engine/pkg/errors"
)

func newResourceFixture(t *testing.T) (ResourceService, *fakeResourceRepo, int64, int64) {
	t.Helper()
	ctx := context.Background()

	resources := newFakeResourceRepo()
	subs := newFakeSubscriptionRepo()
	groups := newFakeResourceGroupRepo()

	sub := &models.Subscription{Name: "main"}
	require.NoError(t, subs.Create(ctx, sub))
	group := &models.ResourceGroup{Name: "rg-main", SubscriptionID: sub.ID}
	require.NoError(t, groups.Create(ctx, group))

	return NewResourceService(resources, subs, groups), resources, sub.ID, group.ID
}

func TestCreateResource(t *testing.T) {
	svc, resources, subID, groupID := newResourceFixture(t)

	r, err := svc.CreateResource(context.Background(), &CreateResourceInput{
		Name:            "vm-web-01",
		Type:            "virtualMachines",
		Location:        "westeurope",
		SubscriptionID:  subID,
		ResourceGroupID: groupID,
		Tags:            map[string]string{"Env": "prod"},
	})
	require.NoError(t, err)
	require.NotZero(t, r.ID)

	tags, ok := r.TagMap()
	require.True(t, ok)
	require.Equal(t, "prod", tags["Env"])

	// tags are mirrored into the tag table
	require.Equal(t, map[string]string{"Env": "prod"}, resources.tags[r.ID])
}

func TestCreateResource_Validation(t *testing.T) {
	svc, _, subID, groupID := newResourceFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateResourceInput
	}{
		{"empty name", CreateResourceInput{Type: "t", Location: "l", SubscriptionID: subID, ResourceGroupID: groupID}},
		{"empty type", CreateResourceInput{Name: "n", Location: "l", SubscriptionID: subID, ResourceGroupID: groupID}},
		{"empty location", CreateResourceInput{Name: "n", Type: "t", SubscriptionID: subID, ResourceGroupID: groupID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateResource(ctx, &tc.input)
			require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
		})
	}
}

func TestCreateResource_UnknownParents(t *testing.T) {
	svc, _, subID, groupID := newResourceFixture(t)
	ctx := context.Background()

	_, err := svc.CreateResource(ctx, &CreateResourceInput{
		Name: "n", Type: "t", Location: "l", SubscriptionID: 999, ResourceGroupID: groupID,
	})
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	_, err = svc.CreateResource(ctx, &CreateResourceInput{
		Name: "n", Type: "t", Location: "l", SubscriptionID: subID, ResourceGroupID: 999,
	})
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestUpdateResource_PartialPatch(t *testing.T) {
	svc, _, subID, groupID := newResourceFixture(t)
	ctx := context.Background()

	vendor := "Microsoft"
	r, err := svc.CreateResource(ctx, &CreateResourceInput{
		Name: "vm-1", Type: "virtualMachines", Location: "westeurope",
		SubscriptionID: subID, ResourceGroupID: groupID, Vendor: &vendor,
	})
	require.NoError(t, err)

	newName := "vm-1-renamed"
	updated, err := svc.UpdateResource(ctx, r.ID, &UpdateResourceInput{Name: &newName})
	require.NoError(t, err)

	require.Equal(t, "vm-1-renamed", updated.Name)
	// untouched fields survive the patch
	require.Equal(t, "virtualMachines", updated.Type)
	require.NotNil(t, updated.Vendor)
	require.Equal(t, "Microsoft", *updated.Vendor)
}

func TestUpdateResource_NotFound(t *testing.T) {
	svc, _, _, _ := newResourceFixture(t)
	name := "whatever"
	_, err := svc.UpdateResource(context.Background(), 42, &UpdateResourceInput{Name: &name})
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestDeleteResource(t *testing.T) {
	svc, _, subID, groupID := newResourceFixture(t)
	ctx := context.Background()

	r, err := svc.CreateResource(ctx, &CreateResourceInput{
		Name: "vm-1", Type: "t", Location: "l", SubscriptionID: subID, ResourceGroupID: groupID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteResource(ctx, r.ID))
	require.True(t, appErr.IsCode(svc.DeleteResource(ctx, r.ID), appErr.CodeNotFound))
}

func TestListResources_Pagination(t *testing.T) {
	svc, _, subID, groupID := newResourceFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.CreateResource(ctx, &CreateResourceInput{
			Name: "vm", Type: "t", Location: "l", SubscriptionID: subID, ResourceGroupID: groupID,
		})
		require.NoError(t, err)
	}

	page, size := 2, 2
	records, pagination, err := svc.ListResources(ctx, query.Filters{}, query.SortParams{}, query.PageParams{Page: &page, Size: &size})
	require.NoError(t, err)

	require.Len(t, records, 2)
	require.Equal(t, int64(5), pagination.Total)
	require.Equal(t, 3, pagination.TotalPages)
	require.Equal(t, 2, pagination.Page)
}
