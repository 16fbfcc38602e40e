package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/techstock/engine/pkg/errors"
)

func strp(s string) *string { return &s }

func TestCreateApplication_DuplicateCode(t *testing.T) {
	svc := NewApplicationService(newFakeApplicationRepo())
	ctx := context.Background()

	_, err := svc.CreateApplication(ctx, &CreateApplicationInput{Code: strp("APP1")})
	require.NoError(t, err)

	_, err = svc.CreateApplication(ctx, &CreateApplicationInput{Code: strp("APP1")})
	require.True(t, appErr.IsCode(err, appErr.CodeAlreadyExists))

	// applications without a code never collide
	_, err = svc.CreateApplication(ctx, &CreateApplicationInput{Name: strp("anon-1")})
	require.NoError(t, err)
	_, err = svc.CreateApplication(ctx, &CreateApplicationInput{Name: strp("anon-2")})
	require.NoError(t, err)
}

func TestCreateApplication_OwnerEmail(t *testing.T) {
	svc := NewApplicationService(newFakeApplicationRepo())
	ctx := context.Background()

	_, err := svc.CreateApplication(ctx, &CreateApplicationInput{OwnerEmail: strp("not-an-email")})
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	_, err = svc.CreateApplication(ctx, &CreateApplicationInput{OwnerEmail: strp("team@corp.example")})
	require.NoError(t, err)
}

func TestUpdateApplication_CodeConflict(t *testing.T) {
	svc := NewApplicationService(newFakeApplicationRepo())
	ctx := context.Background()

	first, err := svc.CreateApplication(ctx, &CreateApplicationInput{Code: strp("APP1")})
	require.NoError(t, err)
	_, err = svc.CreateApplication(ctx, &CreateApplicationInput{Code: strp("APP2")})
	require.NoError(t, err)

	_, err = svc.UpdateApplication(ctx, first.ID, &UpdateApplicationInput{Code: strp("APP2")})
	require.True(t, appErr.IsCode(err, appErr.CodeAlreadyExists))

	updated, err := svc.UpdateApplication(ctx, first.ID, &UpdateApplicationInput{Code: strp("APP1"), OwnerTeam: strp("platform")})
	require.NoError(t, err)
	require.Equal(t, "platform", *updated.OwnerTeam)
}
