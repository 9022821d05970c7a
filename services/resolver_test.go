package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aprovacriativos/aprova_backend/models"
	"github.com/aprovacriativos/aprova_backend/repositories"
)

func TestResolverResolvesNormalizedIdentifier(t *testing.T) {
	approver := &models.Approver{
		ID:       primitive.NewObjectID(),
		ClientID: primitive.NewObjectID(),
		FullName: "Carlos Mota",
		Email:    "carlos@studio.com",
		Phone:    "(21) 98888-7777",
		IsActive: true,
	}
	resolver := NewResolver(newFakeApproverStore(approver))

	found, kind, normalized, err := resolver.Resolve(context.Background(), " Carlos@Studio.COM ")
	require.NoError(t, err)
	assert.Equal(t, "email", kind)
	assert.Equal(t, "carlos@studio.com", normalized)
	assert.Equal(t, approver.ID, found.ID)

	found, kind, normalized, err = resolver.Resolve(context.Background(), "21988887777")
	require.NoError(t, err)
	assert.Equal(t, "phone", kind)
	assert.Equal(t, "(21) 98888-7777", normalized)
	assert.Equal(t, approver.ID, found.ID)
}

func TestResolverMalformedIdentifier(t *testing.T) {
	resolver := NewResolver(newFakeApproverStore())

	_, _, _, err := resolver.Resolve(context.Background(), "???")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolverUnknownIdentifier(t *testing.T) {
	resolver := NewResolver(newFakeApproverStore())

	_, _, _, err := resolver.Resolve(context.Background(), "nobody@nowhere.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestResolverSkipsInactiveApprovers(t *testing.T) {
	inactive := &models.Approver{
		ID:       primitive.NewObjectID(),
		ClientID: primitive.NewObjectID(),
		FullName: "Ex Funcionario",
		Email:    "ex@studio.com",
		IsActive: false,
	}
	resolver := NewResolver(newFakeApproverStore(inactive))

	_, _, _, err := resolver.Resolve(context.Background(), "ex@studio.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

// A directory holding two approvers with the same identifier is a data
// problem, but callers must see it as an ordinary miss.
func TestResolverAmbiguousLooksLikeMiss(t *testing.T) {
	store := newFakeApproverStore()
	store.ambiguous["dupe@studio.com"] = true
	resolver := NewResolver(store)

	_, _, _, err := resolver.Resolve(context.Background(), "dupe@studio.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
