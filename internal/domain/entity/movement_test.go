package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
)

func TestMovementType_Class(t *testing.T) {
	cases := []struct {
		typ  entity.MovementType
		want entity.MovementClass
	}{
		{entity.MovementPZ, entity.ClassReceipt},
		{entity.MovementPW, entity.ClassReceipt},
		{entity.MovementZW, entity.ClassReceipt},
		{entity.MovementZK, entity.ClassReceipt},
		{entity.MovementWZ, entity.ClassIssue},
		{entity.MovementRW, entity.ClassIssue},
		{entity.MovementMM, entity.ClassIssue},
		{entity.MovementINW, entity.ClassInventory},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.typ.Class(), "type %s", tc.typ)
	}
}

func TestMovementType_Class_UnknownRejected(t *testing.T) {
	assert.Equal(t, entity.ClassUnknown, entity.MovementType("XX").Class())
	assert.Equal(t, entity.ClassUnknown, entity.MovementType("").Class())
	// Codes are case-sensitive.
	assert.Equal(t, entity.ClassUnknown, entity.MovementType("pz").Class())
}
