package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

func TestFlagName(t *testing.T) {
	tests := []struct {
		key  domain.FieldKey
		want string
	}{
		{domain.FieldPropertyType, "property-type"},
		{domain.FieldCPFirmName, "cp-firm-name"},
		{domain.FieldBHK, "bhk"},
		{domain.FieldPLC, "plc"},
		{domain.FieldSectorPhase, "sector-phase"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, flagName(tt.key))
		})
	}
}

func TestPropertyAddCmd_HasFlagPerColumn(t *testing.T) {
	for _, col := range domain.Columns {
		flag := propertyAddCmd.Flags().Lookup(flagName(col.Key))
		require.NotNil(t, flag, col.Header)
		assert.Equal(t, col.Header, flag.Usage)
	}
}

// addedID extracts the ID from "Added <Type> property <id>".
func addedID(t *testing.T, out string) string {
	t.Helper()
	fields := strings.Fields(strings.TrimSpace(out))
	require.NotEmpty(t, fields)
	return fields[len(fields)-1]
}

func TestPropertyLifecycle(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "property", "add",
		"--property-type", "flat",
		"--project", "Green Valley",
		"--bhk", "3BHK",
		"--sector-phase", "Sector 5",
		"--demand", "85 Lakh",
		"--cp-name", "Asha",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Added Flat property")
	id := addedID(t, out)

	t.Run("list", func(t *testing.T) {
		out, err := execute(t, "property", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Green Valley 3BHK")
		assert.Contains(t, out, "Sector 5")
		assert.Contains(t, out, "1 properties")
	})

	t.Run("list filters", func(t *testing.T) {
		out, err := execute(t, "property", "list", "--type", "kothi")
		require.NoError(t, err)
		assert.Contains(t, out, "No properties found.")

		out, err = execute(t, "property", "list", "--min-demand", "80 lakh", "--max-demand", "1 crore")
		require.NoError(t, err)
		assert.Contains(t, out, "Green Valley")

		out, err = execute(t, "property", "list", "-s", "asha")
		require.NoError(t, err)
		assert.Contains(t, out, "Green Valley")
	})

	t.Run("list json", func(t *testing.T) {
		out, err := execute(t, "property", "list", "--json")
		require.NoError(t, err)

		var got []propertyJSON
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 1)
		assert.Equal(t, id, got[0].ID)
		assert.Equal(t, "Flat", got[0].Type)
		assert.Equal(t, "Green Valley", got[0].Fields.Get(domain.FieldProject))
		assert.True(t, got[0].Fields.Has(domain.FieldDate))
	})

	t.Run("get", func(t *testing.T) {
		out, err := execute(t, "property", "get", id)
		require.NoError(t, err)
		assert.Contains(t, out, "Flat property "+id)
		assert.Contains(t, out, "Project: Green Valley")
		assert.Contains(t, out, "CP Name: Asha")
	})

	t.Run("edit", func(t *testing.T) {
		out, err := execute(t, "property", "edit", id, "--demand", "90 Lakh", "--cp-name", "")
		require.NoError(t, err)
		assert.Contains(t, out, "Demand: 90 Lakh")
		assert.NotContains(t, out, "CP Name:")
		assert.Contains(t, out, "BHK: 3BHK")
	})

	t.Run("stats", func(t *testing.T) {
		out, err := execute(t, "property", "stats")
		require.NoError(t, err)
		assert.Contains(t, out, "Total: 1")
		assert.Contains(t, out, "Flat: 1")
		assert.Contains(t, out, "Kothi: 0")
		assert.Contains(t, out, "Added this week: 1")
	})

	t.Run("delete", func(t *testing.T) {
		out, err := execute(t, "property", "delete", id)
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted property "+id)

		_, err = execute(t, "property", "get", id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPropertyAddCmd_Errors(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	t.Run("missing type", func(t *testing.T) {
		_, err := execute(t, "property", "add", "--sector-phase", "Sector 1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("flat without project", func(t *testing.T) {
		_, err := execute(t, "property", "add", "--property-type", "Flat")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "Project is required for Flat properties")
	})
}

func TestPropertyListCmd_UnknownType(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "property", "list", "--type", "villa")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPropertyEditCmd_NothingToUpdate(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "property", "edit", "some-id")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestPropertyGetCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "property", "get")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		details domain.Details
		want    string
	}{
		{"kothi", domain.KothiDetails{KothiNumber: "12"}, "12"},
		{"plot", domain.PlotDetails{PlotNumber: "P-4"}, "P-4"},
		{"flat", domain.FlatDetails{Project: "Skyline"}, "Skyline"},
		{"commercial", domain.CommercialDetails{CommercialType: "Shop"}, "Shop"},
		{"none", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Property{Details: tt.details}
			assert.Equal(t, tt.want, identifier(&p))
		})
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f1c9a52", shortID("3f1c9a52-6a3b-4c55-9b7e-1a2b3c4d5e6f"))
	assert.Equal(t, "abc", shortID("abc"))
}
