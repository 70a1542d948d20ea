package contracts

import (
	"errors"
	"testing"

	"accomodate-service/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCompilesEverySchema(t *testing.T) {
	require.NoError(t, Load())

	for _, key := range []string{
		RegisterRequest, LoginRequest, ListingFormRequest, FiltersRequest,
		SearchRequest, StreetRequest, SelectionRequest, "ListingEvent/1.0.0",
	} {
		assert.Contains(t, compiledSchemas, key)
	}
}

func TestKeyFromPath(t *testing.T) {
	assert.Equal(t, "listing-form/v1", keyFromPath("schemas/requests/listing-form/v1.json"))
	assert.Equal(t, "ListingEvent/1.0.0", keyFromPath("schemas/events/listing-event/v1.json"))
}

func fieldError(t *testing.T, err error) string {
	t.Helper()
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr), "expected validation error, got %v", err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	return vErr.Field
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(ListingFormRequest, []byte(`{"address":"10 Grove St","resident_count":3}`)))
	assert.NoError(t, ValidateRequest(StreetRequest, []byte(`{"street":null}`)))
	assert.NoError(t, ValidateRequest(FiltersRequest, []byte(`{"diet":"Mixed"}`)))

	cases := []struct {
		name   string
		schema string
		body   string
		field  string
	}{
		{"missing address", ListingFormRequest, `{"diet":"Vegetarian"}`, "address"},
		{"resident count too large", ListingFormRequest, `{"address":"x","resident_count":11}`, "resident_count"},
		{"unknown diet", ListingFormRequest, `{"address":"x","diet":"Vegan"}`, "diet"},
		{"bad email", RegisterRequest, `{"name":"A","email":"nope","password":"p"}`, "email"},
		{"missing password", LoginRequest, `{"email":"a@b.c"}`, "password"},
		{"missing email and password", LoginRequest, `{}`, "email"},
		{"missing register name", RegisterRequest, `{"email":"a@b.c","password":"p"}`, "name"},
		{"unknown gender", FiltersRequest, `{"gender":"Other"}`, "gender"},
		{"not json", SearchRequest, `{`, "body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.schema, []byte(tc.body))
			assert.Equal(t, tc.field, fieldError(t, err))
		})
	}
}

func TestValidateRequestUnknownSchema(t *testing.T) {
	err := ValidateRequest("nope/v1", []byte(`{}`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestValidateEvent(t *testing.T) {
	ok := []byte(`{"type":"listing.created","listingId":"new-1","street":"Grove St","occurredAt":"2024-05-01T10:00:00Z"}`)
	assert.NoError(t, ValidateEvent("ListingEvent", "1.0.0", ok))

	bad := []byte(`{"type":"listing.archived","listingId":"new-1","street":"Grove St","occurredAt":"2024-05-01T10:00:00Z"}`)
	assert.Error(t, ValidateEvent("ListingEvent", "1.0.0", bad))
}

func TestFieldOfMissingProperties(t *testing.T) {
	cases := map[string]string{
		`missing properties: 'address'`:           "address",
		`missing properties: 'email', 'password'`: "email",
		`missing properties: "password"`:          "password",
		`missing properties: `:                    "body",
		`expected string, but got number`:         "body",
	}
	for message, field := range cases {
		assert.Equal(t, field, fieldOf(&jsonschema.ValidationError{Message: message}), message)
	}

	assert.Equal(t, "diet", fieldOf(&jsonschema.ValidationError{InstanceLocation: "/diet", Message: "value must be one of"}))
}
