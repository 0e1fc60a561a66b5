package queries_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrdersQuery(
		kernel.NewUUID(), kernel.RoleCustomer, nil, nil)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Nil(t, query.Status())
}

func TestNewGetOrdersQuery_WithStatusFilter(t *testing.T) {
	status := order.StatusPending
	query, err := queries.NewGetOrdersQuery(
		kernel.NewUUID(), kernel.RoleAdmin, &status, nil)
	require.NoError(t, err)
	require.NotNil(t, query.Status())
	assert.Equal(t, order.StatusPending, *query.Status())
}

func TestNewGetOrdersQuery_InvalidStatus(t *testing.T) {
	status := order.Status("shipped")
	_, err := queries.NewGetOrdersQuery(
		kernel.NewUUID(), kernel.RoleAdmin, &status, nil)
	require.Error(t, err)
}

func TestNewGetOrdersQuery_InvalidRole(t *testing.T) {
	_, err := queries.NewGetOrdersQuery(
		kernel.NewUUID(), kernel.Role("superuser"), nil, nil)
	require.Error(t, err)
}

func TestGetOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrdersQueryIsNotConstructed)
}

func TestNewGetOrderQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrderQuery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetOrderQuery_EmptyOrderID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(
		kernel.UUID{}, kernel.NewUUID(), kernel.RoleCustomer)
	require.Error(t, err)
}

func TestGetOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetAvailableOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetAvailableOrdersQuery()
	require.NoError(t, query.Validate())
}

func TestGetAvailableOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAvailableOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAvailableOrdersQueryIsNotConstructed)
}

func TestNewTrackOrderQuery_Valid(t *testing.T) {
	query, err := queries.NewTrackOrderQuery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewTrackOrderQuery_EmptyOrderID(t *testing.T) {
	_, err := queries.NewTrackOrderQuery(
		kernel.UUID{}, kernel.NewUUID(), kernel.RoleCustomer)
	require.Error(t, err)
}

func TestTrackOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.TrackOrderQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrTrackOrderQueryIsNotConstructed)
}

func TestNewValidateCouponQuery_Valid(t *testing.T) {
	query, err := queries.NewValidateCouponQuery(
		"save15", kernel.NewUUID(), kernel.NewUUID(), kernel.NewMoneyFromFloat(239.00))
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "SAVE15", query.Code())
}

func TestNewValidateCouponQuery_EmptyCode(t *testing.T) {
	_, err := queries.NewValidateCouponQuery(
		"", kernel.NewUUID(), kernel.NewUUID(), kernel.NewMoneyFromFloat(100))
	require.Error(t, err)
}

func TestNewValidateCouponQuery_NegativeAmount(t *testing.T) {
	_, err := queries.NewValidateCouponQuery(
		"SAVE15", kernel.NewUUID(), kernel.NewUUID(), kernel.NewMoneyFromFloat(-1))
	require.Error(t, err)
}

func TestValidateCouponQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ValidateCouponQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrValidateCouponQueryIsNotConstructed)
}

func TestNewGetCouriersQuery_Valid(t *testing.T) {
	query, err := queries.NewGetCouriersQuery(true)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.AvailableOnly())
}

func TestGetCouriersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetCouriersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetCouriersQueryIsNotConstructed)
}

func TestCourierResponse_Status(t *testing.T) {
	cases := []struct {
		name        string
		isOnline    bool
		isAvailable bool
		want        string
	}{
		{"offline beats availability", false, true, "offline"},
		{"online but busy", true, false, "busy"},
		{"online and free", true, true, "available"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := queries.CourierResponse{IsOnline: tc.isOnline, IsAvailable: tc.isAvailable}
			assert.Equal(t, tc.want, resp.Status())
		})
	}
}
