package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/service/matching"
)

func newMatchingHandler(t *testing.T) (*MatchingHandler, *MockmatchingUsecase, *MockweightProfiles) {
	t.Helper()

	ctrl := gomock.NewController(t)
	uc := NewMockmatchingUsecase(ctrl)
	wp := NewMockweightProfiles(ctrl)
	return NewMatchingHandler(logx.Nop(), uc, wp), uc, wp
}

func TestMatchingHandler_RunOrder(t *testing.T) {
	t.Parallel()

	h, uc, _ := newMatchingHandler(t)
	supplierID := int64(5)
	uc.EXPECT().RunMatching(gomock.Any(), int64(7), admin).Return([]matching.ItemResult{
		{ItemID: 70, SelectedSupplierID: &supplierID, AssignmentID: 700, TopMatches: []matching.Match{}},
		{ItemID: 71, TopMatches: []matching.Match{}},
	}, nil)

	rr := serve(t, http.MethodPost, "/matching/order/{id}", "/matching/order/7", "", admin, h.RunOrder)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[
		{"order_item_id": 70, "top_matches": [], "selected_supplier_id": 5, "assignment_id": 700},
		{"order_item_id": 71, "top_matches": [], "selected_supplier_id": null}
	]`, rr.Body.String())
}

func TestMatchingHandler_RunOrder_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "order not placed", err: fmt.Errorf("%w: order 7 is MATCHED", apperr.ErrInvalidTransition), status: http.StatusBadRequest},
		{name: "not allowed", err: apperr.ErrForbidden, status: http.StatusForbidden},
		{name: "missing", err: apperr.ErrNotFound, status: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, uc, _ := newMatchingHandler(t)
			uc.EXPECT().RunMatching(gomock.Any(), int64(7), buyer).Return(nil, tc.err)

			rr := serve(t, http.MethodPost, "/matching/order/{id}", "/matching/order/7", "", buyer, h.RunOrder)

			assert.Equal(t, tc.status, rr.Code)
		})
	}
}

func TestMatchingHandler_Simulate(t *testing.T) {
	t.Parallel()

	t.Run("order", func(t *testing.T) {
		t.Parallel()

		h, uc, _ := newMatchingHandler(t)
		uc.EXPECT().SimulateOrder(gomock.Any(), int64(7)).Return(nil, nil)

		rr := serve(t, http.MethodPost, "/matching/simulate", "/matching/simulate", `{"order_id":7}`, admin, h.Simulate)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("item", func(t *testing.T) {
		t.Parallel()

		h, uc, _ := newMatchingHandler(t)
		uc.EXPECT().SimulateItem(gomock.Any(), int64(70)).Return(matching.ItemResult{ItemID: 70, TopMatches: []matching.Match{}}, nil)

		rr := serve(t, http.MethodPost, "/matching/simulate", "/matching/simulate", `{"order_item_id":70}`, admin, h.Simulate)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"order_item_id":70,"top_matches":[],"selected_supplier_id":null}`, rr.Body.String())
	})

	bad := []struct {
		name string
		body string
	}{
		{name: "neither", body: `{}`},
		{name: "both", body: `{"order_id":7,"order_item_id":70}`},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, _, _ := newMatchingHandler(t)
			rr := serve(t, http.MethodPost, "/matching/simulate", "/matching/simulate", tc.body, admin, h.Simulate)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestMatchingHandler_Logs(t *testing.T) {
	t.Parallel()

	h, uc, _ := newMatchingHandler(t)
	uc.EXPECT().MatchLog(gomock.Any(), int64(70)).Return([]domain.MatchLogEntry{
		{ItemID: 70, SupplierID: 5, CatalogID: 50, DistanceKm: 12.5, TotalScore: 0.81, Rank: 1, CreatedAt: created},
	}, nil)

	rr := serve(t, http.MethodGet, "/matching/logs/{item_id}", "/matching/logs/70", "", admin, h.Logs)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"rank":1`)
	assert.Contains(t, rr.Body.String(), `"distance_km":12.5`)
}

func TestMatchingHandler_Config(t *testing.T) {
	t.Parallel()

	t.Run("get returns every tier", func(t *testing.T) {
		t.Parallel()

		h, _, wp := newMatchingHandler(t)
		wp.EXPECT().Current().Return(domain.DefaultWeightProfiles())

		rr := serve(t, http.MethodGet, "/matching/config", "/matching/config", "", buyer, h.GetConfig)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"standard":{"distance":0.2,"reliability":0.25,"price":0.35,"urgency":0.2}`)
		assert.Contains(t, rr.Body.String(), `"critical"`)
	})

	t.Run("put requires admin", func(t *testing.T) {
		t.Parallel()

		h, _, _ := newMatchingHandler(t)
		rr := serve(t, http.MethodPut, "/matching/config", "/matching/config", `{"urgent":{"distance":0.25,"reliability":0.25,"price":0.25,"urgency":0.25}}`, supplier, h.PutConfig)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("put rejects bad weights", func(t *testing.T) {
		t.Parallel()

		h, _, wp := newMatchingHandler(t)
		wp.EXPECT().Replace(gomock.Any()).Return(domain.WeightProfiles{}, fmt.Errorf("tier urgent: %w", apperr.ErrValidation))

		rr := serve(t, http.MethodPut, "/matching/config", "/matching/config", `{"urgent":{"distance":0.5,"reliability":0.5,"price":0.5,"urgency":0.5}}`, admin, h.PutConfig)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("put applies overrides", func(t *testing.T) {
		t.Parallel()

		h, _, wp := newMatchingHandler(t)
		want := domain.WeightProfile{Distance: 0.25, Reliability: 0.25, Price: 0.25, Urgency: 0.25}
		updated, err := domain.DefaultWeightProfiles().With(map[domain.Urgency]domain.WeightProfile{domain.UrgencyUrgent: want})
		require.NoError(t, err)
		wp.EXPECT().Replace(map[domain.Urgency]domain.WeightProfile{domain.UrgencyUrgent: want}).Return(updated, nil)

		rr := serve(t, http.MethodPut, "/matching/config", "/matching/config", `{"urgent":{"distance":0.25,"reliability":0.25,"price":0.25,"urgency":0.25}}`, admin, h.PutConfig)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"urgent":{"distance":0.25,"reliability":0.25,"price":0.25,"urgency":0.25}`)
	})

	t.Run("put with empty body", func(t *testing.T) {
		t.Parallel()

		h, _, _ := newMatchingHandler(t)
		rr := serve(t, http.MethodPut, "/matching/config", "/matching/config", `{}`, admin, h.PutConfig)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("put store error", func(t *testing.T) {
		t.Parallel()

		h, _, wp := newMatchingHandler(t)
		wp.EXPECT().Replace(gomock.Any()).Return(domain.WeightProfiles{}, errors.New("boom"))

		rr := serve(t, http.MethodPut, "/matching/config", "/matching/config", `{"urgent":{"distance":0.25,"reliability":0.25,"price":0.25,"urgency":0.25}}`, admin, h.PutConfig)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
