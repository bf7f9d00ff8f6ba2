package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-backend/models"
)

var trackingNumberPattern = regexp.MustCompile(`^DSR[A-Z0-9]{8}$`)

func newRightsService(t *testing.T) *RightsRequestService {
	t.Helper()
	return NewRightsRequestService(newTestDB(t), newTestMailer(), testSiteConfig())
}

func submitRequest(t *testing.T, service *RightsRequestService) *models.DataSubjectRightsRequest {
	t.Helper()
	request, err := service.Create(RightsRequestInput{
		RequestType:    models.RequestTypeAccess,
		FullName:       "Anna Kowalska",
		Email:          "anna@example.com",
		Identification: "Former patient, visits in 2024",
	})
	require.NoError(t, err)
	return request
}

func TestRightsRequestCreateAssignsTrackingNumber(t *testing.T) {
	service := newRightsService(t)

	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		request := submitRequest(t, service)
		assert.Regexp(t, trackingNumberPattern, request.TrackingNumber)
		assert.False(t, seen[request.TrackingNumber], "tracking number repeated")
		seen[request.TrackingNumber] = true
	}
}

func TestRightsRequestCreateDefaults(t *testing.T) {
	service := newRightsService(t)
	request := submitRequest(t, service)

	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.True(t, request.PrivacyConsent)
	assert.False(t, request.PrivacyConsentDate.IsZero())
	assert.Nil(t, request.Phone)
	assert.Nil(t, request.Details)
}

func TestRightsRequestStatusLifecycle(t *testing.T) {
	service := newRightsService(t)
	request := submitRequest(t, service)

	// pending cannot jump straight to completed.
	_, err := service.UpdateStatus(request.ID, models.RequestStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := service.UpdateStatus(request.ID, models.RequestStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInProgress, updated.Status)

	updated, err = service.UpdateStatus(request.ID, models.RequestStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, updated.Status)

	// completed is terminal.
	_, err = service.UpdateStatus(request.ID, models.RequestStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = service.UpdateStatus(request.ID, models.RequestStatusRejected)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRightsRequestRejection(t *testing.T) {
	service := newRightsService(t)
	request := submitRequest(t, service)

	updated, err := service.UpdateStatus(request.ID, models.RequestStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, updated.Status)

	// rejected is terminal too.
	_, err = service.UpdateStatus(request.ID, models.RequestStatusInProgress)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRightsRequestListFilters(t *testing.T) {
	service := newRightsService(t)

	first := submitRequest(t, service)
	_, err := service.Create(RightsRequestInput{
		RequestType:    models.RequestTypeErasure,
		FullName:       "Jan Nowak",
		Email:          "jan@example.com",
		Identification: "Account holder",
	})
	require.NoError(t, err)

	byType, err := service.List(RightsRequestFilter{RequestType: models.RequestTypeErasure})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Jan Nowak", byType[0].FullName)

	byTracking, err := service.List(RightsRequestFilter{Search: first.TrackingNumber})
	require.NoError(t, err)
	require.Len(t, byTracking, 1)
	assert.Equal(t, first.ID, byTracking[0].ID)
}
