package services

import (
	"context"

	"spacia-portal/internal/form"
	"spacia-portal/internal/listing"
	"spacia-portal/internal/masterdata"
	"spacia-portal/internal/models"
	"spacia-portal/internal/session"
	"spacia-portal/internal/submission"
	"spacia-portal/internal/upload"
	"spacia-portal/pkg/spacia"
)

// PropertyService wires the views and flows to the listing service for one signed-in user at a time.
type PropertyService struct {
	client   *spacia.Client
	policy   upload.Policy
	selector *upload.Selector
}

func NewPropertyService(client *spacia.Client, policy upload.Policy, selector *upload.Selector) *PropertyService {
	return &PropertyService{
		client:   client,
		policy:   policy,
		selector: selector,
	}
}

func (s *PropertyService) Selector() *upload.Selector { return s.selector }

func (s *PropertyService) api(sess *session.Session) *spacia.Client {
	if sess == nil {
		return s.client
	}
	return s.client.WithTokens(sess)
}

// MasterData loads the option lists for a form view.
func (s *PropertyService) MasterData(ctx context.Context) masterdata.Loaded {
	return masterdata.NewClient(s.client).Load(ctx)
}

func (s *PropertyService) List(ctx context.Context, filter listing.Filter) (listing.ListView, error) {
	return listing.List(ctx, s.client, filter)
}

// Mine returns the view of the user's own listings.
func (s *PropertyService) Mine(ctx context.Context, sess *session.Session) (*listing.MyProperties, error) {
	view := listing.NewMyProperties(s.api(sess))
	return view, view.Load(ctx)
}

func (s *PropertyService) Delete(ctx context.Context, sess *session.Session, id string) error {
	return listing.NewMyProperties(s.api(sess)).Delete(ctx, id)
}

func (s *PropertyService) Detail(state models.NavigationState) (*models.Property, error) {
	return listing.Detail(state)
}

func (s *PropertyService) Contact(ctx context.Context, sess *session.Session, id string) (listing.ContactResult, error) {
	return listing.Contact(ctx, s.api(sess), sess != nil, id)
}

func (s *PropertyService) EditView(ctx context.Context, sess *session.Session, id string, state *models.NavigationState) (listing.EditView, error) {
	api := s.api(sess)
	return listing.LoadEdit(ctx, masterdata.NewClient(api), api, id, state)
}

// Create validates draft against freshly loaded master data, persists it and uploads files in order.
func (s *PropertyService) Create(ctx context.Context, sess *session.Session, draft models.PropertyDraft, files []models.PendingFile, opts ...submission.Option) (submission.Result, error) {
	api := s.api(sess)
	loaded := masterdata.NewClient(api).Load(ctx)
	model := form.NewAddModel(loaded.Data).Replace(draft)
	flow := submission.NewCreateFlow(api, upload.NewSequencer(api, s.policy), nil, opts...)
	return flow.Submit(ctx, model, files)
}

// Update validates and replaces the property id with draft.
func (s *PropertyService) Update(ctx context.Context, sess *session.Session, id string, draft models.PropertyDraft, opts ...submission.Option) (submission.Result, error) {
	api := s.api(sess)
	loaded := masterdata.NewClient(api).Load(ctx)
	model := form.NewUpdateModel(loaded.Data, draft)
	flow := submission.NewUpdateFlow(api, id, nil, opts...)
	return flow.Submit(ctx, model, nil)
}
