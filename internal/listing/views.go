package listing

import (
	"context"
	"net/url"
	"sync"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/masterdata"
	"spacia-portal/internal/models"
	"spacia-portal/internal/transformers"
	"spacia-portal/pkg/logger"
)

// LoginPath is where views send anonymous users.
const LoginPath = "/login"

type PropertyLister interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
}

type OwnerAPI interface {
	MyProperties(ctx context.Context) ([]models.Property, error)
	DeleteProperty(ctx context.Context, id string) error
}

type PropertyGetter interface {
	GetProperty(ctx context.Context, id string) (*models.Property, error)
}

type ContactAPI interface {
	ContactOwner(ctx context.Context, id string) error
}

// ListView is the browse page.
type ListView struct {
	Properties []models.Property `json:"properties"`
	Filter     Filter            `json:"filter"`
	Banner     string            `json:"error,omitempty"`
}

// List fetches every property and applies the filter locally.
func List(ctx context.Context, api PropertyLister, filter Filter) (ListView, error) {
	properties, err := api.ListProperties(ctx)
	if err != nil {
		appErr := apperrors.WithUserMessage(err, apperrors.MsgLoadPropertiesFailed)
		logger.GlobalLogger.Errorf("Failed to list properties: error=%v", err)
		return ListView{Properties: []models.Property{}, Filter: filter, Banner: appErr.UserMessage}, appErr
	}
	return ListView{Properties: filter.Apply(properties), Filter: filter}, nil
}

// Detail renders only the record handed over in navigation state. It never fetches.
func Detail(state models.NavigationState) (*models.Property, error) {
	if state.Property == nil {
		return nil, apperrors.NewNotFoundError("no property in navigation state")
	}
	return state.Property, nil
}

// DetailPath is the browser path of a property's detail view.
func DetailPath(id string) string {
	return "/property/" + url.PathEscape(id)
}

// ContactResult tells the caller what to show after a contact request.
type ContactResult struct {
	Message string `json:"message,omitempty"`
	// Redirect is set when the user has to log in first; From is where to return afterwards.
	Redirect string `json:"redirect,omitempty"`
	From     string `json:"from,omitempty"`
}

// Contact asks the owner of id to get in touch. Without a session nothing is sent and the
// caller is sent to the login view.
func Contact(ctx context.Context, api ContactAPI, signedIn bool, id string) (ContactResult, error) {
	if !signedIn {
		return ContactResult{Redirect: LoginPath, From: DetailPath(id)}, nil
	}
	if err := api.ContactOwner(ctx, id); err != nil {
		logger.GlobalLogger.Errorf("Failed to contact owner: property_id=%s, error=%v", id, err)
		appErr := apperrors.WithUserMessage(err, apperrors.MsgContactOwnerFailed)
		return ContactResult{Message: appErr.UserMessage}, appErr
	}
	return ContactResult{Message: apperrors.MsgContactOwnerSent}, nil
}

// MyProperties is the owner's listing page.
type MyProperties struct {
	api OwnerAPI

	mu         sync.Mutex
	properties []models.Property
	banner     string
}

func NewMyProperties(api OwnerAPI) *MyProperties {
	return &MyProperties{api: api, properties: []models.Property{}}
}

// Load replaces the list with the user's properties.
func (m *MyProperties) Load(ctx context.Context) error {
	properties, err := m.api.MyProperties(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to load my properties: error=%v", err)
		appErr := apperrors.WithUserMessage(err, apperrors.MsgLoadPropertiesFailed)
		m.banner = appErr.UserMessage
		return appErr
	}
	if properties == nil {
		properties = []models.Property{}
	}
	m.properties = properties
	m.banner = ""
	return nil
}

// Delete removes id remotely and, only on success, from the in-view list.
func (m *MyProperties) Delete(ctx context.Context, id string) error {
	if err := m.api.DeleteProperty(ctx, id); err != nil {
		logger.GlobalLogger.Errorf("Failed to delete property: property_id=%s, error=%v", id, err)
		appErr := apperrors.WithUserMessage(err, apperrors.MsgDeletePropertyFailed)
		m.mu.Lock()
		m.banner = appErr.UserMessage
		m.mu.Unlock()
		return appErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := make([]models.Property, 0, len(m.properties))
	for _, p := range m.properties {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.properties = kept
	return nil
}

func (m *MyProperties) Properties() []models.Property {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Property{}, m.properties...)
}

func (m *MyProperties) Banner() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.banner
}

// EditView is the update form before any edits.
type EditView struct {
	PropertyID string               `json:"propertyId"`
	MasterData models.MasterData    `json:"masterData"`
	Draft      models.PropertyDraft `json:"draft"`
	Banner     string               `json:"error,omitempty"`
}

// LoadEdit prepares the update form: master data, then the draft from navigation state when it
// carries the same record, else from GET /property/{id}.
func LoadEdit(ctx context.Context, master *masterdata.Client, getter PropertyGetter, id string, state *models.NavigationState) (EditView, error) {
	view := EditView{PropertyID: id, MasterData: masterdata.Empty(), Draft: models.PropertyDraft{Amenities: []string{}, Images: []string{}}}
	transformer := transformers.NewPropertyTransformer()

	data, err := master.Fetch(ctx)
	if err != nil {
		view.Banner = apperrors.MsgLoadPropertyFailed
		return view, apperrors.WithUserMessage(err, apperrors.MsgLoadPropertyFailed)
	}
	view.MasterData = data

	if state != nil && state.Property != nil && (state.Property.ID == "" || state.Property.ID == id) {
		view.Draft = transformer.DraftFromProperty(state.Property)
		return view, nil
	}

	property, err := getter.GetProperty(ctx, id)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to load property for edit: property_id=%s, error=%v", id, err)
		view.Banner = apperrors.MsgLoadPropertyFailed
		return view, apperrors.WithUserMessage(err, apperrors.MsgLoadPropertyFailed)
	}
	view.Draft = transformer.DraftFromProperty(property)
	return view, nil
}
