package chi

import (
	"time"

	"github.com/kailas-cloud/menuboard/internal/domain/geo"
	dommenu "github.com/kailas-cloud/menuboard/internal/domain/menuitem"
	domrest "github.com/kailas-cloud/menuboard/internal/domain/restaurant"
	"github.com/kailas-cloud/menuboard/internal/domain/search/page"
	domuser "github.com/kailas-cloud/menuboard/internal/domain/user"
	authuc "github.com/kailas-cloud/menuboard/internal/usecase/auth"
	restaurantuc "github.com/kailas-cloud/menuboard/internal/usecase/restaurant"
)

// Requests.

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type locationDTO struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

type createRestaurantRequest struct {
	Name        string       `json:"name" validate:"required,max=200"`
	Description string       `json:"description" validate:"max=2000"`
	Address     string       `json:"address" validate:"max=500"`
	Location    *locationDTO `json:"location" validate:"omitempty"`
	Phone       string       `json:"phone" validate:"max=50"`
	Website     string       `json:"website" validate:"omitempty,url,max=500"`
	Tags        []string     `json:"tags" validate:"max=20,dive,max=50"`
	IsPublic    *bool        `json:"is_public"`
	ImageURL    string       `json:"image_url" validate:"omitempty,url,max=1000"`
	Type        string       `json:"type" validate:"omitempty,oneof=restaurant cafe teashop other"`
}

type updateRestaurantRequest struct {
	Name        *string      `json:"name" validate:"omitempty,max=200"`
	Description *string      `json:"description" validate:"omitempty,max=2000"`
	Address     *string      `json:"address" validate:"omitempty,max=500"`
	Location    *locationDTO `json:"location" validate:"omitempty"`
	Phone       *string      `json:"phone" validate:"omitempty,max=50"`
	Website     *string      `json:"website" validate:"omitempty,max=500"`
	Tags        *[]string    `json:"tags"`
	IsPublic    *bool        `json:"is_public"`
	ImageURL    *string      `json:"image_url" validate:"omitempty,max=1000"`
	Type        *string      `json:"type" validate:"omitempty,oneof=restaurant cafe teashop other"`
}

type createMenuItemRequest struct {
	RestaurantID string   `json:"restaurant_id" validate:"required"`
	Name         string   `json:"name" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=1000"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	Currency     string   `json:"currency" validate:"omitempty,iso4217"`
	Category     string   `json:"category" validate:"max=100"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url,max=1000"`
	Available    *bool    `json:"available"`
}

type updateMenuItemRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Currency    *string  `json:"currency" validate:"omitempty,iso4217"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,max=1000"`
	Available   *bool    `json:"available"`
}

func (l *locationDTO) point() *geo.Point {
	if l == nil || l.Lat == nil || l.Lng == nil {
		return nil
	}
	return &geo.Point{Lat: *l.Lat, Lng: *l.Lng}
}

func (req createRestaurantRequest) params() domrest.Params {
	return domrest.Params{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Location:    req.Location.point(),
		Phone:       req.Phone,
		Website:     req.Website,
		Tags:        req.Tags,
		Public:      req.IsPublic,
		ImageURL:    req.ImageURL,
		Type:        domrest.Type(req.Type),
	}
}

func (req updateRestaurantRequest) params() domrest.PatchParams {
	p := domrest.PatchParams{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Location:    req.Location.point(),
		Phone:       req.Phone,
		Website:     req.Website,
		Tags:        req.Tags,
		Public:      req.IsPublic,
		ImageURL:    req.ImageURL,
	}
	if req.Type != nil {
		t := domrest.Type(*req.Type)
		p.Type = &t
	}
	return p
}

func (req createMenuItemRequest) params() dommenu.Params {
	var price float64
	if req.Price != nil {
		price = *req.Price
	}
	return dommenu.Params{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        price,
		Currency:     req.Currency,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Available:    req.Available,
	}
}

func (req updateMenuItemRequest) params() dommenu.PatchParams {
	return dommenu.PatchParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
	}
}

// Responses.

type userResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type sessionResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        userResponse `json:"user"`
}

type locationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type restaurantResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Address        string            `json:"address"`
	Location       *locationResponse `json:"location"`
	Phone          string            `json:"phone"`
	Website        string            `json:"website"`
	Tags           []string          `json:"tags"`
	IsPublic       bool              `json:"is_public"`
	CreatedBy      string            `json:"created_by"`
	ImageURL       string            `json:"image_url"`
	Type           string            `json:"type"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DistanceMeters *float64          `json:"distance_m,omitempty"`
}

type restaurantListResponse struct {
	Items []restaurantResponse `json:"items"`
	Total int                  `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
	Pages int                  `json:"pages"`
}

type restaurantsResponse struct {
	Items []restaurantResponse `json:"items"`
	Count int                  `json:"count"`
}

type menuItemResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url"`
	Available    bool      `json:"available"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type menuItemsResponse struct {
	Items []menuItemResponse `json:"items"`
	Count int                `json:"count"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func userToResponse(u *domuser.User, withCreated bool) userResponse {
	resp := userResponse{ID: u.ID(), Email: u.Email(), Name: u.Name()}
	if withCreated {
		t := u.CreatedAt().UTC()
		resp.CreatedAt = &t
	}
	return resp
}

func sessionToResponse(s *authuc.Session) sessionResponse {
	return sessionResponse{
		AccessToken: s.Token,
		TokenType:   "Bearer",
		ExpiresAt:   s.ExpiresAt.UTC(),
		User:        userToResponse(&s.User, false),
	}
}

func restaurantToResponse(r *domrest.Restaurant) restaurantResponse {
	var loc *locationResponse
	if p := r.Location(); p != nil {
		loc = &locationResponse{Lat: p.Lat, Lng: p.Lng}
	}
	tags := r.Tags()
	if tags == nil {
		tags = []string{}
	}
	return restaurantResponse{
		ID:          r.ID(),
		Name:        r.Name(),
		Description: r.Description(),
		Address:     r.Address(),
		Location:    loc,
		Phone:       r.Phone(),
		Website:     r.Website(),
		Tags:        tags,
		IsPublic:    r.IsPublic(),
		CreatedBy:   r.OwnerID(),
		ImageURL:    r.ImageURL(),
		Type:        string(r.Type()),
		CreatedAt:   r.CreatedAt().UTC(),
		UpdatedAt:   r.UpdatedAt().UTC(),
	}
}

func restaurantsToResponse(rs []domrest.Restaurant) restaurantsResponse {
	items := make([]restaurantResponse, len(rs))
	for i := range rs {
		items[i] = restaurantToResponse(&rs[i])
	}
	return restaurantsResponse{Items: items, Count: len(items)}
}

func restaurantPageToResponse(res *page.Result[domrest.Restaurant]) restaurantListResponse {
	items := make([]restaurantResponse, len(res.Items))
	for i := range res.Items {
		items[i] = restaurantToResponse(&res.Items[i])
	}
	return restaurantListResponse{
		Items: items,
		Total: res.Total,
		Page:  res.Page.Number(),
		Limit: res.Page.Limit(),
		Pages: res.Pages(),
	}
}

func nearbyToResponse(ns []restaurantuc.Nearby) restaurantsResponse {
	items := make([]restaurantResponse, len(ns))
	for i := range ns {
		items[i] = restaurantToResponse(&ns[i].Restaurant)
		d := ns[i].DistanceMeters
		items[i].DistanceMeters = &d
	}
	return restaurantsResponse{Items: items, Count: len(items)}
}

func menuItemToResponse(m *dommenu.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:           m.ID(),
		RestaurantID: m.RestaurantID(),
		Name:         m.Name(),
		Description:  m.Description(),
		Price:        m.Price(),
		Currency:     m.Currency(),
		Category:     m.Category(),
		ImageURL:     m.ImageURL(),
		Available:    m.IsAvailable(),
		CreatedBy:    m.CreatedBy(),
		CreatedAt:    m.CreatedAt().UTC(),
		UpdatedAt:    m.UpdatedAt().UTC(),
	}
}

func menuItemsToResponse(ms []dommenu.MenuItem) menuItemsResponse {
	items := make([]menuItemResponse, len(ms))
	for i := range ms {
		items[i] = menuItemToResponse(&ms[i])
	}
	return menuItemsResponse{Items: items, Count: len(items)}
}
