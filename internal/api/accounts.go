package api

import (
	"net/http"

	"github.com/alexanderramin/agrismart/internal/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Country  string `json:"country"`
	State    string `json:"state"`
	District string `json:"district"`
	Tashil   string `json:"tashil"`
	Password string `json:"password"`
}

type loginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type profileResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Mobile   string `json:"mobile"`
	Country  string `json:"country"`
	State    string `json:"state"`
	District string `json:"district"`
	Tashil   string `json:"tashil"`
	Location string `json:"location"`
}

func toProfileResponse(p *domain.UserProfile) profileResponse {
	return profileResponse{
		Name:     p.Name,
		Email:    p.Email,
		Mobile:   p.Mobile,
		Country:  p.Country,
		State:    p.State,
		District: p.District,
		Tashil:   p.Tashil,
		Location: p.Location(),
	}
}

// Register handles POST /api/accounts.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Country == "" {
		req.Country = "India"
	}

	profile, err := h.accounts.Register(r.Context(), domain.UserProfile{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Country:  req.Country,
		State:    req.State,
		District: req.District,
		Tashil:   req.Tashil,
	}, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusCreated, toProfileResponse(profile))
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	profile, err := h.accounts.Login(r.Context(), req.Mobile, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, toProfileResponse(profile))
}
