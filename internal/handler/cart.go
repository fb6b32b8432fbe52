package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkordes/discgolf-api/internal/domain"
)

// ListCarts handles GET /carts.
// With a ?username= parameter it returns only that user's carts.
func (s *Server) ListCarts(w http.ResponseWriter, r *http.Request) {
	var (
		carts []domain.Cart
		err   error
	)
	if r.URL.Query().Has("username") {
		var username string
		if err := queryParam(r, "username", true, &username); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		carts, err = s.carts.ListByUsername(r.Context(), username)
	} else {
		carts, err = s.carts.List(r.Context())
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, carts)
}

// GetCart handles GET /carts/{id}.
func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	var id int
	if err := pathParam(r, "id", &id); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cart, err := s.carts.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, cart)
}

// CreateCart handles POST /carts. The body names the owner and may be a JSON
// string ("alice"), a cart object ({"username":"alice","contents":{...}}) or
// the bare username as plain text.
func (s *Server) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := readNewCart(r)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	created, err := s.carts.Create(r.Context(), cart)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusCreated, created)
}

// readNewCart decodes the POST /carts body in any of its accepted forms.
func readNewCart(r *http.Request) (domain.Cart, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return domain.Cart{}, err
	}
	raw = bytes.TrimSpace(raw)

	switch {
	case len(raw) > 0 && raw[0] == '"':
		var username string
		if err := json.Unmarshal(raw, &username); err != nil {
			return domain.Cart{}, err
		}
		return domain.NewCart(0, username, nil), nil
	case len(raw) > 0 && raw[0] == '{':
		var cart domain.Cart
		if err := json.Unmarshal(raw, &cart); err != nil {
			return domain.Cart{}, err
		}
		return cart, nil
	default:
		return domain.NewCart(0, string(raw), nil), nil
	}
}

// UpdateCart handles PUT /carts. The body's id selects the cart to replace.
func (s *Server) UpdateCart(w http.ResponseWriter, r *http.Request) {
	var cart domain.Cart
	if err := decodeJSON(r, &cart); err != nil {
		writeDecodeError(w, err)
		return
	}

	updated, err := s.carts.Update(r.Context(), cart)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, updated)
}

// DeleteCart handles DELETE /carts/{id}.
func (s *Server) DeleteCart(w http.ResponseWriter, r *http.Request) {
	var id int
	if err := pathParam(r, "id", &id); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := s.carts.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetCartContents handles GET /carts/{username}/contents: the cart's discs,
// each carrying the quantity in the cart.
func (s *Server) GetCartContents(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	discs, err := s.carts.Contents(r.Context(), username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, discs)
}

// AddDiscToCart handles PUT /carts/addDisc/{username}/{discId}.
func (s *Server) AddDiscToCart(w http.ResponseWriter, r *http.Request) {
	username, discID, ok := cartLineParams(w, r)
	if !ok {
		return
	}

	cart, err := s.carts.AddDisc(r.Context(), username, discID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, cart)
}

// RemoveDiscFromCart handles PUT /carts/removeDisc/{username}/{discId}.
func (s *Server) RemoveDiscFromCart(w http.ResponseWriter, r *http.Request) {
	username, discID, ok := cartLineParams(w, r)
	if !ok {
		return
	}

	cart, err := s.carts.RemoveDisc(r.Context(), username, discID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, cart)
}

// UpdateCartDiscQuantity handles
// PUT /carts/updateDiscQuantity/{username}/{discId}/{amount}/{mode}.
// mode is 0 to set, 1 to add and 2 to subtract.
func (s *Server) UpdateCartDiscQuantity(w http.ResponseWriter, r *http.Request) {
	username, discID, ok := cartLineParams(w, r)
	if !ok {
		return
	}
	var amount, mode int
	if err := pathParam(r, "amount", &amount); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := pathParam(r, "mode", &mode); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cart, err := s.carts.UpdateDiscQuantity(r.Context(), username, discID, amount, mode)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, cart)
}

// GetCartCost handles GET /carts/getCost/{username}.
func (s *Server) GetCartCost(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	cost, err := s.carts.Cost(r.Context(), username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, cost)
}

// GetCartCount handles GET /carts/getCount/{username}.
func (s *Server) GetCartCount(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	count, err := s.carts.Count(r.Context(), username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, count)
}

// CheckCart handles GET /carts/checkCart/{username}: the lines inventory
// cannot cover, each carrying the quantity available.
func (s *Server) CheckCart(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	conflicts, err := s.carts.Check(r.Context(), username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, conflicts)
}

// PurchaseCart handles PUT /carts/purchase/{username}.
func (s *Server) PurchaseCart(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	lines, err := s.carts.Purchase(r.Context(), username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, lines)
}

// CheckOneDisc handles GET /carts/checkOne/{username}/{discId}.
// A line inventory cannot cover returns the disc with the available quantity;
// a line that can be filled returns 200 with no body.
func (s *Server) CheckOneDisc(w http.ResponseWriter, r *http.Request) {
	username, discID, ok := cartLineParams(w, r)
	if !ok {
		return
	}

	d, covered, err := s.carts.CheckOne(r.Context(), username, discID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if covered {
		w.WriteHeader(http.StatusOK)
		return
	}
	s.respondJSON(w, r, http.StatusOK, d)
}

// PurchaseOneDisc handles PUT /carts/purchaseOne/{username}/{discId}.
func (s *Server) PurchaseOneDisc(w http.ResponseWriter, r *http.Request) {
	username, discID, ok := cartLineParams(w, r)
	if !ok {
		return
	}

	d, err := s.carts.PurchaseOne(r.Context(), username, discID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, d)
}

// usernameParam binds {username}, answering 400 itself when it is missing.
func usernameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	var username string
	if err := pathParam(r, "username", &username); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return "", false
	}
	return username, true
}

// cartLineParams binds {username} and {discId}, answering 400 itself on failure.
func cartLineParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	username, ok := usernameParam(w, r)
	if !ok {
		return "", 0, false
	}
	var discID int
	if err := pathParam(r, "discId", &discID); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return "", 0, false
	}
	return username, discID, true
}
